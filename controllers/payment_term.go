package controllers

import (
	"errors"
	"net/http"

	"dukahub-backend/config"
	"dukahub-backend/models"
	"dukahub-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreatePaymentTermInput defines the expected JSON structure for creating a payment term
type CreatePaymentTermInput struct {
	Name        string `json:"name" binding:"required"`
	Days        int    `json:"days" binding:"min=0"`
	Description string `json:"description"`
	IsDefault   bool   `json:"isDefault"`
}

// UpdatePaymentTermInput defines the expected JSON structure for updating a payment term
type UpdatePaymentTermInput struct {
	Name        *string `json:"name"`
	Days        *int    `json:"days"`
	Description *string `json:"description"`
	IsDefault   *bool   `json:"isDefault"`
	IsActive    *bool   `json:"isActive"`
}

// CreatePaymentTerm creates a new payment term for the company
func CreatePaymentTerm(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	var input CreatePaymentTermInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.PaymentTerm
	if err := config.DB.Where("company_id = ? AND name = ?", companyUUID, input.Name).
		First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Payment term with this name already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	term := models.PaymentTerm{
		CompanyID:   companyUUID,
		Name:        input.Name,
		Days:        input.Days,
		Description: input.Description,
		IsDefault:   input.IsDefault,
		IsActive:    true,
	}
	if err := config.DB.Create(&term).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create payment term")
		return
	}

	c.JSON(http.StatusCreated, term)
}

// GetPaymentTerms retrieves all payment terms for the company
func GetPaymentTerms(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	var terms []models.PaymentTerm
	if err := config.DB.Where("company_id = ?", companyUUID).Order("days").
		Find(&terms).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payment terms")
		return
	}

	c.JSON(http.StatusOK, terms)
}

// UpdatePaymentTerm updates an existing payment term
func UpdatePaymentTerm(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}
	termUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdatePaymentTermInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var term models.PaymentTerm
	if err := config.DB.Where("company_id = ? AND id = ?", companyUUID, termUUID).
		First(&term).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment term not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil && *input.Name != term.Name {
		var existing models.PaymentTerm
		if err := config.DB.Where("company_id = ? AND name = ?", companyUUID, *input.Name).
			First(&existing).Error; err == nil {
			utils.RespondWithError(c, http.StatusConflict, "Payment term with this name already exists")
			return
		}
		term.Name = *input.Name
	}
	if input.Days != nil {
		if *input.Days < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Days cannot be negative")
			return
		}
		term.Days = *input.Days
	}
	if input.Description != nil {
		term.Description = *input.Description
	}
	if input.IsDefault != nil {
		term.IsDefault = *input.IsDefault
	}
	if input.IsActive != nil {
		term.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&term).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update payment term")
		return
	}

	c.JSON(http.StatusOK, term)
}

// DeletePaymentTerm deactivates a payment term. Terms still assigned to
// customers cannot be removed.
func DeletePaymentTerm(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}
	termUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var inUse int64
	if err := config.DB.Model(&models.Customer{}).
		Where("company_id = ? AND payment_term_id = ?", companyUUID, termUUID).
		Count(&inUse).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if inUse > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Payment term is in use by customers")
		return
	}

	result := config.DB.Model(&models.PaymentTerm{}).
		Where("company_id = ? AND id = ?", companyUUID, termUUID).
		Update("is_active", false)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete payment term")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Payment term not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment term deleted successfully"})
}
