package controllers

import (
	"errors"
	"net/http"

	"dukahub-backend/config"
	"dukahub-backend/models"
	"dukahub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateCustomerTierInput defines the expected JSON structure for creating a tier
type CreateCustomerTierInput struct {
	Name               string          `json:"name" binding:"required"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	Description        string          `json:"description"`
	IsDefault          bool            `json:"isDefault"`
}

// UpdateCustomerTierInput defines the expected JSON structure for updating a tier
type UpdateCustomerTierInput struct {
	Name               *string          `json:"name"`
	DiscountPercentage *decimal.Decimal `json:"discountPercentage"`
	Description        *string          `json:"description"`
	IsDefault          *bool            `json:"isDefault"`
	IsActive           *bool            `json:"isActive"`
}

func validDiscount(pct decimal.Decimal) bool {
	return !pct.IsNegative() && !pct.GreaterThan(decimal.NewFromInt(100))
}

// CreateCustomerTier creates a new customer tier for the company
func CreateCustomerTier(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	var input CreateCustomerTierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !validDiscount(input.DiscountPercentage) {
		utils.RespondWithError(c, http.StatusBadRequest, "Discount percentage must be between 0 and 100")
		return
	}

	var existing models.CustomerTier
	if err := config.DB.Where("company_id = ? AND name = ?", companyUUID, input.Name).
		First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Customer tier with this name already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	tier := models.CustomerTier{
		CompanyID:          companyUUID,
		Name:               input.Name,
		DiscountPercentage: input.DiscountPercentage,
		Description:        input.Description,
		IsDefault:          input.IsDefault,
		IsActive:           true,
	}
	if err := config.DB.Create(&tier).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer tier")
		return
	}

	c.JSON(http.StatusCreated, tier)
}

// GetCustomerTiers retrieves all customer tiers for the company
func GetCustomerTiers(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	var tiers []models.CustomerTier
	if err := config.DB.Where("company_id = ?", companyUUID).Order("name").
		Find(&tiers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customer tiers")
		return
	}

	c.JSON(http.StatusOK, tiers)
}

// UpdateCustomerTier updates an existing customer tier
func UpdateCustomerTier(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}
	tierUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateCustomerTierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var tier models.CustomerTier
	if err := config.DB.Where("company_id = ? AND id = ?", companyUUID, tierUUID).
		First(&tier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer tier not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil && *input.Name != tier.Name {
		var existing models.CustomerTier
		if err := config.DB.Where("company_id = ? AND name = ?", companyUUID, *input.Name).
			First(&existing).Error; err == nil {
			utils.RespondWithError(c, http.StatusConflict, "Customer tier with this name already exists")
			return
		}
		tier.Name = *input.Name
	}
	if input.DiscountPercentage != nil {
		if !validDiscount(*input.DiscountPercentage) {
			utils.RespondWithError(c, http.StatusBadRequest, "Discount percentage must be between 0 and 100")
			return
		}
		tier.DiscountPercentage = *input.DiscountPercentage
	}
	if input.Description != nil {
		tier.Description = *input.Description
	}
	if input.IsDefault != nil {
		tier.IsDefault = *input.IsDefault
	}
	if input.IsActive != nil {
		tier.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&tier).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer tier")
		return
	}

	c.JSON(http.StatusOK, tier)
}

// DeleteCustomerTier deactivates a tier. Tiers still assigned to customers
// cannot be removed.
func DeleteCustomerTier(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}
	tierUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var inUse int64
	if err := config.DB.Model(&models.Customer{}).
		Where("company_id = ? AND customer_tier_id = ?", companyUUID, tierUUID).
		Count(&inUse).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if inUse > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Customer tier is in use by customers")
		return
	}

	result := config.DB.Model(&models.CustomerTier{}).
		Where("company_id = ? AND id = ?", companyUUID, tierUUID).
		Update("is_active", false)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer tier")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Customer tier not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer tier deleted successfully"})
}
