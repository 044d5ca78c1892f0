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

// CreateExpenseCategoryInput defines the expected JSON structure for creating an expense category
type CreateExpenseCategoryInput struct {
	Name        string `json:"name" binding:"required"`
	ExpenseType string `json:"expenseType" binding:"required,oneof=standard sales"`
	Description string `json:"description"`
}

// UpdateExpenseCategoryInput defines the expected JSON structure for updating an expense category
type UpdateExpenseCategoryInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// CreateExpenseCategory creates a new expense category for the company
func CreateExpenseCategory(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	var input CreateExpenseCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.ExpenseCategory
	if err := config.DB.Where("company_id = ? AND name = ?", companyUUID, input.Name).
		First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Expense category with this name already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	category := models.ExpenseCategory{
		CompanyID:   companyUUID,
		Name:        input.Name,
		ExpenseType: input.ExpenseType,
		Description: input.Description,
		IsActive:    true,
	}
	if err := config.DB.Create(&category).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create expense category")
		return
	}

	c.JSON(http.StatusCreated, category)
}

// GetExpenseCategories retrieves all expense categories for the company
func GetExpenseCategories(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	query := config.DB.Where("company_id = ?", companyUUID)
	if expenseType := c.Query("expense_type"); expenseType != "" {
		query = query.Where("expense_type = ?", expenseType)
	}

	var categories []models.ExpenseCategory
	if err := query.Order("name").Find(&categories).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve expense categories")
		return
	}

	c.JSON(http.StatusOK, categories)
}

// UpdateExpenseCategory updates an existing expense category. The expense type
// is fixed at creation because recorded expenses inherit it.
func UpdateExpenseCategory(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}
	categoryUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateExpenseCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var category models.ExpenseCategory
	if err := config.DB.Where("company_id = ? AND id = ?", companyUUID, categoryUUID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Expense category not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil && *input.Name != category.Name {
		var existing models.ExpenseCategory
		if err := config.DB.Where("company_id = ? AND name = ?", companyUUID, *input.Name).
			First(&existing).Error; err == nil {
			utils.RespondWithError(c, http.StatusConflict, "Expense category with this name already exists")
			return
		}
		category.Name = *input.Name
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&category).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update expense category")
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteExpenseCategory deactivates a category. Categories with recorded
// expenses cannot be removed.
func DeleteExpenseCategory(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}
	categoryUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var inUse int64
	if err := config.DB.Model(&models.Expense{}).
		Where("company_id = ? AND expense_category_id = ?", companyUUID, categoryUUID).
		Count(&inUse).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if inUse > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Expense category is in use by expenses")
		return
	}

	result := config.DB.Model(&models.ExpenseCategory{}).
		Where("company_id = ? AND id = ?", companyUUID, categoryUUID).
		Update("is_active", false)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete expense category")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Expense category not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense category deleted successfully"})
}
