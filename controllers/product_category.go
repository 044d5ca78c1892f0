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

// CreateProductCategoryInput defines the expected JSON structure for creating a category
type CreateProductCategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateProductCategoryInput defines the expected JSON structure for updating a category
type UpdateProductCategoryInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// CreateProductCategory creates a new product category for the company
func CreateProductCategory(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	var input CreateProductCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.ProductCategory
	if err := config.DB.Where("company_id = ? AND name = ?", companyUUID, input.Name).
		First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Product category with this name already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	category := models.ProductCategory{
		CompanyID:   companyUUID,
		Name:        input.Name,
		Description: input.Description,
		IsActive:    true,
	}
	if err := config.DB.Create(&category).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create product category")
		return
	}

	c.JSON(http.StatusCreated, category)
}

// GetProductCategories retrieves all product categories for the company
func GetProductCategories(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	var categories []models.ProductCategory
	if err := config.DB.Where("company_id = ?", companyUUID).Order("name").
		Find(&categories).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve product categories")
		return
	}

	c.JSON(http.StatusOK, categories)
}

// UpdateProductCategory updates an existing product category
func UpdateProductCategory(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}
	categoryUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateProductCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var category models.ProductCategory
	if err := config.DB.Where("company_id = ? AND id = ?", companyUUID, categoryUUID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product category not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil && *input.Name != category.Name {
		var existing models.ProductCategory
		if err := config.DB.Where("company_id = ? AND name = ?", companyUUID, *input.Name).
			First(&existing).Error; err == nil {
			utils.RespondWithError(c, http.StatusConflict, "Product category with this name already exists")
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
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update product category")
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteProductCategory deactivates a category. Categories with products
// cannot be removed.
func DeleteProductCategory(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}
	categoryUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var inUse int64
	if err := config.DB.Model(&models.Product{}).
		Where("company_id = ? AND category_id = ?", companyUUID, categoryUUID).
		Count(&inUse).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if inUse > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Product category is in use by products")
		return
	}

	result := config.DB.Model(&models.ProductCategory{}).
		Where("company_id = ? AND id = ?", companyUUID, categoryUUID).
		Update("is_active", false)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete product category")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Product category not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product category deleted successfully"})
}
