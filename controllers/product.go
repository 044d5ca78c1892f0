package controllers

import (
	"errors"
	"net/http"

	"dukahub-backend/config"
	"dukahub-backend/models"
	"dukahub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateProductInput defines the expected JSON structure for creating a product
type CreateProductInput struct {
	CategoryID  uuid.UUID `json:"categoryId" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	SKU         string    `json:"sku"`
}

// UpdateProductInput defines the expected JSON structure for updating a product
type UpdateProductInput struct {
	CategoryID  *uuid.UUID `json:"categoryId"`
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	SKU         *string    `json:"sku"`
	IsActive    *bool      `json:"isActive"`
}

// productSummary carries per-product variant aggregates for list views.
type productSummary struct {
	models.Product
	VariantCount    int64            `json:"variantCount"`
	AvgBuyingPrice  *decimal.Decimal `json:"avgBuyingPrice"`
	AvgSellingPrice *decimal.Decimal `json:"avgSellingPrice"`
}

// CreateProduct creates a new product under a category
func CreateProduct(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var category models.ProductCategory
	if err := config.DB.Where("company_id = ? AND id = ?", companyUUID, input.CategoryID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product category not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	product := models.Product{
		CompanyID:   companyUUID,
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		SKU:         input.SKU,
		IsActive:    true,
	}
	if err := config.DB.Create(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GetProducts retrieves all products with variant aggregates
func GetProducts(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	query := config.DB.Where("company_id = ?", companyUUID).Preload("Category")
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var products []models.Product
	if err := query.Order("name").Find(&products).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	summaries := make([]productSummary, 0, len(products))
	for _, product := range products {
		var row struct {
			VariantCount    int64
			AvgBuyingPrice  *decimal.Decimal
			AvgSellingPrice *decimal.Decimal
		}
		if err := config.DB.Model(&models.ProductVariant{}).
			Where("product_id = ?", product.ID).
			Select("COUNT(*) AS variant_count, AVG(buying_price) AS avg_buying_price, AVG(selling_price) AS avg_selling_price").
			Scan(&row).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to aggregate variants")
			return
		}
		summaries = append(summaries, productSummary{
			Product:         product,
			VariantCount:    row.VariantCount,
			AvgBuyingPrice:  row.AvgBuyingPrice,
			AvgSellingPrice: row.AvgSellingPrice,
		})
	}

	c.JSON(http.StatusOK, summaries)
}

// GetProduct retrieves a specific product with its variants
func GetProduct(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}
	productUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var product models.Product
	if err := config.DB.Where("company_id = ? AND id = ?", companyUUID, productUUID).
		Preload("Category").Preload("Variants").
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, product)
}

// UpdateProduct updates an existing product
func UpdateProduct(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}
	productUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var product models.Product
	if err := config.DB.Where("company_id = ? AND id = ?", companyUUID, productUUID).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.CategoryID != nil {
		var category models.ProductCategory
		if err := config.DB.Where("company_id = ? AND id = ?", companyUUID, *input.CategoryID).
			First(&category).Error; err != nil {
			utils.RespondWithError(c, http.StatusNotFound, "Product category not found")
			return
		}
		product.CategoryID = *input.CategoryID
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.SKU != nil {
		product.SKU = *input.SKU
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct deactivates a product together with its variants.
func DeleteProduct(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}
	productUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Product{}).
			Where("company_id = ? AND id = ?", companyUUID, productUUID).
			Update("is_active", false)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&models.ProductVariant{}).
			Where("company_id = ? AND product_id = ?", companyUUID, productUUID).
			Update("is_active", false).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete product")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
