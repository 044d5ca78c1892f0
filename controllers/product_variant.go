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

// CreateProductVariantInput defines the expected JSON structure for creating a variant
type CreateProductVariantInput struct {
	ProductID       uuid.UUID        `json:"productId" binding:"required"`
	VariantName     string           `json:"variantName" binding:"required"`
	SKU             string           `json:"sku"`
	BuyingPrice     *decimal.Decimal `json:"buyingPrice"`
	SellingPrice    *decimal.Decimal `json:"sellingPrice"`
	MinStockLevel   *int             `json:"minStockLevel"`
	ReorderQuantity *int             `json:"reorderQuantity"`
}

// UpdateProductVariantInput defines the expected JSON structure for updating a variant
type UpdateProductVariantInput struct {
	VariantName     *string          `json:"variantName"`
	SKU             *string          `json:"sku"`
	BuyingPrice     *decimal.Decimal `json:"buyingPrice"`
	SellingPrice    *decimal.Decimal `json:"sellingPrice"`
	MinStockLevel   *int             `json:"minStockLevel"`
	ReorderQuantity *int             `json:"reorderQuantity"`
	IsActive        *bool            `json:"isActive"`
}

// CreateProductVariant creates a new variant under a product
func CreateProductVariant(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	var input CreateProductVariantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var product models.Product
	if err := config.DB.Where("company_id = ? AND id = ?", companyUUID, input.ProductID).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.BuyingPrice != nil && input.BuyingPrice.IsNegative() {
		utils.RespondWithError(c, http.StatusBadRequest, "Buying price cannot be negative")
		return
	}
	if input.SellingPrice != nil && input.SellingPrice.IsNegative() {
		utils.RespondWithError(c, http.StatusBadRequest, "Selling price cannot be negative")
		return
	}

	variant := models.ProductVariant{
		CompanyID:       companyUUID,
		ProductID:       input.ProductID,
		VariantName:     input.VariantName,
		SKU:             input.SKU,
		BuyingPrice:     input.BuyingPrice,
		SellingPrice:    input.SellingPrice,
		MinStockLevel:   input.MinStockLevel,
		ReorderQuantity: input.ReorderQuantity,
		IsActive:        true,
	}
	if err := config.DB.Create(&variant).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create product variant")
		return
	}

	c.JSON(http.StatusCreated, variant)
}

// GetProductVariants retrieves variants, optionally filtered by product
func GetProductVariants(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	query := config.DB.Where("company_id = ?", companyUUID).Preload("Product")
	if productID := c.Query("product_id"); productID != "" {
		query = query.Where("product_id = ?", productID)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("variant_name ILIKE ? OR sku ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var variants []models.ProductVariant
	if err := query.Order("variant_name").Find(&variants).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve product variants")
		return
	}

	c.JSON(http.StatusOK, variants)
}

// UpdateProductVariant updates an existing variant
func UpdateProductVariant(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}
	variantUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateProductVariantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var variant models.ProductVariant
	if err := config.DB.Where("company_id = ? AND id = ?", companyUUID, variantUUID).
		First(&variant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product variant not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.VariantName != nil {
		variant.VariantName = *input.VariantName
	}
	if input.SKU != nil {
		variant.SKU = *input.SKU
	}
	if input.BuyingPrice != nil {
		if input.BuyingPrice.IsNegative() {
			utils.RespondWithError(c, http.StatusBadRequest, "Buying price cannot be negative")
			return
		}
		variant.BuyingPrice = input.BuyingPrice
	}
	if input.SellingPrice != nil {
		if input.SellingPrice.IsNegative() {
			utils.RespondWithError(c, http.StatusBadRequest, "Selling price cannot be negative")
			return
		}
		variant.SellingPrice = input.SellingPrice
	}
	if input.MinStockLevel != nil {
		variant.MinStockLevel = input.MinStockLevel
	}
	if input.ReorderQuantity != nil {
		variant.ReorderQuantity = input.ReorderQuantity
	}
	if input.IsActive != nil {
		variant.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&variant).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update product variant")
		return
	}

	c.JSON(http.StatusOK, variant)
}

// DeleteProductVariant deactivates a variant. Variants with stock on hand
// cannot be removed.
func DeleteProductVariant(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}
	variantUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var stocked int64
	if err := config.DB.Model(&models.InventoryItem{}).
		Where("company_id = ? AND product_variant_id = ? AND quantity > 0", companyUUID, variantUUID).
		Count(&stocked).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if stocked > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Product variant still has stock on hand")
		return
	}

	result := config.DB.Model(&models.ProductVariant{}).
		Where("company_id = ? AND id = ?", companyUUID, variantUUID).
		Update("is_active", false)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete product variant")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Product variant not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product variant deleted successfully"})
}
