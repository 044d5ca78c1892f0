package controllers

import (
	"net/http"

	"dukahub-backend/config"
	"dukahub-backend/models"
	"dukahub-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetInventoryItems retrieves on-hand stock, optionally filtered by variant
// or location.
func GetInventoryItems(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	query := config.DB.Where("company_id = ?", companyUUID).
		Preload("ProductVariant").Preload("ProductVariant.Product").Preload("StorageLocation")

	if variantID := c.Query("product_variant_id"); variantID != "" {
		query = query.Where("product_variant_id = ?", variantID)
	}
	if locationID := c.Query("storage_location_id"); locationID != "" {
		query = query.Where("storage_location_id = ?", locationID)
	}
	if c.Query("in_stock") == "true" {
		query = query.Where("quantity > 0")
	}

	var items []models.InventoryItem
	if err := query.Find(&items).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve inventory")
		return
	}

	c.JSON(http.StatusOK, items)
}
