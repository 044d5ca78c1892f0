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

// CreateStorageLocationInput defines the expected JSON structure for creating a location
type CreateStorageLocationInput struct {
	Name         string `json:"name" binding:"required"`
	LocationType string `json:"locationType" binding:"required,oneof=warehouse shop store other"`
	Address      string `json:"address"`
	Description  string `json:"description"`
}

// UpdateStorageLocationInput defines the expected JSON structure for updating a location
type UpdateStorageLocationInput struct {
	Name         *string `json:"name"`
	LocationType *string `json:"locationType"`
	Address      *string `json:"address"`
	Description  *string `json:"description"`
	IsActive     *bool   `json:"isActive"`
}

// CreateStorageLocation creates a new storage location for the company
func CreateStorageLocation(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	var input CreateStorageLocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.StorageLocation
	if err := config.DB.Where("company_id = ? AND name = ?", companyUUID, input.Name).
		First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Storage location with this name already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	location := models.StorageLocation{
		CompanyID:    companyUUID,
		Name:         input.Name,
		LocationType: input.LocationType,
		Address:      input.Address,
		Description:  input.Description,
		IsActive:     true,
	}
	if err := config.DB.Create(&location).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create storage location")
		return
	}

	c.JSON(http.StatusCreated, location)
}

// GetStorageLocations retrieves all storage locations for the company
func GetStorageLocations(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	var locations []models.StorageLocation
	if err := config.DB.Where("company_id = ?", companyUUID).Order("name").
		Find(&locations).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve storage locations")
		return
	}

	c.JSON(http.StatusOK, locations)
}

// UpdateStorageLocation updates an existing storage location
func UpdateStorageLocation(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}
	locationUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateStorageLocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var location models.StorageLocation
	if err := config.DB.Where("company_id = ? AND id = ?", companyUUID, locationUUID).
		First(&location).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Storage location not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil && *input.Name != location.Name {
		var existing models.StorageLocation
		if err := config.DB.Where("company_id = ? AND name = ?", companyUUID, *input.Name).
			First(&existing).Error; err == nil {
			utils.RespondWithError(c, http.StatusConflict, "Storage location with this name already exists")
			return
		}
		location.Name = *input.Name
	}
	if input.LocationType != nil {
		switch *input.LocationType {
		case models.LocationTypeWarehouse, models.LocationTypeShop, models.LocationTypeStore, models.LocationTypeOther:
			location.LocationType = *input.LocationType
		default:
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid location type")
			return
		}
	}
	if input.Address != nil {
		location.Address = *input.Address
	}
	if input.Description != nil {
		location.Description = *input.Description
	}
	if input.IsActive != nil {
		location.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&location).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update storage location")
		return
	}

	c.JSON(http.StatusOK, location)
}

// DeleteStorageLocation deactivates a location. Locations holding stock
// cannot be removed.
func DeleteStorageLocation(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}
	locationUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var stocked int64
	if err := config.DB.Model(&models.InventoryItem{}).
		Where("company_id = ? AND storage_location_id = ? AND quantity > 0", companyUUID, locationUUID).
		Count(&stocked).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if stocked > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Storage location still holds stock")
		return
	}

	result := config.DB.Model(&models.StorageLocation{}).
		Where("company_id = ? AND id = ?", companyUUID, locationUUID).
		Update("is_active", false)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete storage location")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Storage location not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Storage location deleted successfully"})
}
