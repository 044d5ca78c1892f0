package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LocationTypeWarehouse = "warehouse"
	LocationTypeShop      = "shop"
	LocationTypeStore     = "store"
	LocationTypeOther     = "other"
)

type StorageLocation struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_company_location_name,priority:1" json:"companyId"`

	Name         string `gorm:"not null;uniqueIndex:idx_company_location_name,priority:2" json:"name"`
	LocationType string `gorm:"type:varchar(20);not null" json:"locationType"`
	Address      string `json:"address"`
	Description  string `json:"description"`
	IsActive     bool   `gorm:"default:true" json:"isActive"`

	gorm.Model `json:"-"`
}

func (l *StorageLocation) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}
