package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryItem holds the on-hand quantity of one variant at one location.
// Rows are created lazily on the first stock-in and the quantity is only ever
// mutated through the stock ledger, which guarantees it never goes negative.
type InventoryItem struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID         uuid.UUID `gorm:"type:uuid;index;not null" json:"companyId"`
	ProductVariantID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_variant_location,priority:1" json:"productVariantId"`
	StorageLocationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_variant_location,priority:2" json:"storageLocationId"`

	Quantity      int  `gorm:"not null;default:0" json:"quantity"`
	MinStockLevel *int `json:"minStockLevel"`
	MaxStockLevel *int `json:"maxStockLevel"`

	ProductVariant  *ProductVariant  `gorm:"foreignKey:ProductVariantID" json:"productVariant,omitempty"`
	StorageLocation *StorageLocation `gorm:"foreignKey:StorageLocationID" json:"storageLocation,omitempty"`

	gorm.Model `json:"-"`
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
