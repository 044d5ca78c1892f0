package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductVariant is the sellable SKU. All stock and sale lines reference a
// variant, never the parent product.
type ProductVariant struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;index;not null" json:"companyId"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null" json:"productId"`

	VariantName     string           `gorm:"not null" json:"variantName"`
	SKU             string           `gorm:"column:sku" json:"sku"`
	BuyingPrice     *decimal.Decimal `gorm:"type:decimal(12,2)" json:"buyingPrice"`
	SellingPrice    *decimal.Decimal `gorm:"type:decimal(12,2)" json:"sellingPrice"`
	MinStockLevel   *int             `json:"minStockLevel"`
	ReorderQuantity *int             `json:"reorderQuantity"`
	IsActive        bool             `gorm:"default:true" json:"isActive"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	gorm.Model `json:"-"`
}

func (v *ProductVariant) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return
}
