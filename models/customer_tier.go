package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CustomerTier carries the percentage discount applied uniformly to every sale
// made by a customer assigned to it.
type CustomerTier struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_company_tier_name,priority:1" json:"companyId"`

	Name               string          `gorm:"not null;uniqueIndex:idx_company_tier_name,priority:2" json:"name"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"discountPercentage"`
	Description        string          `json:"description"`
	IsDefault          bool            `gorm:"default:false" json:"isDefault"`
	IsActive           bool            `gorm:"default:true" json:"isActive"`

	gorm.Model `json:"-"`
}

func (t *CustomerTier) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
