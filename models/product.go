package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductCategory struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_company_prodcat_name,priority:1" json:"companyId"`

	Name        string `gorm:"not null;uniqueIndex:idx_company_prodcat_name,priority:2" json:"name"`
	Description string `json:"description"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`

	gorm.Model `json:"-"`
}

func (pc *ProductCategory) BeforeCreate(tx *gorm.DB) (err error) {
	if pc.ID == uuid.Nil {
		pc.ID = uuid.New()
	}
	return
}

type Product struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID  uuid.UUID `gorm:"type:uuid;index;not null" json:"companyId"`
	CategoryID uuid.UUID `gorm:"type:uuid;index;not null" json:"categoryId"`

	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	SKU         string `gorm:"column:sku" json:"sku"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`

	Category *ProductCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`

	gorm.Model `json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
