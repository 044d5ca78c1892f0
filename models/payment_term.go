package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentTerm defines how many days after the sale date an invoice falls due.
type PaymentTerm struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_company_term_name,priority:1" json:"companyId"`

	Name        string `gorm:"not null;uniqueIndex:idx_company_term_name,priority:2" json:"name"`
	Days        int    `gorm:"not null;default:0" json:"days"`
	Description string `json:"description"`
	IsDefault   bool   `gorm:"default:false" json:"isDefault"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`

	gorm.Model `json:"-"`
}

func (p *PaymentTerm) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
