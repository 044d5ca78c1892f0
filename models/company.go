package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	Address  string    `json:"address"`
	Phone    string    `json:"phone"`
	Email    string    `json:"email"`
	Currency string    `gorm:"type:varchar(10);default:'KES'" json:"currency"`

	SMSNotifications      bool `gorm:"default:false" json:"smsNotifications"`
	WhatsAppNotifications bool `gorm:"default:false" json:"whatsappNotifications"`

	IsActive bool `gorm:"default:true" json:"isActive"`

	Users     []CompanyUser `gorm:"foreignKey:CompanyID" json:"-"`
	Customers []Customer    `gorm:"foreignKey:CompanyID" json:"-"`

	gorm.Model `json:"-"`
}

func (co *Company) BeforeCreate(tx *gorm.DB) (err error) {
	if co.ID == uuid.Nil {
		co.ID = uuid.New()
	}
	return
}

// CompanyUser links a user to a company; a user may belong to several companies.
type CompanyUser struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_company_user,priority:1" json:"companyId"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_company_user,priority:2" json:"userId"`
	Role      string    `gorm:"type:varchar(20);not null;default:'member'" json:"role"` // 'owner' or 'member'
	IsActive  bool      `gorm:"default:true" json:"isActive"`

	gorm.Model `json:"-"`
}

func (cu *CompanyUser) BeforeCreate(tx *gorm.DB) (err error) {
	if cu.ID == uuid.Nil {
		cu.ID = uuid.New()
	}
	return
}
