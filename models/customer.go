package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	CustomerTypeIndividual = "individual"
	CustomerTypeBusiness   = "business"
	CustomerTypeWalkIn     = "walk-in"
)

const (
	CustomerStatusActive    = "active"
	CustomerStatusInactive  = "inactive"
	CustomerStatusSuspended = "suspended"
)

type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;index;not null" json:"companyId"`

	CustomerType   string     `gorm:"type:varchar(20);not null" json:"customerType"`
	Name           string     `gorm:"not null" json:"name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Address        string     `json:"address"`
	TaxID          string     `gorm:"column:tax_id" json:"taxId"`
	PaymentTermID  *uuid.UUID `gorm:"type:uuid;index" json:"paymentTermId"`
	CustomerTierID *uuid.UUID `gorm:"type:uuid;index" json:"customerTierId"`

	// CreditLimit caps CurrentBalance for non-walk-in customers. CurrentBalance is a
	// running ledger balance maintained by sales, credit notes and payments — it is
	// never recomputed on read.
	CreditLimit    decimal.Decimal `gorm:"type:decimal(14,2);default:0" json:"creditLimit"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(14,2);default:0" json:"currentBalance"`

	Status    string `gorm:"type:varchar(20);default:'active'" json:"status"`
	Notes     string `json:"notes"`
	IsDefault bool   `gorm:"default:false" json:"isDefault"`

	PaymentTerm  *PaymentTerm  `gorm:"foreignKey:PaymentTermID" json:"paymentTerm,omitempty"`
	CustomerTier *CustomerTier `gorm:"foreignKey:CustomerTierID" json:"customerTier,omitempty"`
	Sales        []Sale        `gorm:"foreignKey:CustomerID" json:"-"`

	gorm.Model `json:"-"`
}

func (cu *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if cu.ID == uuid.Nil {
		cu.ID = uuid.New()
	}
	return
}
