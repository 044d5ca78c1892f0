package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	SaleTypeInvoice    = "invoice"
	SaleTypeCreditNote = "credit_note"
)

const (
	PaymentStatusUnpaid  = "unpaid"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

const (
	PaymentMethodCash  = "cash"
	PaymentMethodMpesa = "mpesa"
	PaymentMethodBank  = "bank"
	PaymentMethodCard  = "card"
)

// Sale is an invoice or a credit note. Subtotal, discount and total are fixed
// at creation; amount_paid/amount_due move with payments and always satisfy
// amount_paid + amount_due == total_amount. Credit notes carry negative
// amounts and reference the original invoice.
type Sale struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;index;not null" json:"companyId"`

	CustomerID        uuid.UUID  `gorm:"type:uuid;index;not null" json:"customerId"`
	SaleNumber        string     `gorm:"not null;uniqueIndex:idx_company_sale_number,priority:2" json:"saleNumber"`
	SaleType          string     `gorm:"type:varchar(20);not null" json:"saleType"`
	OriginalSaleID    *uuid.UUID `gorm:"type:uuid;index" json:"originalSaleId"`
	SaleDate          time.Time  `gorm:"type:date;not null" json:"saleDate"`
	StorageLocationID uuid.UUID  `gorm:"type:uuid;index;not null" json:"storageLocationId"`

	Subtotal           decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"subtotal"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"discountPercentage"`
	DiscountAmount     decimal.Decimal `gorm:"type:decimal(14,2);default:0" json:"discountAmount"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"totalAmount"`

	PaymentStatus string          `gorm:"type:varchar(20);default:'unpaid'" json:"paymentStatus"`
	AmountPaid    decimal.Decimal `gorm:"type:decimal(14,2);default:0" json:"amountPaid"`
	AmountDue     decimal.Decimal `gorm:"type:decimal(14,2);default:0" json:"amountDue"`

	Notes     string     `json:"notes"`
	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"createdBy"`

	Customer        *Customer        `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	StorageLocation *StorageLocation `gorm:"foreignKey:StorageLocationID" json:"storageLocation,omitempty"`
	OriginalSale    *Sale            `gorm:"foreignKey:OriginalSaleID" json:"originalSale,omitempty"`
	Items           []SaleItem       `gorm:"foreignKey:SaleID" json:"items,omitempty"`
	Payments        []SalePayment    `gorm:"foreignKey:SaleID" json:"payments,omitempty"`

	gorm.Model `json:"-"`
}

func (s *Sale) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// SaleItem quantity is positive on invoices and negative on credit-note lines.
type SaleItem struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SaleID           uuid.UUID `gorm:"type:uuid;index;not null" json:"saleId"`
	ProductVariantID uuid.UUID `gorm:"type:uuid;index;not null" json:"productVariantId"`

	Quantity           int             `gorm:"not null" json:"quantity"`
	UnitPrice          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unitPrice"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"discountPercentage"`
	DiscountAmount     decimal.Decimal `gorm:"type:decimal(14,2);default:0" json:"discountAmount"`
	LineTotal          decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"lineTotal"`

	ProductVariant *ProductVariant `gorm:"foreignKey:ProductVariantID" json:"productVariant,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (si *SaleItem) BeforeCreate(tx *gorm.DB) (err error) {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return
}

// SalePayment rows are append-only; amounts are bounded by the sale's
// amount_due at insert time.
type SalePayment struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SaleID uuid.UUID `gorm:"type:uuid;index;not null" json:"saleId"`

	PaymentDate     time.Time       `gorm:"type:date;not null" json:"paymentDate"`
	Amount          decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	PaymentMethod   string          `gorm:"type:varchar(20);not null" json:"paymentMethod"`
	ReferenceNumber string          `json:"referenceNumber"`
	Notes           string          `json:"notes"`
	CreatedBy       *uuid.UUID      `gorm:"type:uuid" json:"createdBy"`

	CreatedAt time.Time `json:"createdAt"`
}

func (sp *SalePayment) BeforeCreate(tx *gorm.DB) (err error) {
	if sp.ID == uuid.Nil {
		sp.ID = uuid.New()
	}
	return
}

// SaleCounter backs sequential sale numbering per (company, sale type). The
// row is incremented under a row lock so numbers are monotonic and never
// reused, including after reversals.
type SaleCounter struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_company_sale_counter,priority:1" json:"companyId"`
	SaleType  string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_company_sale_counter,priority:2" json:"saleType"`
	NextValue int64     `gorm:"not null;default:1" json:"nextValue"`

	gorm.Model `json:"-"`
}

func (sc *SaleCounter) BeforeCreate(tx *gorm.DB) (err error) {
	if sc.ID == uuid.Nil {
		sc.ID = uuid.New()
	}
	return
}
