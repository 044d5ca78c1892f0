package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeIn         = "in"
	TransactionTypeOut        = "out"
	TransactionTypeTransfer   = "transfer"
	TransactionTypeAdjustment = "adjustment"
)

const (
	ReferenceTypeSale     = "sale"
	ReferenceTypeReversal = "reversal"
)

// InventoryTransaction is an append-only stock movement log entry. Entries are
// never updated or deleted; undoing one appends a compensating entry tagged
// with reference_type "reversal".
type InventoryTransaction struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID        uuid.UUID `gorm:"type:uuid;index;not null" json:"companyId"`
	ProductVariantID uuid.UUID `gorm:"type:uuid;index;not null" json:"productVariantId"`

	TransactionType string     `gorm:"type:varchar(20);not null" json:"transactionType"`
	Quantity        int        `gorm:"not null" json:"quantity"` // unsigned magnitude
	FromLocationID  *uuid.UUID `gorm:"type:uuid;index" json:"fromLocationId"`
	ToLocationID    *uuid.UUID `gorm:"type:uuid;index" json:"toLocationId"`

	ReferenceType string     `gorm:"type:varchar(20)" json:"referenceType"`
	ReferenceID   *uuid.UUID `gorm:"type:uuid;index" json:"referenceId"`
	Notes         string     `json:"notes"`

	// Supplier financing for stock-in
	SupplierID    *uuid.UUID       `gorm:"type:uuid;index" json:"supplierId"`
	UnitCost      *decimal.Decimal `gorm:"type:decimal(12,2)" json:"unitCost"`
	TotalCost     *decimal.Decimal `gorm:"type:decimal(14,2)" json:"totalCost"`
	PaymentStatus string           `gorm:"type:varchar(20);default:'unpaid'" json:"paymentStatus"`
	AmountPaid    decimal.Decimal  `gorm:"type:decimal(14,2);default:0" json:"amountPaid"`
	AmountDue     *decimal.Decimal `gorm:"type:decimal(14,2)" json:"amountDue"`

	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"createdBy"`
	CreatedAt time.Time  `json:"createdAt"`

	ProductVariant *ProductVariant  `gorm:"foreignKey:ProductVariantID" json:"productVariant,omitempty"`
	FromLocation   *StorageLocation `gorm:"foreignKey:FromLocationID" json:"fromLocation,omitempty"`
	ToLocation     *StorageLocation `gorm:"foreignKey:ToLocationID" json:"toLocation,omitempty"`
	Supplier       *Supplier        `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}

func (t *InventoryTransaction) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
