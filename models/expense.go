package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ExpenseTypeStandard = "standard"
	ExpenseTypeSales    = "sales"
)

const (
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
)

type ExpenseCategory struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_company_expcat_name,priority:1" json:"companyId"`

	Name        string `gorm:"not null;uniqueIndex:idx_company_expcat_name,priority:2" json:"name"`
	ExpenseType string `gorm:"type:varchar(20);not null" json:"expenseType"`
	Description string `json:"description"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`

	gorm.Model `json:"-"`
}

func (ec *ExpenseCategory) BeforeCreate(tx *gorm.DB) (err error) {
	if ec.ID == uuid.Nil {
		ec.ID = uuid.New()
	}
	return
}

// Expense tracks the same unpaid/partial/paid lifecycle as Sale but never
// touches customer balances. Recurring expenses spawn independent child rows
// at creation time; children are never re-synced with the parent afterwards.
type Expense struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;index;not null" json:"companyId"`

	ExpenseCategoryID uuid.UUID       `gorm:"type:uuid;index;not null" json:"expenseCategoryId"`
	ExpenseType       string          `gorm:"type:varchar(20);not null" json:"expenseType"`
	Title             string          `gorm:"not null" json:"title"`
	Description       string          `json:"description"`
	Amount            decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	SupplierID        *uuid.UUID      `gorm:"type:uuid;index" json:"supplierId"`
	SaleID            *uuid.UUID      `gorm:"type:uuid;index" json:"saleId"`

	PaymentStatus string          `gorm:"type:varchar(20);default:'unpaid'" json:"paymentStatus"`
	AmountPaid    decimal.Decimal `gorm:"type:decimal(14,2);default:0" json:"amountPaid"`
	AmountDue     decimal.Decimal `gorm:"type:decimal(14,2);default:0" json:"amountDue"`

	IsRecurring          bool       `gorm:"default:false" json:"isRecurring"`
	RecurrenceFrequency  string     `gorm:"type:varchar(20)" json:"recurrenceFrequency"`
	RecurrenceDayOfWeek  *int       `json:"recurrenceDayOfWeek"`  // 0=Monday .. 6=Sunday
	RecurrenceDayOfMonth *int       `json:"recurrenceDayOfMonth"` // clamped to month end
	RecurrenceEndDate    *time.Time `gorm:"type:date" json:"recurrenceEndDate"`
	ParentExpenseID      *uuid.UUID `gorm:"type:uuid;index" json:"parentExpenseId"`

	ExpenseDate time.Time  `gorm:"type:date;not null" json:"expenseDate"`
	Notes       string     `json:"notes"`
	CreatedBy   *uuid.UUID `gorm:"type:uuid" json:"createdBy"`

	Category *ExpenseCategory `gorm:"foreignKey:ExpenseCategoryID" json:"category,omitempty"`
	Supplier *Supplier        `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Sale     *Sale            `gorm:"foreignKey:SaleID" json:"sale,omitempty"`
	Payments []ExpensePayment `gorm:"foreignKey:ExpenseID" json:"payments,omitempty"`

	gorm.Model `json:"-"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}

type ExpensePayment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;index;not null" json:"companyId"`
	ExpenseID uuid.UUID `gorm:"type:uuid;index;not null" json:"expenseId"`

	PaymentDate     time.Time       `gorm:"type:date;not null" json:"paymentDate"`
	Amount          decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	PaymentMethod   string          `gorm:"type:varchar(20);not null" json:"paymentMethod"`
	ReferenceNumber string          `json:"referenceNumber"`
	Notes           string          `json:"notes"`
	CreatedBy       *uuid.UUID      `gorm:"type:uuid" json:"createdBy"`

	CreatedAt time.Time `json:"createdAt"`
}

func (ep *ExpensePayment) BeforeCreate(tx *gorm.DB) (err error) {
	if ep.ID == uuid.Nil {
		ep.ID = uuid.New()
	}
	return
}
