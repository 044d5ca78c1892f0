package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentReminderLog records every overdue-invoice reminder sent to a
// customer, successful or not.
type PaymentReminderLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID  uuid.UUID `gorm:"type:uuid;index;not null" json:"companyId"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	SaleID     uuid.UUID `gorm:"type:uuid;index;not null" json:"saleId"`

	Message      string    `gorm:"type:text" json:"message"`
	Status       string    `gorm:"type:varchar(20)" json:"status"`  // sent, failed
	ErrorMessage string    `gorm:"type:text" json:"errorMessage"`
	Channel      string    `gorm:"type:varchar(20)" json:"channel"` // whatsapp, sms
	SentAt       time.Time `json:"sentAt"`

	gorm.Model `json:"-"`
}

func (r *PaymentReminderLog) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
