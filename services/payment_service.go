// services/payment_service.go
package services

import (
	"errors"
	"time"

	"dukahub-backend/config"
	"dukahub-backend/models"
	"dukahub-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DerivePaymentStatus is the single source of truth for the payment state
// machine: unpaid -> partial -> paid, derived purely from the amounts.
func DerivePaymentStatus(amountPaid, amountDue decimal.Decimal) string {
	if amountDue.LessThanOrEqual(decimal.Zero) {
		return models.PaymentStatusPaid
	}
	if amountPaid.GreaterThan(decimal.Zero) {
		return models.PaymentStatusPartial
	}
	return models.PaymentStatusUnpaid
}

// ValidatePaymentMethod enforces the reference-number rule: electronic
// methods require one, cash forbids it.
func ValidatePaymentMethod(method, referenceNumber string) error {
	switch method {
	case models.PaymentMethodMpesa, models.PaymentMethodBank, models.PaymentMethodCard:
		if referenceNumber == "" {
			return NewError(KindValidationError, "Reference number is required for "+method+" payments")
		}
	case models.PaymentMethodCash:
		if referenceNumber != "" {
			return NewError(KindValidationError, "Reference number should not be provided for cash payments")
		}
	default:
		return NewError(KindValidationError, "Unknown payment method: "+method)
	}
	return nil
}

type PaymentInput struct {
	PaymentDate     time.Time
	Amount          decimal.Decimal
	PaymentMethod   string
	ReferenceNumber string
	Notes           string
}

// RecordSalePayment appends a payment against a sale, recomputes the sale's
// amounts and status, and decrements the customer's running balance. A
// payment exceeding the amount due is rejected before any write.
func RecordSalePayment(companyID uuid.UUID, userID *uuid.UUID, saleID uuid.UUID, input PaymentInput) (*models.SalePayment, *models.Sale, error) {
	if !input.Amount.GreaterThan(decimal.Zero) {
		return nil, nil, NewError(KindValidationError, "Payment amount must be positive")
	}
	if err := ValidatePaymentMethod(input.PaymentMethod, input.ReferenceNumber); err != nil {
		return nil, nil, err
	}

	var payment *models.SalePayment
	var sale models.Sale
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("company_id = ? AND id = ?", companyID, saleID).
			First(&sale).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewError(KindNotFound, "Sale not found")
			}
			return err
		}

		if input.Amount.GreaterThan(sale.AmountDue) {
			currency := companyCurrency(tx, companyID)
			return NewError(KindExceedsAmountDue,
				"Payment amount ("+utils.FormatMoney(currency, input.Amount)+
					") exceeds amount due ("+utils.FormatMoney(currency, sale.AmountDue)+")")
		}

		payment = &models.SalePayment{
			SaleID:          saleID,
			PaymentDate:     input.PaymentDate,
			Amount:          input.Amount,
			PaymentMethod:   input.PaymentMethod,
			ReferenceNumber: input.ReferenceNumber,
			Notes:           input.Notes,
			CreatedBy:       userID,
		}
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		sale.AmountPaid = sale.AmountPaid.Add(input.Amount)
		sale.AmountDue = sale.AmountDue.Sub(input.Amount)
		sale.PaymentStatus = DerivePaymentStatus(sale.AmountPaid, sale.AmountDue)
		if err := tx.Model(&sale).Updates(map[string]interface{}{
			"amount_paid":    sale.AmountPaid,
			"amount_due":     sale.AmountDue,
			"payment_status": sale.PaymentStatus,
		}).Error; err != nil {
			return err
		}

		var customer models.Customer
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&customer, "id = ?", sale.CustomerID).Error; err != nil {
			return err
		}
		return tx.Model(&customer).
			Update("current_balance", customer.CurrentBalance.Sub(input.Amount)).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return payment, &sale, nil
}

// RecordExpensePayment is the expense-side allocator. Expenses never touch
// customer balances.
func RecordExpensePayment(companyID uuid.UUID, userID *uuid.UUID, expenseID uuid.UUID, input PaymentInput) (*models.ExpensePayment, *models.Expense, error) {
	if !input.Amount.GreaterThan(decimal.Zero) {
		return nil, nil, NewError(KindValidationError, "Payment amount must be positive")
	}
	if err := ValidatePaymentMethod(input.PaymentMethod, input.ReferenceNumber); err != nil {
		return nil, nil, err
	}

	var payment *models.ExpensePayment
	var expense models.Expense
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("company_id = ? AND id = ?", companyID, expenseID).
			First(&expense).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewError(KindNotFound, "Expense not found")
			}
			return err
		}

		if input.Amount.GreaterThan(expense.AmountDue) {
			currency := companyCurrency(tx, companyID)
			return NewError(KindExceedsAmountDue,
				"Payment amount ("+utils.FormatMoney(currency, input.Amount)+
					") exceeds amount due ("+utils.FormatMoney(currency, expense.AmountDue)+")")
		}

		payment = &models.ExpensePayment{
			CompanyID:       companyID,
			ExpenseID:       expenseID,
			PaymentDate:     input.PaymentDate,
			Amount:          input.Amount,
			PaymentMethod:   input.PaymentMethod,
			ReferenceNumber: input.ReferenceNumber,
			Notes:           input.Notes,
			CreatedBy:       userID,
		}
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		expense.AmountPaid = expense.AmountPaid.Add(input.Amount)
		expense.AmountDue = expense.AmountDue.Sub(input.Amount)
		expense.PaymentStatus = DerivePaymentStatus(expense.AmountPaid, expense.AmountDue)
		return tx.Model(&expense).Updates(map[string]interface{}{
			"amount_paid":    expense.AmountPaid,
			"amount_due":     expense.AmountDue,
			"payment_status": expense.PaymentStatus,
		}).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return payment, &expense, nil
}
