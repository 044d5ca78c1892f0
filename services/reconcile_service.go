// services/reconcile_service.go
package services

import (
	"errors"

	"dukahub-backend/config"
	"dukahub-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BalanceReport compares a customer's stored running balance against the
// balance derived from their sales ledger.
type BalanceReport struct {
	CustomerID     uuid.UUID       `json:"customerId"`
	StoredBalance  decimal.Decimal `json:"storedBalance"`
	DerivedBalance decimal.Decimal `json:"derivedBalance"`
	Drift          decimal.Decimal `json:"drift"`
	Corrected      bool            `json:"corrected"`
}

// RecomputeCustomerBalance re-derives the balance from the sum of outstanding
// amounts across the customer's sales and credit notes. With apply set, the
// stored balance is overwritten with the derived value.
func RecomputeCustomerBalance(companyID, customerID uuid.UUID, apply bool) (*BalanceReport, error) {
	var report BalanceReport
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("company_id = ? AND id = ?", companyID, customerID).
			First(&customer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewError(KindNotFound, "Customer not found")
			}
			return err
		}

		var derived decimal.Decimal
		row := tx.Model(&models.Sale{}).
			Where("company_id = ? AND customer_id = ?", companyID, customerID).
			Select("COALESCE(SUM(amount_due), 0)").Row()
		if err := row.Scan(&derived); err != nil {
			return err
		}

		report = BalanceReport{
			CustomerID:     customerID,
			StoredBalance:  customer.CurrentBalance,
			DerivedBalance: derived,
			Drift:          customer.CurrentBalance.Sub(derived),
		}
		if apply && !report.Drift.IsZero() {
			if err := tx.Model(&customer).Update("current_balance", derived).Error; err != nil {
				return err
			}
			report.Corrected = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}
