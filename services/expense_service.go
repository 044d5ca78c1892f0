// services/expense_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"dukahub-backend/config"
	"dukahub-backend/models"
	"dukahub-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const maxRecurringOccurrences = 12

// pythonWeekday maps Go's Sunday-based weekday to the Monday-based scheme
// stored in recurrence_day_of_week (0=Monday .. 6=Sunday).
func pythonWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// GenerateRecurringDates returns the future occurrence dates for a recurring
// expense. Generation stops at the recurrence end date, 365 days past the
// start date, or twelve occurrences, whichever comes first. The start date
// itself is never among the results.
func GenerateRecurringDates(startDate time.Time, frequency string, dayOfWeek, dayOfMonth *int, endDate *time.Time) []time.Time {
	startDate = utils.BeginningOfDay(startDate)
	boundary := startDate.AddDate(0, 0, 365)
	if endDate != nil && endDate.Before(boundary) {
		boundary = utils.BeginningOfDay(*endDate)
	}

	var dates []time.Time
	switch frequency {
	case models.RecurrenceWeekly:
		if dayOfWeek == nil {
			return nil
		}
		daysAhead := *dayOfWeek - pythonWeekday(startDate)
		if daysAhead <= 0 {
			daysAhead += 7
		}
		for d := startDate.AddDate(0, 0, daysAhead); !d.After(boundary); d = d.AddDate(0, 0, 7) {
			dates = append(dates, d)
			if len(dates) >= maxRecurringOccurrences {
				break
			}
		}
	case models.RecurrenceMonthly:
		if dayOfMonth == nil {
			return nil
		}
		year, month, _ := startDate.Date()
		for i := 1; ; i++ {
			// time.Date normalizes month overflow into the next year.
			first := time.Date(year, month+time.Month(i), 1, 0, 0, 0, 0, startDate.Location())
			day := *dayOfMonth
			if last := utils.LastDayOfMonth(first.Year(), first.Month()); day > last {
				day = last
			}
			d := time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, startDate.Location())
			if d.After(boundary) {
				break
			}
			dates = append(dates, d)
			if len(dates) >= maxRecurringOccurrences {
				break
			}
		}
	}
	return dates
}

type CreateExpenseInput struct {
	ExpenseCategoryID    uuid.UUID
	Title                string
	Description          string
	Amount               decimal.Decimal
	SupplierID           *uuid.UUID
	SaleID               *uuid.UUID
	ExpenseDate          time.Time
	Notes                string
	IsRecurring          bool
	RecurrenceFrequency  string
	RecurrenceDayOfWeek  *int
	RecurrenceDayOfMonth *int
	RecurrenceEndDate    *time.Time
}

func validateRecurrence(input CreateExpenseInput) error {
	if !input.IsRecurring {
		return nil
	}
	switch input.RecurrenceFrequency {
	case models.RecurrenceWeekly:
		if input.RecurrenceDayOfWeek == nil || *input.RecurrenceDayOfWeek < 0 || *input.RecurrenceDayOfWeek > 6 {
			return NewError(KindValidationError, "recurrence_day_of_week must be between 0 (Monday) and 6 (Sunday) for weekly recurrence")
		}
	case models.RecurrenceMonthly:
		if input.RecurrenceDayOfMonth == nil || *input.RecurrenceDayOfMonth < 1 || *input.RecurrenceDayOfMonth > 31 {
			return NewError(KindValidationError, "recurrence_day_of_month must be between 1 and 31 for monthly recurrence")
		}
	case "":
		return NewError(KindValidationError, "recurrence_frequency is required for recurring expenses")
	default:
		return NewError(KindValidationError, fmt.Sprintf("Unknown recurrence frequency: %s", input.RecurrenceFrequency))
	}
	return nil
}

// CreateExpense records an expense under an active category. The expense type
// is inherited from the category; sales expenses must reference the sale they
// belong to. A recurring expense additionally spawns its future occurrences
// as independent child expenses in the same transaction.
func CreateExpense(companyID uuid.UUID, userID *uuid.UUID, input CreateExpenseInput) (*models.Expense, error) {
	if !input.Amount.GreaterThan(decimal.Zero) {
		return nil, NewError(KindValidationError, "Amount must be positive")
	}
	if err := validateRecurrence(input); err != nil {
		return nil, err
	}

	var expense *models.Expense
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var category models.ExpenseCategory
		if err := tx.Where("company_id = ? AND id = ?", companyID, input.ExpenseCategoryID).
			First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewError(KindNotFound, "Expense category not found")
			}
			return err
		}
		if !category.IsActive {
			return NewError(KindInvalidOperation, "Expense category is inactive")
		}
		if category.ExpenseType == models.ExpenseTypeSales && input.SaleID == nil {
			return NewError(KindValidationError, "sale_id is required for sales expenses")
		}

		if input.SupplierID != nil {
			var supplier models.Supplier
			if err := tx.Where("company_id = ? AND id = ?", companyID, *input.SupplierID).
				First(&supplier).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return NewError(KindNotFound, "Supplier not found")
				}
				return err
			}
		}
		if input.SaleID != nil {
			var sale models.Sale
			if err := tx.Where("company_id = ? AND id = ?", companyID, *input.SaleID).
				First(&sale).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return NewError(KindNotFound, "Sale not found")
				}
				return err
			}
		}

		expense = &models.Expense{
			CompanyID:         companyID,
			ExpenseCategoryID: category.ID,
			ExpenseType:       category.ExpenseType,
			Title:             input.Title,
			Description:       input.Description,
			Amount:            input.Amount,
			SupplierID:        input.SupplierID,
			SaleID:            input.SaleID,
			PaymentStatus:     models.PaymentStatusUnpaid,
			AmountPaid:        decimal.Zero,
			AmountDue:         input.Amount,
			ExpenseDate:       utils.BeginningOfDay(input.ExpenseDate),
			Notes:             input.Notes,
			CreatedBy:         userID,
		}
		if input.IsRecurring {
			expense.IsRecurring = true
			expense.RecurrenceFrequency = input.RecurrenceFrequency
			expense.RecurrenceDayOfWeek = input.RecurrenceDayOfWeek
			expense.RecurrenceDayOfMonth = input.RecurrenceDayOfMonth
			expense.RecurrenceEndDate = input.RecurrenceEndDate
		}
		if err := tx.Create(expense).Error; err != nil {
			return err
		}

		if input.IsRecurring {
			dates := GenerateRecurringDates(expense.ExpenseDate, input.RecurrenceFrequency,
				input.RecurrenceDayOfWeek, input.RecurrenceDayOfMonth, input.RecurrenceEndDate)
			for _, d := range dates {
				child := models.Expense{
					CompanyID:         companyID,
					ExpenseCategoryID: category.ID,
					ExpenseType:       category.ExpenseType,
					Title:             input.Title,
					Description:       input.Description,
					Amount:            input.Amount,
					SupplierID:        input.SupplierID,
					SaleID:            input.SaleID,
					PaymentStatus:     models.PaymentStatusUnpaid,
					AmountPaid:        decimal.Zero,
					AmountDue:         input.Amount,
					ExpenseDate:       d,
					Notes:             input.Notes,
					ParentExpenseID:   &expense.ID,
					CreatedBy:         userID,
				}
				if err := tx.Create(&child).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}
