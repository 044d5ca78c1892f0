package controllers

import (
	"errors"
	"net/http"
	"time"

	"dukahub-backend/config"
	"dukahub-backend/models"
	"dukahub-backend/services"
	"dukahub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateExpenseInput defines the expected JSON structure for creating an expense
type CreateExpenseInput struct {
	ExpenseCategoryID    uuid.UUID       `json:"expenseCategoryId" binding:"required"`
	Title                string          `json:"title" binding:"required"`
	Description          string          `json:"description"`
	Amount               decimal.Decimal `json:"amount" binding:"required"`
	SupplierID           *uuid.UUID      `json:"supplierId"`
	SaleID               *uuid.UUID      `json:"saleId"`
	ExpenseDate          *time.Time      `json:"expenseDate"`
	Notes                string          `json:"notes"`
	IsRecurring          bool            `json:"isRecurring"`
	RecurrenceFrequency  string          `json:"recurrenceFrequency"`
	RecurrenceDayOfWeek  *int            `json:"recurrenceDayOfWeek"`
	RecurrenceDayOfMonth *int            `json:"recurrenceDayOfMonth"`
	RecurrenceEndDate    *time.Time      `json:"recurrenceEndDate"`
}

// UpdateExpenseInput defines the expected JSON structure for updating an expense
type UpdateExpenseInput struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	ExpenseDate *time.Time       `json:"expenseDate"`
	Notes       *string          `json:"notes"`
}

// ExpensePaymentInput defines the expected JSON structure for an expense payment
type ExpensePaymentInput struct {
	PaymentDate     *time.Time      `json:"paymentDate"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod   string          `json:"paymentMethod" binding:"required,oneof=cash mpesa bank card"`
	ReferenceNumber string          `json:"referenceNumber"`
	Notes           string          `json:"notes"`
}

// CreateExpense records an expense, spawning recurring children when requested
func CreateExpense(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	var input CreateExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	expenseDate := time.Now()
	if input.ExpenseDate != nil {
		expenseDate = *input.ExpenseDate
	}

	expense, err := services.CreateExpense(companyUUID, currentUserID(c), services.CreateExpenseInput{
		ExpenseCategoryID:    input.ExpenseCategoryID,
		Title:                input.Title,
		Description:          input.Description,
		Amount:               input.Amount,
		SupplierID:           input.SupplierID,
		SaleID:               input.SaleID,
		ExpenseDate:          expenseDate,
		Notes:                input.Notes,
		IsRecurring:          input.IsRecurring,
		RecurrenceFrequency:  input.RecurrenceFrequency,
		RecurrenceDayOfWeek:  input.RecurrenceDayOfWeek,
		RecurrenceDayOfMonth: input.RecurrenceDayOfMonth,
		RecurrenceEndDate:    input.RecurrenceEndDate,
	})
	if err != nil {
		RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// GetExpenses lists expenses, newest first
func GetExpenses(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	query := config.DB.Where("company_id = ?", companyUUID).
		Preload("Category").Preload("Supplier")

	if categoryID := c.Query("expense_category_id"); categoryID != "" {
		query = query.Where("expense_category_id = ?", categoryID)
	}
	if expenseType := c.Query("expense_type"); expenseType != "" {
		query = query.Where("expense_type = ?", expenseType)
	}
	if paymentStatus := c.Query("payment_status"); paymentStatus != "" {
		query = query.Where("payment_status = ?", paymentStatus)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("expense_date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("expense_date <= ?", to)
	}

	var expenses []models.Expense
	if err := query.Order("expense_date DESC, created_at DESC").Find(&expenses).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve expenses")
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// GetExpense retrieves one expense with its payments
func GetExpense(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}
	expenseUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var expense models.Expense
	if err := config.DB.Where("company_id = ? AND id = ?", companyUUID, expenseUUID).
		Preload("Category").Preload("Supplier").Preload("Sale").Preload("Payments").
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Expense not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, expense)
}

// UpdateExpense updates an expense. Changing the amount re-derives amount_due
// and payment status; an amount below what has already been paid is rejected.
// Recurring children are never touched.
func UpdateExpense(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}
	expenseUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var expense models.Expense
	if err := config.DB.Where("company_id = ? AND id = ?", companyUUID, expenseUUID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Expense not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Title != nil {
		expense.Title = *input.Title
	}
	if input.Description != nil {
		expense.Description = *input.Description
	}
	if input.Amount != nil {
		if !input.Amount.GreaterThan(decimal.Zero) {
			utils.RespondWithError(c, http.StatusBadRequest, "Amount must be positive")
			return
		}
		if input.Amount.LessThan(expense.AmountPaid) {
			utils.RespondWithError(c, http.StatusBadRequest, "Amount cannot be less than what has already been paid")
			return
		}
		expense.Amount = *input.Amount
		expense.AmountDue = input.Amount.Sub(expense.AmountPaid)
		expense.PaymentStatus = services.DerivePaymentStatus(expense.AmountPaid, expense.AmountDue)
	}
	if input.ExpenseDate != nil {
		expense.ExpenseDate = utils.BeginningOfDay(*input.ExpenseDate)
	}
	if input.Notes != nil {
		expense.Notes = *input.Notes
	}

	if err := config.DB.Save(&expense).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update expense")
		return
	}

	c.JSON(http.StatusOK, expense)
}

// RecordExpensePayment applies a payment against an expense
func RecordExpensePayment(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}
	expenseUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input ExpensePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	paymentDate := time.Now()
	if input.PaymentDate != nil {
		paymentDate = *input.PaymentDate
	}

	payment, expense, err := services.RecordExpensePayment(companyUUID, currentUserID(c), expenseUUID, services.PaymentInput{
		PaymentDate:     paymentDate,
		Amount:          input.Amount,
		PaymentMethod:   input.PaymentMethod,
		ReferenceNumber: input.ReferenceNumber,
		Notes:           input.Notes,
	})
	if err != nil {
		RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"payment": payment, "expense": expense})
}
