package controllers

import (
	"errors"
	"net/http"

	"dukahub-backend/config"
	"dukahub-backend/models"
	"dukahub-backend/services"
	"dukahub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	CustomerType   string           `json:"customerType" binding:"required,oneof=individual business walk-in"`
	Name           string           `json:"name" binding:"required"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	Address        string           `json:"address"`
	TaxID          string           `json:"taxId"`
	PaymentTermID  *uuid.UUID       `json:"paymentTermId"`
	CustomerTierID *uuid.UUID       `json:"customerTierId"`
	CreditLimit    *decimal.Decimal `json:"creditLimit"`
	Notes          string           `json:"notes"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	Name           *string          `json:"name"`
	Email          *string          `json:"email"`
	Phone          *string          `json:"phone"`
	Address        *string          `json:"address"`
	TaxID          *string          `json:"taxId"`
	PaymentTermID  *uuid.UUID       `json:"paymentTermId"`
	CustomerTierID *uuid.UUID       `json:"customerTierId"`
	CreditLimit    *decimal.Decimal `json:"creditLimit"`
	Status         *string          `json:"status"`
	Notes          *string          `json:"notes"`
}

func tierExists(companyUUID, tierID uuid.UUID) bool {
	var tier models.CustomerTier
	return config.DB.Where("company_id = ? AND id = ?", companyUUID, tierID).
		First(&tier).Error == nil
}

func paymentTermExists(companyUUID, termID uuid.UUID) bool {
	var term models.PaymentTerm
	return config.DB.Where("company_id = ? AND id = ?", companyUUID, termID).
		First(&term).Error == nil
}

// CreateCustomer creates a new customer for the company
func CreateCustomer(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}
	if input.CustomerTierID != nil && !tierExists(companyUUID, *input.CustomerTierID) {
		utils.RespondWithError(c, http.StatusNotFound, "Customer tier not found")
		return
	}
	if input.PaymentTermID != nil && !paymentTermExists(companyUUID, *input.PaymentTermID) {
		utils.RespondWithError(c, http.StatusNotFound, "Payment term not found")
		return
	}

	customer := models.Customer{
		CompanyID:      companyUUID,
		CustomerType:   input.CustomerType,
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		Address:        input.Address,
		TaxID:          input.TaxID,
		PaymentTermID:  input.PaymentTermID,
		CustomerTierID: input.CustomerTierID,
		Status:         models.CustomerStatusActive,
		Notes:          input.Notes,
	}
	if input.CreditLimit != nil {
		if input.CreditLimit.IsNegative() {
			utils.RespondWithError(c, http.StatusBadRequest, "Credit limit cannot be negative")
			return
		}
		customer.CreditLimit = *input.CreditLimit
	}

	if err := config.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers retrieves all customers for the company
func GetCustomers(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	query := config.DB.Where("company_id = ?", companyUUID).
		Preload("PaymentTerm").Preload("CustomerTier")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if customerType := c.Query("customer_type"); customerType != "" {
		query = query.Where("customer_type = ?", customerType)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var customers []models.Customer
	if err := query.Order("name").Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves a specific customer by ID
func GetCustomer(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}
	customerUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var customer models.Customer
	if err := config.DB.Where("company_id = ? AND id = ?", companyUUID, customerUUID).
		Preload("PaymentTerm").Preload("CustomerTier").
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer updates an existing customer
func UpdateCustomer(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}
	customerUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := config.DB.Where("company_id = ? AND id = ?", companyUUID, customerUUID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		customer.Phone = *input.Phone
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.TaxID != nil {
		customer.TaxID = *input.TaxID
	}
	if input.PaymentTermID != nil {
		if !paymentTermExists(companyUUID, *input.PaymentTermID) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment term not found")
			return
		}
		customer.PaymentTermID = input.PaymentTermID
	}
	if input.CustomerTierID != nil {
		if !tierExists(companyUUID, *input.CustomerTierID) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer tier not found")
			return
		}
		customer.CustomerTierID = input.CustomerTierID
	}
	if input.CreditLimit != nil {
		if input.CreditLimit.IsNegative() {
			utils.RespondWithError(c, http.StatusBadRequest, "Credit limit cannot be negative")
			return
		}
		customer.CreditLimit = *input.CreditLimit
	}
	if input.Status != nil {
		switch *input.Status {
		case models.CustomerStatusActive, models.CustomerStatusInactive, models.CustomerStatusSuspended:
			customer.Status = *input.Status
		default:
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer status")
			return
		}
	}
	if input.Notes != nil {
		customer.Notes = *input.Notes
	}

	if err := config.DB.Save(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeactivateCustomer flips the customer to inactive. Customers with an
// outstanding balance cannot be deactivated.
func DeactivateCustomer(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}
	customerUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var customer models.Customer
	if err := config.DB.Where("company_id = ? AND id = ?", companyUUID, customerUUID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !customer.CurrentBalance.IsZero() {
		utils.RespondWithError(c, http.StatusConflict, "Cannot deactivate a customer with an outstanding balance")
		return
	}

	if err := config.DB.Model(&customer).Update("status", models.CustomerStatusInactive).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to deactivate customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deactivated successfully"})
}

// GetCustomerBalance returns the customer's running balance and available credit.
func GetCustomerBalance(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}
	customerUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var customer models.Customer
	if err := config.DB.Where("company_id = ? AND id = ?", companyUUID, customerUUID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customerId":      customer.ID,
		"creditLimit":     customer.CreditLimit,
		"currentBalance":  customer.CurrentBalance,
		"availableCredit": customer.CreditLimit.Sub(customer.CurrentBalance),
	})
}

// CheckCreditInput defines the expected JSON structure for a credit check
type CheckCreditInput struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// CheckCredit reports whether a prospective sale amount fits within the
// customer's remaining credit. Walk-in customers always pass.
func CheckCredit(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}
	customerUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input CheckCreditInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := config.DB.Where("company_id = ? AND id = ?", companyUUID, customerUUID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	allowed := true
	available := customer.CreditLimit.Sub(customer.CurrentBalance)
	if customer.CustomerType != models.CustomerTypeWalkIn {
		allowed = !customer.CurrentBalance.Add(input.Amount).GreaterThan(customer.CreditLimit)
	}

	c.JSON(http.StatusOK, gin.H{
		"allowed":         allowed,
		"availableCredit": available,
	})
}

// RecomputeCustomerBalance re-derives the balance from the sales ledger and
// corrects any drift in the stored value.
func RecomputeCustomerBalance(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}
	customerUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	report, err := services.RecomputeCustomerBalance(companyUUID, customerUUID, true)
	if err != nil {
		RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
