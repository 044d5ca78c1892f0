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

// SaleItemInput defines one invoice line
type SaleItemInput struct {
	ProductVariantID uuid.UUID       `json:"productVariantId" binding:"required"`
	Quantity         int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice        decimal.Decimal `json:"unitPrice" binding:"required"`
}

// CreateSaleInput defines the expected JSON structure for creating an invoice
type CreateSaleInput struct {
	CustomerID        uuid.UUID       `json:"customerId" binding:"required"`
	StorageLocationID uuid.UUID       `json:"storageLocationId" binding:"required"`
	SaleDate          *time.Time      `json:"saleDate"`
	Items             []SaleItemInput `json:"items" binding:"required,min=1,dive"`
	Notes             string          `json:"notes"`
}

// CreditNoteItemInput defines one returned line of a credit note
type CreditNoteItemInput struct {
	SaleItemID     uuid.UUID `json:"saleItemId" binding:"required"`
	ReturnQuantity int       `json:"returnQuantity" binding:"required,gt=0"`
}

// CreateCreditNoteInput defines the expected JSON structure for creating a credit note
type CreateCreditNoteInput struct {
	OriginalSaleID uuid.UUID             `json:"originalSaleId" binding:"required"`
	SaleDate       *time.Time            `json:"saleDate"`
	Items          []CreditNoteItemInput `json:"items" binding:"required,min=1,dive"`
	Notes          string                `json:"notes"`
}

// SalePaymentInput defines the expected JSON structure for recording a sale payment
type SalePaymentInput struct {
	SaleID          uuid.UUID       `json:"saleId" binding:"required"`
	PaymentDate     *time.Time      `json:"paymentDate"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod   string          `json:"paymentMethod" binding:"required,oneof=cash mpesa bank card"`
	ReferenceNumber string          `json:"referenceNumber"`
	Notes           string          `json:"notes"`
}

// CreateSale creates an invoice
func CreateSale(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	var input CreateSaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	saleDate := time.Now()
	if input.SaleDate != nil {
		saleDate = *input.SaleDate
	}

	items := make([]services.SaleLineInput, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, services.SaleLineInput{
			ProductVariantID: item.ProductVariantID,
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice,
		})
	}

	sale, err := services.CreateSale(companyUUID, currentUserID(c), services.CreateSaleInput{
		CustomerID:        input.CustomerID,
		StorageLocationID: input.StorageLocationID,
		SaleDate:          saleDate,
		Items:             items,
		Notes:             input.Notes,
	})
	if err != nil {
		RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

// CreateCreditNote creates a credit note against an existing invoice
func CreateCreditNote(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	var input CreateCreditNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	saleDate := time.Now()
	if input.SaleDate != nil {
		saleDate = *input.SaleDate
	}

	items := make([]services.CreditNoteLineInput, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, services.CreditNoteLineInput{
			SaleItemID:     item.SaleItemID,
			ReturnQuantity: item.ReturnQuantity,
		})
	}

	creditNote, err := services.CreateCreditNote(companyUUID, currentUserID(c), services.CreateCreditNoteInput{
		OriginalSaleID: input.OriginalSaleID,
		SaleDate:       saleDate,
		Items:          items,
		Notes:          input.Notes,
	})
	if err != nil {
		RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, creditNote)
}

// GetSales lists sales, newest first
func GetSales(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	query := config.DB.Where("company_id = ?", companyUUID).
		Preload("Customer").Preload("StorageLocation")

	if saleType := c.Query("sale_type"); saleType != "" {
		query = query.Where("sale_type = ?", saleType)
	}
	if paymentStatus := c.Query("payment_status"); paymentStatus != "" {
		query = query.Where("payment_status = ?", paymentStatus)
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("sale_date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("sale_date <= ?", to)
	}

	var sales []models.Sale
	if err := query.Order("sale_date DESC, created_at DESC").Find(&sales).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve sales")
		return
	}

	c.JSON(http.StatusOK, sales)
}

// GetSale retrieves one sale with its lines and payments
func GetSale(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}
	saleUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var sale models.Sale
	if err := config.DB.Where("company_id = ? AND id = ?", companyUUID, saleUUID).
		Preload("Customer").Preload("StorageLocation").
		Preload("Items").Preload("Items.ProductVariant").Preload("Payments").
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Sale not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, sale)
}

// RecordSalePayment applies a payment against a sale
func RecordSalePayment(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	var input SalePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	paymentDate := time.Now()
	if input.PaymentDate != nil {
		paymentDate = *input.PaymentDate
	}

	payment, sale, err := services.RecordSalePayment(companyUUID, currentUserID(c), input.SaleID, services.PaymentInput{
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

	c.JSON(http.StatusCreated, gin.H{"payment": payment, "sale": sale})
}

// GetSalePayments lists the payments applied to one sale
func GetSalePayments(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}
	saleUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var sale models.Sale
	if err := config.DB.Where("company_id = ? AND id = ?", companyUUID, saleUUID).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Sale not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var payments []models.SalePayment
	if err := config.DB.Where("sale_id = ?", saleUUID).
		Order("payment_date, created_at").Find(&payments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}

	c.JSON(http.StatusOK, payments)
}
