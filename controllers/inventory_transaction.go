package controllers

import (
	"net/http"

	"dukahub-backend/config"
	"dukahub-backend/models"
	"dukahub-backend/services"
	"dukahub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInventoryTransactionInput defines the expected JSON structure for a stock movement
type CreateInventoryTransactionInput struct {
	ProductVariantID uuid.UUID        `json:"productVariantId" binding:"required"`
	TransactionType  string           `json:"transactionType" binding:"required,oneof=in out transfer adjustment"`
	Quantity         int              `json:"quantity" binding:"required"`
	FromLocationID   *uuid.UUID       `json:"fromLocationId"`
	ToLocationID     *uuid.UUID       `json:"toLocationId"`
	ReferenceType    string           `json:"referenceType"`
	ReferenceID      *uuid.UUID       `json:"referenceId"`
	Notes            string           `json:"notes"`
	SupplierID       *uuid.UUID       `json:"supplierId"`
	UnitCost         *decimal.Decimal `json:"unitCost"`
	PaymentStatus    string           `json:"paymentStatus"`
	AmountPaid       *decimal.Decimal `json:"amountPaid"`
}

// AdjustStockInput defines the expected JSON structure for a signed stock adjustment
type AdjustStockInput struct {
	ProductVariantID  uuid.UUID `json:"productVariantId" binding:"required"`
	StorageLocationID uuid.UUID `json:"storageLocationId" binding:"required"`
	QuantityChange    int       `json:"quantityChange" binding:"required"`
	Notes             string    `json:"notes"`
}

// CreateInventoryTransaction records a stock movement
func CreateInventoryTransaction(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	var input CreateInventoryTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	txn, err := services.RecordTransaction(companyUUID, currentUserID(c), services.RecordTransactionInput{
		ProductVariantID: input.ProductVariantID,
		TransactionType:  input.TransactionType,
		Quantity:         input.Quantity,
		FromLocationID:   input.FromLocationID,
		ToLocationID:     input.ToLocationID,
		ReferenceType:    input.ReferenceType,
		ReferenceID:      input.ReferenceID,
		Notes:            input.Notes,
		SupplierID:       input.SupplierID,
		UnitCost:         input.UnitCost,
		PaymentStatus:    input.PaymentStatus,
		AmountPaid:       input.AmountPaid,
	})
	if err != nil {
		RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, txn)
}

// AdjustStock applies a signed correction to one variant at one location
func AdjustStock(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	var input AdjustStockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	txn, err := services.AdjustStock(companyUUID, currentUserID(c), services.AdjustStockInput{
		ProductVariantID:  input.ProductVariantID,
		StorageLocationID: input.StorageLocationID,
		QuantityChange:    input.QuantityChange,
		Notes:             input.Notes,
	})
	if err != nil {
		RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, txn)
}

// ReverseInventoryTransaction appends the compensating entry for a transaction
func ReverseInventoryTransaction(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}
	transactionUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reversal, err := services.ReverseTransaction(companyUUID, currentUserID(c), transactionUUID)
	if err != nil {
		RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reversal)
}

// GetInventoryTransactions lists the movement log, newest first
func GetInventoryTransactions(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	query := config.DB.Where("company_id = ?", companyUUID).
		Preload("ProductVariant").Preload("FromLocation").Preload("ToLocation").Preload("Supplier")

	if variantID := c.Query("product_variant_id"); variantID != "" {
		query = query.Where("product_variant_id = ?", variantID)
	}
	if txnType := c.Query("transaction_type"); txnType != "" {
		query = query.Where("transaction_type = ?", txnType)
	}
	if locationID := c.Query("location_id"); locationID != "" {
		query = query.Where("from_location_id = ? OR to_location_id = ?", locationID, locationID)
	}
	if supplierID := c.Query("supplier_id"); supplierID != "" {
		query = query.Where("supplier_id = ?", supplierID)
	}

	var transactions []models.InventoryTransaction
	if err := query.Order("created_at DESC").Find(&transactions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve inventory transactions")
		return
	}

	c.JSON(http.StatusOK, transactions)
}
