// services/stock_service.go
package services

import (
	"errors"
	"fmt"

	"dukahub-backend/config"
	"dukahub-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// applyStockDelta is the single primitive through which on-hand quantities
// change. The (variant, location) row is locked for the duration of the
// caller's transaction, so concurrent mutations serialize instead of racing.
// A missing row is created lazily, but only for a non-negative delta.
func applyStockDelta(tx *gorm.DB, companyID, variantID, locationID uuid.UUID, delta int) error {
	var item models.InventoryItem
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("company_id = ? AND product_variant_id = ? AND storage_location_id = ?",
			companyID, variantID, locationID).
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if delta < 0 {
			return NewError(KindInvalidQuantity, "Cannot create negative inventory")
		}
		item = models.InventoryItem{
			CompanyID:         companyID,
			ProductVariantID:  variantID,
			StorageLocationID: locationID,
			Quantity:          delta,
		}
		return tx.Create(&item).Error
	}
	if err != nil {
		return err
	}

	newQty := item.Quantity + delta
	if newQty < 0 {
		return NewError(KindInsufficientStock, "Insufficient stock")
	}
	return tx.Model(&item).Update("quantity", newQty).Error
}

type RecordTransactionInput struct {
	ProductVariantID uuid.UUID
	TransactionType  string
	Quantity         int
	FromLocationID   *uuid.UUID
	ToLocationID     *uuid.UUID
	ReferenceType    string
	ReferenceID      *uuid.UUID
	Notes            string
	SupplierID       *uuid.UUID
	UnitCost         *decimal.Decimal
	PaymentStatus    string
	AmountPaid       *decimal.Decimal
}

// RecordTransaction validates and applies a stock movement, then appends the
// log entry. Both transfer legs run inside one transaction, so a failed second
// leg rolls the first back.
func RecordTransaction(companyID uuid.UUID, userID *uuid.UUID, input RecordTransactionInput) (*models.InventoryTransaction, error) {
	if input.Quantity <= 0 {
		return nil, NewError(KindInvalidQuantity, "Quantity must be positive")
	}

	var txn *models.InventoryTransaction
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var variant models.ProductVariant
		if err := tx.Where("company_id = ? AND id = ?", companyID, input.ProductVariantID).
			First(&variant).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewError(KindNotFound, "Product variant not found")
			}
			return err
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

		switch input.TransactionType {
		case models.TransactionTypeIn:
			if input.ToLocationID == nil {
				return NewError(KindValidationError, "to_location_id is required for stock in")
			}
			if err := applyStockDelta(tx, companyID, input.ProductVariantID, *input.ToLocationID, input.Quantity); err != nil {
				return err
			}
		case models.TransactionTypeOut:
			if input.FromLocationID == nil {
				return NewError(KindValidationError, "from_location_id is required for stock out")
			}
			if err := applyStockDelta(tx, companyID, input.ProductVariantID, *input.FromLocationID, -input.Quantity); err != nil {
				return err
			}
		case models.TransactionTypeTransfer:
			if input.FromLocationID == nil || input.ToLocationID == nil {
				return NewError(KindValidationError, "Both from_location_id and to_location_id are required for transfer")
			}
			if err := applyStockDelta(tx, companyID, input.ProductVariantID, *input.FromLocationID, -input.Quantity); err != nil {
				return err
			}
			if err := applyStockDelta(tx, companyID, input.ProductVariantID, *input.ToLocationID, input.Quantity); err != nil {
				return err
			}
		case models.TransactionTypeAdjustment:
			if input.FromLocationID == nil && input.ToLocationID == nil {
				return NewError(KindValidationError, "Either from_location_id or to_location_id is required for adjustment")
			}
			if input.FromLocationID != nil && input.ToLocationID != nil {
				return NewError(KindValidationError, "Adjustment takes exactly one of from_location_id or to_location_id")
			}
			if input.ToLocationID != nil {
				if err := applyStockDelta(tx, companyID, input.ProductVariantID, *input.ToLocationID, input.Quantity); err != nil {
					return err
				}
			} else {
				if err := applyStockDelta(tx, companyID, input.ProductVariantID, *input.FromLocationID, -input.Quantity); err != nil {
					return err
				}
			}
		default:
			return NewError(KindValidationError, "Unknown transaction type: "+input.TransactionType)
		}

		var totalCost *decimal.Decimal
		var amountDue *decimal.Decimal
		amountPaid := decimal.Zero
		if input.AmountPaid != nil {
			amountPaid = *input.AmountPaid
		}
		if input.UnitCost != nil {
			tc := input.UnitCost.Mul(decimal.NewFromInt(int64(input.Quantity)))
			totalCost = &tc
			due := tc.Sub(amountPaid)
			amountDue = &due
		}

		paymentStatus := input.PaymentStatus
		if paymentStatus == "" {
			paymentStatus = models.PaymentStatusUnpaid
		}

		txn = &models.InventoryTransaction{
			CompanyID:        companyID,
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
			TotalCost:        totalCost,
			PaymentStatus:    paymentStatus,
			AmountPaid:       amountPaid,
			AmountDue:        amountDue,
			CreatedBy:        userID,
		}
		return tx.Create(txn).Error
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// stockMove is one ledger delta of a reversal.
type stockMove struct {
	LocationID uuid.UUID
	Delta      int
}

// reversalPlan computes the compensating entry for a transaction: in and out
// swap, a transfer swaps direction, and an adjustment negates its original
// side.
func reversalPlan(original *models.InventoryTransaction) (revType string, from, to *uuid.UUID, moves []stockMove, err error) {
	qty := original.Quantity
	switch original.TransactionType {
	case models.TransactionTypeIn:
		if original.ToLocationID == nil {
			return "", nil, nil, nil, fmt.Errorf("stock-in transaction %s has no to_location", original.ID)
		}
		return models.TransactionTypeOut, original.ToLocationID, nil,
			[]stockMove{{*original.ToLocationID, -qty}}, nil
	case models.TransactionTypeOut:
		if original.FromLocationID == nil {
			return "", nil, nil, nil, fmt.Errorf("stock-out transaction %s has no from_location", original.ID)
		}
		return models.TransactionTypeIn, nil, original.FromLocationID,
			[]stockMove{{*original.FromLocationID, qty}}, nil
	case models.TransactionTypeTransfer:
		if original.FromLocationID == nil || original.ToLocationID == nil {
			return "", nil, nil, nil, fmt.Errorf("transfer transaction %s is missing a location", original.ID)
		}
		return models.TransactionTypeTransfer, original.ToLocationID, original.FromLocationID,
			[]stockMove{{*original.ToLocationID, -qty}, {*original.FromLocationID, qty}}, nil
	case models.TransactionTypeAdjustment:
		if original.ToLocationID != nil {
			return models.TransactionTypeAdjustment, original.ToLocationID, nil,
				[]stockMove{{*original.ToLocationID, -qty}}, nil
		}
		if original.FromLocationID != nil {
			return models.TransactionTypeAdjustment, nil, original.FromLocationID,
				[]stockMove{{*original.FromLocationID, qty}}, nil
		}
		return "", nil, nil, nil, fmt.Errorf("adjustment transaction %s has no location", original.ID)
	}
	return "", nil, nil, nil, fmt.Errorf("unknown transaction type %q", original.TransactionType)
}

// ReverseTransaction appends a compensating entry for the given transaction.
// A transaction can only be reversed once.
func ReverseTransaction(companyID uuid.UUID, userID *uuid.UUID, transactionID uuid.UUID) (*models.InventoryTransaction, error) {
	var reversal *models.InventoryTransaction
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var original models.InventoryTransaction
		if err := tx.Where("company_id = ? AND id = ?", companyID, transactionID).
			First(&original).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewError(KindNotFound, "Transaction not found")
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.InventoryTransaction{}).
			Where("company_id = ? AND reference_type = ? AND reference_id = ?",
				companyID, models.ReferenceTypeReversal, transactionID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return NewError(KindAlreadyReversed, "Transaction already reversed")
		}

		revType, from, to, moves, err := reversalPlan(&original)
		if err != nil {
			return err
		}

		for _, move := range moves {
			if err := applyStockDelta(tx, companyID, original.ProductVariantID, move.LocationID, move.Delta); err != nil {
				return err
			}
		}

		refID := transactionID
		reversal = &models.InventoryTransaction{
			CompanyID:        companyID,
			ProductVariantID: original.ProductVariantID,
			TransactionType:  revType,
			Quantity:         original.Quantity,
			FromLocationID:   from,
			ToLocationID:     to,
			ReferenceType:    models.ReferenceTypeReversal,
			ReferenceID:      &refID,
			Notes:            fmt.Sprintf("Reversal of transaction %s", transactionID.String()[:8]),
			PaymentStatus:    models.PaymentStatusUnpaid,
			CreatedBy:        userID,
		}
		return tx.Create(reversal).Error
	})
	if err != nil {
		return nil, err
	}
	return reversal, nil
}

type AdjustStockInput struct {
	ProductVariantID  uuid.UUID
	StorageLocationID uuid.UUID
	QuantityChange    int
	Notes             string
}

// AdjustStock applies a signed delta and records an adjustment transaction
// with the location on the side matching the sign.
func AdjustStock(companyID uuid.UUID, userID *uuid.UUID, input AdjustStockInput) (*models.InventoryTransaction, error) {
	if input.QuantityChange == 0 {
		return nil, NewError(KindValidationError, "quantity_change must not be zero")
	}

	var txn *models.InventoryTransaction
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := applyStockDelta(tx, companyID, input.ProductVariantID, input.StorageLocationID, input.QuantityChange); err != nil {
			return err
		}

		txn = &models.InventoryTransaction{
			CompanyID:        companyID,
			ProductVariantID: input.ProductVariantID,
			TransactionType:  models.TransactionTypeAdjustment,
			Notes:            input.Notes,
			PaymentStatus:    models.PaymentStatusUnpaid,
			CreatedBy:        userID,
		}
		if input.QuantityChange > 0 {
			txn.Quantity = input.QuantityChange
			txn.ToLocationID = &input.StorageLocationID
		} else {
			txn.Quantity = -input.QuantityChange
			txn.FromLocationID = &input.StorageLocationID
		}
		return tx.Create(txn).Error
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}
