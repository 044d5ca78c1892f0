// services/sales_service.go
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
	"gorm.io/gorm/clause"
)

var saleNumberPrefixes = map[string]string{
	models.SaleTypeInvoice:    "INV",
	models.SaleTypeCreditNote: "CN",
}

// nextSaleNumber issues the next sequential number for (company, sale type)
// from a dedicated counter row locked for the transaction. Numbers are
// monotonic and never reused — deriving them from row counts would recycle
// numbers after deletions.
func nextSaleNumber(tx *gorm.DB, companyID uuid.UUID, saleType string) (string, error) {
	// Seed the counter row on first use. ON CONFLICT DO NOTHING keeps a
	// concurrent first sale from aborting the transaction; both writers then
	// serialize on the locked read below.
	seed := models.SaleCounter{CompanyID: companyID, SaleType: saleType, NextValue: 1}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return "", err
	}

	var counter models.SaleCounter
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("company_id = ? AND sale_type = ?", companyID, saleType).
		First(&counter).Error; err != nil {
		return "", err
	}

	value := counter.NextValue
	if err := tx.Model(&counter).Update("next_value", value+1).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%06d", saleNumberPrefixes[saleType], value), nil
}

type SaleLineInput struct {
	ProductVariantID uuid.UUID
	Quantity         int
	UnitPrice        decimal.Decimal
}

type CreateSaleInput struct {
	CustomerID        uuid.UUID
	StorageLocationID uuid.UUID
	SaleDate          time.Time
	Items             []SaleLineInput
	Notes             string
}

// ComputeSaleTotals derives the fixed header amounts from the line inputs and
// the tier discount percentage.
func ComputeSaleTotals(items []SaleLineInput, discountPercentage decimal.Decimal) (subtotal, discountAmount, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	discountAmount = subtotal.Mul(discountPercentage).Div(decimal.NewFromInt(100))
	total = subtotal.Sub(discountAmount)
	return
}

func companyCurrency(tx *gorm.DB, companyID uuid.UUID) string {
	var company models.Company
	if err := tx.Select("currency").First(&company, "id = ?", companyID).Error; err != nil || company.Currency == "" {
		return "KES"
	}
	return company.Currency
}

// tierDiscount returns the customer's current tier discount, zero when the
// customer has no tier.
func tierDiscount(tx *gorm.DB, customer *models.Customer) (decimal.Decimal, error) {
	if customer.CustomerTierID == nil {
		return decimal.Zero, nil
	}
	var tier models.CustomerTier
	err := tx.First(&tier, "id = ?", *customer.CustomerTierID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return tier.DiscountPercentage, nil
}

// CreateSale creates an invoice: stock check, tier discount, credit limit,
// sequential number, sale + items, stock decrement, balance increment — all in
// one transaction so a failure leaves nothing behind.
func CreateSale(companyID uuid.UUID, userID *uuid.UUID, input CreateSaleInput) (*models.Sale, error) {
	var sale *models.Sale
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("company_id = ? AND id = ?", companyID, input.CustomerID).
			First(&customer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewError(KindNotFound, "Customer not found")
			}
			return err
		}

		discount, err := tierDiscount(tx, &customer)
		if err != nil {
			return err
		}

		var location models.StorageLocation
		if err := tx.Where("company_id = ? AND id = ?", companyID, input.StorageLocationID).
			First(&location).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewError(KindNotFound, "Storage location not found")
			}
			return err
		}

		// Availability is checked up front so the error names the variant;
		// the ledger re-checks under lock when the deltas are applied.
		for _, item := range input.Items {
			if item.Quantity <= 0 {
				continue
			}
			var invItem models.InventoryItem
			err := tx.Where("company_id = ? AND product_variant_id = ? AND storage_location_id = ?",
				companyID, item.ProductVariantID, input.StorageLocationID).
				First(&invItem).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if errors.Is(err, gorm.ErrRecordNotFound) || invItem.Quantity < item.Quantity {
				var variant models.ProductVariant
				name := "Product"
				if err := tx.Select("variant_name").First(&variant, "id = ?", item.ProductVariantID).Error; err == nil {
					name = variant.VariantName
				}
				return NewError(KindInsufficientStock, "Insufficient stock for "+name)
			}
		}

		subtotal, discountAmount, total := ComputeSaleTotals(input.Items, discount)

		if customer.CustomerType != models.CustomerTypeWalkIn {
			newBalance := customer.CurrentBalance.Add(total)
			if newBalance.GreaterThan(customer.CreditLimit) {
				available := customer.CreditLimit.Sub(customer.CurrentBalance)
				return NewError(KindCreditLimitExceeded,
					"Credit limit exceeded. Available credit: "+
						utils.FormatMoney(companyCurrency(tx, companyID), available))
			}
		}

		saleNumber, err := nextSaleNumber(tx, companyID, models.SaleTypeInvoice)
		if err != nil {
			return err
		}

		sale = &models.Sale{
			CompanyID:          companyID,
			CustomerID:         input.CustomerID,
			SaleNumber:         saleNumber,
			SaleType:           models.SaleTypeInvoice,
			SaleDate:           input.SaleDate,
			StorageLocationID:  input.StorageLocationID,
			Subtotal:           subtotal,
			DiscountPercentage: discount,
			DiscountAmount:     discountAmount,
			TotalAmount:        total,
			PaymentStatus:      models.PaymentStatusUnpaid,
			AmountPaid:         decimal.Zero,
			AmountDue:          total,
			Notes:              input.Notes,
			CreatedBy:          userID,
		}
		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		for _, item := range input.Items {
			gross := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			itemDiscount := gross.Mul(discount).Div(decimal.NewFromInt(100))
			saleItem := models.SaleItem{
				SaleID:             sale.ID,
				ProductVariantID:   item.ProductVariantID,
				Quantity:           item.Quantity,
				UnitPrice:          item.UnitPrice,
				DiscountPercentage: discount,
				DiscountAmount:     itemDiscount,
				LineTotal:          gross.Sub(itemDiscount),
			}
			if err := tx.Create(&saleItem).Error; err != nil {
				return err
			}

			if err := applyStockDelta(tx, companyID, item.ProductVariantID, input.StorageLocationID, -item.Quantity); err != nil {
				return err
			}

			saleRef := sale.ID
			movement := models.InventoryTransaction{
				CompanyID:        companyID,
				ProductVariantID: item.ProductVariantID,
				TransactionType:  models.TransactionTypeOut,
				Quantity:         item.Quantity,
				FromLocationID:   &input.StorageLocationID,
				ReferenceType:    models.ReferenceTypeSale,
				ReferenceID:      &saleRef,
				Notes:            "Sale " + saleNumber,
				PaymentStatus:    models.PaymentStatusUnpaid,
				CreatedBy:        userID,
			}
			if err := tx.Create(&movement).Error; err != nil {
				return err
			}
		}

		newBalance := customer.CurrentBalance.Add(total)
		return tx.Model(&customer).Update("current_balance", newBalance).Error
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

type CreditNoteLineInput struct {
	SaleItemID     uuid.UUID
	ReturnQuantity int
}

type CreateCreditNoteInput struct {
	OriginalSaleID uuid.UUID
	SaleDate       time.Time
	Items          []CreditNoteLineInput
	Notes          string
}

// CreateCreditNote reverses part of an invoice: negative amounts, restock at
// the original sale's location, and a balance decrease by the discounted
// value of the returned units. The discount applied is the customer's
// *current* tier discount, not the original sale's percentage.
func CreateCreditNote(companyID uuid.UUID, userID *uuid.UUID, input CreateCreditNoteInput) (*models.Sale, error) {
	var creditNote *models.Sale
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var original models.Sale
		if err := tx.Where("company_id = ? AND id = ?", companyID, input.OriginalSaleID).
			First(&original).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewError(KindNotFound, "Original sale not found")
			}
			return err
		}

		if original.SaleType != models.SaleTypeInvoice {
			return NewError(KindInvalidOperation, "Can only create credit notes for invoices")
		}

		var customer models.Customer
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("company_id = ? AND id = ?", companyID, original.CustomerID).
			First(&customer).Error; err != nil {
			return err
		}

		discount, err := tierDiscount(tx, &customer)
		if err != nil {
			return err
		}

		var originalItems []models.SaleItem
		if err := tx.Where("sale_id = ?", input.OriginalSaleID).Find(&originalItems).Error; err != nil {
			return err
		}
		itemsByID := make(map[uuid.UUID]models.SaleItem, len(originalItems))
		for _, item := range originalItems {
			itemsByID[item.ID] = item
		}

		subtotal := decimal.Zero
		type returnLine struct {
			variantID uuid.UUID
			quantity  int
			unitPrice decimal.Decimal
		}
		var lines []returnLine
		for _, ret := range input.Items {
			originalItem, ok := itemsByID[ret.SaleItemID]
			if !ok {
				return NewError(KindNotFound,
					fmt.Sprintf("Sale item %s not found in original sale", ret.SaleItemID))
			}
			if ret.ReturnQuantity > originalItem.Quantity {
				return NewError(KindInvalidQuantity,
					fmt.Sprintf("Return quantity (%d) exceeds original quantity (%d)",
						ret.ReturnQuantity, originalItem.Quantity))
			}
			subtotal = subtotal.Sub(originalItem.UnitPrice.Mul(decimal.NewFromInt(int64(ret.ReturnQuantity))))
			lines = append(lines, returnLine{
				variantID: originalItem.ProductVariantID,
				quantity:  -ret.ReturnQuantity,
				unitPrice: originalItem.UnitPrice,
			})
		}

		discountAmount := subtotal.Mul(discount).Div(decimal.NewFromInt(100))
		total := subtotal.Sub(discountAmount)

		saleNumber, err := nextSaleNumber(tx, companyID, models.SaleTypeCreditNote)
		if err != nil {
			return err
		}

		originalID := input.OriginalSaleID
		creditNote = &models.Sale{
			CompanyID:          companyID,
			CustomerID:         original.CustomerID,
			SaleNumber:         saleNumber,
			SaleType:           models.SaleTypeCreditNote,
			OriginalSaleID:     &originalID,
			SaleDate:           input.SaleDate,
			StorageLocationID:  original.StorageLocationID,
			Subtotal:           subtotal,
			DiscountPercentage: discount,
			DiscountAmount:     discountAmount,
			TotalAmount:        total,
			PaymentStatus:      models.PaymentStatusUnpaid,
			AmountPaid:         decimal.Zero,
			AmountDue:          total,
			Notes:              input.Notes,
			CreatedBy:          userID,
		}
		if err := tx.Create(creditNote).Error; err != nil {
			return err
		}

		for _, line := range lines {
			gross := line.unitPrice.Mul(decimal.NewFromInt(int64(line.quantity)))
			lineDiscount := gross.Mul(discount).Div(decimal.NewFromInt(100))
			saleItem := models.SaleItem{
				SaleID:             creditNote.ID,
				ProductVariantID:   line.variantID,
				Quantity:           line.quantity,
				UnitPrice:          line.unitPrice,
				DiscountPercentage: discount,
				DiscountAmount:     lineDiscount,
				LineTotal:          gross.Sub(lineDiscount),
			}
			if err := tx.Create(&saleItem).Error; err != nil {
				return err
			}

			if err := applyStockDelta(tx, companyID, line.variantID, original.StorageLocationID, -line.quantity); err != nil {
				return err
			}

			saleRef := creditNote.ID
			movement := models.InventoryTransaction{
				CompanyID:        companyID,
				ProductVariantID: line.variantID,
				TransactionType:  models.TransactionTypeIn,
				Quantity:         -line.quantity,
				ToLocationID:     &original.StorageLocationID,
				ReferenceType:    models.ReferenceTypeSale,
				ReferenceID:      &saleRef,
				Notes:            "Return from " + saleNumber,
				PaymentStatus:    models.PaymentStatusUnpaid,
				CreatedBy:        userID,
			}
			if err := tx.Create(&movement).Error; err != nil {
				return err
			}
		}

		newBalance := customer.CurrentBalance.Add(total)
		return tx.Model(&customer).Update("current_balance", newBalance).Error
	})
	if err != nil {
		return nil, err
	}
	return creditNote, nil
}
