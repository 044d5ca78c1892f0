package services

import (
	"os"
	"testing"
	"time"

	"dukahub-backend/config"
	"dukahub-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Integration tests run against a real Postgres (DB_URL) and are skipped
// unless INTEGRATION_TESTS is set.

type fixture struct {
	company  models.Company
	customer models.Customer
	walkIn   models.Customer
	location models.StorageLocation
	variant  models.ProductVariant
}

func setupIntegration(t *testing.T) *fixture {
	t.Helper()
	if os.Getenv("INTEGRATION_TESTS") == "" {
		t.Skip("set INTEGRATION_TESTS to run integration tests")
	}
	if config.DB == nil {
		config.ConnectDB()
		if err := config.DB.AutoMigrate(
			&models.Company{}, &models.Customer{}, &models.CustomerTier{},
			&models.PaymentTerm{}, &models.Supplier{},
			&models.ProductCategory{}, &models.Product{}, &models.ProductVariant{},
			&models.StorageLocation{}, &models.InventoryItem{}, &models.InventoryTransaction{},
			&models.Sale{}, &models.SaleItem{}, &models.SalePayment{}, &models.SaleCounter{},
			&models.ExpenseCategory{}, &models.Expense{}, &models.ExpensePayment{},
		); err != nil {
			t.Fatalf("migrate: %v", err)
		}
	}

	f := &fixture{}
	f.company = models.Company{Name: "Test Duka " + uuid.NewString()[:8], Currency: "KES"}
	if err := config.DB.Create(&f.company).Error; err != nil {
		t.Fatalf("create company: %v", err)
	}

	f.customer = models.Customer{
		CompanyID:    f.company.ID,
		CustomerType: models.CustomerTypeBusiness,
		Name:         "Mama Njeri Shop",
		CreditLimit:  decimal.NewFromInt(10000),
		Status:       models.CustomerStatusActive,
	}
	if err := config.DB.Create(&f.customer).Error; err != nil {
		t.Fatalf("create customer: %v", err)
	}

	f.walkIn = models.Customer{
		CompanyID:    f.company.ID,
		CustomerType: models.CustomerTypeWalkIn,
		Name:         "Walk-in",
		Status:       models.CustomerStatusActive,
	}
	if err := config.DB.Create(&f.walkIn).Error; err != nil {
		t.Fatalf("create walk-in: %v", err)
	}

	f.location = models.StorageLocation{
		CompanyID:    f.company.ID,
		Name:         "Main Shop " + uuid.NewString()[:8],
		LocationType: models.LocationTypeShop,
		IsActive:     true,
	}
	if err := config.DB.Create(&f.location).Error; err != nil {
		t.Fatalf("create location: %v", err)
	}

	category := models.ProductCategory{CompanyID: f.company.ID, Name: "Beverages " + uuid.NewString()[:8], IsActive: true}
	if err := config.DB.Create(&category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	product := models.Product{CompanyID: f.company.ID, CategoryID: category.ID, Name: "Soda", IsActive: true}
	if err := config.DB.Create(&product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	selling := decimal.NewFromInt(100)
	f.variant = models.ProductVariant{
		CompanyID:    f.company.ID,
		ProductID:    product.ID,
		VariantName:  "500ml",
		SellingPrice: &selling,
		IsActive:     true,
	}
	if err := config.DB.Create(&f.variant).Error; err != nil {
		t.Fatalf("create variant: %v", err)
	}

	return f
}

func (f *fixture) stockIn(t *testing.T, qty int) {
	t.Helper()
	_, err := RecordTransaction(f.company.ID, nil, RecordTransactionInput{
		ProductVariantID: f.variant.ID,
		TransactionType:  models.TransactionTypeIn,
		Quantity:         qty,
		ToLocationID:     &f.location.ID,
	})
	if err != nil {
		t.Fatalf("stock in: %v", err)
	}
}

func (f *fixture) onHand(t *testing.T) int {
	t.Helper()
	var item models.InventoryItem
	err := config.DB.Where("company_id = ? AND product_variant_id = ? AND storage_location_id = ?",
		f.company.ID, f.variant.ID, f.location.ID).First(&item).Error
	if err != nil {
		return 0
	}
	return item.Quantity
}

func TestIntegrationSaleLifecycle(t *testing.T) {
	f := setupIntegration(t)
	f.stockIn(t, 50)

	sale, err := CreateSale(f.company.ID, nil, CreateSaleInput{
		CustomerID:        f.customer.ID,
		StorageLocationID: f.location.ID,
		SaleDate:          time.Now(),
		Items: []SaleLineInput{
			{ProductVariantID: f.variant.ID, Quantity: 5, UnitPrice: decimal.NewFromInt(100)},
		},
	})
	if err != nil {
		t.Fatalf("create sale: %v", err)
	}
	if sale.SaleNumber != "INV-000001" {
		t.Errorf("sale number = %q, want INV-000001", sale.SaleNumber)
	}
	if !sale.TotalAmount.Equal(decimal.NewFromInt(500)) {
		t.Errorf("total = %s, want 500", sale.TotalAmount)
	}
	if got := f.onHand(t); got != 45 {
		t.Errorf("on hand = %d, want 45", got)
	}

	var customer models.Customer
	config.DB.First(&customer, "id = ?", f.customer.ID)
	if !customer.CurrentBalance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("balance = %s, want 500", customer.CurrentBalance)
	}

	// Partial payment, then settle.
	_, updated, err := RecordSalePayment(f.company.ID, nil, sale.ID, PaymentInput{
		PaymentDate:   time.Now(),
		Amount:        decimal.NewFromInt(200),
		PaymentMethod: models.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("payment: %v", err)
	}
	if updated.PaymentStatus != models.PaymentStatusPartial {
		t.Errorf("status = %q, want partial", updated.PaymentStatus)
	}

	// Overpayment is rejected without side effects.
	_, _, err = RecordSalePayment(f.company.ID, nil, sale.ID, PaymentInput{
		PaymentDate:   time.Now(),
		Amount:        decimal.NewFromInt(1000),
		PaymentMethod: models.PaymentMethodCash,
	})
	if se, ok := AsServiceError(err); !ok || se.Kind != KindExceedsAmountDue {
		t.Fatalf("expected ExceedsAmountDue, got %v", err)
	}

	_, updated, err = RecordSalePayment(f.company.ID, nil, sale.ID, PaymentInput{
		PaymentDate:     time.Now(),
		Amount:          decimal.NewFromInt(300),
		PaymentMethod:   models.PaymentMethodMpesa,
		ReferenceNumber: "QA12BC34",
	})
	if err != nil {
		t.Fatalf("settling payment: %v", err)
	}
	if updated.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("status = %q, want paid", updated.PaymentStatus)
	}

	config.DB.First(&customer, "id = ?", f.customer.ID)
	if !customer.CurrentBalance.IsZero() {
		t.Errorf("balance after settlement = %s, want 0", customer.CurrentBalance)
	}

	report, err := RecomputeCustomerBalance(f.company.ID, f.customer.ID, false)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if !report.Drift.IsZero() {
		t.Errorf("balance drift = %s, want 0", report.Drift)
	}
}

func TestIntegrationInsufficientStock(t *testing.T) {
	f := setupIntegration(t)
	f.stockIn(t, 3)

	_, err := CreateSale(f.company.ID, nil, CreateSaleInput{
		CustomerID:        f.customer.ID,
		StorageLocationID: f.location.ID,
		SaleDate:          time.Now(),
		Items: []SaleLineInput{
			{ProductVariantID: f.variant.ID, Quantity: 5, UnitPrice: decimal.NewFromInt(100)},
		},
	})
	if se, ok := AsServiceError(err); !ok || se.Kind != KindInsufficientStock {
		t.Fatalf("expected InsufficientStock, got %v", err)
	}
	if got := f.onHand(t); got != 3 {
		t.Errorf("failed sale must not move stock: on hand = %d, want 3", got)
	}
}

func TestIntegrationCreditLimit(t *testing.T) {
	f := setupIntegration(t)
	f.stockIn(t, 1000)

	// 150 * 100 = 15000 > 10000 limit.
	_, err := CreateSale(f.company.ID, nil, CreateSaleInput{
		CustomerID:        f.customer.ID,
		StorageLocationID: f.location.ID,
		SaleDate:          time.Now(),
		Items: []SaleLineInput{
			{ProductVariantID: f.variant.ID, Quantity: 150, UnitPrice: decimal.NewFromInt(100)},
		},
	})
	if se, ok := AsServiceError(err); !ok || se.Kind != KindCreditLimitExceeded {
		t.Fatalf("expected CreditLimitExceeded, got %v", err)
	}

	// The same sale passes for a walk-in customer.
	if _, err := CreateSale(f.company.ID, nil, CreateSaleInput{
		CustomerID:        f.walkIn.ID,
		StorageLocationID: f.location.ID,
		SaleDate:          time.Now(),
		Items: []SaleLineInput{
			{ProductVariantID: f.variant.ID, Quantity: 150, UnitPrice: decimal.NewFromInt(100)},
		},
	}); err != nil {
		t.Fatalf("walk-in sale: %v", err)
	}
}

func TestIntegrationConcurrentFirstSaleNumbers(t *testing.T) {
	f := setupIntegration(t)
	f.stockIn(t, 100)

	// Both sales race to seed the counter row for a fresh company; neither may
	// fail and the numbers must stay distinct and sequential.
	const n = 2
	type result struct {
		sale *models.Sale
		err  error
	}
	results := make(chan result, n)
	for i := 0; i < n; i++ {
		go func() {
			sale, err := CreateSale(f.company.ID, nil, CreateSaleInput{
				CustomerID:        f.walkIn.ID,
				StorageLocationID: f.location.ID,
				SaleDate:          time.Now(),
				Items: []SaleLineInput{
					{ProductVariantID: f.variant.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
				},
			})
			results <- result{sale, err}
		}()
	}

	numbers := map[string]bool{}
	for i := 0; i < n; i++ {
		r := <-results
		if r.err != nil {
			t.Fatalf("concurrent sale: %v", r.err)
		}
		numbers[r.sale.SaleNumber] = true
	}
	if !numbers["INV-000001"] || !numbers["INV-000002"] {
		t.Errorf("sale numbers = %v, want INV-000001 and INV-000002", numbers)
	}
}

func TestIntegrationCreditNoteRestocks(t *testing.T) {
	f := setupIntegration(t)
	f.stockIn(t, 20)

	sale, err := CreateSale(f.company.ID, nil, CreateSaleInput{
		CustomerID:        f.customer.ID,
		StorageLocationID: f.location.ID,
		SaleDate:          time.Now(),
		Items: []SaleLineInput{
			{ProductVariantID: f.variant.ID, Quantity: 10, UnitPrice: decimal.NewFromInt(100)},
		},
	})
	if err != nil {
		t.Fatalf("create sale: %v", err)
	}

	var items []models.SaleItem
	if err := config.DB.Where("sale_id = ?", sale.ID).Find(&items).Error; err != nil || len(items) != 1 {
		t.Fatalf("sale items: %v (%d)", err, len(items))
	}

	// Returning more than sold is rejected.
	_, err = CreateCreditNote(f.company.ID, nil, CreateCreditNoteInput{
		OriginalSaleID: sale.ID,
		SaleDate:       time.Now(),
		Items:          []CreditNoteLineInput{{SaleItemID: items[0].ID, ReturnQuantity: 11}},
	})
	if se, ok := AsServiceError(err); !ok || se.Kind != KindInvalidQuantity {
		t.Fatalf("expected InvalidQuantity, got %v", err)
	}

	creditNote, err := CreateCreditNote(f.company.ID, nil, CreateCreditNoteInput{
		OriginalSaleID: sale.ID,
		SaleDate:       time.Now(),
		Items:          []CreditNoteLineInput{{SaleItemID: items[0].ID, ReturnQuantity: 4}},
	})
	if err != nil {
		t.Fatalf("create credit note: %v", err)
	}
	if creditNote.SaleNumber != "CN-000001" {
		t.Errorf("credit note number = %q, want CN-000001", creditNote.SaleNumber)
	}
	if !creditNote.TotalAmount.IsNegative() {
		t.Errorf("credit note total = %s, want negative", creditNote.TotalAmount)
	}
	if got := f.onHand(t); got != 14 {
		t.Errorf("on hand after return = %d, want 14", got)
	}

	var customer models.Customer
	config.DB.First(&customer, "id = ?", f.customer.ID)
	if !customer.CurrentBalance.Equal(decimal.NewFromInt(600)) {
		t.Errorf("balance = %s, want 600", customer.CurrentBalance)
	}
}

func TestIntegrationTransactionReversal(t *testing.T) {
	f := setupIntegration(t)

	txn, err := RecordTransaction(f.company.ID, nil, RecordTransactionInput{
		ProductVariantID: f.variant.ID,
		TransactionType:  models.TransactionTypeIn,
		Quantity:         8,
		ToLocationID:     &f.location.ID,
	})
	if err != nil {
		t.Fatalf("stock in: %v", err)
	}

	reversal, err := ReverseTransaction(f.company.ID, nil, txn.ID)
	if err != nil {
		t.Fatalf("reverse: %v", err)
	}
	if reversal.TransactionType != models.TransactionTypeOut {
		t.Errorf("reversal type = %q, want out", reversal.TransactionType)
	}
	if reversal.ReferenceType != models.ReferenceTypeReversal {
		t.Errorf("reference type = %q, want reversal", reversal.ReferenceType)
	}
	if got := f.onHand(t); got != 0 {
		t.Errorf("on hand after reversal = %d, want 0", got)
	}

	// Double reversal is rejected.
	if _, err := ReverseTransaction(f.company.ID, nil, txn.ID); err == nil {
		t.Fatal("expected AlreadyReversed")
	} else if se, ok := AsServiceError(err); !ok || se.Kind != KindAlreadyReversed {
		t.Fatalf("expected AlreadyReversed, got %v", err)
	}
}

func TestIntegrationRecurringExpense(t *testing.T) {
	f := setupIntegration(t)

	category := models.ExpenseCategory{
		CompanyID:   f.company.ID,
		Name:        "Rent " + uuid.NewString()[:8],
		ExpenseType: models.ExpenseTypeStandard,
		IsActive:    true,
	}
	if err := config.DB.Create(&category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}

	dayOfMonth := 1
	parent, err := CreateExpense(f.company.ID, nil, CreateExpenseInput{
		ExpenseCategoryID:    category.ID,
		Title:                "Shop rent",
		Amount:               decimal.NewFromInt(20000),
		ExpenseDate:          time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		IsRecurring:          true,
		RecurrenceFrequency:  models.RecurrenceMonthly,
		RecurrenceDayOfMonth: &dayOfMonth,
	})
	if err != nil {
		t.Fatalf("create expense: %v", err)
	}

	var children []models.Expense
	if err := config.DB.Where("parent_expense_id = ?", parent.ID).
		Order("expense_date").Find(&children).Error; err != nil {
		t.Fatalf("load children: %v", err)
	}
	if len(children) != 12 {
		t.Fatalf("children = %d, want 12", len(children))
	}
	for _, child := range children {
		if child.IsRecurring {
			t.Errorf("child %s marked recurring", child.ID)
		}
		if child.ExpenseDate.Day() != 1 {
			t.Errorf("child date %v not on day 1", child.ExpenseDate)
		}
		if !child.AmountDue.Equal(parent.Amount) {
			t.Errorf("child amount_due = %s, want %s", child.AmountDue, parent.Amount)
		}
	}
}
