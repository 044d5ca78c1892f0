package controllers

import (
	"net/http"
	"time"

	"dukahub-backend/config"
	"dukahub-backend/models"
	"dukahub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type DashboardOverview struct {
	TotalCustomers         int64           `json:"totalCustomers"`
	TotalProducts          int64           `json:"totalProducts"`
	MonthlySalesTotal      decimal.Decimal `json:"monthlySalesTotal"`
	MonthlyExpensesTotal   decimal.Decimal `json:"monthlyExpensesTotal"`
	OutstandingReceivables decimal.Decimal `json:"outstandingReceivables"`
	OutstandingPayables    decimal.Decimal `json:"outstandingPayables"`
	UnpaidInvoices         int64           `json:"unpaidInvoices"`
	LowStockCount          int64           `json:"lowStockCount"`
}

type LowStockAlert struct {
	ProductVariantID string `json:"productVariantId"`
	VariantName      string `json:"variantName"`
	ProductName      string `json:"productName"`
	LocationName     string `json:"locationName"`
	Quantity         int    `json:"quantity"`
	MinStockLevel    int    `json:"minStockLevel"`
}

type CollectionRate struct {
	TotalInvoiced  decimal.Decimal `json:"totalInvoiced"`
	TotalCollected decimal.Decimal `json:"totalCollected"`
	CollectionRate decimal.Decimal `json:"collectionRate"`
}

// GetDashboardOverview returns the headline numbers for the current month.
func GetDashboardOverview(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	var overview DashboardOverview
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	config.DB.Model(&models.Customer{}).
		Where("company_id = ? AND status = ?", companyUUID, models.CustomerStatusActive).
		Count(&overview.TotalCustomers)

	config.DB.Model(&models.Product{}).
		Where("company_id = ? AND is_active = true", companyUUID).
		Count(&overview.TotalProducts)

	config.DB.Model(&models.Sale{}).
		Where("company_id = ? AND sale_date >= ?", companyUUID, firstOfMonth).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&overview.MonthlySalesTotal)

	config.DB.Model(&models.Expense{}).
		Where("company_id = ? AND expense_date >= ?", companyUUID, firstOfMonth).
		Select("COALESCE(SUM(amount), 0)").Scan(&overview.MonthlyExpensesTotal)

	config.DB.Model(&models.Sale{}).
		Where("company_id = ? AND sale_type = ?", companyUUID, models.SaleTypeInvoice).
		Select("COALESCE(SUM(amount_due), 0)").Scan(&overview.OutstandingReceivables)

	config.DB.Model(&models.Expense{}).
		Where("company_id = ?", companyUUID).
		Select("COALESCE(SUM(amount_due), 0)").Scan(&overview.OutstandingPayables)

	config.DB.Model(&models.Sale{}).
		Where("company_id = ? AND sale_type = ? AND payment_status != ?",
			companyUUID, models.SaleTypeInvoice, models.PaymentStatusPaid).
		Count(&overview.UnpaidInvoices)

	config.DB.Raw(`
        SELECT COUNT(*) FROM inventory_items ii
        JOIN product_variants pv ON pv.id = ii.product_variant_id
        WHERE ii.company_id = ? AND pv.min_stock_level IS NOT NULL
        AND ii.quantity < pv.min_stock_level
    `, companyUUID).Scan(&overview.LowStockCount)

	c.JSON(http.StatusOK, overview)
}

// GetLowStockAlerts lists variant/location pairs below their minimum level.
func GetLowStockAlerts(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	var alerts []LowStockAlert
	err := config.DB.Raw(`
        SELECT ii.product_variant_id, pv.variant_name, p.name AS product_name,
               sl.name AS location_name, ii.quantity, pv.min_stock_level
        FROM inventory_items ii
        JOIN product_variants pv ON pv.id = ii.product_variant_id
        JOIN products p ON p.id = pv.product_id
        JOIN storage_locations sl ON sl.id = ii.storage_location_id
        WHERE ii.company_id = ? AND pv.min_stock_level IS NOT NULL
        AND ii.quantity < pv.min_stock_level
        ORDER BY ii.quantity
    `, companyUUID).Scan(&alerts).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve low stock alerts")
		return
	}

	c.JSON(http.StatusOK, alerts)
}

// GetCollectionRate reports collected vs invoiced totals over an optional
// from/to date range.
func GetCollectionRate(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	query := config.DB.Model(&models.Sale{}).
		Where("company_id = ? AND sale_type = ?", companyUUID, models.SaleTypeInvoice)
	if from := c.Query("from"); from != "" {
		query = query.Where("sale_date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("sale_date <= ?", to)
	}

	var rate CollectionRate
	if err := query.
		Select("COALESCE(SUM(total_amount), 0) AS total_invoiced, COALESCE(SUM(amount_paid), 0) AS total_collected").
		Scan(&rate).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute collection rate")
		return
	}

	if rate.TotalInvoiced.GreaterThan(decimal.Zero) {
		rate.CollectionRate = rate.TotalCollected.
			Div(rate.TotalInvoiced).
			Mul(decimal.NewFromInt(100)).Round(2)
	}

	c.JSON(http.StatusOK, rate)
}

type salesOverviewRow struct {
	Day   time.Time       `json:"day"`
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}

// GetSalesOverview returns daily invoice totals for the last 30 days.
func GetSalesOverview(c *gin.Context) {
	companyUUID, ok := companyID(c)
	if !ok {
		return
	}

	since := time.Now().AddDate(0, 0, -30)
	var rows []salesOverviewRow
	err := config.DB.Raw(`
        SELECT sale_date AS day, COALESCE(SUM(total_amount), 0) AS total, COUNT(*) AS count
        FROM sales
        WHERE company_id = ? AND sale_type = ? AND sale_date >= ? AND deleted_at IS NULL
        GROUP BY sale_date
        ORDER BY sale_date
    `, companyUUID, models.SaleTypeInvoice, since).Scan(&rows).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve sales overview")
		return
	}

	c.JSON(http.StatusOK, rows)
}
