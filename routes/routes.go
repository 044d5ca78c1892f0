package routes

import (
	"os"
	"strings"

	"dukahub-backend/config"
	"dukahub-backend/controllers"
	"dukahub-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Company-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware(), controllers.CompanyMiddleware())
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeactivateCustomer)
			customers.GET("/:id/balance", controllers.GetCustomerBalance)
			customers.POST("/:id/check-credit", controllers.CheckCredit)
			customers.POST("/:id/recompute-balance", controllers.RecomputeCustomerBalance)
		}

		// Customer tier routes
		tiers := api.Group("/customer-tiers")
		{
			tiers.POST("", controllers.CreateCustomerTier)
			tiers.GET("", controllers.GetCustomerTiers)
			tiers.PUT("/:id", controllers.UpdateCustomerTier)
			tiers.DELETE("/:id", controllers.DeleteCustomerTier)
		}

		// Payment term routes
		terms := api.Group("/payment-terms")
		{
			terms.POST("", controllers.CreatePaymentTerm)
			terms.GET("", controllers.GetPaymentTerms)
			terms.PUT("/:id", controllers.UpdatePaymentTerm)
			terms.DELETE("/:id", controllers.DeletePaymentTerm)
		}

		// Supplier routes
		suppliers := api.Group("/suppliers")
		{
			suppliers.POST("", controllers.CreateSupplier)
			suppliers.GET("", controllers.GetSuppliers)
			suppliers.GET("/:id", controllers.GetSupplier)
			suppliers.PUT("/:id", controllers.UpdateSupplier)
			suppliers.DELETE("/:id", controllers.DeleteSupplier)
		}

		// Product catalog routes
		productCategories := api.Group("/product-categories")
		{
			productCategories.POST("", controllers.CreateProductCategory)
			productCategories.GET("", controllers.GetProductCategories)
			productCategories.PUT("/:id", controllers.UpdateProductCategory)
			productCategories.DELETE("/:id", controllers.DeleteProductCategory)
		}

		products := api.Group("/products")
		{
			products.POST("", controllers.CreateProduct)
			products.GET("", controllers.GetProducts)
			products.GET("/:id", controllers.GetProduct)
			products.PUT("/:id", controllers.UpdateProduct)
			products.DELETE("/:id", controllers.DeleteProduct)
		}

		variants := api.Group("/product-variants")
		{
			variants.POST("", controllers.CreateProductVariant)
			variants.GET("", controllers.GetProductVariants)
			variants.PUT("/:id", controllers.UpdateProductVariant)
			variants.DELETE("/:id", controllers.DeleteProductVariant)
		}

		// Storage location routes
		locations := api.Group("/storage-locations")
		{
			locations.POST("", controllers.CreateStorageLocation)
			locations.GET("", controllers.GetStorageLocations)
			locations.PUT("/:id", controllers.UpdateStorageLocation)
			locations.DELETE("/:id", controllers.DeleteStorageLocation)
		}

		// Inventory routes
		api.GET("/inventory-items", controllers.GetInventoryItems)

		transactions := api.Group("/inventory-transactions")
		{
			transactions.POST("", controllers.CreateInventoryTransaction)
			transactions.GET("", controllers.GetInventoryTransactions)
			transactions.POST("/adjust", controllers.AdjustStock)
			transactions.POST("/:id/reverse", controllers.ReverseInventoryTransaction)
		}

		// Sales routes
		sales := api.Group("/sales")
		{
			sales.POST("", controllers.CreateSale)
			sales.GET("", controllers.GetSales)
			sales.POST("/credit-notes", controllers.CreateCreditNote)
			sales.POST("/payments", controllers.RecordSalePayment)
			sales.GET("/:id", controllers.GetSale)
			sales.GET("/:id/payments", controllers.GetSalePayments)
		}

		// Expense routes
		expenseCategories := api.Group("/expense-categories")
		{
			expenseCategories.POST("", controllers.CreateExpenseCategory)
			expenseCategories.GET("", controllers.GetExpenseCategories)
			expenseCategories.PUT("/:id", controllers.UpdateExpenseCategory)
			expenseCategories.DELETE("/:id", controllers.DeleteExpenseCategory)
		}

		expenses := api.Group("/expenses")
		{
			expenses.POST("", controllers.CreateExpense)
			expenses.GET("", controllers.GetExpenses)
			expenses.GET("/:id", controllers.GetExpense)
			expenses.PATCH("/:id", controllers.UpdateExpense)
			expenses.POST("/:id/payments", controllers.RecordExpensePayment)
		}

		// Analytics routes
		analytics := api.Group("/analytics")
		{
			analytics.GET("/dashboard", controllers.GetDashboardOverview)
			analytics.GET("/low-stock", controllers.GetLowStockAlerts)
			analytics.GET("/collection-rate", controllers.GetCollectionRate)
			analytics.GET("/sales-overview", controllers.GetSalesOverview)
		}
	}

	return r
}
