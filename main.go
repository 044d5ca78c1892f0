package main

import (
	"fmt"
	"os"

	"dukahub-backend/config"
	"dukahub-backend/models"
	"dukahub-backend/routes"
	"dukahub-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Company{},
		&models.CompanyUser{},
		&models.User{},
		&models.Customer{},
		&models.CustomerTier{},
		&models.PaymentTerm{},
		&models.Supplier{},
		&models.ProductCategory{},
		&models.Product{},
		&models.ProductVariant{},
		&models.StorageLocation{},
		&models.InventoryItem{},
		&models.InventoryTransaction{},
		&models.Sale{},
		&models.SaleItem{},
		&models.SalePayment{},
		&models.SaleCounter{},
		&models.ExpenseCategory{},
		&models.Expense{},
		&models.ExpensePayment{},
		&models.PaymentReminderLog{},
	)
}

func main() {
	reminders := services.NewReminderService(config.DB)
	reminders.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
