package controllers

import (
	"errors"
	"net/http"
	"time"

	"dukahub-backend/config"
	"dukahub-backend/models"
	"dukahub-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterInput defines the expected JSON structure for registration
type RegisterInput struct {
	CompanyName string `json:"companyName" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Phone       string `json:"phone"`
}

// LoginInput defines the expected JSON structure for login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a company together with its owner account.
func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "User with this email already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	var user models.User
	var company models.Company
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		company = models.Company{Name: input.CompanyName, Phone: input.Phone}
		if err := tx.Create(&company).Error; err != nil {
			return err
		}

		user = models.User{
			Email:            input.Email,
			Password:         input.Password, // hashed in BeforeCreate
			Name:             input.Name,
			Phone:            input.Phone,
			DefaultCompanyID: company.ID,
			IsActive:         true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		membership := models.CompanyUser{
			CompanyID: company.ID,
			UserID:    user.ID,
			Role:      "owner",
			IsActive:  true,
		}
		return tx.Create(&membership).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to register")
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), company.ID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":   token,
		"user":    user,
		"company": company,
	})
}

// Login authenticates a user and issues a token bound to their default company.
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if !user.IsActive {
		utils.RespondWithError(c, http.StatusUnauthorized, "Account is deactivated")
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	now := time.Now()
	config.DB.Model(&user).Update("last_login", now)

	token, err := utils.GenerateToken(user.ID.String(), user.DefaultCompanyID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Me returns the authenticated user and the companies they belong to.
func Me(c *gin.Context) {
	userID := currentUserID(c)
	if userID == nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", *userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	var companies []models.Company
	if err := config.DB.
		Joins("JOIN company_users ON company_users.company_id = companies.id").
		Where("company_users.user_id = ? AND company_users.is_active = true", *userID).
		Find(&companies).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve companies")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "companies": companies})
}
