package controllers

import (
	"errors"
	"net/http"

	"dukahub-backend/config"
	"dukahub-backend/models"
	"dukahub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyMiddleware resolves the tenant for the request. The token carries the
// user's default company; an X-Company-ID header switches to another company
// the user is an active member of. Everything downstream trusts "companyId".
func CompanyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userValue, exists := c.Get("userId")
		if !exists {
			utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
			return
		}
		userUUID, err := uuid.Parse(userValue.(string))
		if err != nil {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid user ID format")
			return
		}

		companyStr := ""
		if tokenCompany, ok := c.Get("tokenCompanyId"); ok {
			if s, ok := tokenCompany.(string); ok {
				companyStr = s
			}
		}
		if header := c.GetHeader("X-Company-ID"); header != "" {
			companyStr = header
		}
		companyUUID, err := uuid.Parse(companyStr)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid company ID format")
			return
		}

		var membership models.CompanyUser
		if err := config.DB.Where("company_id = ? AND user_id = ? AND is_active = true",
			companyUUID, userUUID).First(&membership).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusForbidden, "You are not a member of this company")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		c.Set("companyId", companyUUID.String())
		c.Set("companyRole", membership.Role)
		c.Next()
	}
}
