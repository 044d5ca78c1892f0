package controllers

import (
	"net/http"

	"dukahub-backend/services"
	"dukahub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// companyID pulls the tenant resolved by CompanyMiddleware out of the request
// context. On failure it writes the error response and returns ok=false.
func companyID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("companyId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Company ID not found in context")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(value.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid company ID format")
		return uuid.Nil, false
	}
	return id, true
}

// currentUserID returns the authenticated user's ID, or nil when the claim is
// missing or malformed. Write paths record it as created_by.
func currentUserID(c *gin.Context) *uuid.UUID {
	value, exists := c.Get("userId")
	if !exists {
		return nil
	}
	str, ok := value.(string)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(str)
	if err != nil {
		return nil
	}
	return &id
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// RespondWithServiceError maps service error kinds onto HTTP statuses. Any
// error that is not a services.Error is treated as an internal failure.
func RespondWithServiceError(c *gin.Context, err error) {
	se, ok := services.AsServiceError(err)
	if !ok {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	switch se.Kind {
	case services.KindNotFound:
		utils.RespondWithError(c, http.StatusNotFound, se.Message)
	case services.KindDuplicateName, services.KindAlreadyReversed:
		utils.RespondWithError(c, http.StatusConflict, se.Message)
	default:
		utils.RespondWithError(c, http.StatusBadRequest, se.Message)
	}
}
