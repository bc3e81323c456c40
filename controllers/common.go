package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"nailstudio-backend/models"
	"nailstudio-backend/services"
	"nailstudio-backend/utils"
)

// currentActor reconstructs the request's identity from the claims stored by
// the auth middleware.
func currentActor(c *gin.Context) (services.Actor, bool) {
	id, err := uuid.Parse(c.GetString(utils.CtxUserID))
	if err != nil {
		return services.Actor{}, false
	}
	role := models.Role(c.GetString(utils.CtxRole))
	if !role.Valid() {
		return services.Actor{}, false
	}
	return services.Actor{ID: id, Role: role}, true
}

// respondServiceError maps service sentinel errors onto the HTTP error
// taxonomy. Unknown errors become a logged 500 with a generic message.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrServiceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": "SERVICE_NOT_FOUND"})
	case errors.Is(err, services.ErrAppointmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": "APPOINTMENT_NOT_FOUND"})
	case errors.Is(err, services.ErrWorkNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": "WORK_NOT_FOUND"})
	case errors.Is(err, services.ErrSlotConflict):
		// 400 like a validation failure, but with a code callers can branch on.
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "SLOT_CONFLICT"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "code": "FORBIDDEN"})
	case errors.Is(err, services.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "INVALID_STATUS"})
	case errors.Is(err, services.ErrAlreadyFinalized):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "ALREADY_FINALIZED"})
	case errors.Is(err, services.ErrNotManicurist):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "NOT_MANICURIST"})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// parseIDParam reads and validates a uuid path parameter.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}
