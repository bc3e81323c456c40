// controllers/appointment.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"nailstudio-backend/models"
	"nailstudio-backend/services"
	"nailstudio-backend/utils"
)

type AppointmentController struct {
	DB       *gorm.DB
	Bookings *services.BookingService
	Notifier *services.Notifier
}

func NewAppointmentController(db *gorm.DB, bookings *services.BookingService, notifier *services.Notifier) *AppointmentController {
	return &AppointmentController{DB: db, Bookings: bookings, Notifier: notifier}
}

type CreateAppointmentInput struct {
	ManicuristID uuid.UUID `json:"manicurist_id" binding:"required"`
	ServiceID    uuid.UUID `json:"service_id" binding:"required"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	Comments     string    `json:"comments"`
}

type CreateAppointmentAdminInput struct {
	ClientID     uuid.UUID `json:"client_id" binding:"required"`
	ManicuristID uuid.UUID `json:"manicurist_id" binding:"required"`
	ServiceID    uuid.UUID `json:"service_id" binding:"required"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	Comments     string    `json:"comments"`
}

type UpdateStatusInput struct {
	Status models.AppointmentStatus `json:"status" binding:"required"`
}

// CreateAppointment books a slot for the authenticated client.
func (ap *AppointmentController) CreateAppointment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid identity claims")
		return
	}

	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	clientID := actor.ID
	appointment, err := ap.Bookings.CreateAppointment(c.Request.Context(), services.CreateAppointmentParams{
		ClientID:     &clientID,
		ManicuristID: input.ManicuristID,
		ServiceID:    input.ServiceID,
		StartTime:    input.StartTime,
		Comments:     input.Comments,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	ap.notifyClient(clientID, appointment)

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Appointment booked successfully",
		"appointment_id": appointment.ID,
		"appointment":    appointment,
	})
}

// CreateAppointmentAdmin books a slot on behalf of a client (admin only).
func (ap *AppointmentController) CreateAppointmentAdmin(c *gin.Context) {
	var input CreateAppointmentAdminInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	clientID := input.ClientID
	appointment, err := ap.Bookings.CreateAppointment(c.Request.Context(), services.CreateAppointmentParams{
		ClientID:     &clientID,
		ManicuristID: input.ManicuristID,
		ServiceID:    input.ServiceID,
		StartTime:    input.StartTime,
		Comments:     input.Comments,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	ap.notifyClient(clientID, appointment)

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Appointment created successfully",
		"appointment_id": appointment.ID,
		"appointment":    appointment,
	})
}

// notifyClient sends a best-effort booking confirmation when Twilio is
// configured and the client has a phone number on file.
func (ap *AppointmentController) notifyClient(clientID uuid.UUID, appointment *models.Appointment) {
	if ap.Notifier == nil {
		return
	}
	var client models.User
	if err := ap.DB.First(&client, "id = ?", clientID).Error; err != nil {
		return
	}
	ap.Notifier.SendBookingConfirmation(client.Phone, appointment)
}

// GetClientAppointments lists the caller's own bookings.
func (ap *AppointmentController) GetClientAppointments(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid identity claims")
		return
	}

	appointments, err := ap.Bookings.ListForClient(c.Request.Context(), actor.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetManicuristAppointments lists the caller's schedule with commissions.
func (ap *AppointmentController) GetManicuristAppointments(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid identity claims")
		return
	}

	appointments, err := ap.Bookings.ListForManicurist(c.Request.Context(), actor.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetAllAppointments lists every appointment (admin only).
func (ap *AppointmentController) GetAllAppointments(c *gin.Context) {
	appointments, err := ap.Bookings.ListAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// CancelAppointment transitions an appointment to Cancelled.
func (ap *AppointmentController) CancelAppointment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid identity claims")
		return
	}

	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ap.Bookings.Cancel(c.Request.Context(), appointmentID, actor); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled successfully"})
}

// UpdateAppointmentStatus moves an appointment through its lifecycle.
func (ap *AppointmentController) UpdateAppointmentStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid identity claims")
		return
	}

	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := ap.Bookings.UpdateStatus(c.Request.Context(), appointmentID, input.Status, actor); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment status updated"})
}

// DeleteAppointment removes an appointment and its commission (admin only).
func (ap *AppointmentController) DeleteAppointment(c *gin.Context) {
	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ap.Bookings.Delete(c.Request.Context(), appointmentID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}
