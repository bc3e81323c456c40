// controllers/service.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"nailstudio-backend/models"
	"nailstudio-backend/utils"
)

type ServiceController struct {
	DB *gorm.DB
}

func NewServiceController(db *gorm.DB) *ServiceController {
	return &ServiceController{DB: db}
}

// ServiceInput defines the expected JSON structure for creating or updating
// a service.
type ServiceInput struct {
	Name           string          `json:"name" binding:"required"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	DurationMin    int             `json:"duration_min"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
}

func (in *ServiceInput) validate() string {
	if !in.Price.IsPositive() {
		return "Price must be greater than zero"
	}
	if in.DurationMin <= 0 {
		return "Duration must be a positive number of minutes"
	}
	if in.CommissionRate.IsNegative() || in.CommissionRate.GreaterThan(decimal.NewFromInt(100)) {
		return "Commission rate must be between 0 and 100"
	}
	return ""
}

// GetServices lists the service catalogue.
func (sc *ServiceController) GetServices(c *gin.Context) {
	var catalogue []models.Service
	if err := sc.DB.Order("name").Find(&catalogue).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, catalogue)
}

// CreateService adds a service to the catalogue (admin only).
func (sc *ServiceController) CreateService(c *gin.Context) {
	var input ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if msg := input.validate(); msg != "" {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	service := models.Service{
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		DurationMin:    input.DurationMin,
		CommissionRate: input.CommissionRate,
	}

	if err := sc.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// UpdateService edits a catalogue entry (admin only).
func (sc *ServiceController) UpdateService(c *gin.Context) {
	serviceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if msg := input.validate(); msg != "" {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	var service models.Service
	if err := sc.DB.First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	service.Name = input.Name
	service.Description = input.Description
	service.Price = input.Price
	service.DurationMin = input.DurationMin
	service.CommissionRate = input.CommissionRate

	if err := sc.DB.Save(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService removes a catalogue entry (admin only). Services referenced
// by any appointment cannot be deleted.
func (sc *ServiceController) DeleteService(c *gin.Context) {
	serviceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var count int64
	err := sc.DB.Model(&models.Appointment{}).
		Where("service_id = ?", serviceID).
		Count(&count).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if count > 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Cannot delete: appointments reference this service")
		return
	}

	result := sc.DB.Where("id = ?", serviceID).Delete(&models.Service{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
