// controllers/work.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"nailstudio-backend/services"
	"nailstudio-backend/utils"
)

type WorkController struct {
	Works *services.WorkService
}

func NewWorkController(works *services.WorkService) *WorkController {
	return &WorkController{Works: works}
}

type CreateWorkInput struct {
	ServiceID          uuid.UUID        `json:"service_id" binding:"required"`
	WorkDate           time.Time        `json:"work_date" binding:"required"`
	ClientName         string           `json:"client_name"`
	ServicePriceCustom *decimal.Decimal `json:"service_price_custom"`
}

type CreateWorkAdminInput struct {
	ManicuristID       uuid.UUID        `json:"manicurist_id" binding:"required"`
	ServiceID          uuid.UUID        `json:"service_id" binding:"required"`
	WorkDate           time.Time        `json:"work_date" binding:"required"`
	ClientName         string           `json:"client_name"`
	ServicePriceCustom *decimal.Decimal `json:"service_price_custom"`
}

type UpdateWorkInput struct {
	ServicePriceCustom decimal.Decimal `json:"service_price_custom" binding:"required"`
}

// CreateWork records a walk-in for the authenticated manicurist.
func (wc *WorkController) CreateWork(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid identity claims")
		return
	}

	var input CreateWorkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	work, err := wc.Works.CreateWork(c.Request.Context(), services.CreateWorkParams{
		ManicuristID: actor.ID,
		ServiceID:    input.ServiceID,
		WorkDate:     input.WorkDate,
		ClientName:   input.ClientName,
		CustomPrice:  input.ServicePriceCustom,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":           "Work recorded successfully",
		"work_id":           work.ID,
		"commission_amount": work.Commission.CommissionAmount,
	})
}

// CreateWorkAdmin records a walk-in on behalf of any manicurist (admin only).
func (wc *WorkController) CreateWorkAdmin(c *gin.Context) {
	var input CreateWorkAdminInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	work, err := wc.Works.CreateWorkAsAdmin(c.Request.Context(), services.CreateWorkParams{
		ManicuristID: input.ManicuristID,
		ServiceID:    input.ServiceID,
		WorkDate:     input.WorkDate,
		ClientName:   input.ClientName,
		CustomPrice:  input.ServicePriceCustom,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":           "Work recorded successfully",
		"work_id":           work.ID,
		"commission_amount": work.Commission.CommissionAmount,
	})
}

func parseWorkFilter(c *gin.Context) (services.WorkFilter, bool) {
	var filter services.WorkFilter

	from, err := utils.ParseDateParam(c.Query("start_date"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid start_date, expected YYYY-MM-DD")
		return filter, false
	}
	to, err := utils.ParseDateParam(c.Query("end_date"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid end_date, expected YYYY-MM-DD")
		return filter, false
	}
	filter.From = from
	filter.To = to

	if m := c.Query("manicurist_id"); m != "" {
		id, err := uuid.Parse(m)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid manicurist_id format")
			return filter, false
		}
		filter.ManicuristID = &id
	}

	return filter, true
}

// GetMyWorks lists the caller's walk-ins with summary aggregates, optionally
// filtered by date range.
func (wc *WorkController) GetMyWorks(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid identity claims")
		return
	}

	filter, ok := parseWorkFilter(c)
	if !ok {
		return
	}
	filter.ManicuristID = &actor.ID

	records, summary, err := wc.Works.ListWorks(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"works":   records,
		"summary": summary,
	})
}

// GetAllWorks lists walk-ins across manicurists (admin only), with optional
// manicurist and date-range filters.
func (wc *WorkController) GetAllWorks(c *gin.Context) {
	filter, ok := parseWorkFilter(c)
	if !ok {
		return
	}

	records, summary, err := wc.Works.ListWorks(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"works":   records,
		"summary": summary,
	})
}

// UpdateWork changes a walk-in's charged price and recomputes its commission.
func (wc *WorkController) UpdateWork(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid identity claims")
		return
	}

	workID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateWorkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !input.ServicePriceCustom.IsPositive() {
		utils.RespondWithError(c, http.StatusBadRequest, "Price must be greater than zero")
		return
	}

	newCommission, err := wc.Works.UpdateWorkPrice(c.Request.Context(), workID, actor, input.ServicePriceCustom)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Work updated successfully",
		"new_commission": newCommission,
	})
}

// MarkWorkPaid settles a walk-in commission (admin only).
func (wc *WorkController) MarkWorkPaid(c *gin.Context) {
	workID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := wc.Works.MarkCommissionPaid(c.Request.Context(), workID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Commission marked as paid"})
}

// DeleteWork removes a walk-in record and its commission.
func (wc *WorkController) DeleteWork(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid identity claims")
		return
	}

	workID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := wc.Works.DeleteWork(c.Request.Context(), workID, actor); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Work deleted successfully"})
}
