// controllers/user.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"nailstudio-backend/models"
	"nailstudio-backend/utils"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

type UpdateProfileInput struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
}

type AdminUpdateUserInput struct {
	FirstName string      `json:"first_name" binding:"required"`
	LastName  string      `json:"last_name" binding:"required"`
	Phone     string      `json:"phone"`
	Role      models.Role `json:"role" binding:"required"`
}

// GetProfile returns the caller's own profile.
func (uc *UserController) GetProfile(c *gin.Context) {
	userID := c.GetString(utils.CtxUserID)

	var user models.User
	if err := uc.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the caller's own name and phone.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID := c.GetString(utils.CtxUserID)

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}

	err := uc.DB.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"first_name": input.FirstName,
			"last_name":  input.LastName,
			"phone":      input.Phone,
		}).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// GetUsers lists all users, optionally filtered by role (admin only).
func (uc *UserController) GetUsers(c *gin.Context) {
	query := uc.DB.Model(&models.User{})

	if roleParam := c.Query("role"); roleParam != "" {
		role := models.Role(roleParam)
		if !role.Valid() {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid role filter")
			return
		}
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if err := query.Order("created_at").Find(&users).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}

	c.JSON(http.StatusOK, users)
}

// UpdateUser edits any user, including role changes (admin only).
func (uc *UserController) UpdateUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input AdminUpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !input.Role.Valid() {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid role")
		return
	}

	result := uc.DB.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"first_name": input.FirstName,
			"last_name":  input.LastName,
			"phone":      input.Phone,
			"role":       input.Role,
		})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update user")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

// DeleteUser removes a user (admin only). Users referenced by appointments
// cannot be deleted, and admins cannot delete themselves.
func (uc *UserController) DeleteUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if userID.String() == c.GetString(utils.CtxUserID) {
		utils.RespondWithError(c, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	var count int64
	err := uc.DB.Model(&models.Appointment{}).
		Where("client_id = ? OR manicurist_id = ?", userID, userID).
		Count(&count).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if count > 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Cannot delete: user has associated appointments")
		return
	}

	result := uc.DB.Where("id = ?", userID).Delete(&models.User{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// GetManicurists lists the bookable manicurists.
func (uc *UserController) GetManicurists(c *gin.Context) {
	var manicurists []models.User
	err := uc.DB.Where("role = ?", models.RoleManicurist).
		Order("first_name").
		Find(&manicurists).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve manicurists")
		return
	}

	c.JSON(http.StatusOK, manicurists)
}
