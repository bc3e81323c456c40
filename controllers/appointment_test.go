package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nailstudio-backend/services"
	"nailstudio-backend/utils"
)

// Validation and role checks fire before any persistence access, so these
// tests run against a controller with no database behind it.
func newAppointmentTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewAppointmentController(nil, services.NewBookingService(nil), nil)

	r := gin.New()
	api := r.Group("/api/appointments", utils.AuthMiddleware())
	api.POST("", utils.RequireRole("client"), controller.CreateAppointment)
	api.PUT("/:id/cancel", controller.CancelAppointment)
	api.PUT("/:id/status", utils.RequireRole("manicurist", "admin"), controller.UpdateAppointmentStatus)
	return r
}

func clientToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateToken("0c1d2e3f-aaaa-bbbb-cccc-ddddeeeeffff", "client")
	require.NoError(t, err)
	return token
}

func TestCreateAppointmentMissingFields(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	r := newAppointmentTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+clientToken(t))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid input")
}

func TestCreateAppointmentRequiresClientRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := utils.GenerateToken("0c1d2e3f-aaaa-bbbb-cccc-ddddeeeeffff", "manicurist")
	require.NoError(t, err)

	r := newAppointmentTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateAppointmentRequiresToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	r := newAppointmentTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(`{}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCancelAppointmentRejectsMalformedID(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	r := newAppointmentTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/appointments/not-a-uuid/cancel", nil)
	req.Header.Set("Authorization", "Bearer "+clientToken(t))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid id format")
}

func TestUpdateStatusRejectsClientRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	r := newAppointmentTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/appointments/not-a-uuid/status", strings.NewReader(`{"status":"Completed"}`))
	req.Header.Set("Authorization", "Bearer "+clientToken(t))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
