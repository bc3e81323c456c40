// services/booking_service.go
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nailstudio-backend/models"
)

// BookingService owns the appointment lifecycle: availability checking,
// creation together with the commission row, status transitions and
// admin deletion.
type BookingService struct {
	db *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db}
}

type CreateAppointmentParams struct {
	ClientID     *uuid.UUID
	ManicuristID uuid.UUID
	ServiceID    uuid.UUID
	StartTime    time.Time
	Comments     string
}

// HasConflict reports whether any non-cancelled appointment for the
// manicurist overlaps [start, end). Intervals are half-open, so bookings
// that merely touch at an endpoint do not conflict. excludeID, when
// non-nil, removes that appointment from the scan (slot updates).
func (s *BookingService) HasConflict(ctx context.Context, manicuristID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	return hasConflict(s.db.WithContext(ctx), manicuristID, start, end, excludeID)
}

func hasConflict(db *gorm.DB, manicuristID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	q := db.Model(&models.Appointment{}).
		Where("manicurist_id = ?", manicuristID).
		Where("status <> ?", models.StatusCancelled).
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateAppointment books a slot for a manicurist and records the matching
// commission. The service lookup, conflict check and both inserts run in one
// serializable transaction so two concurrent requests for overlapping slots
// cannot both pass the check, and a failed commission insert rolls the
// appointment back.
func (s *BookingService) CreateAppointment(ctx context.Context, p CreateAppointmentParams) (*models.Appointment, error) {
	tx := s.db.WithContext(ctx).Begin(&sql.TxOptions{Isolation: sql.LevelSerializable})
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var service models.Service
	if err := tx.First(&service, "id = ?", p.ServiceID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	endTime := p.StartTime.Add(time.Duration(service.DurationMin) * time.Minute)

	conflict, err := hasConflict(tx, p.ManicuristID, p.StartTime, endTime, nil)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if conflict {
		tx.Rollback()
		return nil, ErrSlotConflict
	}

	appointment := models.Appointment{
		ClientID:       p.ClientID,
		ManicuristID:   p.ManicuristID,
		ServiceID:      service.ID,
		StartTime:      p.StartTime,
		EndTime:        endTime,
		Status:         models.StatusScheduled,
		ClientComments: p.Comments,
	}
	if err := tx.Create(&appointment).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	commission := models.Commission{
		AppointmentID:    appointment.ID,
		ManicuristID:     p.ManicuristID,
		ServicePrice:     service.Price,
		CommissionAmount: ComputeCommission(service.Price, service.CommissionRate).Round(2),
	}
	if err := tx.Create(&commission).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	appointment.Service = &service
	appointment.Commission = &commission
	return &appointment, nil
}

// CanTransition reports whether the lifecycle allows moving between the two
// statuses. Scheduled may complete or cancel; terminal states are final.
func CanTransition(from, to models.AppointmentStatus) bool {
	return from == models.StatusScheduled &&
		(to == models.StatusCompleted || to == models.StatusCancelled)
}

// Cancel transitions an appointment to Cancelled. Permitted for the booked
// client, the assigned manicurist, or an admin. The commission row is kept:
// cancellation is a status change, not a deletion.
func (s *BookingService) Cancel(ctx context.Context, id uuid.UUID, actor Actor) error {
	var appointment models.Appointment
	if err := s.db.WithContext(ctx).First(&appointment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAppointmentNotFound
		}
		return err
	}

	isClient := appointment.ClientID != nil && *appointment.ClientID == actor.ID
	if !isClient && appointment.ManicuristID != actor.ID && !actor.IsAdmin() {
		return ErrForbidden
	}

	if !CanTransition(appointment.Status, models.StatusCancelled) {
		return ErrAlreadyFinalized
	}

	// Guarded update: a concurrent transition between the read and this
	// statement leaves zero rows affected.
	result := s.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ? AND status = ?", id, models.StatusScheduled).
		Update("status", models.StatusCancelled)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyFinalized
	}
	return nil
}

// UpdateStatus sets a new lifecycle status. Permitted for the assigned
// manicurist or an admin. The commission is fixed at creation time and is
// not touched by status changes.
func (s *BookingService) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus models.AppointmentStatus, actor Actor) error {
	if !newStatus.Valid() {
		return ErrInvalidStatus
	}

	var appointment models.Appointment
	if err := s.db.WithContext(ctx).First(&appointment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAppointmentNotFound
		}
		return err
	}

	if appointment.ManicuristID != actor.ID && !actor.IsAdmin() {
		return ErrForbidden
	}

	if !CanTransition(appointment.Status, newStatus) {
		if appointment.Status.Terminal() {
			return ErrAlreadyFinalized
		}
		return ErrInvalidStatus
	}

	result := s.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ? AND status = ?", id, models.StatusScheduled).
		Update("status", newStatus)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyFinalized
	}
	return nil
}

// Delete removes an appointment and its commission. The commission row goes
// first to satisfy the foreign key ordering.
func (s *BookingService) Delete(ctx context.Context, id uuid.UUID) error {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("appointment_id = ?", id).Delete(&models.Commission{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	result := tx.Where("id = ?", id).Delete(&models.Appointment{})
	if result.Error != nil {
		tx.Rollback()
		return result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return ErrAppointmentNotFound
	}

	return tx.Commit().Error
}

// ListForClient returns a client's own bookings, newest first.
func (s *BookingService) ListForClient(ctx context.Context, clientID uuid.UUID) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.WithContext(ctx).
		Preload("Service").
		Where("client_id = ?", clientID).
		Order("start_time DESC").
		Find(&appointments).Error
	return appointments, err
}

// ListForManicurist returns a manicurist's schedule including commission
// details, newest first.
func (s *BookingService) ListForManicurist(ctx context.Context, manicuristID uuid.UUID) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.WithContext(ctx).
		Preload("Service").
		Preload("Commission").
		Where("manicurist_id = ?", manicuristID).
		Order("start_time DESC").
		Find(&appointments).Error
	return appointments, err
}

// ListAll returns every appointment for the admin view.
func (s *BookingService) ListAll(ctx context.Context) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.WithContext(ctx).
		Preload("Service").
		Preload("Commission").
		Order("start_time DESC").
		Find(&appointments).Error
	return appointments, err
}
