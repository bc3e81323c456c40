// services/work_service.go
package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"nailstudio-backend/models"
	"nailstudio-backend/utils"
)

// WorkService records walk-in work: services rendered to clients who did not
// pre-book. Walk-ins skip the availability check (they already happened) and
// land directly in Completed status with an unpaid commission.
type WorkService struct {
	db *gorm.DB
}

func NewWorkService(db *gorm.DB) *WorkService {
	return &WorkService{db: db}
}

const defaultWalkInName = "Walk-in client"

type CreateWorkParams struct {
	ManicuristID uuid.UUID
	ServiceID    uuid.UUID
	WorkDate     time.Time
	ClientName   string
	// CustomPrice overrides the service's list price when positive.
	CustomPrice *decimal.Decimal
}

// WorkRecord is the flattened row returned by work listings.
type WorkRecord struct {
	WorkID           uuid.UUID       `json:"work_id"`
	WorkDate         time.Time       `json:"work_date"`
	ClientName       string          `json:"client_name"`
	ManicuristID     uuid.UUID       `json:"manicurist_id"`
	ManicuristName   string          `json:"manicurist_name"`
	ServiceName      string          `json:"service_name"`
	DefaultPrice     decimal.Decimal `json:"default_price"`
	PaidPrice        decimal.Decimal `json:"paid_price"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	IsPaid           bool            `json:"is_paid"`
	PaidAt           *time.Time      `json:"payment_date,omitempty"`
}

// WorkSummary aggregates a filtered set of work records.
type WorkSummary struct {
	TotalWorks             int             `json:"total_works"`
	TotalPaid              decimal.Decimal `json:"total_paid"`
	TotalCommission        decimal.Decimal `json:"total_commission"`
	TotalPaidCommission    decimal.Decimal `json:"total_paid_commission"`
	TotalPendingCommission decimal.Decimal `json:"total_pending_commission"`
}

// WorkFilter narrows work listings. From/To are inclusive calendar dates.
type WorkFilter struct {
	ManicuristID *uuid.UUID
	From         *time.Time
	To           *time.Time
}

// CreateWork inserts a completed walk-in appointment and its commission in
// one transaction. The commission reflects the price actually charged and
// starts unpaid: walk-in commissions require a manual payment step.
func (s *WorkService) CreateWork(ctx context.Context, p CreateWorkParams) (*models.Appointment, error) {
	tx := s.db.WithContext(ctx).Begin()
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

	price := service.Price
	if p.CustomPrice != nil && p.CustomPrice.IsPositive() {
		price = *p.CustomPrice
	}

	clientName := p.ClientName
	if clientName == "" {
		clientName = defaultWalkInName
	}

	endTime := p.WorkDate.Add(time.Duration(service.DurationMin) * time.Minute)

	appointment := models.Appointment{
		ClientID:         nil,
		ManicuristID:     p.ManicuristID,
		ServiceID:        service.ID,
		StartTime:        p.WorkDate,
		EndTime:          endTime,
		Status:           models.StatusCompleted,
		IsWalkIn:         true,
		WalkInClientName: clientName,
	}
	if err := tx.Create(&appointment).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	commission := models.Commission{
		AppointmentID:    appointment.ID,
		ManicuristID:     p.ManicuristID,
		ServicePrice:     price,
		CommissionAmount: ComputeCommission(price, service.CommissionRate).Round(2),
		IsPaid:           false,
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

// CreateWorkAsAdmin records a walk-in on behalf of a manicurist after
// verifying the target user actually holds the manicurist role.
func (s *WorkService) CreateWorkAsAdmin(ctx context.Context, p CreateWorkParams) (*models.Appointment, error) {
	var manicurist models.User
	err := s.db.WithContext(ctx).
		First(&manicurist, "id = ? AND role = ?", p.ManicuristID, models.RoleManicurist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotManicurist
		}
		return nil, err
	}
	return s.CreateWork(ctx, p)
}

// ListWorks returns the walk-in records matching the filter plus aggregates
// computed over that filtered set.
func (s *WorkService) ListWorks(ctx context.Context, f WorkFilter) ([]WorkRecord, WorkSummary, error) {
	q := s.db.WithContext(ctx).Table("appointments").
		Select(`appointments.id AS work_id,
			appointments.start_time AS work_date,
			appointments.walk_in_client_name AS client_name,
			appointments.manicurist_id AS manicurist_id,
			users.first_name || ' ' || users.last_name AS manicurist_name,
			services.name AS service_name,
			services.price AS default_price,
			commissions.service_price AS paid_price,
			commissions.commission_amount AS commission_amount,
			commissions.is_paid AS is_paid,
			commissions.paid_at AS paid_at`).
		Joins("JOIN services ON services.id = appointments.service_id").
		Joins("JOIN users ON users.id = appointments.manicurist_id").
		Joins("JOIN commissions ON commissions.appointment_id = appointments.id").
		Where("appointments.is_walk_in = ?", true)

	if f.ManicuristID != nil {
		q = q.Where("appointments.manicurist_id = ?", *f.ManicuristID)
	}
	if f.From != nil {
		q = q.Where("appointments.start_time >= ?", utils.BeginningOfDay(*f.From))
	}
	if f.To != nil {
		q = q.Where("appointments.start_time <= ?", utils.EndOfDay(*f.To))
	}

	var records []WorkRecord
	if err := q.Order("appointments.start_time DESC").Scan(&records).Error; err != nil {
		return nil, WorkSummary{}, err
	}

	return records, SummarizeWorks(records), nil
}

// SummarizeWorks folds a record set into its aggregates. Sums stay in
// decimal arithmetic end to end.
func SummarizeWorks(records []WorkRecord) WorkSummary {
	summary := WorkSummary{
		TotalWorks:             len(records),
		TotalPaid:              decimal.Zero,
		TotalCommission:        decimal.Zero,
		TotalPaidCommission:    decimal.Zero,
		TotalPendingCommission: decimal.Zero,
	}
	for _, r := range records {
		summary.TotalPaid = summary.TotalPaid.Add(r.PaidPrice)
		summary.TotalCommission = summary.TotalCommission.Add(r.CommissionAmount)
		if r.IsPaid {
			summary.TotalPaidCommission = summary.TotalPaidCommission.Add(r.CommissionAmount)
		} else {
			summary.TotalPendingCommission = summary.TotalPendingCommission.Add(r.CommissionAmount)
		}
	}
	return summary
}

// UpdateWorkPrice changes the charged price of a walk-in and recomputes its
// commission from the service's rate. Only the owning manicurist or an admin
// may do this. Returns the new commission amount.
func (s *WorkService) UpdateWorkPrice(ctx context.Context, workID uuid.UUID, actor Actor, newPrice decimal.Decimal) (decimal.Decimal, error) {
	var work models.Appointment
	err := s.db.WithContext(ctx).
		First(&work, "id = ? AND is_walk_in = ?", workID, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, ErrWorkNotFound
		}
		return decimal.Zero, err
	}

	if work.ManicuristID != actor.ID && !actor.IsAdmin() {
		return decimal.Zero, ErrForbidden
	}

	var service models.Service
	if err := s.db.WithContext(ctx).First(&service, "id = ?", work.ServiceID).Error; err != nil {
		return decimal.Zero, err
	}

	newAmount := ComputeCommission(newPrice, service.CommissionRate).Round(2)

	err = s.db.WithContext(ctx).Model(&models.Commission{}).
		Where("appointment_id = ?", workID).
		Updates(map[string]interface{}{
			"service_price":     newPrice,
			"commission_amount": newAmount,
		}).Error
	if err != nil {
		return decimal.Zero, err
	}

	return newAmount, nil
}

// DeleteWork removes a walk-in record and its commission, commission first.
func (s *WorkService) DeleteWork(ctx context.Context, workID uuid.UUID, actor Actor) error {
	var work models.Appointment
	err := s.db.WithContext(ctx).
		First(&work, "id = ? AND is_walk_in = ?", workID, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkNotFound
		}
		return err
	}

	if work.ManicuristID != actor.ID && !actor.IsAdmin() {
		return ErrForbidden
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("appointment_id = ?", workID).Delete(&models.Commission{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("id = ?", workID).Delete(&models.Appointment{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// MarkCommissionPaid settles the manual payment step for a walk-in
// commission, stamping the payment date.
func (s *WorkService) MarkCommissionPaid(ctx context.Context, workID uuid.UUID) error {
	now := time.Now()
	result := s.db.WithContext(ctx).Model(&models.Commission{}).
		Where("appointment_id = ?", workID).
		Updates(map[string]interface{}{
			"is_paid": true,
			"paid_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWorkNotFound
	}
	return nil
}
