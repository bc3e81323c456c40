package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nailstudio-backend/models"
)

func TestCreateWorkUsesOverridePrice(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewWorkService(db)

	serviceID := uuid.New()
	workDate := time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)
	override := dec("30000")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "services"`).
		WillReturnRows(serviceRow(serviceID, "50000", "40", 60))
	mock.ExpectExec(`INSERT INTO "appointments"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "commissions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	work, err := svc.CreateWork(context.Background(), CreateWorkParams{
		ManicuristID: uuid.New(),
		ServiceID:    serviceID,
		WorkDate:     workDate,
		CustomPrice:  &override,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	// Commission follows the charged price, not the list price.
	assert.True(t, work.Commission.CommissionAmount.Equal(dec("12000")),
		"got %s", work.Commission.CommissionAmount)
	assert.True(t, work.Commission.ServicePrice.Equal(dec("30000")))
	assert.False(t, work.Commission.IsPaid)

	assert.Equal(t, models.StatusCompleted, work.Status)
	assert.True(t, work.IsWalkIn)
	assert.Nil(t, work.ClientID)
	assert.Equal(t, defaultWalkInName, work.WalkInClientName)
	assert.Equal(t, workDate.Add(time.Hour), work.EndTime)
}

func TestCreateWorkDefaultPrice(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewWorkService(db)

	serviceID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "services"`).
		WillReturnRows(serviceRow(serviceID, "50000", "40", 60))
	mock.ExpectExec(`INSERT INTO "appointments"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "commissions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	work, err := svc.CreateWork(context.Background(), CreateWorkParams{
		ManicuristID: uuid.New(),
		ServiceID:    serviceID,
		WorkDate:     time.Now(),
		ClientName:   "Maria",
	})
	require.NoError(t, err)

	assert.True(t, work.Commission.CommissionAmount.Equal(dec("20000")))
	assert.Equal(t, "Maria", work.WalkInClientName)
}

func TestCreateWorkStoresCurrencyScaleCommission(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewWorkService(db)

	serviceID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "services"`).
		WillReturnRows(serviceRow(serviceID, "100.10", "33.33", 60))
	mock.ExpectExec(`INSERT INTO "appointments"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "commissions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	work, err := svc.CreateWork(context.Background(), CreateWorkParams{
		ManicuristID: uuid.New(),
		ServiceID:    serviceID,
		WorkDate:     time.Now(),
	})
	require.NoError(t, err)

	// The exact commission is 33.363333; the persisted amount is rounded to
	// two currency places.
	assert.True(t, work.Commission.CommissionAmount.Equal(dec("33.36")),
		"got %s", work.Commission.CommissionAmount)
	require.Equal(t, int32(-2), work.Commission.CommissionAmount.Exponent())
}

func TestCreateWorkAsAdminRejectsNonManicurist(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewWorkService(db)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.CreateWorkAsAdmin(context.Background(), CreateWorkParams{
		ManicuristID: uuid.New(),
		ServiceID:    uuid.New(),
		WorkDate:     time.Now(),
	})
	assert.ErrorIs(t, err, ErrNotManicurist)
}

func TestUpdateWorkPriceRecomputesCommission(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewWorkService(db)

	workID := uuid.New()
	manicuristID := uuid.New()
	serviceID := uuid.New()

	workRows := sqlmock.NewRows([]string{"id", "manicurist_id", "service_id", "status", "is_walk_in"}).
		AddRow(workID.String(), manicuristID.String(), serviceID.String(), "Completed", true)
	mock.ExpectQuery(`SELECT \* FROM "appointments"`).WillReturnRows(workRows)
	mock.ExpectQuery(`SELECT \* FROM "services"`).
		WillReturnRows(serviceRow(serviceID, "50000", "40", 60))
	mock.ExpectExec(`UPDATE "commissions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	actor := Actor{ID: manicuristID, Role: models.RoleManicurist}
	newAmount, err := svc.UpdateWorkPrice(context.Background(), workID, actor, dec("30000"))
	require.NoError(t, err)
	assert.True(t, newAmount.Equal(dec("12000")), "got %s", newAmount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateWorkPriceForbiddenForOtherManicurist(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewWorkService(db)

	workID := uuid.New()

	workRows := sqlmock.NewRows([]string{"id", "manicurist_id", "service_id", "status", "is_walk_in"}).
		AddRow(workID.String(), uuid.NewString(), uuid.NewString(), "Completed", true)
	mock.ExpectQuery(`SELECT \* FROM "appointments"`).WillReturnRows(workRows)

	actor := Actor{ID: uuid.New(), Role: models.RoleManicurist}
	_, err := svc.UpdateWorkPrice(context.Background(), workID, actor, dec("30000"))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMarkCommissionPaidUnknownWork(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewWorkService(db)

	mock.ExpectExec(`UPDATE "commissions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.MarkCommissionPaid(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrWorkNotFound)
}

func TestSummarizeWorks(t *testing.T) {
	paidAt := time.Now()
	records := []WorkRecord{
		{PaidPrice: dec("50000"), CommissionAmount: dec("20000"), IsPaid: true, PaidAt: &paidAt},
		{PaidPrice: dec("30000"), CommissionAmount: dec("12000"), IsPaid: false},
		{PaidPrice: dec("45000"), CommissionAmount: dec("18000"), IsPaid: false},
	}

	summary := SummarizeWorks(records)

	assert.Equal(t, 3, summary.TotalWorks)
	assert.True(t, summary.TotalPaid.Equal(dec("125000")), "got %s", summary.TotalPaid)
	assert.True(t, summary.TotalCommission.Equal(dec("50000")), "got %s", summary.TotalCommission)
	assert.True(t, summary.TotalPaidCommission.Equal(dec("20000")))
	assert.True(t, summary.TotalPendingCommission.Equal(dec("30000")))
}

func TestSummarizeWorksEmpty(t *testing.T) {
	summary := SummarizeWorks(nil)

	assert.Equal(t, 0, summary.TotalWorks)
	assert.True(t, summary.TotalPaid.Equal(decimal.Zero))
	assert.True(t, summary.TotalCommission.Equal(decimal.Zero))
	assert.True(t, summary.TotalPaidCommission.Equal(decimal.Zero))
	assert.True(t, summary.TotalPendingCommission.Equal(decimal.Zero))
}
