package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Commission records the manicurist's cut for exactly one appointment. It is
// created in the same transaction as the appointment and ServicePrice is the
// price actually charged, which may differ from the service's list price.
type Commission struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"appointmentId"`
	ManicuristID  uuid.UUID `gorm:"type:uuid;index;not null" json:"manicuristId"`

	ServicePrice     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"servicePrice"`
	CommissionAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"commissionAmount"`

	IsPaid bool       `gorm:"default:false" json:"isPaid"`
	PaidAt *time.Time `json:"paidAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Commission) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
