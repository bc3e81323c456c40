package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	// Monetary columns are decimal end to end to keep commission sums exact.
	Price          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	DurationMin    int             `gorm:"not null" json:"durationMin"`
	CommissionRate decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"commissionRate"` // percentage, 0-100

	Appointments []Appointment `gorm:"foreignKey:ServiceID" json:"-"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
