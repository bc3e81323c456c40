package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus enumerates the appointment lifecycle. Completed and
// Cancelled are terminal; re-opening is not supported.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "Scheduled"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
)

// Valid reports whether s is one of the three known statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Appointment covers both booked visits and walk-in work records. Walk-ins
// carry no client reference, only a display name.
type Appointment struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ClientID     *uuid.UUID `gorm:"type:uuid;index" json:"clientId,omitempty"`
	ManicuristID uuid.UUID  `gorm:"type:uuid;index;not null" json:"manicuristId"`
	ServiceID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"serviceId"`

	StartTime time.Time         `gorm:"index;not null" json:"startTime"`
	EndTime   time.Time         `gorm:"not null" json:"endTime"`
	Status    AppointmentStatus `gorm:"type:varchar(20);not null;default:'Scheduled'" json:"status"`

	IsWalkIn         bool   `gorm:"default:false" json:"isWalkIn"`
	WalkInClientName string `json:"walkInClientName,omitempty"`
	ClientComments   string `json:"clientComments,omitempty"`

	Service    *Service    `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Commission *Commission `gorm:"foreignKey:AppointmentID" json:"commission,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
