package services

import "errors"

// Sentinel errors returned by the booking and work services. Controllers map
// these onto HTTP status codes; anything else is a 500.
var (
	ErrServiceNotFound     = errors.New("service not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrWorkNotFound        = errors.New("work record not found")
	ErrSlotConflict        = errors.New("manicurist is not available in that time slot")
	ErrForbidden           = errors.New("not allowed to access this resource")
	ErrInvalidStatus       = errors.New("invalid appointment status")
	ErrAlreadyFinalized    = errors.New("appointment is already completed or cancelled")
	ErrNotManicurist       = errors.New("user is not a manicurist")
)
