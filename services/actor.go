package services

import (
	"github.com/google/uuid"

	"nailstudio-backend/models"
)

// Actor identifies the authenticated user performing an operation, as
// asserted by the JWT middleware. Services trust this identity and only
// apply role and ownership checks on top of it.
type Actor struct {
	ID   uuid.UUID
	Role models.Role
}

func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }
