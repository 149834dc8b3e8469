package entities

import (
	"github.com/google/uuid"
)

// User mirrors the identity provider's subject. Credentials live with the
// identity provider, not here.
type User struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"` // "user", "admin"

	Timestamp
}
