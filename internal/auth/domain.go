// Package auth implements email/password authentication issuing redis-backed
// sessions. It exists so every row the sync layer touches has an owner; the
// dashboard pages redirect here when no session is present.
package auth

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated user account.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
