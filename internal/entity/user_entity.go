package entity

import (
	"time"

	"github.com/google/uuid"
)

const AuthProviderGoogle = "google"

// User is created on first successful Google login and refreshed
// (email, display name, last-active) on every subsequent one.
type User struct {
	Id           uuid.UUID
	DisplayName  string
	Email        string
	AuthProvider string
	GoogleSub    string
	LastActiveAt time.Time
	CreatedAt    time.Time
}
