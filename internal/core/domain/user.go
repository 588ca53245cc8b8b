package domain

import (
	"database/sql"
	"time"
)

// User represents a user of the application in the domain.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete

	// Refresh token details; only the hash is stored.
	RefreshTokenHash       sql.NullString `json:"-"`
	RefreshTokenExpiryTime sql.NullTime   `json:"-"`
}

// GoogleUserInfo holds the subset of the Google profile used to provision
// or match a local user during OAuth sign-in.
type GoogleUserInfo struct {
	Sub           string `json:"sub"` // Google's stable subject identifier
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
