package model

import (
	"errors"
	"time"
)

// MinPasswordLength is the shortest accepted admin password.
const MinPasswordLength = 8

// User is an admin account allowed to manage the catalog.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidatePassword enforces the password policy.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}
