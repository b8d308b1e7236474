package entity

import "time"

// User is an application login.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, never the plain password
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
