package domain

import "time"

// User is a coordinator account able to sign in to the dashboard.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
