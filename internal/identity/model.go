package identity

import "time"

// User represents a registered player account.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash []byte
	Verified     bool
	LastLogin    time.Time
	CreatedAt    time.Time
}

// Credentials carry a signup or login request.
type Credentials struct {
	Username string
	Email    string
	Password string
}
