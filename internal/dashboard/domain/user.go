package domain

import "time"

// User is an account that can author posts and own projects. Username and
// email are unique; the email doubles as the token subject.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // argon2id PHC encoded, never the plaintext
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
