package domain

import "time"

// User is an account in the auth subsystem. It lives outside the profile aggregate:
// the core only ever sees the resolved user identity.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser creates a user account with a generated ID and a hashed password.
func NewUser(id, username, passwordHash string) *User {
	return &User{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}
