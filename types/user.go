package types

import "time"

const (
	// RoleCurator is the default role granted at registration.
	RoleCurator = "curator"

	// RoleHeadCurator may delete any museum regardless of ownership.
	RoleHeadCurator = "head_curator"
)

// User represents an account in the system.
// Users curate the museums they create and propose edits to museums they do not.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"id"`

	// Username is the unique login name chosen by the user.
	// It is the external lookup key for authentication.
	Username string `json:"username" db:"username"`

	// Email is the user's email address.
	Email string `json:"email" db:"email"`

	// Role indicates the user's authorization level
	// within the system (e.g., "curator", "head_curator").
	Role string `json:"role" db:"role"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the user account.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Fields returns the public attributes of the user keyed by their wire names.
func (u User) Fields() map[string]any {
	return map[string]any{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
	}
}
