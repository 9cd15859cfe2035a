package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents the users table
type User struct {
	ID         uuid.UUID
	Username   string
	Password   string
	DateJoined time.Time
}

// SafeUser is the only shape of a user handed back to callers.
type SafeUser struct {
	ID         uuid.UUID `json:"_id"`
	Username   string    `json:"username"`
	DateJoined time.Time `json:"dateJoined"`
}

// Credentials is the username/password pair supplied at login.
type Credentials struct {
	Username string
	Password string
}

// Patch carries the fields an update may replace. Nil fields are left alone.
type Patch struct {
	Password *string
}

// IsEmpty reports whether the patch would change nothing.
func (p Patch) IsEmpty() bool {
	return p.Password == nil
}

// Apply returns u with every non-nil patch field replaced.
func (p Patch) Apply(u User) User {
	if p.Password != nil {
		u.Password = *p.Password
	}
	return u
}

// Safe strips the password.
func (u User) Safe() SafeUser {
	return SafeUser{
		ID:         u.ID,
		Username:   u.Username,
		DateJoined: u.DateJoined,
	}
}
