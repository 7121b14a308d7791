package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User represents a user record in the database
type User struct {
	UserID       uuid.UUID  `db:"user_id"`       // Primary key
	Username     string     `db:"username"`      // Unique username
	Email        string     `db:"email"`         // Unique email
	FirstName    *string    `db:"first_name"`    // Optional first name
	LastName     *string    `db:"last_name"`     // Optional last name
	PasswordHash string     `db:"password_hash"` // Bcrypt hash, never the plaintext
	IsActive     bool       `db:"is_active"`     // Disabled accounts cannot pass the auth gate
	IsVerified   bool       `db:"is_verified"`   // Email verification flag
	CreatedAt    time.Time  `db:"created_at"`    // Creation timestamp
	UpdatedAt    time.Time  `db:"updated_at"`    // Last update timestamp
	LastLogin    *time.Time `db:"last_login"`    // Last successful authentication
}

// String keeps the password hash out of logs.
func (u User) String() string {
	var first, last string
	if u.FirstName != nil {
		first = *u.FirstName
	}
	if u.LastName != nil {
		last = *u.LastName
	}
	return fmt.Sprintf("<User(name=%s %s, email=%s)>", first, last, u.Email)
}

// Public returns the public-safe representation of the user.
func (u *User) Public() *UserPublic {
	return &UserPublic{
		UserID:     u.UserID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
		LastLogin:  u.LastLogin,
	}
}

// UserPublic is the user as exposed through the API
// swagger:model UserPublic
type UserPublic struct {
	UserID     uuid.UUID  `json:"id"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	FirstName  *string    `json:"first_name,omitempty"`
	LastName   *string    `json:"last_name,omitempty"`
	IsActive   bool       `json:"is_active"`
	IsVerified bool       `json:"is_verified"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
}
