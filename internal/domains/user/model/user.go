package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an account in the catalog. Admins may edit any comment;
// everyone else only their own.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`

	IsAdmin           bool    `json:"is_admin" db:"is_admin"`
	ProfilePictureURL *string `json:"profile_picture_url" db:"profile_picture_url"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Role returns the role string carried in JWT claims.
func (u *User) Role() string {
	if u.IsAdmin {
		return "admin"
	}
	return "user"
}
