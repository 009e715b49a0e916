package model

import (
	"time"
)

const (
	RoleNormal    = "normal"
	RoleSuperuser = "superuser"
)

// ProviderGoogle is the OAuth provider whose subject id is linked on the user row.
const ProviderGoogle = "google"

type User struct {
	ID             string    `json:"id" db:"id"`
	Email          string    `json:"email" db:"email"`
	Name           *string   `json:"name" db:"name"`
	AvatarURL      *string   `json:"avatarUrl" db:"avatar_url"`
	Role           string    `json:"role" db:"role"`
	GoogleID       *string   `json:"googleId,omitempty" db:"google_id"`
	HashedPassword *string   `json:"-" db:"hashed_password"` // Not exposed
	EmailVerified  bool      `json:"emailVerified" db:"email_verified"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

func (u *User) IsSuperuser() bool {
	return u != nil && u.Role == RoleSuperuser
}

func ValidRole(role string) bool {
	return role == RoleNormal || role == RoleSuperuser
}

// UserSummary is the admin listing projection.
type UserSummary struct {
	ID            string    `json:"id" db:"id"`
	Email         string    `json:"email" db:"email"`
	Name          *string   `json:"name" db:"name"`
	Role          string    `json:"role" db:"role"`
	EmailVerified bool      `json:"emailVerified" db:"email_verified"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// RoleChange is returned after a superuser changes someone's role.
type RoleChange struct {
	ID    string  `json:"id" db:"id"`
	Email string  `json:"email" db:"email"`
	Name  *string `json:"name" db:"name"`
	Role  string  `json:"role" db:"role"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
