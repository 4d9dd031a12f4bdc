package domain

import (
	"context"
	"time"
)

const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"

	UserTypeCandidate = "candidate"
	UserTypeEmployer  = "employer"
)

type User struct {
	ID                string     `json:"id"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"-"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	Phone             *string    `json:"phone,omitempty"`
	UserType          string     `json:"user_type"`
	Status            string     `json:"status"`
	ProfilePhotoURL   *string    `json:"profile_photo_url,omitempty"`
	PreferredLanguage string     `json:"preferred_language"`
	Timezone          string     `json:"timezone"`
	IsEmailVerified   bool       `json:"is_email_verified"`
	Is2FAEnabled      bool       `json:"is_2fa_enabled"`
	DeletedAt         *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	LastLoginAt       *time.Time `json:"last_login_at,omitempty"`
}

// PublicUser is the public-safe subset of a user record. Email, phone,
// status, and credentials never appear here.
type PublicUser struct {
	ID              string    `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	UserType        string    `json:"user_type"`
	ProfilePhotoURL *string   `json:"profile_photo_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		UserType:        u.UserType,
		ProfilePhotoURL: u.ProfilePhotoURL,
		CreatedAt:       u.CreatedAt,
	}
}

type SignupInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	UserType  string `json:"user_type" binding:"omitempty,oneof=candidate employer"`
}

type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	// GetByID returns (nil, nil) when no row matches.
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdatePhotoURL(ctx context.Context, id string, url string) error
	TouchLastLogin(ctx context.Context, id string) error
}

type AuthUsecase interface {
	Signup(ctx context.Context, in *SignupInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetCurrentUser(ctx context.Context, id string) (*User, error)
}
