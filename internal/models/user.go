package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Address is a saved delivery address. ID is the creation time in unix
// milliseconds, rendered as a decimal string.
type Address struct {
	ID      string `json:"id"`
	Address string `json:"address"`
}

type User struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Password    string    `json:"-"`
	DisplayName string    `json:"displayName"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	PhotoURL    string    `json:"photoURL,omitempty"`
	Addresses   []Address `json:"addresses"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Profile is the editable part of a user document.
type Profile struct {
	DisplayName string `json:"displayName"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	PhotoURL    string `json:"photoURL"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"displayName" validate:"required,max=100"`
	Phone       string `json:"phone" validate:"omitempty,max=30"`
	Address     string `json:"address" validate:"omitempty,max=500"`
}

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	DisplayName string `json:"displayName" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success        bool   `json:"success"`
	Token          string `json:"token,omitempty"`
	ExpiresIn      int    `json:"expires_in,omitempty"`
	RemainingTries int    `json:"remaining_tries,omitempty"`
	RetryAfter     int    `json:"retry_after,omitempty"`
	Message        string `json:"message,omitempty"`
}

// Claims carries the identity of a signed-in user. RegisteredClaims.ID is the
// token id used for sign-out revocation.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}
