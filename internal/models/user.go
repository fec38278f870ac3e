package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// for sign in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// for sign up
type SignupRequest struct {
	FullName string `json:"fullName" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// for both sign in and sign up responses
type AuthResponse struct {
	AccessToken string `json:"accessToken,omitempty"`
	Message     string `json:"message,omitempty"`
}

// JWT claims read from the access token, never verified client side
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type Session struct {
	AccessToken string    `json:"accessToken"`
	Subject     string    `json:"subject,omitempty"`
	Email       string    `json:"email,omitempty"`
	ExpiresAt   time.Time `json:"expiresAt,omitzero"`
}

func (s *Session) Expired(now time.Time) bool {
	if s == nil || s.AccessToken == "" {
		return true
	}

	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
