package api

import "time"

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Response DTOs

type LoginResponse struct {
	AccessToken string    `json:"accessToken"` // for non-cookie clients
	ExpiresAt   time.Time `json:"expiresAt"`
}

type MeResponse struct {
	Id    string  `json:"id"`
	Email *string `json:"email"`
	Role  string  `json:"role"`
}

type MediaResponse struct {
	URL string `json:"url"`
}
