package dto

import "time"

// TokenRequest entrada para emitir un token de servicio.
type TokenRequest struct {
	UserID     string `json:"user_id"`
	Role       string `json:"role"`
	ExpMinutes int    `json:"exp_minutes,omitempty"`
}

// TokenResponse token firmado y su caducidad.
type TokenResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}
