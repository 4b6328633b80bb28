package dto

import "time"

// LoginRequest carries submitted credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns both authentication vehicles: the session token set
// as a browser cookie, and a signed bearer token for API clients.
type LoginResponse struct {
	UserID       uint      `json:"user_id"`
	Username     string    `json:"username"`
	SessionToken string    `json:"session_token"`
	BearerToken  string    `json:"bearer_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}
