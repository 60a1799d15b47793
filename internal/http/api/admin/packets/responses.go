package packets

import (
	visitor "github.com/Nixie-Tech-LLC/darshan/internal/http/api/visitor/packets"
)

// LoginResponse carries the admin token once the dashboard is open. Token
// is empty while the login is still being checked.
type LoginResponse struct {
	Token     string                  `json:"token,omitempty"`
	ExpiresAt string                  `json:"expires_at,omitempty"`
	Session   visitor.SessionResponse `json:"session"`
}
