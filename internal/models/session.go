package models

import (
	"time"
)

// Session represents an active user login session.
type Session struct {
	SessionID string    `json:"sessionId"` // Opaque token handed to the browser
	UserID    string    `json:"userId"`    // The ID of the user associated with this session
	Host      string    `json:"host"`      // The host of the the client
	UserAgent string    `json:"userAgent"` // The useragent of the request
	CreatedAt time.Time `json:"createdAt"` // When the session was created
	Expiry    time.Time `json:"expiry"`    // When the session expires
}

// IsExpired checks if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().UTC().After(s.Expiry)
}

// SessionMeta carries request details recorded alongside a new session.
type SessionMeta struct {
	Host      string
	UserAgent string
}
