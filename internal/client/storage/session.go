package storage

import "context"

// Session represents a stored client session. Token lifecycle (refresh) is
// out of scope here: an expired token simply requires a new login.
type Session struct {
	Username    string `json:"username"`
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"` // unix seconds
}

// SessionStorage defines interface for storing the authenticated session
type SessionStorage interface {
	// SaveSession stores the session, replacing any previous one
	SaveSession(ctx context.Context, session *Session) error

	// GetSession retrieves the stored session
	// Returns ErrSessionNotFound if no session exists
	GetSession(ctx context.Context) (*Session, error)

	// DeleteSession removes the stored session (logout)
	DeleteSession(ctx context.Context) error
}
