package session

import "context"

// Repository stores planning sessions.
type Repository interface {
	// Create stores a new session.
	Create(ctx context.Context, sess *Session) error
	// Get retrieves a session by ID, or ErrSessionNotFound.
	Get(ctx context.Context, id string) (*Session, error)
	// Update replaces a stored session, or ErrSessionNotFound.
	Update(ctx context.Context, sess *Session) error
	// Delete removes a session by ID.
	Delete(ctx context.Context, id string) error
}
