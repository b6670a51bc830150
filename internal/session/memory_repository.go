package session

import (
	"context"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository. Sessions
// are process-scoped; there is no cross-session shared state beyond the map
// itself, which the mutex guards against concurrent HTTP handlers.
type InMemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewInMemoryRepository creates a new in-memory session repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		sessions: make(map[string]*Session),
	}
}

// Create stores a new session.
func (r *InMemoryRepository) Create(_ context.Context, sess *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sess.ID] = sess.clone()
	return nil
}

// Get retrieves a session by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess.clone(), nil
}

// Update replaces a stored session.
func (r *InMemoryRepository) Update(_ context.Context, sess *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[sess.ID]; !ok {
		return ErrSessionNotFound
	}
	r.sessions[sess.ID] = sess.clone()
	return nil
}

// Delete removes a session by ID.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}

// Ensure InMemoryRepository implements Repository.
var _ Repository = (*InMemoryRepository)(nil)
