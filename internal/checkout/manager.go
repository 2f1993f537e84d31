package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultSessionTTL = 2 * time.Hour

// Manager keeps the live checkout sessions. Sessions older than the TTL are
// dropped whenever a new one starts.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	deps     Deps
	ttl      time.Duration
}

func NewManager(deps Deps, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
		deps:     deps.withDefaults(),
		ttl:      ttl,
	}
}

// Start opens a session over c and loads the user's addresses. The session
// is not registered if the addresses cannot be loaded.
func (m *Manager) Start(ctx context.Context, userID uuid.UUID, c Cart) (*Session, error) {
	s := NewSession(userID, c, m.deps)

	if err := s.LoadAddresses(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweepLocked()
	m.sessions[s.ID] = s

	return s, nil
}

// Get returns the session if it exists and belongs to userID. A session of
// another user is reported as not found.
func (m *Manager) Get(sessionID, userID uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok || s.UserID != userID {
		return nil, ErrSessionNotFound
	}

	return s, nil
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}

func (m *Manager) sweepLocked() {
	cutoff := m.deps.Clock().Add(-m.ttl)

	for id, s := range m.sessions {
		if s.CreatedAt.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}
