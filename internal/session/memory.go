package session

import "sync"

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]Session
}

// NewMemoryStore constructs the in-memory Store implementation used by a
// single-process deployment.
func NewMemoryStore() Store {
	return &memoryStore{
		sessions: make(map[int64]Session),
	}
}

// Get returns a copy of the session for a user if one exists.
func (m *memoryStore) Get(userID int64) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[userID]
	return s, ok
}

// Put stores the session, replacing any previous one for the same user.
func (m *memoryStore) Put(s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[s.UserID] = s
}

// Delete removes the session for a user.
func (m *memoryStore) Delete(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
}

// Reset drops every session.
func (m *memoryStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions = make(map[int64]Session)
}

// InProgress reports whether the user has an active session.
func (m *memoryStore) InProgress(userID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.sessions[userID]
	return ok
}
