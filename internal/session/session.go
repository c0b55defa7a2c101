// file: internal/session/session.go
// version: 1.1.0
// guid: 6c8d9e0f-1a2b-4c3d-9e4f-5a6b7c8d9e0f

package session

import "sync"

// Session is one operator's in-flight genre-fix workflow: the song currently
// awaiting genres and the ordered queue of song ids still to visit. Sessions
// are intentionally ephemeral and never persisted.
type Session struct {
	CurrentSongID int64
	Remaining     []int64
}

// Store holds genre-fix sessions keyed by operator id. The interface exists
// so tests can substitute their own backing; the session manager is the only
// writer for a given operator.
type Store interface {
	Get(userID string) (*Session, bool)
	Set(userID string, sess *Session)
	Delete(userID string)
}

// MemoryStore is the in-process Store used in production. Sessions do not
// survive a restart by design.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (s *MemoryStore) Get(userID string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	return sess, ok
}

func (s *MemoryStore) Set(userID string, sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = sess
}

func (s *MemoryStore) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
