package session

import (
	"sync"
	"time"
)

// Store keeps every live session in memory. Idle sessions expire after
// ttl. Expiry is checked when a session is loaded, and creating a session
// drops every expired one at most once per ttl. There is no background
// sweeper.
type Store struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

// NewStore creates an empty session store
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Load returns the session for id, creating a fresh one when id is
// unknown or expired. The second result reports whether a new session
// was created.
func (s *Store) Load(id string) (*Session, bool) {
	now := s.now()

	if id != "" {
		s.mu.RLock()
		sess, ok := s.sessions[id]
		s.mu.RUnlock()

		if ok && !sess.expired(now, s.ttl) {
			sess.touch(now)
			return sess, false
		}
		if ok {
			s.Remove(id)
		}
	}

	sess := newSession(now)
	s.mu.Lock()
	s.sweep(now)
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	return sess, true
}

// sweep removes expired sessions. Callers hold mu.
func (s *Store) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < s.ttl {
		return
	}
	s.lastSweep = now
	for id, sess := range s.sessions {
		if sess.expired(now, s.ttl) {
			delete(s.sessions, id)
		}
	}
}

// Remove drops the session with id
func (s *Store) Remove(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of sessions held, including expired ones not
// yet swept
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// TTL returns the idle timeout
func (s *Store) TTL() time.Duration {
	return s.ttl
}
