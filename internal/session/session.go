package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Flash message kinds
const (
	FlashError   = "error"
	FlashSuccess = "success"
)

// Session is the server side state of one browser. Values are kept in
// memory and guarded by a mutex; concurrent writers to the same key race
// with last write wins.
type Session struct {
	id string

	mu       sync.Mutex
	values   map[string]any
	lastSeen time.Time
}

func newSession(now time.Time) *Session {
	return &Session{
		id:       uuid.NewString(),
		values:   make(map[string]any),
		lastSeen: now,
	}
}

// ID returns the identifier stored in the session cookie
func (s *Session) ID() string {
	return s.id
}

// Get returns the value stored under key
func (s *Session) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key
func (s *Session) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// SetFlash stores a one-shot message shown on the next page
func (s *Session) SetFlash(kind, message string) {
	s.Set(kind, message)
}

// TakeFlash returns the pending message of kind and clears it
func (s *Session) TakeFlash(kind string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, _ := s.values[kind].(string)
	delete(s.values, kind)
	return msg
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen) > ttl
}
