package searchclient

import (
	"context"
	"sync"
	"time"
)

// SessionStore holds one Session per browser session id.
type SessionStore struct {
	relay    Searcher
	sessions sync.Map
}

// NewSessionStore creates an empty store whose sessions search through relay.
func NewSessionStore(relay Searcher) *SessionStore {
	return &SessionStore{relay: relay}
}

// Get returns the session for id, creating it on first use.
func (s *SessionStore) Get(id string) *Session {
	if v, ok := s.sessions.Load(id); ok {
		sess := v.(*Session)
		sess.Touch()
		return sess
	}
	actual, _ := s.sessions.LoadOrStore(id, NewSession(s.relay))
	return actual.(*Session)
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	n := 0
	s.sessions.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}

// Sweep removes sessions idle for longer than expiration and returns how
// many were removed. Sessions with a search in flight are kept.
func (s *SessionStore) Sweep(expiration time.Duration) int {
	cutoff := time.Now().Add(-expiration)
	removed := 0
	s.sessions.Range(func(key, value interface{}) bool {
		if value.(*Session).idleSince(cutoff) {
			s.sessions.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *SessionStore) RunSweeper(ctx context.Context, interval, expiration time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(expiration)
		}
	}
}
