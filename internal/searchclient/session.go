package searchclient

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/windoze95/recipe-search/internal/logger"
	"github.com/windoze95/recipe-search/internal/models"
	"go.uber.org/zap"
)

// State is the observable state of a Session.
type State int

const (
	// Idle means no query has been submitted yet.
	Idle State = iota
	// Loading means a search is in flight.
	Loading
	// Settled means the last search resolved, successfully or not.
	Settled
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Settled:
		return "settled"
	default:
		return "unknown"
	}
}

var (
	// ErrEmptyQuery is returned for blank submissions. The session is left
	// untouched.
	ErrEmptyQuery = errors.New("search query is empty")
	// ErrSuperseded is returned when a newer submission replaced this one
	// before it resolved. Its response is discarded.
	ErrSuperseded = errors.New("search superseded by a newer submission")
)

// Snapshot is a point-in-time copy of a Session.
type Snapshot struct {
	State State
	Query string
	Hits  []models.Hit
	Err   error
}

// Session is the search client state machine for one user. Only one search is
// in flight at a time: a new submission cancels the previous one.
type Session struct {
	relay Searcher

	mu       sync.Mutex
	state    State
	query    string
	hits     []models.Hit
	err      error
	gen      uint64
	cancel   context.CancelFunc
	lastSeen time.Time
}

// NewSession creates an Idle session backed by relay.
func NewSession(relay Searcher) *Session {
	return &Session{
		relay:    relay,
		hits:     []models.Hit{},
		lastSeen: time.Now(),
	}
}

// Submit runs a search for query and blocks until it settles. Blank queries
// return ErrEmptyQuery without contacting the relay. On failure the previous
// hits are kept and the error is recorded in the snapshot.
func (s *Session) Submit(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return ErrEmptyQuery
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	s.gen++
	gen := s.gen
	s.cancel = cancel
	s.state = Loading
	s.query = query
	s.lastSeen = time.Now()
	s.mu.Unlock()

	hits, err := s.relay.Search(reqCtx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return ErrSuperseded
	}
	cancel()
	s.cancel = nil
	s.state = Settled
	s.lastSeen = time.Now()

	if err != nil {
		s.err = err
		logger.Get().Warn("recipe search failed", zap.String("query", query), zap.Error(err))
		return err
	}
	s.hits = hits
	s.err = nil
	return nil
}

// Snapshot returns the current state of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State: s.state,
		Query: s.query,
		Hits:  append([]models.Hit(nil), s.hits...),
		Err:   s.err,
	}
}

// Touch marks the session as used now.
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

// idleSince reports whether the session has no search in flight and has not
// been used since t.
func (s *Session) idleSince(t time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state != Loading && s.lastSeen.Before(t)
}
