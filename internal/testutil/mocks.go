package testutil

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/windoze95/recipe-search/internal/models"
	"github.com/windoze95/recipe-search/internal/upstream"
)

// --- MockProvider ---

// MockProvider is a mock implementation of upstream.Provider.
type MockProvider struct {
	SearchRecipesFunc func(ctx context.Context, query string) (*upstream.Response, error)

	mu      sync.Mutex
	Queries []string
}

func (m *MockProvider) SearchRecipes(ctx context.Context, query string) (*upstream.Response, error) {
	m.mu.Lock()
	m.Queries = append(m.Queries, query)
	m.mu.Unlock()
	if m.SearchRecipesFunc != nil {
		return m.SearchRecipesFunc(ctx, query)
	}
	return nil, fmt.Errorf("SearchRecipes not configured")
}

// Calls returns the number of SearchRecipes calls.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Queries)
}

// --- MockSearcher ---

// MockSearcher is a mock of the search client's relay dependency.
type MockSearcher struct {
	SearchFunc func(ctx context.Context, query string) ([]models.Hit, error)

	mu      sync.Mutex
	Queries []string
}

func (m *MockSearcher) Search(ctx context.Context, query string) ([]models.Hit, error) {
	m.mu.Lock()
	m.Queries = append(m.Queries, query)
	m.mu.Unlock()
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return nil, fmt.Errorf("Search not configured")
}

// Calls returns the number of Search calls.
func (m *MockSearcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Queries)
}

// --- StubServer ---

// StubServer is an httptest server that records every request it receives
// and answers with a fixed status and body.
type StubServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*http.Request
}

// NewStubServer starts a StubServer. Callers must Close it.
func NewStubServer(status int, body string) *StubServer {
	s := &StubServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Clone(context.Background()))
		s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	return s
}

// Requests returns the requests received so far.
func (s *StubServer) Requests() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*http.Request(nil), s.requests...)
}
