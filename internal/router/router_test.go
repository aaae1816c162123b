package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/recipe-search/internal/config"
	"github.com/windoze95/recipe-search/internal/searchclient"
	"github.com/windoze95/recipe-search/internal/testutil"
	"github.com/windoze95/recipe-search/internal/upstream"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRelay(t *testing.T, origins []string, stubURL string) *gin.Engine {
	t.Helper()
	provider, err := upstream.NewEdamamProvider(testutil.TestCredentials(), stubURL, nil)
	if err != nil {
		t.Fatalf("NewEdamamProvider() error: %v", err)
	}
	cfg := &config.Config{EnvVars: config.EnvVars{AllowedOrigins: origins}}
	return SetupRouter(cfg, provider)
}

func TestSetupRouter_Ping(t *testing.T) {
	r := newRelay(t, nil, "http://127.0.0.1:1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "pong") {
		t.Errorf("GET /ping = %d %s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("responses should carry X-Request-ID")
	}
}

func TestSetupRouter_RelaysSearch(t *testing.T) {
	stub := testutil.NewStubServer(http.StatusOK, testutil.ChickenSoupBody)
	defer stub.Close()
	r := newRelay(t, nil, stub.URL)

	req := httptest.NewRequest("GET", "/api/recipes?query=chicken%20soup", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	if w.Body.String() != testutil.ChickenSoupBody {
		t.Errorf("body = %s", w.Body.String())
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestSetupRouter_UpstreamDown(t *testing.T) {
	r := newRelay(t, nil, "http://127.0.0.1:1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/recipes?query=soup", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

func TestSetupRouter_RestrictedOrigins(t *testing.T) {
	stub := testutil.NewStubServer(http.StatusOK, testutil.EmptyBody)
	defer stub.Close()
	r := newRelay(t, []string{"http://localhost:3000", ""}, stub.URL)

	req := httptest.NewRequest("GET", "/api/recipes?query=soup", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("foreign origin status = %d, want %d", w.Code, http.StatusForbidden)
	}

	req = httptest.NewRequest("GET", "/api/recipes?query=soup", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestSetupRouter_Metrics(t *testing.T) {
	r := newRelay(t, nil, "http://127.0.0.1:1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "recipe_upstream_request_duration_seconds") {
		t.Errorf("GET /metrics = %d", w.Code)
	}
}

func TestSetupClientRouter_RendersPage(t *testing.T) {
	cfg := &config.ClientConfig{}
	store := searchclient.NewSessionStore(&testutil.MockSearcher{})
	r, err := SetupClientRouter(cfg, store)
	if err != nil {
		t.Fatalf("SetupClientRouter() error: %v", err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `placeholder="Search for recipes..."`) {
		t.Error("page should render the search box")
	}
}
