package upstream_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/windoze95/recipe-search/internal/config"
	"github.com/windoze95/recipe-search/internal/logger"
	"github.com/windoze95/recipe-search/internal/testutil"
	"github.com/windoze95/recipe-search/internal/upstream"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newProvider(t *testing.T, endpoint string) *upstream.EdamamProvider {
	t.Helper()
	p, err := upstream.NewEdamamProvider(testutil.TestCredentials(), endpoint, nil)
	if err != nil {
		t.Fatalf("NewEdamamProvider() error: %v", err)
	}
	return p
}

func TestNewEdamamProvider_MissingCredentials(t *testing.T) {
	cases := []config.Credentials{
		{AppKey: "k", UserID: "u"},
		{AppID: "a", UserID: "u"},
		{AppID: "a", AppKey: "k"},
	}
	for _, creds := range cases {
		if _, err := upstream.NewEdamamProvider(creds, "", nil); err == nil {
			t.Errorf("NewEdamamProvider(%+v) should refuse incomplete credentials", creds)
		}
	}
}

func TestNewEdamamProvider_InvalidEndpoint(t *testing.T) {
	if _, err := upstream.NewEdamamProvider(testutil.TestCredentials(), "not a url", nil); err == nil {
		t.Error("NewEdamamProvider should reject a relative endpoint")
	}
}

func TestSearchRecipes_InjectsQueryAndCredentials(t *testing.T) {
	stub := testutil.NewStubServer(http.StatusOK, testutil.ChickenSoupBody)
	defer stub.Close()

	p := newProvider(t, stub.URL+"/search")
	if _, err := p.SearchRecipes(context.Background(), "chicken soup & rice"); err != nil {
		t.Fatalf("SearchRecipes() error: %v", err)
	}

	reqs := stub.Requests()
	if len(reqs) != 1 {
		t.Fatalf("upstream calls = %d, want 1", len(reqs))
	}
	req := reqs[0]
	q := req.URL.Query()
	if got := q.Get("q"); got != "chicken soup & rice" {
		t.Errorf("q = %q, want exact query", got)
	}
	if got := q.Get("app_id"); got != "test-app-id" {
		t.Errorf("app_id = %q", got)
	}
	if got := q.Get("app_key"); got != "test-app-key" {
		t.Errorf("app_key = %q", got)
	}
	if got := req.Header.Get(upstream.EdamamUserHeader); got != "test-user-id" {
		t.Errorf("%s = %q", upstream.EdamamUserHeader, got)
	}
	if req.URL.Path != "/search" {
		t.Errorf("path = %q, want /search", req.URL.Path)
	}
}

func TestSearchRecipes_PassesBodyThrough(t *testing.T) {
	stub := testutil.NewStubServer(http.StatusOK, testutil.ChickenSoupBody)
	defer stub.Close()

	resp, err := newProvider(t, stub.URL).SearchRecipes(context.Background(), "chicken soup")
	if err != nil {
		t.Fatalf("SearchRecipes() error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if string(resp.Body) != testutil.ChickenSoupBody {
		t.Errorf("Body = %s, want verbatim upstream body", resp.Body)
	}
}

func TestSearchRecipes_NonSuccessStatus(t *testing.T) {
	stub := testutil.NewStubServer(http.StatusUnauthorized, `{"status":"error","message":"Unauthorized app_id"}`)
	defer stub.Close()

	_, err := newProvider(t, stub.URL).SearchRecipes(context.Background(), "soup")
	var upErr *upstream.Error
	if !errors.As(err, &upErr) {
		t.Fatalf("error = %v, want *upstream.Error", err)
	}
	if upErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", upErr.StatusCode)
	}
	var details map[string]string
	if err := json.Unmarshal(upErr.Details, &details); err != nil {
		t.Fatalf("Details should be the upstream JSON body: %v", err)
	}
	if details["message"] != "Unauthorized app_id" {
		t.Errorf("details.message = %q", details["message"])
	}
}

func TestSearchRecipes_NonJSONErrorBody(t *testing.T) {
	stub := testutil.NewStubServer(http.StatusBadGateway, "bad gateway")
	defer stub.Close()

	_, err := newProvider(t, stub.URL).SearchRecipes(context.Background(), "soup")
	var upErr *upstream.Error
	if !errors.As(err, &upErr) {
		t.Fatalf("error = %v, want *upstream.Error", err)
	}
	var details string
	if err := json.Unmarshal(upErr.Details, &details); err != nil {
		t.Fatalf("Details should be a JSON string: %v", err)
	}
	if details != "bad gateway" {
		t.Errorf("details = %q, want 'bad gateway'", details)
	}
}

func TestSearchRecipes_MalformedBody(t *testing.T) {
	stub := testutil.NewStubServer(http.StatusOK, `{"hits": [`)
	defer stub.Close()

	_, err := newProvider(t, stub.URL).SearchRecipes(context.Background(), "soup")
	var upErr *upstream.Error
	if !errors.As(err, &upErr) {
		t.Fatalf("error = %v, want *upstream.Error", err)
	}
}

func TestSearchRecipes_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	_, err := newProvider(t, endpoint).SearchRecipes(context.Background(), "soup")
	var upErr *upstream.Error
	if !errors.As(err, &upErr) {
		t.Fatalf("error = %v, want *upstream.Error", err)
	}
	if upErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for transport failures", upErr.StatusCode)
	}
	if len(upErr.Details) == 0 {
		t.Error("Details should carry the transport error message")
	}
}

func TestSearchRecipes_LogsRedactedURLAndStatus(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := logger.ReplaceForTest(zap.New(core))
	defer restore()

	stub := testutil.NewStubServer(http.StatusOK, testutil.ChickenSoupBody)
	defer stub.Close()

	if _, err := newProvider(t, stub.URL).SearchRecipes(context.Background(), "chicken soup"); err != nil {
		t.Fatalf("SearchRecipes() error: %v", err)
	}

	reqEntries := logs.FilterMessage("edamam request").All()
	if len(reqEntries) != 1 {
		t.Fatalf("edamam request entries = %d, want 1", len(reqEntries))
	}
	rawURL, _ := reqEntries[0].ContextMap()["url"].(string)
	logged, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("logged url %q does not parse: %v", rawURL, err)
	}
	q := logged.Query()
	if q.Get("app_key") != "REDACTED" {
		t.Errorf("logged app_key = %q, want REDACTED", q.Get("app_key"))
	}
	if strings.Contains(rawURL, "test-app-key") {
		t.Errorf("logged url leaks the app key: %s", rawURL)
	}
	if q.Get("q") != "chicken soup" || q.Get("app_id") != "test-app-id" {
		t.Errorf("logged url = %s, want query and app id", rawURL)
	}

	respEntries := logs.FilterMessage("edamam response").All()
	if len(respEntries) != 1 {
		t.Fatalf("edamam response entries = %d, want 1", len(respEntries))
	}
	if got := respEntries[0].ContextMap()["status"]; got != int64(http.StatusOK) {
		t.Errorf("logged status = %v (%T), want 200", got, got)
	}
}
