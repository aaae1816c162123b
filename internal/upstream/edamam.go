package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/windoze95/recipe-search/internal/config"
	"github.com/windoze95/recipe-search/internal/logger"
	"github.com/windoze95/recipe-search/internal/metrics"
	"go.uber.org/zap"
)

// DefaultEdamamEndpoint is the Edamam recipe search endpoint.
const DefaultEdamamEndpoint = "https://api.edamam.com/search"

// EdamamUserHeader carries the Edamam account user id.
const EdamamUserHeader = "Edamam-Account-User"

// EdamamProvider implements Provider against the Edamam recipe search API.
type EdamamProvider struct {
	creds      config.Credentials
	endpoint   string
	httpClient *http.Client
}

// NewEdamamProvider creates an Edamam provider. It refuses to build with
// incomplete credentials. An empty endpoint selects DefaultEdamamEndpoint and
// a nil client selects a client with the transport's default timeouts.
func NewEdamamProvider(creds config.Credentials, endpoint string, httpClient *http.Client) (*EdamamProvider, error) {
	if err := creds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid edamam credentials: %w", err)
	}
	if endpoint == "" {
		endpoint = DefaultEdamamEndpoint
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("invalid edamam endpoint %q: %w", endpoint, err)
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &EdamamProvider{
		creds:      creds,
		endpoint:   endpoint,
		httpClient: httpClient,
	}, nil
}

// SearchRecipes forwards query to Edamam and returns the raw JSON response.
// Transport failures, non-2xx statuses and non-JSON bodies return *Error.
func (p *EdamamProvider) SearchRecipes(ctx context.Context, query string) (*Response, error) {
	reqURL := p.requestURL(query, p.creds.AppKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, transportError(fmt.Errorf("failed to create edamam request: %w", err))
	}
	req.Header.Set(EdamamUserHeader, p.creds.UserID)
	req.Header.Set("Accept", "application/json")

	log := logger.Get()
	log.Info("edamam request", zap.String("url", p.requestURL(query, "REDACTED")))

	start := time.Now()
	resp, err := p.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(0, time.Since(start))
		return nil, transportError(fmt.Errorf("edamam request failed: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	metrics.ObserveUpstream(resp.StatusCode, time.Since(start))
	log.Info("edamam response", zap.Int("status", resp.StatusCode))
	if err != nil {
		return nil, transportError(fmt.Errorf("failed to read edamam response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode, body)
	}

	if !json.Valid(body) {
		return nil, &Error{
			StatusCode: resp.StatusCode,
			Details:    jsonString("malformed edamam response body"),
			Err:        fmt.Errorf("edamam returned a non-JSON body"),
		}
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// requestURL builds the upstream URL with the given app key value, so the
// same code produces both the real URL and the one written to the log.
func (p *EdamamProvider) requestURL(query, appKey string) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("app_id", p.creds.AppID)
	params.Set("app_key", appKey)
	return fmt.Sprintf("%s?%s", p.endpoint, params.Encode())
}
