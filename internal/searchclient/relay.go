package searchclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/windoze95/recipe-search/internal/models"
)

// Searcher runs one recipe search against the relay.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.Hit, error)
}

// RelayError is a non-200 answer from the relay.
type RelayError struct {
	StatusCode int
	Message    string
	Details    json.RawMessage
}

// Error returns the error message.
func (e *RelayError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if len(e.Details) > 0 && string(e.Details) != "null" {
		return fmt.Sprintf("relay returned status %d: %s: %s", e.StatusCode, msg, string(e.Details))
	}
	return fmt.Sprintf("relay returned status %d: %s", e.StatusCode, msg)
}

// RelayClient calls the relay's recipe search endpoint.
type RelayClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRelayClient creates a client for the relay at baseURL. A nil httpClient
// selects a client without a timeout.
func NewRelayClient(baseURL string, httpClient *http.Client) (*RelayClient, error) {
	u, err := url.ParseRequestURI(baseURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid relay url %q", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &RelayClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}, nil
}

type relayErrorBody struct {
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details"`
}

// Search asks the relay for recipes matching query. Any 2xx answer is a
// result, and an empty hit list is a valid one.
func (c *RelayClient) Search(ctx context.Context, query string) ([]models.Hit, error) {
	params := url.Values{}
	params.Set("query", query)

	reqURL := fmt.Sprintf("%s/api/recipes?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create relay request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("relay request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read relay response: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		relayErr := &RelayError{StatusCode: resp.StatusCode}
		var eb relayErrorBody
		if json.Unmarshal(body, &eb) == nil {
			relayErr.Message = eb.Error
			relayErr.Details = eb.Details
		}
		return nil, relayErr
	}

	var result models.SearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse relay response: %w", err)
	}
	if result.Hits == nil {
		return []models.Hit{}, nil
	}
	return result.Hits, nil
}
