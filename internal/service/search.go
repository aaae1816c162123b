package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/windoze95/recipe-search/internal/logger"
	"github.com/windoze95/recipe-search/internal/metrics"
	"github.com/windoze95/recipe-search/internal/upstream"
	"go.uber.org/zap"
)

// MissingQueryMessage is returned when a search has no usable query.
const MissingQueryMessage = "Query parameter is required"

// Result is the outcome of one relay search. It is one of OK, ClientError
// or UpstreamError.
type Result interface {
	isResult()
}

// OK carries the provider response unmodified.
type OK struct {
	StatusCode int
	Body       []byte
}

// ClientError is an invalid request; no upstream call was made.
type ClientError struct {
	Message string
}

// UpstreamError is a failed upstream call with whatever detail was available.
type UpstreamError struct {
	Details json.RawMessage
}

func (OK) isResult()            {}
func (ClientError) isResult()   {}
func (UpstreamError) isResult() {}

// SearchService relays recipe searches to the upstream provider.
type SearchService struct {
	Provider upstream.Provider
}

// NewSearchService creates a new SearchService.
func NewSearchService(provider upstream.Provider) *SearchService {
	return &SearchService{Provider: provider}
}

// SearchRecipes validates query and forwards it, untouched, to the provider.
func (s *SearchService) SearchRecipes(ctx context.Context, query string) Result {
	if strings.TrimSpace(query) == "" {
		metrics.CountOutcome("client_error")
		return ClientError{Message: MissingQueryMessage}
	}

	resp, err := s.Provider.SearchRecipes(ctx, query)
	if err != nil {
		metrics.CountOutcome("upstream_error")
		logger.Get().Error("edamam search failed", zap.String("query", query), zap.Error(err))

		var upErr *upstream.Error
		if errors.As(err, &upErr) && len(upErr.Details) > 0 {
			return UpstreamError{Details: upErr.Details}
		}
		details, _ := json.Marshal(err.Error())
		return UpstreamError{Details: details}
	}

	metrics.CountOutcome("ok")
	return OK{StatusCode: resp.StatusCode, Body: resp.Body}
}
