package data_access

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/DRainger/MyMDb/apperrors"
	"github.com/DRainger/MyMDb/models"
)

// omdbTimeout bounds every provider call; on expiry the whole request chain
// rejects upward with an upstream timeout error.
const omdbTimeout = 15 * time.Second

// OMDBClient talks to the external movie data provider. Responses are
// returned verbatim; only error shapes are normalized.
type OMDBClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewOMDBClient(apiKey, baseURL string) *OMDBClient {
	return &OMDBClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: omdbTimeout},
	}
}

// Search runs a title search. A "Movie not found!" reply is normalized into
// an empty successful result instead of an error.
func (c *OMDBClient) Search(ctx context.Context, params models.AdvancedSearchParams) (*models.SearchResult, error) {
	query := url.Values{}
	query.Set("apikey", c.apiKey)
	query.Set("s", params.Query)
	if params.Type != "" {
		query.Set("type", params.Type)
	}
	if params.Year != "" {
		query.Set("y", params.Year)
	}
	if params.Page > 1 {
		query.Set("page", strconv.Itoa(params.Page))
	}

	var result models.SearchResult
	if err := c.get(ctx, query, &result); err != nil {
		return nil, err
	}

	if result.Response == "False" {
		if isNotFoundMessage(result.Error) {
			return &models.SearchResult{Search: []models.MovieSummary{}, TotalResults: "0", Response: "True"}, nil
		}
		if isAuthMessage(result.Error) {
			return nil, apperrors.UpstreamAuth("%s", result.Error)
		}
		return nil, apperrors.Validation("%s", result.Error)
	}
	if result.Search == nil {
		result.Search = []models.MovieSummary{}
	}
	return &result, nil
}

// ByID fetches one record by IMDb ID. The caller validates the ID format;
// here "not found" from the provider maps to a NotFound error.
func (c *OMDBClient) ByID(ctx context.Context, imdbID string, fullPlot bool) (*models.MovieDetail, error) {
	query := url.Values{}
	query.Set("apikey", c.apiKey)
	query.Set("i", imdbID)
	if fullPlot {
		query.Set("plot", "full")
	}

	var detail models.MovieDetail
	if err := c.get(ctx, query, &detail); err != nil {
		return nil, err
	}

	if detail.Response == "False" {
		if isAuthMessage(detail.Error) {
			return nil, apperrors.UpstreamAuth("%s", detail.Error)
		}
		return nil, apperrors.NotFound("%s", detail.Error)
	}
	return &detail, nil
}

func (c *OMDBClient) get(ctx context.Context, query url.Values, dest any) error {
	if c.apiKey == "" {
		return apperrors.UpstreamAuth("OMDB API key not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return apperrors.UpstreamAuth("API key is invalid or expired")
	}
	if resp.StatusCode >= 500 {
		return apperrors.UpstreamUnavailable("provider returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return apperrors.UpstreamUnavailable("error decoding provider response: %v", err)
	}
	return nil
}

func mapTransportError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.UpstreamTimeout("request timeout - please try again")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.UpstreamTimeout("request timeout - please try again")
	}
	return apperrors.UpstreamUnavailable("network error - please check your connection")
}

func isNotFoundMessage(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "not found")
}

func isAuthMessage(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "api key") || strings.Contains(lower, "unauthorized")
}
