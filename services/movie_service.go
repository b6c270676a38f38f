package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/DRainger/MyMDb/apperrors"
	"github.com/DRainger/MyMDb/metrics"
	"github.com/DRainger/MyMDb/models"
)

// imdbIDPattern is the provider's ID shape: tt followed by 7-8 digits.
var imdbIDPattern = regexp.MustCompile(`^tt\d{7,8}$`)

var validSearchTypes = map[string]bool{"movie": true, "series": true, "episode": true}

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// moviePopularQueries feed the home-page popular list: 2 hits per query,
// capped at 8.
var moviePopularQueries = []string{"Batman", "Inception", "The Dark Knight", "Interstellar"}

type OMDBAPI interface {
	Search(ctx context.Context, params models.AdvancedSearchParams) (*models.SearchResult, error)
	ByID(ctx context.Context, imdbID string, fullPlot bool) (*models.MovieDetail, error)
}

// MovieCache is the TTL cache in front of the provider. A nil cache runs
// every call against the provider directly.
type MovieCache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any) error
}

// MovieService validates inputs and proxies them to the external provider,
// consulting the cache first. Cache failures degrade to direct provider
// calls and are never surfaced to the caller.
type MovieService struct {
	omdb  OMDBAPI
	cache MovieCache
	log   *zap.Logger
}

func NewMovieService(omdb OMDBAPI, cache MovieCache, log *zap.Logger) *MovieService {
	return &MovieService{omdb: omdb, cache: cache, log: log}
}

func (s *MovieService) Search(ctx context.Context, query string) (*models.SearchResult, error) {
	return s.SearchAdvanced(ctx, models.AdvancedSearchParams{Query: query})
}

func (s *MovieService) SearchAdvanced(ctx context.Context, params models.AdvancedSearchParams) (*models.SearchResult, error) {
	params.Query = strings.TrimSpace(params.Query)
	if len(params.Query) < 2 {
		return nil, apperrors.Validation("query must be at least 2 characters long")
	}
	if params.Type != "" && !validSearchTypes[params.Type] {
		params.Type = ""
	}
	if params.Year != "" && !yearPattern.MatchString(params.Year) {
		params.Year = ""
	}
	if params.Page < 1 {
		params.Page = 1
	}

	key := fmt.Sprintf("omdb:s:%s|%s|%s|%d",
		strings.ToLower(params.Query), params.Type, params.Year, params.Page)

	var result models.SearchResult
	if s.cacheGet(ctx, key, &result) {
		return &result, nil
	}

	fresh, err := s.omdb.Search(ctx, params)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, fresh)
	return fresh, nil
}

func (s *MovieService) GetByID(ctx context.Context, imdbID string) (*models.MovieDetail, error) {
	return s.getByID(ctx, imdbID, false)
}

func (s *MovieService) GetByIDFullPlot(ctx context.Context, imdbID string) (*models.MovieDetail, error) {
	return s.getByID(ctx, imdbID, true)
}

func (s *MovieService) getByID(ctx context.Context, imdbID string, fullPlot bool) (*models.MovieDetail, error) {
	imdbID = strings.TrimSpace(imdbID)
	// Pure format check, performed before any network call.
	if !imdbIDPattern.MatchString(imdbID) {
		return nil, apperrors.Validation("incorrect IMDb ID format")
	}

	plot := "short"
	if fullPlot {
		plot = "full"
	}
	key := fmt.Sprintf("omdb:i:%s:%s", imdbID, plot)

	var detail models.MovieDetail
	if s.cacheGet(ctx, key, &detail) {
		return &detail, nil
	}

	fresh, err := s.omdb.ByID(ctx, imdbID, fullPlot)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, fresh)
	return fresh, nil
}

// Popular gathers the home-page list from a fixed set of well-known title
// queries. Individual query failures are logged and skipped.
func (s *MovieService) Popular(ctx context.Context) (*models.SearchResult, error) {
	var hits []models.MovieSummary
	for _, query := range moviePopularQueries {
		result, err := s.Search(ctx, query)
		if err != nil {
			s.log.Warn("popular query failed", zap.String("query", query), zap.Error(err))
			continue
		}
		n := len(result.Search)
		if n > 2 {
			n = 2
		}
		hits = append(hits, result.Search[:n]...)
	}

	unique := dedupeSummaries(hits, nil)
	if len(unique) > 8 {
		unique = unique[:8]
	}

	return &models.SearchResult{
		Search:       unique,
		TotalResults: fmt.Sprintf("%d", len(unique)),
		Response:     "True",
	}, nil
}

func (s *MovieService) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.GetJSON(ctx, key, dest)
	if err != nil {
		metrics.UpstreamCacheHits.WithLabelValues("error").Inc()
		s.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if hit {
		metrics.UpstreamCacheHits.WithLabelValues("hit").Inc()
		return true
	}
	metrics.UpstreamCacheHits.WithLabelValues("miss").Inc()
	return false
}

func (s *MovieService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, value); err != nil {
		s.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// dedupeSummaries keeps the first occurrence of each IMDb ID, skipping any
// IDs already present in exclude.
func dedupeSummaries(movies []models.MovieSummary, exclude map[string]bool) []models.MovieSummary {
	seen := map[string]bool{}
	for id := range exclude {
		seen[id] = true
	}
	unique := []models.MovieSummary{}
	for _, movie := range movies {
		if movie.ImdbID == "" || seen[movie.ImdbID] {
			continue
		}
		seen[movie.ImdbID] = true
		unique = append(unique, movie)
	}
	return unique
}
