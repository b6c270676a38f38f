package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/DRainger/MyMDb/models"
)

// recommendationTier is the explicit fallback chain: each tier is tried in
// order and the chain ends at the static tier, which always yields results.
type recommendationTier int

const (
	tierPersonalized recommendationTier = iota
	tierPopular
	tierStatic
)

const trendingWindow = 7 * 24 * time.Hour

var popularQueries = []string{
	"Batman",
	"Inception",
	"The Dark Knight",
	"Interstellar",
	"The Shawshank Redemption",
	"Pulp Fiction",
	"Forrest Gump",
	"The Matrix",
}

var acclaimedQueries = []string{
	"The Shawshank Redemption",
	"The Godfather",
	"Pulp Fiction",
	"Schindler's List",
	"12 Angry Men",
}

var genreTopUpQueries = []string{"action", "drama", "comedy", "thriller", "sci-fi"}

// defaultGenres seed the preference profile when none of the user's rated
// movies can be resolved with the provider.
var defaultGenres = []string{"Action", "Drama", "Comedy", "Thriller", "Sci-Fi"}

// staticFallback guarantees the recommendation endpoints never come back
// empty, even with the provider fully unavailable.
var staticFallback = []models.MovieSummary{
	{
		ImdbID: "tt0468569",
		Title:  "The Dark Knight",
		Year:   "2008",
		Type:   "movie",
		Poster: "https://m.media-amazon.com/images/M/MV5BMTMxNTMwODM0NF5BMl5BanBnXkFtZTcwODAyMTk2Mw@@._V1_SX300.jpg",
	},
	{
		ImdbID: "tt1375666",
		Title:  "Inception",
		Year:   "2010",
		Type:   "movie",
		Poster: "https://m.media-amazon.com/images/M/MV5BMjAxMzY3NjcxNF5BMl5BanBnXkFtZTcwNTI5OTM0Mw@@._V1_SX300.jpg",
	},
	{
		ImdbID: "tt0111161",
		Title:  "The Shawshank Redemption",
		Year:   "1994",
		Type:   "movie",
		Poster: "https://m.media-amazon.com/images/M/MV5BNDE3ODcxYzMtY2YzZC00NmNlLWJiNDMtZDViZWM2MzIxZDYwXkEyXkFqcGdeQXVyNjAwNDUxODI@._V1_SX300.jpg",
	},
}

// MovieFinder is the slice of the movie service recommendations consume.
type MovieFinder interface {
	Search(ctx context.Context, query string) (*models.SearchResult, error)
	GetByID(ctx context.Context, imdbID string) (*models.MovieDetail, error)
}

type recommendationRatingStore interface {
	ForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Rating, error)
	CountsSince(ctx context.Context, since time.Time, limit int) ([]models.TrendingCount, error)
}

// RecommendationService assembles candidate lists from provider searches
// seeded by the user's rating history. It is a gathering pipeline, not a
// ranking model; every call runs the chain synchronously.
type RecommendationService struct {
	movies  MovieFinder
	ratings recommendationRatingStore
	log     *zap.Logger
}

func NewRecommendationService(movies MovieFinder, ratings recommendationRatingStore, log *zap.Logger) *RecommendationService {
	return &RecommendationService{movies: movies, ratings: ratings, log: log}
}

// ForUser walks the tier chain Personalized -> Popular -> Static. Users
// without ratings start at the popular tier. The result can be empty only if
// limit is zero; provider failures degrade tier by tier instead of erroring.
func (s *RecommendationService) ForUser(ctx context.Context, userID primitive.ObjectID, limit int) []models.MovieSummary {
	if limit < 1 {
		limit = 10
	}

	ratings, err := s.ratings.ForUser(ctx, userID)
	if err != nil {
		s.log.Warn("loading rating history failed", zap.String("user_id", userID.Hex()), zap.Error(err))
		ratings = nil
	}

	tier := tierPersonalized
	if len(ratings) == 0 {
		tier = tierPopular
	}

	for ; ; tier++ {
		switch tier {
		case tierPersonalized:
			if recs := s.personalized(ctx, ratings, limit); len(recs) > 0 {
				return recs
			}
			s.log.Info("personalized tier exhausted, falling back",
				zap.String("user_id", userID.Hex()))
		case tierPopular:
			if recs := s.Popular(ctx, limit); len(recs) > 0 {
				return recs
			}
		default:
			return capSummaries(staticFallback, limit)
		}
	}
}

// personalized derives a preference profile from the rating history and
// gathers candidates per preference term, excluding everything the user has
// already rated.
func (s *RecommendationService) personalized(ctx context.Context, ratings []models.Rating, limit int) []models.MovieSummary {
	rated := map[string]bool{}
	for _, r := range ratings {
		rated[r.MovieID] = true
	}

	var candidates []models.MovieSummary

	for _, genre := range s.preferredGenres(ctx, ratings) {
		result, err := s.movies.Search(ctx, genre)
		if err != nil {
			s.log.Warn("genre search failed", zap.String("genre", genre), zap.Error(err))
			continue
		}
		candidates = append(candidates, firstN(result.Search, 3)...)
	}

	for _, r := range highlyRated(ratings, 3) {
		detail, err := s.movies.GetByID(ctx, r.MovieID)
		if err != nil || detail.Title == "" {
			s.log.Warn("seed detail lookup failed", zap.String("movie_id", r.MovieID), zap.Error(err))
			continue
		}
		result, err := s.movies.Search(ctx, detail.Title)
		if err != nil {
			continue
		}
		candidates = append(candidates, firstN(result.Search, 2)...)
	}

	return capSummaries(dedupeSummaries(candidates, rated), limit)
}

// preferredGenres reads genres off the details of the user's top-rated
// movies (at most 3 provider lookups) and ranks them by frequency. The
// default list is used only when nothing can be resolved.
func (s *RecommendationService) preferredGenres(ctx context.Context, ratings []models.Rating) []string {
	top := make([]models.Rating, len(ratings))
	copy(top, ratings)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Rating > top[j].Rating })
	if len(top) > 3 {
		top = top[:3]
	}

	counts := map[string]int{}
	var order []string
	for _, r := range top {
		detail, err := s.movies.GetByID(ctx, r.MovieID)
		if err != nil {
			continue
		}
		for _, genre := range splitGenres(detail.Genre) {
			if counts[genre] == 0 {
				order = append(order, genre)
			}
			counts[genre]++
		}
	}
	if len(order) == 0 {
		return defaultGenres
	}

	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > 5 {
		order = order[:5]
	}
	return order
}

// Popular gathers from the fixed well-known queries (2 hits each), tops up
// with genre queries when short, and ends at the static tier when the
// provider yields nothing at all.
func (s *RecommendationService) Popular(ctx context.Context, limit int) []models.MovieSummary {
	if limit < 1 {
		limit = 10
	}

	var hits []models.MovieSummary
	for _, query := range popularQueries {
		result, err := s.movies.Search(ctx, query)
		if err != nil {
			s.log.Warn("popular search failed", zap.String("query", query), zap.Error(err))
			continue
		}
		hits = append(hits, firstN(result.Search, 2)...)
	}

	unique := dedupeSummaries(hits, nil)
	unique = s.topUp(ctx, unique, genreTopUpQueries, limit)

	if len(unique) == 0 {
		return capSummaries(staticFallback, limit)
	}
	return capSummaries(unique, limit)
}

// ForNewUser mixes popular picks with acclaimed classics.
func (s *RecommendationService) ForNewUser(ctx context.Context, limit int) []models.MovieSummary {
	if limit < 1 {
		limit = 10
	}

	mixed := s.Popular(ctx, limit/2)
	for _, query := range acclaimedQueries {
		result, err := s.movies.Search(ctx, query)
		if err != nil {
			s.log.Warn("acclaimed search failed", zap.String("query", query), zap.Error(err))
			continue
		}
		mixed = append(mixed, firstN(result.Search, 1)...)
	}

	unique := dedupeSummaries(mixed, nil)
	unique = s.topUp(ctx, unique, genreTopUpQueries[:4], limit)

	if len(unique) == 0 {
		return capSummaries(staticFallback, limit)
	}
	return capSummaries(unique, limit)
}

// Similar gathers candidates from the seed movie's title and first two
// genres, excluding the seed itself.
func (s *RecommendationService) Similar(ctx context.Context, movieID string, limit int) ([]models.MovieSummary, error) {
	if limit < 1 {
		limit = 6
	}

	detail, err := s.movies.GetByID(ctx, movieID)
	if err != nil {
		return nil, err
	}

	var candidates []models.MovieSummary
	if result, err := s.movies.Search(ctx, detail.Title); err == nil {
		candidates = append(candidates, firstN(result.Search, 3)...)
	} else {
		s.log.Warn("title search failed", zap.String("title", detail.Title), zap.Error(err))
	}

	genres := splitGenres(detail.Genre)
	if len(genres) > 2 {
		genres = genres[:2]
	}
	for _, genre := range genres {
		result, err := s.movies.Search(ctx, genre)
		if err != nil {
			continue
		}
		candidates = append(candidates, firstN(result.Search, 2)...)
	}

	unique := dedupeSummaries(candidates, map[string]bool{movieID: true})
	return capSummaries(unique, limit), nil
}

// Trending ranks movies by rating frequency over the trailing week and
// resolves details for the top IDs. A failed scan falls back to the popular
// tier; individual detail failures are skipped.
func (s *RecommendationService) Trending(ctx context.Context, limit int) []models.MovieDetail {
	if limit < 1 {
		limit = 8
	}

	counts, err := s.ratings.CountsSince(ctx, time.Now().Add(-trendingWindow), limit)
	if err != nil {
		s.log.Warn("trending scan failed", zap.Error(err))
		return summariesToDetails(s.Popular(ctx, limit))
	}

	trending := []models.MovieDetail{}
	for _, c := range counts {
		detail, err := s.movies.GetByID(ctx, c.MovieID)
		if err != nil {
			s.log.Warn("trending detail fetch failed", zap.String("movie_id", c.MovieID), zap.Error(err))
			continue
		}
		trending = append(trending, *detail)
	}
	return trending
}

func highlyRated(ratings []models.Rating, max int) []models.Rating {
	var out []models.Rating
	for _, r := range ratings {
		if r.Rating >= 4 {
			out = append(out, r)
			if len(out) == max {
				break
			}
		}
	}
	return out
}

func (s *RecommendationService) topUp(ctx context.Context, current []models.MovieSummary, queries []string, limit int) []models.MovieSummary {
	if len(current) >= limit {
		return current
	}
	seen := map[string]bool{}
	for _, m := range current {
		seen[m.ImdbID] = true
	}
	for _, query := range queries {
		if len(current) >= limit {
			break
		}
		result, err := s.movies.Search(ctx, query)
		if err != nil {
			continue
		}
		for _, movie := range result.Search {
			if len(current) >= limit {
				break
			}
			if movie.ImdbID == "" || seen[movie.ImdbID] {
				continue
			}
			seen[movie.ImdbID] = true
			current = append(current, movie)
		}
	}
	return current
}

func splitGenres(genre string) []string {
	if genre == "" {
		return nil
	}
	var out []string
	for _, g := range strings.Split(genre, ",") {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

func firstN(movies []models.MovieSummary, n int) []models.MovieSummary {
	if len(movies) > n {
		return movies[:n]
	}
	return movies
}

func capSummaries(movies []models.MovieSummary, limit int) []models.MovieSummary {
	if len(movies) > limit {
		return movies[:limit]
	}
	return movies
}

func summariesToDetails(movies []models.MovieSummary) []models.MovieDetail {
	details := make([]models.MovieDetail, 0, len(movies))
	for _, m := range movies {
		details = append(details, models.MovieDetail{
			Title:  m.Title,
			Year:   m.Year,
			ImdbID: m.ImdbID,
			Type:   m.Type,
			Poster: m.Poster,
		})
	}
	return details
}
