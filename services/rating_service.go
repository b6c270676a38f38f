package services

import (
	"context"
	"math"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/DRainger/MyMDb/apperrors"
	"github.com/DRainger/MyMDb/models"
)

type RatingStore interface {
	Upsert(ctx context.Context, userID primitive.ObjectID, movieID string, rating int) (models.Rating, bool, error)
	ForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Rating, error)
	Find(ctx context.Context, userID primitive.ObjectID, movieID string) (*models.Rating, error)
	Delete(ctx context.Context, userID primitive.ObjectID, movieID string) (bool, error)
	MovieAverage(ctx context.Context, movieID string) (float64, int, error)
}

type RatingService struct {
	store RatingStore
	log   *zap.Logger
}

func NewRatingService(store RatingStore, log *zap.Logger) *RatingService {
	return &RatingService{store: store, log: log}
}

// Rate upserts the user's rating for a movie: at most one rating per
// (user, movie) pair, re-rating updates value and timestamp in place. The
// returned flag reports whether an existing rating was replaced.
func (s *RatingService) Rate(ctx context.Context, userID primitive.ObjectID, movieID string, rating int) (models.Rating, bool, error) {
	if movieID == "" {
		return models.Rating{}, false, apperrors.Validation("movieId is required")
	}
	if rating < 1 || rating > 5 {
		return models.Rating{}, false, apperrors.Validation("rating must be between 1 and 5")
	}

	saved, updated, err := s.store.Upsert(ctx, userID, movieID, rating)
	if err != nil {
		return models.Rating{}, false, err
	}

	s.log.Info("movie rated",
		zap.String("user_id", userID.Hex()),
		zap.String("movie_id", movieID),
		zap.Int("rating", rating),
		zap.Bool("updated", updated),
	)
	return saved, updated, nil
}

// UserRating returns the user's rating for one movie, or nil when unrated.
func (s *RatingService) UserRating(ctx context.Context, userID primitive.ObjectID, movieID string) (*models.Rating, error) {
	return s.store.Find(ctx, userID, movieID)
}

func (s *RatingService) UserRatings(ctx context.Context, userID primitive.ObjectID) ([]models.Rating, error) {
	return s.store.ForUser(ctx, userID)
}

func (s *RatingService) Remove(ctx context.Context, userID primitive.ObjectID, movieID string) error {
	deleted, err := s.store.Delete(ctx, userID, movieID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFound("rating not found")
	}
	return nil
}

// Average aggregates every user's rating for one movie.
func (s *RatingService) Average(ctx context.Context, movieID string) (*models.MovieAverage, error) {
	avg, count, err := s.store.MovieAverage(ctx, movieID)
	if err != nil {
		return nil, err
	}
	return &models.MovieAverage{
		Average: roundToTenth(avg),
		Count:   count,
	}, nil
}

// Stats returns count, mean, and the fixed 1-5 histogram for one user.
func (s *RatingService) Stats(ctx context.Context, userID primitive.ObjectID) (*models.RatingStats, error) {
	ratings, err := s.store.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &models.RatingStats{
		RatingDistribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	if len(ratings) == 0 {
		return stats, nil
	}

	sum := 0
	for _, r := range ratings {
		sum += r.Rating
		stats.RatingDistribution[r.Rating]++
	}
	stats.TotalRatings = len(ratings)
	stats.AverageRating = roundToTenth(float64(sum) / float64(len(ratings)))
	return stats, nil
}

// Recent returns the user's latest ratings, newest first. Rows with a zero
// timestamp sort as if rated now, tolerating pre-repair data.
func (s *RatingService) Recent(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.Rating, error) {
	if limit < 1 {
		limit = 10
	}

	ratings, err := s.store.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	effective := func(r models.Rating) time.Time {
		if r.RatedAt.IsZero() {
			return now
		}
		return r.RatedAt
	}
	sort.SliceStable(ratings, func(i, j int) bool {
		return effective(ratings[i]).After(effective(ratings[j]))
	})

	if len(ratings) > limit {
		ratings = ratings[:limit]
	}
	return ratings, nil
}

func roundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
