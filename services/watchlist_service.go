package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/DRainger/MyMDb/apperrors"
	"github.com/DRainger/MyMDb/models"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type WatchlistStore interface {
	Add(ctx context.Context, userID primitive.ObjectID, movieID string) error
	Items(ctx context.Context, userID primitive.ObjectID) ([]models.WatchlistItem, error)
	Remove(ctx context.Context, userID primitive.ObjectID, movieID string) error
	Exists(ctx context.Context, userID primitive.ObjectID, movieID string) (bool, error)
	Count(ctx context.Context, userID primitive.ObjectID) (int, error)
	Clear(ctx context.Context, userID primitive.ObjectID) error
	Replace(ctx context.Context, userID primitive.ObjectID, items []models.WatchlistItem) error
}

type WatchlistService struct {
	store WatchlistStore
	log   *zap.Logger
}

func NewWatchlistService(store WatchlistStore, log *zap.Logger) *WatchlistService {
	return &WatchlistService{store: store, log: log}
}

func (s *WatchlistService) Get(ctx context.Context, userID primitive.ObjectID) ([]models.WatchlistItem, error) {
	return s.store.Items(ctx, userID)
}

// Add appends the movie and returns the full updated list. Duplicates fail
// with a conflict, enforced by the store's unique key.
func (s *WatchlistService) Add(ctx context.Context, userID primitive.ObjectID, movieID string) ([]models.WatchlistItem, error) {
	if movieID == "" {
		return nil, apperrors.Validation("movieId is required")
	}
	if err := s.store.Add(ctx, userID, movieID); err != nil {
		return nil, err
	}
	s.log.Info("movie added to watchlist",
		zap.String("user_id", userID.Hex()), zap.String("movie_id", movieID))
	return s.store.Items(ctx, userID)
}

// Remove is idempotent; removing an absent movie returns the unchanged list.
func (s *WatchlistService) Remove(ctx context.Context, userID primitive.ObjectID, movieID string) ([]models.WatchlistItem, error) {
	if movieID == "" {
		return nil, apperrors.Validation("movieId is required")
	}
	if err := s.store.Remove(ctx, userID, movieID); err != nil {
		return nil, err
	}
	return s.store.Items(ctx, userID)
}

func (s *WatchlistService) Check(ctx context.Context, userID primitive.ObjectID, movieID string) (bool, error) {
	if movieID == "" {
		return false, apperrors.Validation("movieId is required")
	}
	return s.store.Exists(ctx, userID, movieID)
}

func (s *WatchlistService) Count(ctx context.Context, userID primitive.ObjectID) (int, error) {
	return s.store.Count(ctx, userID)
}

func (s *WatchlistService) Clear(ctx context.Context, userID primitive.ObjectID) error {
	if err := s.store.Clear(ctx, userID); err != nil {
		return err
	}
	s.log.Info("watchlist cleared", zap.String("user_id", userID.Hex()))
	return nil
}

// Replace swaps the entire list (reorder / bulk update).
func (s *WatchlistService) Replace(ctx context.Context, userID primitive.ObjectID, items []models.WatchlistItem) ([]models.WatchlistItem, error) {
	for _, item := range items {
		if item.MovieID == "" {
			return nil, apperrors.Validation("every watchlist entry needs a movieId")
		}
	}
	if err := s.store.Replace(ctx, userID, items); err != nil {
		return nil, err
	}
	return s.store.Items(ctx, userID)
}

// Paginated slices the list with offset math. Limit is clamped to
// [1, 100] and page to >= 1.
func (s *WatchlistService) Paginated(ctx context.Context, userID primitive.ObjectID, page, limit int) (*models.PaginatedWatchlist, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, err := s.store.Items(ctx, userID)
	if err != nil {
		return nil, err
	}

	total := len(items)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	end := page * limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &models.PaginatedWatchlist{
		Watchlist: items[start:end],
		Pagination: models.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}, nil
}
