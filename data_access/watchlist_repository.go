package data_access

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/DRainger/MyMDb/apperrors"
	"github.com/DRainger/MyMDb/models"
)

// WatchlistRepository stores watchlist entries as independent rows keyed by
// (user_id, movie_id). The unique index makes duplicate prevention a
// database concern instead of a read-modify-write race.
type WatchlistRepository struct {
	collection *mongo.Collection
}

func NewWatchlistRepository(db *MongoDB) *WatchlistRepository {
	return &WatchlistRepository{collection: db.Collection(watchlistCollection)}
}

func (r *WatchlistRepository) Add(ctx context.Context, userID primitive.ObjectID, movieID string) error {
	item := models.WatchlistItem{
		UserID:  userID,
		MovieID: movieID,
		AddedAt: time.Now(),
	}
	_, err := r.collection.InsertOne(ctx, item)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.Conflict("movie already in watchlist")
	}
	return err
}

// Items returns the user's watchlist in append order.
func (r *WatchlistRepository) Items(ctx context.Context, userID primitive.ObjectID) ([]models.WatchlistItem, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "added_at", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	items := []models.WatchlistItem{}
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Remove deletes the row if present. Removing an absent movie is a no-op.
func (r *WatchlistRepository) Remove(ctx context.Context, userID primitive.ObjectID, movieID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID, "movie_id": movieID})
	return err
}

func (r *WatchlistRepository) Exists(ctx context.Context, userID primitive.ObjectID, movieID string) (bool, error) {
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "movie_id": movieID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *WatchlistRepository) Count(ctx context.Context, userID primitive.ObjectID) (int, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID})
	return int(n), err
}

func (r *WatchlistRepository) Clear(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

// Replace swaps the user's whole list for the given items, preserving
// supplied timestamps and stamping missing ones.
func (r *WatchlistRepository) Replace(ctx context.Context, userID primitive.ObjectID, items []models.WatchlistItem) error {
	if err := r.Clear(ctx, userID); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(items))
	now := time.Now()
	for _, item := range items {
		addedAt := item.AddedAt
		if addedAt.IsZero() {
			addedAt = now
		}
		docs = append(docs, models.WatchlistItem{
			UserID:  userID,
			MovieID: item.MovieID,
			AddedAt: addedAt,
		})
	}
	_, err := r.collection.InsertMany(ctx, docs)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.Conflict("watchlist contains duplicate movies")
	}
	return err
}
