package data_access

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/DRainger/MyMDb/models"
)

// RatingRepository stores ratings as one row per (user_id, movie_id). The
// upsert path makes re-rating an atomic database operation, and the movie_id
// index backs the cross-user aggregations.
type RatingRepository struct {
	collection *mongo.Collection
}

func NewRatingRepository(db *MongoDB) *RatingRepository {
	return &RatingRepository{collection: db.Collection(ratingsCollection)}
}

// Upsert inserts or replaces the user's rating for a movie. The returned
// flag reports whether an existing rating was updated.
func (r *RatingRepository) Upsert(ctx context.Context, userID primitive.ObjectID, movieID string, rating int) (models.Rating, bool, error) {
	now := time.Now()
	var before models.Rating
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID, "movie_id": movieID},
		bson.M{"$set": bson.M{"rating": rating, "rated_at": now}},
		options.FindOneAndUpdate().SetUpsert(true),
	).Decode(&before)

	updated := true
	if err == mongo.ErrNoDocuments {
		updated = false
	} else if err != nil {
		return models.Rating{}, false, err
	}

	return models.Rating{
		UserID:  userID,
		MovieID: movieID,
		Rating:  rating,
		RatedAt: now,
	}, updated, nil
}

func (r *RatingRepository) ForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Rating, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	ratings := []models.Rating{}
	if err = cursor.All(ctx, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *RatingRepository) Find(ctx context.Context, userID primitive.ObjectID, movieID string) (*models.Rating, error) {
	var rating models.Rating
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "movie_id": movieID}).Decode(&rating)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *RatingRepository) Delete(ctx context.Context, userID primitive.ObjectID, movieID string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID, "movie_id": movieID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// MovieAverage aggregates all users' ratings for one movie through the
// movie_id index.
func (r *RatingRepository) MovieAverage(ctx context.Context, movieID string) (float64, int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"movie_id": movieID}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"average": bson.M{"$avg": "$rating"},
			"count":   bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Average float64 `bson:"average"`
		Count   int     `bson:"count"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, nil
	}
	return results[0].Average, results[0].Count, nil
}

// CountsSince groups ratings created after the cutoff by movie and returns
// the most-rated movies first.
func (r *RatingRepository) CountsSince(ctx context.Context, since time.Time, limit int) ([]models.TrendingCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"rated_at": bson.M{"$gt": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$movie_id",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var counts []models.TrendingCount
	if err = cursor.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *RatingRepository) DeleteAllForUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
