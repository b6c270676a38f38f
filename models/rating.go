package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rating is one row in the ratings collection. The unique (user_id, movie_id)
// index guarantees at most one rating per pair; re-rating is an upsert.
type Rating struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID  primitive.ObjectID `bson:"user_id" json:"-"`
	MovieID string             `bson:"movie_id" json:"movieId"`
	Rating  int                `bson:"rating" json:"rating"`
	RatedAt time.Time          `bson:"rated_at" json:"ratedAt"`
}

type MovieAverage struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type RatingStats struct {
	TotalRatings       int         `json:"totalRatings"`
	AverageRating      float64     `json:"averageRating"`
	RatingDistribution map[int]int `json:"ratingDistribution"`
}

// TrendingCount is a per-movie rating count from the trailing-window scan.
type TrendingCount struct {
	MovieID string `bson:"_id" json:"movieId"`
	Count   int    `bson:"count" json:"count"`
}
