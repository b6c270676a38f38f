package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WatchlistItem is one row in the watchlist_items collection. Each user's
// list is the set of rows keyed (user_id, movie_id); append order is
// added_at ascending.
type WatchlistItem struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID  primitive.ObjectID `bson:"user_id" json:"-"`
	MovieID string             `bson:"movie_id" json:"movieId"`
	AddedAt time.Time          `bson:"added_at" json:"addedAt"`
}

type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

type PaginatedWatchlist struct {
	Watchlist  []WatchlistItem `json:"watchlist"`
	Pagination Pagination      `json:"pagination"`
}
