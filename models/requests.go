package models

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type RateMovieRequest struct {
	MovieID string `json:"movieId" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
}

type AddToWatchlistRequest struct {
	MovieID string `json:"movieId" binding:"required"`
}

type ReplaceWatchlistRequest struct {
	Watchlist []WatchlistItem `json:"watchlist" binding:"required"`
}
