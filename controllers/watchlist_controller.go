package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DRainger/MyMDb/apperrors"
	"github.com/DRainger/MyMDb/models"
	"github.com/DRainger/MyMDb/services"
)

type WatchlistController struct {
	watchlistService *services.WatchlistService
}

func NewWatchlistController(watchlistService *services.WatchlistService) *WatchlistController {
	return &WatchlistController{
		watchlistService: watchlistService,
	}
}

func (c *WatchlistController) Get(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	items, err := c.watchlistService.Get(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

func (c *WatchlistController) Add(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req models.AddToWatchlistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "movieId is required"})
		return
	}

	items, err := c.watchlistService.Add(ctx.Request.Context(), userID, req.MovieID)
	if err != nil {
		// Adding a movie that is already listed is a client mistake, not a
		// resource conflict.
		if errors.Is(err, apperrors.ErrConflict) {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Movie already in watchlist"})
			return
		}
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"message": "Movie added to watchlist", "watchlist": items})
}

func (c *WatchlistController) Remove(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	items, err := c.watchlistService.Remove(ctx.Request.Context(), userID, ctx.Param("movieId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Movie removed from watchlist", "watchlist": items})
}

func (c *WatchlistController) Replace(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req models.ReplaceWatchlistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "watchlist must be an array"})
		return
	}

	items, err := c.watchlistService.Replace(ctx.Request.Context(), userID, req.Watchlist)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Watchlist updated", "watchlist": items})
}

func (c *WatchlistController) Check(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	movieID := ctx.Param("movieId")
	inWatchlist, err := c.watchlistService.Check(ctx.Request.Context(), userID, movieID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"isInWatchlist": inWatchlist, "movieId": movieID})
}

func (c *WatchlistController) Count(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	count, err := c.watchlistService.Count(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"count": count})
}

func (c *WatchlistController) Clear(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.watchlistService.Clear(ctx.Request.Context(), userID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Watchlist cleared", "watchlist": []models.WatchlistItem{}})
}

func (c *WatchlistController) Paginated(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	page := intQuery(ctx, "page", 1)
	limit := intQuery(ctx, "limit", 10)

	result, err := c.watchlistService.Paginated(ctx.Request.Context(), userID, page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
