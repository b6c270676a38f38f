package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DRainger/MyMDb/models"
	"github.com/DRainger/MyMDb/services"
)

type RatingController struct {
	ratingService *services.RatingService
}

func NewRatingController(ratingService *services.RatingService) *RatingController {
	return &RatingController{
		ratingService: ratingService,
	}
}

func (c *RatingController) Rate(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req models.RateMovieRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Movie ID and rating are required"})
		return
	}

	rating, updated, err := c.ratingService.Rate(ctx.Request.Context(), userID, req.MovieID, req.Rating)
	if err != nil {
		respondError(ctx, err)
		return
	}

	message := "Rating added"
	if updated {
		message = "Rating updated"
	}
	ctx.JSON(http.StatusOK, gin.H{"message": message, "rating": rating})
}

func (c *RatingController) GetUserRating(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	rating, err := c.ratingService.UserRating(ctx.Request.Context(), userID, ctx.Param("movieId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if rating == nil {
		ctx.JSON(http.StatusOK, gin.H{"rating": nil})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"rating": rating.Rating})
}

func (c *RatingController) GetUserRatings(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	ratings, err := c.ratingService.UserRatings(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"ratings": ratings})
}

func (c *RatingController) Remove(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.ratingService.Remove(ctx.Request.Context(), userID, ctx.Param("movieId")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Rating removed"})
}

func (c *RatingController) Average(ctx *gin.Context) {
	result, err := c.ratingService.Average(ctx.Request.Context(), ctx.Param("movieId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func (c *RatingController) Stats(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	stats, err := c.ratingService.Stats(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

func (c *RatingController) Recent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	ratings, err := c.ratingService.Recent(ctx.Request.Context(), userID, intQuery(ctx, "limit", 10))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"ratings": ratings})
}
