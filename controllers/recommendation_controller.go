package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DRainger/MyMDb/services"
)

type RecommendationController struct {
	recommendationService *services.RecommendationService
}

func NewRecommendationController(recommendationService *services.RecommendationService) *RecommendationController {
	return &RecommendationController{
		recommendationService: recommendationService,
	}
}

func (c *RecommendationController) ForUser(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	recommendations := c.recommendationService.ForUser(ctx.Request.Context(), userID, intQuery(ctx, "limit", 10))
	ctx.JSON(http.StatusOK, gin.H{
		"recommendations": recommendations,
		"count":           len(recommendations),
	})
}

func (c *RecommendationController) ForNewUser(ctx *gin.Context) {
	recommendations := c.recommendationService.ForNewUser(ctx.Request.Context(), intQuery(ctx, "limit", 10))
	ctx.JSON(http.StatusOK, gin.H{
		"recommendations": recommendations,
		"count":           len(recommendations),
	})
}

func (c *RecommendationController) Popular(ctx *gin.Context) {
	movies := c.recommendationService.Popular(ctx.Request.Context(), intQuery(ctx, "limit", 10))
	ctx.JSON(http.StatusOK, gin.H{
		"movies": movies,
		"count":  len(movies),
	})
}

func (c *RecommendationController) Similar(ctx *gin.Context) {
	movies, err := c.recommendationService.Similar(ctx.Request.Context(), ctx.Param("movieId"), intQuery(ctx, "limit", 6))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"movies": movies,
		"count":  len(movies),
	})
}

func (c *RecommendationController) Trending(ctx *gin.Context) {
	movies := c.recommendationService.Trending(ctx.Request.Context(), intQuery(ctx, "limit", 8))
	ctx.JSON(http.StatusOK, gin.H{
		"movies": movies,
		"count":  len(movies),
	})
}
