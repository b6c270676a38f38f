package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DRainger/MyMDb/models"
	"github.com/DRainger/MyMDb/services"
)

type MovieController struct {
	movieService *services.MovieService
}

func NewMovieController(movieService *services.MovieService) *MovieController {
	return &MovieController{
		movieService: movieService,
	}
}

func (c *MovieController) Search(ctx *gin.Context) {
	result, err := c.movieService.Search(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func (c *MovieController) SearchAdvanced(ctx *gin.Context) {
	params := models.AdvancedSearchParams{
		Query: ctx.Query("q"),
		Type:  ctx.Query("type"),
		Year:  ctx.Query("year"),
		Page:  intQuery(ctx, "page", 1),
	}

	result, err := c.movieService.SearchAdvanced(ctx.Request.Context(), params)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func (c *MovieController) Popular(ctx *gin.Context) {
	result, err := c.movieService.Popular(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func (c *MovieController) GetByID(ctx *gin.Context) {
	detail, err := c.movieService.GetByID(ctx.Request.Context(), ctx.Param("imdbId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

func (c *MovieController) GetByIDFullPlot(ctx *gin.Context) {
	detail, err := c.movieService.GetByIDFullPlot(ctx.Request.Context(), ctx.Param("imdbId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}
