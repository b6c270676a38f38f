package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/DRainger/MyMDb/apperrors"
)

// currentUserID reads the authenticated identity set by the auth middleware.
// A false return means the response has already been written.
func currentUserID(ctx *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(ctx.GetString("user_id"))
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return primitive.NilObjectID, false
	}
	return id, true
}

func respondError(ctx *gin.Context, err error) {
	status := apperrors.Status(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	ctx.JSON(status, gin.H{"message": message})
}

func intQuery(ctx *gin.Context, name string, fallback int) int {
	if v, err := strconv.Atoi(ctx.Query(name)); err == nil {
		return v
	}
	return fallback
}
