package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ucielsola/trackit/internal/middleware"
	"github.com/ucielsola/trackit/internal/types"
)

type SetThemeRequest struct {
	Theme string `json:"color-theme" binding:"required"`
}

// SetTheme records an explicit theme choice, overwriting any existing
// cookie. Public: theme preference needs no session.
func SetTheme(ctx *gin.Context) {
	var body SetThemeRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !types.IsValidTheme(body.Theme) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid theme"})
		return
	}

	middleware.SetThemeCookie(ctx, body.Theme)

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
