package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ucielsola/trackit/internal/utils"
)

// AuthPage renders the passcode login page. The guard chain has already
// redirected authenticated visitors to /private.
func AuthPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "auth.html", gin.H{
		"Theme": utils.GetTheme(ctx),
	})
}

// PrivatePage renders the tracked-time workspace shell.
func PrivatePage(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx.HTML(http.StatusOK, "private.html", gin.H{
		"Theme": utils.GetTheme(ctx),
		"Email": user.Email,
	})
}

// Home never renders in practice: the guard redirects every root
// request to /auth or /private. Kept as a fallback.
func Home(ctx *gin.Context) {
	ctx.Redirect(http.StatusSeeOther, "/auth")
}
