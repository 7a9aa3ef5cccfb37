package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/ucielsola/trackit/internal/session"
	"github.com/ucielsola/trackit/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (session.User, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return session.User{}, fmt.Errorf("User not authenticated")
	}

	authenticatedUser, ok := user.(session.User)

	if !ok {
		return session.User{}, fmt.Errorf("Invalid user type in context")
	}

	return authenticatedUser, nil
}

func GetCurrentUserID(ctx *gin.Context) (string, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return "", err
	}

	return user.ID, nil
}

func GetTheme(ctx *gin.Context) string {
	theme, exists := ctx.Get(types.ContextThemeKey)

	if !exists {
		return "light"
	}

	value, ok := theme.(string)

	if !ok {
		return "light"
	}

	return value
}
