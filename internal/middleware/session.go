package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/ucielsola/trackit/internal/session"
	"github.com/ucielsola/trackit/internal/types"
)

// SessionMiddleware resolves the cookie-carried access token into a
// verified (session, user) pair and attaches it to the request context.
// It never redirects; access decisions belong to the guard stage.
func SessionMiddleware(resolver *session.Resolver) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, _ := ctx.Cookie(types.SessionCookieName)

		sess, user := resolver.Resolve(ctx.Request.Context(), token)

		if sess != nil && user != nil {
			ctx.Set(types.ContextSessionKey, sess)
			ctx.Set(types.ContextUserKey, *user)
		}

		ctx.Next()
	}
}
