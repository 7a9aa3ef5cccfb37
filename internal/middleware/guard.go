package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ucielsola/trackit/internal/types"
)

const (
	authPath    = "/auth"
	privatePath = "/private"
)

// pathClass is the access-control classification of a request path.
type pathClass struct {
	isRoot         bool
	isPrivateArea  bool
	isAPI          bool
	isProtectedAPI bool
}

// NormalizePath strips trailing slashes; an empty path is the root.
func NormalizePath(p string) string {
	p = strings.TrimRight(p, "/")

	if p == "" {
		return "/"
	}

	return p
}

func classifyPath(p string) pathClass {
	return pathClass{
		isRoot:         p == "/",
		isPrivateArea:  strings.HasPrefix(p, privatePath),
		isAPI:          strings.HasPrefix(p, "/api/"),
		isProtectedAPI: strings.HasPrefix(p, "/api/private/"),
	}
}

// AuthGuard is the final guard stage. It classifies the request path
// and either passes the request through or short-circuits with a 303:
// unauthenticated requests to private paths go to the auth page, and
// authenticated navigation anywhere outside the private area (the
// auth page and root included) goes to the private root. Public API
// paths always pass regardless of session state.
func AuthGuard() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		_, hasSession := ctx.Get(types.ContextSessionKey)

		path := classifyPath(NormalizePath(ctx.Request.URL.Path))

		if path.isAPI && !path.isProtectedAPI {
			ctx.Next()
			return
		}

		if !hasSession && (path.isPrivateArea || path.isProtectedAPI || path.isRoot) {
			ctx.Redirect(http.StatusSeeOther, authPath)
			ctx.Abort()
			return
		}

		if hasSession && !path.isPrivateArea && !path.isAPI {
			ctx.Redirect(http.StatusSeeOther, privatePath)
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}
