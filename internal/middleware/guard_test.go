package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/ucielsola/trackit/internal/middleware"
	"github.com/ucielsola/trackit/internal/session"
	"github.com/ucielsola/trackit/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// guardEngine builds a router with the guard stage behind a stub
// session stage. Every path falls through to a 200 handler so a
// pass-through is observable.
func guardEngine(authenticated bool) *gin.Engine {
	r := gin.New()

	r.Use(func(ctx *gin.Context) {
		if authenticated {
			ctx.Set(types.ContextSessionKey, &session.Session{Token: "token"})
			ctx.Set(types.ContextUserKey, session.User{ID: "user-1", Email: "user@example.com"})
		}

		ctx.Next()
	})
	r.Use(middleware.AuthGuard())

	r.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return r
}

func request(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)

	return w
}

func TestGuardRedirectsUnauthenticated(t *testing.T) {
	r := guardEngine(false)

	for _, path := range []string{"/", "/private", "/private/api/clients", "/api/private/me"} {
		w := request(r, path)

		require.Equal(t, http.StatusSeeOther, w.Code, "path %s", path)
		require.Equal(t, "/auth", w.Header().Get("Location"), "path %s", path)
	}
}

func TestGuardAllowsUnauthenticatedAuthPage(t *testing.T) {
	r := guardEngine(false)

	w := request(r, "/auth")

	require.Equal(t, http.StatusOK, w.Code)
}

func TestGuardRedirectsAuthenticatedToPrivate(t *testing.T) {
	r := guardEngine(true)

	for _, path := range []string{"/", "/auth", "/somewhere"} {
		w := request(r, path)

		require.Equal(t, http.StatusSeeOther, w.Code, "path %s", path)
		require.Equal(t, "/private", w.Header().Get("Location"), "path %s", path)
	}
}

func TestGuardAllowsAuthenticatedPrivate(t *testing.T) {
	r := guardEngine(true)

	for _, path := range []string{"/private", "/private/api/clients", "/api/private/me"} {
		w := request(r, path)

		require.Equal(t, http.StatusOK, w.Code, "path %s", path)
	}
}

func TestGuardPublicAPIPassesThrough(t *testing.T) {
	for _, authenticated := range []bool{false, true} {
		r := guardEngine(authenticated)

		for _, path := range []string{"/api/set-theme", "/api/health", "/api/auth/otp"} {
			w := request(r, path)

			require.Equal(t, http.StatusOK, w.Code, "auth=%v path %s", authenticated, path)
		}
	}
}

func TestGuardNormalizesTrailingSlashes(t *testing.T) {
	r := guardEngine(false)

	for _, path := range []string{"/private/", "/private///"} {
		w := request(r, path)

		require.Equal(t, http.StatusSeeOther, w.Code, "path %s", path)
		require.Equal(t, "/auth", w.Header().Get("Location"), "path %s", path)
	}
}

func TestNormalizePath(t *testing.T) {
	require.Equal(t, "/", middleware.NormalizePath(""))
	require.Equal(t, "/", middleware.NormalizePath("/"))
	require.Equal(t, "/", middleware.NormalizePath("///"))
	require.Equal(t, "/private", middleware.NormalizePath("/private/"))
	require.Equal(t, "/api/private/me", middleware.NormalizePath("/api/private/me"))
}
