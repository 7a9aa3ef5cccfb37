package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/ucielsola/trackit/internal/handlers"
	"github.com/ucielsola/trackit/internal/middleware"
	"github.com/ucielsola/trackit/internal/session"
	"github.com/ucielsola/trackit/internal/types"
)

// Deps carries everything the router wires into handlers and
// middleware. Dependencies are passed explicitly; there is no ambient
// registry beyond the database handle.
type Deps struct {
	Resolver    *session.Resolver
	AuthHandler *handlers.AuthHandler
	AuthLimiter *middleware.RateLimiter
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Guard chain: theme, then session, then access control. Order is
	// load-bearing; the guard stage reads what the session stage set.
	r.Use(middleware.ThemeMiddleware())
	r.Use(middleware.SessionMiddleware(deps.Resolver))
	r.Use(middleware.AuthGuard())

	r.LoadHTMLGlob("templates/*.html")

	r.GET("/", handlers.Home)
	r.GET("/auth", handlers.AuthPage)

	authLimiter := deps.AuthLimiter

	if authLimiter == nil {
		authLimiter = middleware.NewRateLimiter(rate.Limit(5), 10)
	}

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.POST("/set-theme", handlers.SetTheme)

		auth := api.Group("/auth")
		auth.Use(authLimiter.LimitMiddleware())
		{
			auth.POST("/otp", deps.AuthHandler.SendOTP)
			auth.POST("/verify", deps.AuthHandler.VerifyOTP)
			auth.POST("/logout", deps.AuthHandler.Logout)
		}

		api.GET("/private/me", handlers.Me)
	}

	private := r.Group("/private")
	{
		private.GET("", handlers.PrivatePage)

		clients := private.Group("/api/clients")
		{
			clients.GET("", handlers.ListClients)
			clients.POST("", handlers.CreateClient)
			clients.GET("/:id", handlers.GetClient)
			clients.PATCH("/:id", handlers.UpdateClient)
			clients.DELETE("/:id", handlers.DeleteClient)
		}

		projects := private.Group("/api/projects")
		{
			projects.GET("", handlers.ListProjects)
			projects.POST("", handlers.CreateProject)
			projects.PATCH("/:id", handlers.UpdateProject)
			projects.DELETE("/:id", handlers.DeleteProject)

			projects.GET("/:id/entries", handlers.ListEntries)
			projects.POST("/:id/entries", handlers.CreateEntry)
		}
	}

	return r
}
