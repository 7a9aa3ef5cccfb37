package main

import (
	"log"
	"time"

	"golang.org/x/time/rate"

	"github.com/ucielsola/trackit/db"
	"github.com/ucielsola/trackit/internal/authprovider"
	"github.com/ucielsola/trackit/internal/cache"
	"github.com/ucielsola/trackit/internal/config"
	"github.com/ucielsola/trackit/internal/handlers"
	"github.com/ucielsola/trackit/internal/middleware"
	"github.com/ucielsola/trackit/internal/router"
	"github.com/ucielsola/trackit/internal/session"
)

func main() {
	cfg := config.Load()

	if cfg.AuthURL == "" {
		log.Fatal("AUTH_URL is not set")
	}

	if err := db.ConnectDatabase(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// The passcode cooldown is best-effort: without Redis the server
	// still runs, only the per-email cooldown is skipped.
	var throttle cache.Throttle

	if cfg.RedisURL != "" {
		var err error

		throttle, err = cache.NewRedisThrottle(cfg.RedisURL)

		if err != nil {
			log.Printf("Warning: failed to connect to Redis (%v). Continuing without passcode cooldown.", err)
			throttle = nil
		}
	}

	provider := authprovider.NewClient(cfg.AuthURL, cfg.AuthAPIKey)
	resolver := session.NewResolver(provider)

	authHandler := handlers.NewAuthHandler(provider, throttle, time.Duration(cfg.OTPCooldown)*time.Second)
	authLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	r := router.NewRouter(router.Deps{
		Resolver:    resolver,
		AuthHandler: authHandler,
		AuthLimiter: authLimiter,
	})

	log.Printf("Server starting on port %s", cfg.Port)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
