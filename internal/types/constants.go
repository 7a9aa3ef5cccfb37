package types

import (
	"os"
	"strings"
)

const (
	ContextUserKey    = "user"
	ContextSessionKey = "session"
	ContextThemeKey   = "color-theme"
)

const (
	ThemeCookieName   = "color-theme"
	SessionCookieName = "session-token"

	// Theme cookies live for 30 days.
	ThemeCookieMaxAge = 60 * 60 * 24 * 30
)

// Entry statuses. Only billable and paid entries count toward revenue.
const (
	EntryStatusBillable    = "billable"
	EntryStatusPaid        = "paid"
	EntryStatusPending     = "pending"
	EntryStatusNonBillable = "non_billable"
)

var Themes = []string{"light", "dark"}

func IsValidTheme(theme string) bool {
	for _, t := range Themes {
		if t == theme {
			return true
		}
	}
	return false
}

func IsBillableStatus(status string) bool {
	return status == EntryStatusBillable || status == EntryStatusPaid
}

var (
	// Default allowed origins for development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	AllowedOrigins = initAllowedOrigins()
)

func initAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		envOrigins := strings.Split(allowedOrigins, ",")
		for _, origin := range envOrigins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
