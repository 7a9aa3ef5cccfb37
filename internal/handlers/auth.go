package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ucielsola/trackit/internal/authprovider"
	"github.com/ucielsola/trackit/internal/cache"
	"github.com/ucielsola/trackit/internal/types"
	"github.com/ucielsola/trackit/internal/utils"
)

type SendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

var (
	Domain = os.Getenv("DOMAIN")
)

// AuthHandler owns the passcode login flow. The throttle is optional;
// without Redis the per-email cooldown is simply not enforced.
type AuthHandler struct {
	provider *authprovider.Client
	throttle cache.Throttle
	cooldown time.Duration
}

func NewAuthHandler(provider *authprovider.Client, throttle cache.Throttle, cooldown time.Duration) *AuthHandler {
	return &AuthHandler{
		provider: provider,
		throttle: throttle,
		cooldown: cooldown,
	}
}

func (h *AuthHandler) SendOTP(ctx *gin.Context) {
	var req SendOTPRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if h.throttle != nil {
		allowed, err := h.throttle.Allow(ctx.Request.Context(), "otp:"+email, h.cooldown)

		if err != nil {
			log.Printf("Throttle check failed for %s: %v", email, err)
		} else if !allowed {
			ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "A passcode was sent recently, try again later"})
			return
		}
	}

	if err := h.provider.SendOTP(ctx.Request.Context(), email); err != nil {
		log.Printf("Failed to send passcode to %s: %v", email, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send passcode"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Passcode sent"})
}

func (h *AuthHandler) VerifyOTP(ctx *gin.Context) {
	var req VerifyOTPRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email and passcode are required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	result, err := h.provider.VerifyOTP(ctx.Request.Context(), email, req.Code)

	if err != nil {
		if errors.Is(err, authprovider.ErrUnauthorized) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired passcode"})
			return
		}
		log.Printf("Failed to verify passcode for %s: %v", email, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	maxAge := result.ExpiresIn

	if maxAge <= 0 {
		maxAge = 60 * 60
	}

	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.SessionCookieName,
		Value:    result.AccessToken,
		Path:     "/",
		Domain:   Domain,
		MaxAge:   maxAge,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	ctx.JSON(http.StatusOK, gin.H{
		"user": types.UserResponse{
			ID:    result.User.ID,
			Email: result.User.Email,
		},
	})
}

func (h *AuthHandler) Logout(ctx *gin.Context) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   Domain,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": types.UserResponse{
			ID:    currentUser.ID,
			Email: currentUser.Email,
		},
	})
}
