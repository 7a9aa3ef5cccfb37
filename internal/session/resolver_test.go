package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/ucielsola/trackit/internal/authprovider"
	"github.com/ucielsola/trackit/internal/session"
)

func providerServer(t *testing.T, handler http.HandlerFunc) *authprovider.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return authprovider.NewClient(srv.URL, "test-key")
}

func signedToken(t *testing.T, expiry time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "user-1",
		"email": "user@example.com",
		"exp":   expiry.Unix(),
	})

	signed, err := token.SignedString([]byte("provider-secret"))
	require.NoError(t, err)

	return signed
}

func TestResolveValidToken(t *testing.T) {
	provider := providerServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user", r.URL.Path)
		require.True(t, strings.HasPrefix(r.Header.Get("Authorization"), "Bearer "))
		require.Equal(t, "test-key", r.Header.Get("apikey"))

		json.NewEncoder(w).Encode(authprovider.User{ID: "user-1", Email: "user@example.com"})
	})

	resolver := session.NewResolver(provider)

	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedToken(t, expiry)

	sess, user := resolver.Resolve(context.Background(), token)

	require.NotNil(t, sess)
	require.NotNil(t, user)
	require.Equal(t, "user-1", user.ID)
	require.Equal(t, "user@example.com", user.Email)
	require.Equal(t, token, sess.Token)
	require.True(t, sess.ExpiresAt.Equal(expiry))
	require.Equal(t, "user-1", sess.Claims["sub"])
}

func TestResolveEmptyToken(t *testing.T) {
	called := false

	provider := providerServer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	resolver := session.NewResolver(provider)

	sess, user := resolver.Resolve(context.Background(), "")

	require.Nil(t, sess)
	require.Nil(t, user)
	require.False(t, called)
}

func TestResolveRejectedToken(t *testing.T) {
	provider := providerServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	resolver := session.NewResolver(provider)

	sess, user := resolver.Resolve(context.Background(), signedToken(t, time.Now().Add(time.Hour)))

	require.Nil(t, sess)
	require.Nil(t, user)
}

func TestResolveProviderErrorDegradesToUnauthenticated(t *testing.T) {
	provider := providerServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	resolver := session.NewResolver(provider)

	sess, user := resolver.Resolve(context.Background(), signedToken(t, time.Now().Add(time.Hour)))

	require.Nil(t, sess)
	require.Nil(t, user)
}

func TestResolveProviderUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	provider := authprovider.NewClient(srv.URL, "test-key")
	srv.Close()

	resolver := session.NewResolver(provider)

	sess, user := resolver.Resolve(context.Background(), signedToken(t, time.Now().Add(time.Hour)))

	require.Nil(t, sess)
	require.Nil(t, user)
}

func TestResolveOpaqueTokenStillAuthenticates(t *testing.T) {
	provider := providerServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(authprovider.User{ID: "user-2", Email: "other@example.com"})
	})

	resolver := session.NewResolver(provider)

	// A token the provider accepts but that is not JWT-shaped still
	// yields a session; only expiry and claims are missing.
	sess, user := resolver.Resolve(context.Background(), "opaque-token")

	require.NotNil(t, sess)
	require.NotNil(t, user)
	require.Nil(t, sess.Claims)
	require.True(t, sess.ExpiresAt.IsZero())
}
