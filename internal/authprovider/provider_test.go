package authprovider_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ucielsola/trackit/internal/authprovider"
)

func TestSendOTP(t *testing.T) {
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/otp", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "key", r.Header.Get("apikey"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := authprovider.NewClient(srv.URL, "key")

	require.NoError(t, client.SendOTP(context.Background(), "user@example.com"))
	require.Equal(t, "user@example.com", gotBody["email"])
	require.Equal(t, true, gotBody["create_user"])
}

func TestVerifyOTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/verify", r.URL.Path)

		json.NewEncoder(w).Encode(authprovider.VerifyResult{
			AccessToken: "access-token",
			ExpiresIn:   3600,
			User:        authprovider.User{ID: "user-1", Email: "user@example.com"},
		})
	}))
	defer srv.Close()

	client := authprovider.NewClient(srv.URL, "key")

	result, err := client.VerifyOTP(context.Background(), "user@example.com", "123456")

	require.NoError(t, err)
	require.Equal(t, "access-token", result.AccessToken)
	require.Equal(t, 3600, result.ExpiresIn)
	require.Equal(t, "user-1", result.User.ID)
}

func TestVerifyOTPRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := authprovider.NewClient(srv.URL, "key")

	_, err := client.VerifyOTP(context.Background(), "user@example.com", "000000")

	require.ErrorIs(t, err, authprovider.ErrUnauthorized)
}

func TestGetUserRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := authprovider.NewClient(srv.URL, "key")

	_, err := client.GetUser(context.Background(), "stale-token")

	require.ErrorIs(t, err, authprovider.ErrUnauthorized)
}

func TestGetUserEmptyIDRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(authprovider.User{})
	}))
	defer srv.Close()

	client := authprovider.NewClient(srv.URL, "key")

	_, err := client.GetUser(context.Background(), "token")

	require.ErrorIs(t, err, authprovider.ErrUnauthorized)
}
