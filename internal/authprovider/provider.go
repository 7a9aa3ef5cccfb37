package authprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUnauthorized indicates the provider rejected the credential.
var ErrUnauthorized = errors.New("unauthorized")

// User is the identity the provider vouches for.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// VerifyResult is the session material returned after a passcode is verified.
type VerifyResult struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	User        User   `json:"user"`
}

// Client talks to the external one-time-passcode identity provider.
// Every authenticated request in the application is re-validated here;
// locally decoded token claims are never trusted on their own.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SendOTP asks the provider to email a one-time passcode. Unknown
// addresses are signed up implicitly.
func (c *Client) SendOTP(ctx context.Context, email string) error {
	body := map[string]interface{}{
		"email":       email,
		"create_user": true,
	}

	return c.post(ctx, "/otp", body, nil)
}

// VerifyOTP exchanges an emailed passcode for an access token.
func (c *Client) VerifyOTP(ctx context.Context, email, code string) (*VerifyResult, error) {
	body := map[string]interface{}{
		"type":  "email",
		"email": email,
		"token": code,
	}

	var result VerifyResult

	if err := c.post(ctx, "/verify", body, &result); err != nil {
		return nil, err
	}

	if result.AccessToken == "" {
		return nil, fmt.Errorf("provider returned no access token")
	}

	return &result, nil
}

// GetUser validates an access token with the provider and returns the
// user it belongs to. This is the round trip the session resolver
// depends on.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/user", nil)

	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)

	if err != nil {
		return nil, fmt.Errorf("identity provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrUnauthorized
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	var user User

	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}

	if user.ID == "" {
		return nil, ErrUnauthorized
	}

	return &user, nil
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)

	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(payload))

	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)

	if err != nil {
		return fmt.Errorf("identity provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("identity provider returned status %d: %s", resp.StatusCode, string(msg))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode provider response: %w", err)
		}
	}

	return nil
}
