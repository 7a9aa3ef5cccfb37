package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ucielsola/trackit/internal/authprovider"
)

// Session is the request-scoped proof of authentication. It is rebuilt
// from the cookie token on every request and never persisted.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Claims    jwt.MapClaims
}

// User is the identity attached to an authenticated request.
type User struct {
	ID    string
	Email string
}

// UserValidator validates an access token and returns its owner.
type UserValidator interface {
	GetUser(ctx context.Context, accessToken string) (*authprovider.User, error)
}

// Resolver turns a cookie-carried access token into a verified
// (session, user) pair.
type Resolver struct {
	provider UserValidator
}

func NewResolver(provider UserValidator) *Resolver {
	return &Resolver{provider: provider}
}

// Resolve validates the token against the identity provider. Locally
// decoded claims only supply expiry and raw claim data; the provider
// round trip is what authenticates the user. Any failure, including a
// provider outage, resolves to (nil, nil) rather than an error.
func (r *Resolver) Resolve(ctx context.Context, token string) (*Session, *User) {
	if token == "" {
		return nil, nil
	}

	user, err := r.provider.GetUser(ctx, token)

	if err != nil || user == nil {
		return nil, nil
	}

	sess := &Session{Token: token}

	// Unverified parse: the provider already vouched for the token,
	// claims are decoded only to expose expiry and raw claim data.
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})

	if err == nil {
		if claims, ok := parsed.Claims.(jwt.MapClaims); ok {
			sess.Claims = claims

			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
				sess.ExpiresAt = exp.Time
			}
		}
	}

	return sess, &User{ID: user.ID, Email: user.Email}
}
