// Package auth turns the platform bearer token into the local identity the
// real-time session runs under. The token is issued and verified by the API
// server; this side only reads its claims, it never re-validates signatures.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"chatlink/errors"
)

// SessionClaims is the subset of the platform token this client relies on.
type SessionClaims struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Session binds the bearer token to the identity derived from it. The same
// token is attached to the websocket handshake and to directory REST calls.
type Session struct {
	Token    string
	UserID   string
	FullName string
	Role     string
}

// NewSession parses the token claims without signature verification and
// rejects tokens that are empty or already expired. An expired token would
// be refused by the server handshake anyway; failing early gives the caller
// a cleaner error.
func NewSession(token string) (Session, error) {
	if token == "" {
		return Session{}, errors.ErrMissingToken
	}

	var claims SessionClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return Session{}, fmt.Errorf("%w: %v", errors.ErrTokenRejected, err)
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return Session{}, fmt.Errorf("%w: token expired", errors.ErrTokenRejected)
	}
	if claims.UserID == "" {
		// Fall back to the registered subject claim.
		claims.UserID = claims.Subject
	}
	if claims.UserID == "" {
		return Session{}, fmt.Errorf("%w: no user identity in claims", errors.ErrTokenRejected)
	}

	return Session{
		Token:    token,
		UserID:   claims.UserID,
		FullName: claims.FullName,
		Role:     claims.Role,
	}, nil
}
