// Package auth carries the user's authenticated session. Authentication
// itself is owned by the external backend: signing in yields a bearer token,
// and this package only extracts the identity the client needs from it.
// The session is passed explicitly to everything that requires it, never
// read from ambient state.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the resolved authentication state for one user
type Session struct {
	Token  string `json:"token"` // backend-issued bearer token
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// IsAuthenticated reports whether the session can be used for checkout
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != "" && s.UserID != ""
}

// ErrTokenExpired is returned when the backend token is past its expiry
var ErrTokenExpired = errors.New("session token expired")

// FromToken builds a session from a backend-issued JWT. The token is parsed
// without signature verification: the backend signs and verifies it, the
// client only reads the identity claims and rejects expired tokens early so
// the user is sent to sign-in instead of failing mid-checkout.
func FromToken(token string) (*Session, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if time.Now().After(exp.Time) {
			return nil, ErrTokenExpired
		}
	}

	session := &Session{Token: token}
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		session.UserID = sub
	}
	if id, ok := claims["userId"].(string); ok && session.UserID == "" {
		session.UserID = id
	}
	if name, ok := claims["name"].(string); ok {
		session.Name = name
	}
	if email, ok := claims["email"].(string); ok {
		session.Email = email
	}

	if session.UserID == "" {
		return nil, errors.New("session token has no user identity")
	}

	return session, nil
}
