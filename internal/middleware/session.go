package middleware

import (
	"context"
	"net/http"

	"concert-ticketing-client/internal/auth"

	"github.com/gorilla/sessions"
)

type contextKey string

const (
	// SessionContextKey holds the resolved auth session for the request
	SessionContextKey contextKey = "auth_session"

	sessionName = "session"
	tokenKey    = "auth_token"
)

// SessionMiddleware resolves the auth session from the cookie session and
// adds it to the request context
type SessionMiddleware struct {
	store sessions.Store
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(store sessions.Store) *SessionMiddleware {
	return &SessionMiddleware{store: store}
}

// LoadSession middleware resolves the stored bearer token into an auth
// session. Requests continue unauthenticated when the token is missing,
// malformed or expired.
func (m *SessionMiddleware) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, sessionName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := session.Values[tokenKey].(string)
		if !ok || token == "" {
			next.ServeHTTP(w, r)
			return
		}

		authSession, err := auth.FromToken(token)
		if err != nil {
			// Expired or malformed token; drop it so the user signs in again
			delete(session.Values, tokenKey)
			_ = session.Save(r, w)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, authSession)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SaveToken stores the backend-issued bearer token in the cookie session
func (m *SessionMiddleware) SaveToken(w http.ResponseWriter, r *http.Request, token string) error {
	session, _ := m.store.Get(r, sessionName)
	session.Values[tokenKey] = token
	return session.Save(r, w)
}

// ClearToken removes the bearer token from the cookie session
func (m *SessionMiddleware) ClearToken(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, sessionName)
	delete(session.Values, tokenKey)
	return session.Save(r, w)
}

// GetSessionFromContext returns the auth session from the request context,
// or nil when the request is unauthenticated
func GetSessionFromContext(ctx context.Context) *auth.Session {
	session, ok := ctx.Value(SessionContextKey).(*auth.Session)
	if !ok {
		return nil
	}
	return session
}
