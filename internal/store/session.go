package store

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
)

// sessionName is the cookie session carrying the staging slots
const sessionName = "session"

// SessionKV is a KV backend over a gorilla cookie session, scoped to a single
// request. It persists staged records across navigation the way browser local
// storage does for the original client: per browser, not per tab, with
// last-write-wins between concurrent tabs.
type SessionKV struct {
	store sessions.Store
	r     *http.Request
	w     http.ResponseWriter
}

// NewSessionKV creates a session-backed KV for the given request
func NewSessionKV(store sessions.Store, w http.ResponseWriter, r *http.Request) *SessionKV {
	return &SessionKV{store: store, r: r, w: w}
}

// Get returns the value for key or ErrNotFound
func (s *SessionKV) Get(key string) ([]byte, error) {
	session, err := s.store.Get(s.r, sessionName)
	if err != nil {
		// A corrupted cookie decodes as a fresh session; treat as empty
		return nil, ErrNotFound
	}

	value, ok := session.Values[key].(string)
	if !ok || value == "" {
		return nil, ErrNotFound
	}

	return []byte(value), nil
}

// Set stores value under key and saves the session immediately
func (s *SessionKV) Set(key string, value []byte) error {
	session, _ := s.store.Get(s.r, sessionName)
	session.Values[key] = string(value)

	if err := session.Save(s.r, s.w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Delete removes key and saves the session immediately
func (s *SessionKV) Delete(key string) error {
	session, _ := s.store.Get(s.r, sessionName)
	delete(session.Values, key)

	if err := session.Save(s.r, s.w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}
