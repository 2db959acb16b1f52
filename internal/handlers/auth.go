package handlers

import (
	"errors"
	"net/http"

	"concert-ticketing-client/internal/auth"
	"concert-ticketing-client/internal/middleware"
)

// AuthHandler manages the client's session over the backend-issued token.
// Credential checks happen at the backend; this handler only stores the
// resulting bearer token in the cookie session and resolves it back into a
// session object.
type AuthHandler struct {
	sessions *middleware.SessionMiddleware
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions *middleware.SessionMiddleware) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// signInRequest carries the token issued by the backend's sign-in operation
type signInRequest struct {
	Token string `json:"token"`
}

// SignIn stores the backend-issued bearer token after validating that it
// carries a usable identity
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decodeJSON(r, &req); err != nil || req.Token == "" {
		respondError(w, http.StatusBadRequest, "token is required")
		return
	}

	session, err := auth.FromToken(req.Token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			respondError(w, http.StatusUnauthorized, "session token expired")
			return
		}
		respondError(w, http.StatusBadRequest, "invalid session token")
		return
	}

	if err := h.sessions.SaveToken(w, r, req.Token); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"userId": session.UserID,
		"name":   session.Name,
		"email":  session.Email,
	})
}

// SignOut clears the stored session
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.ClearToken(w, r); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to clear session")
		return
	}
	http.Redirect(w, r, "/concerts", http.StatusSeeOther)
}

// Me returns the resolved session identity for the current request
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
	if !session.IsAuthenticated() {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"userId": session.UserID,
		"name":   session.Name,
		"email":  session.Email,
	})
}
