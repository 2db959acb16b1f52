package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"concert-ticketing-client/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthHandler() *AuthHandler {
	store := sessions.NewCookieStore([]byte("test"))
	return NewAuthHandler(middleware.NewSessionMiddleware(store))
}

func backendToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestAuthHandler_SignIn(t *testing.T) {
	handler := newAuthHandler()

	raw := backendToken(t, jwt.MapClaims{
		"sub":   "user-1",
		"name":  "Jane Doe",
		"email": "jane@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	body, _ := json.Marshal(map[string]string{"token": raw})

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.SignIn(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "user-1", resp["userId"])
	assert.Equal(t, "Jane Doe", resp["name"])
	assert.NotEmpty(t, rec.Header().Get("Set-Cookie"))
}

func TestAuthHandler_SignIn_MissingToken(t *testing.T) {
	handler := newAuthHandler()

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	handler.SignIn(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_SignIn_ExpiredToken(t *testing.T) {
	handler := newAuthHandler()

	raw := backendToken(t, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	body, _ := json.Marshal(map[string]string{"token": raw})

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.SignIn(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_SignOut(t *testing.T) {
	handler := newAuthHandler()

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()
	handler.SignOut(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/concerts", rec.Header().Get("Location"))
}

func TestAuthHandler_Me(t *testing.T) {
	handler := newAuthHandler()

	req := withSession(httptest.NewRequest(http.MethodGet, "/me", nil), authedSession())
	rec := httptest.NewRecorder()
	handler.Me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "user-1", resp["userId"])
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	handler := newAuthHandler()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	handler.Me(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
