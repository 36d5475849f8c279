package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/modlingo/modlingo/internal/api"
	"github.com/modlingo/modlingo/internal/auth"
)

// GetAuthCookie creates a user with the given role, logs in through the real
// login handler, and returns the session cookie it set.
func GetAuthCookie(t *testing.T, s *api.Server, username, password, role string) *http.Cookie {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password for test user: %v", err)
	}
	if _, err := s.Store().CreateUser(username, hash, role); err != nil {
		t.Fatalf("Failed to create test user %q: %v", username, err)
	}

	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	req := httptest.NewRequest("POST", "/api/users/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("Login failed for test user %q: got status %d, want 200", username, rr.Code)
	}

	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == "session_token" {
			return cookie
		}
	}
	t.Fatalf("No session cookie returned for test user %q", username)
	return nil
}
