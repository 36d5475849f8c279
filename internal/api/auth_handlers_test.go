package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modlingo/modlingo/internal/testutil"
)

func TestRegisterFirstUserOnly(t *testing.T) {
	server, _ := testutil.SetupTestServer(t)
	router := server.Router()

	payload := []byte(`{"username": "admin", "password": "longenough"}`)
	req := httptest.NewRequest("POST", "/api/users/register", bytes.NewBuffer(payload))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	var user map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
	assert.Equal(t, "admin", user["username"])
	assert.Equal(t, "admin", user["role"])

	// Registration closes once a user exists.
	req = httptest.NewRequest("POST", "/api/users/register", bytes.NewBuffer(payload))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	server, _ := testutil.SetupTestServer(t)
	req := httptest.NewRequest("POST", "/api/users/register",
		bytes.NewBufferString(`{"username": "admin", "password": "short"}`))
	rr := httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLoginAndMe(t *testing.T) {
	server, _ := testutil.SetupTestServer(t)
	cookie := testutil.GetAuthCookie(t, server, "alice", "password123", "user")

	req := httptest.NewRequest("GET", "/api/users/me", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var user map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
	assert.Equal(t, "alice", user["username"])
}

func TestLoginWrongPassword(t *testing.T) {
	server, _ := testutil.SetupTestServer(t)
	testutil.GetAuthCookie(t, server, "alice", "password123", "user")

	req := httptest.NewRequest("POST", "/api/users/login",
		bytes.NewBufferString(`{"username": "alice", "password": "wrong"}`))
	rr := httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	server, _ := testutil.SetupTestServer(t)

	for _, path := range []string{"/api/mods", "/api/jobs", "/api/sessions"} {
		req := httptest.NewRequest("GET", path, nil)
		rr := httptest.NewRecorder()
		server.Router().ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	server, _ := testutil.SetupTestServer(t)
	cookie := testutil.GetAuthCookie(t, server, "alice", "password123", "user")

	req := httptest.NewRequest("POST", "/api/users/logout", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest("GET", "/api/users/me", nil)
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
