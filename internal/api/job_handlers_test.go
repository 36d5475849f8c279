package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modlingo/modlingo/internal/testutil"
)

func authedRequest(t *testing.T, router http.Handler, cookie *http.Cookie, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestCreateAndRunJob(t *testing.T) {
	server, _ := testutil.SetupTestServer(t)
	router := server.Router()
	cookie := testutil.GetAuthCookie(t, server, "alice", "password123", "user")

	// Inline content: 3 entries at chunk size 2 yields 2 chunks.
	body := []byte(`{
		"target_language": "German",
		"display_name": "inline test",
		"content": {"a": "Apple", "b": "Bread", "c": "Carrot"}
	}`)
	rr := authedRequest(t, router, cookie, "POST", "/api/jobs", body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var job struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Chunks []any  `json:"chunks"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &job))
	assert.Equal(t, "pending", job.Status)
	assert.Len(t, job.Chunks, 2)

	rr = authedRequest(t, router, cookie, "POST", "/api/jobs/"+job.ID+"/run", nil)
	require.Equal(t, http.StatusAccepted, rr.Code)

	// The run is asynchronous; poll until it reaches a terminal state.
	require.Eventually(t, func() bool {
		rr := authedRequest(t, router, cookie, "GET", "/api/jobs/"+job.ID, nil)
		if rr.Code != http.StatusOK {
			return false
		}
		var got struct {
			Status   string `json:"status"`
			Progress int    `json:"progress"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
			return false
		}
		return got.Status == "completed" && got.Progress == 100
	}, 5*time.Second, 10*time.Millisecond)

	rr = authedRequest(t, router, cookie, "GET", "/api/jobs/"+job.ID+"/content", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var content map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &content))
	assert.Equal(t, "[German] Apple", content["a"])
	assert.Equal(t, "[German] Carrot", content["c"])

	// The run was recorded in session history.
	rr = authedRequest(t, router, cookie, "GET", "/api/sessions", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var sessions []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sessions))
	require.Len(t, sessions, 1)
	assert.Equal(t, "completed", sessions[0]["status"])

	// And the telemetry event log is queryable.
	rr = authedRequest(t, router, cookie, "GET", "/api/jobs/"+job.ID+"/events", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var events []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &events))
	assert.NotEmpty(t, events)
}

func TestCreateJobValidation(t *testing.T) {
	server, _ := testutil.SetupTestServer(t)
	router := server.Router()
	cookie := testutil.GetAuthCookie(t, server, "alice", "password123", "user")

	// Missing target language.
	rr := authedRequest(t, router, cookie, "POST", "/api/jobs",
		[]byte(`{"content": {"a": "Apple"}}`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Neither mod_id nor content.
	rr = authedRequest(t, router, cookie, "POST", "/api/jobs",
		[]byte(`{"target_language": "German"}`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Unknown mod.
	rr = authedRequest(t, router, cookie, "POST", "/api/jobs",
		[]byte(`{"target_language": "German", "mod_id": "nope"}`))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestInterruptAndClearJob(t *testing.T) {
	server, _ := testutil.SetupTestServer(t)
	router := server.Router()
	cookie := testutil.GetAuthCookie(t, server, "alice", "password123", "user")

	rr := authedRequest(t, router, cookie, "POST", "/api/jobs",
		[]byte(`{"target_language": "German", "content": {"a": "Apple"}}`))
	require.Equal(t, http.StatusCreated, rr.Code)
	var job struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &job))

	rr = authedRequest(t, router, cookie, "POST", "/api/jobs/"+job.ID+"/interrupt", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = authedRequest(t, router, cookie, "DELETE", "/api/jobs/"+job.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = authedRequest(t, router, cookie, "GET", "/api/jobs/"+job.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = authedRequest(t, router, cookie, "POST", "/api/jobs/missing/interrupt", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
