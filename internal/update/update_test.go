package update_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modlingo/modlingo/internal/update"
)

func TestIsNewer(t *testing.T) {
	cases := []struct {
		current, latest string
		newer           bool
	}{
		{"1.0.0", "1.0.1", true},
		{"1.0.0", "v1.1.0", true},
		{"v2.0.0", "1.9.9", false},
		{"1.0.0", "1.0.0", false},
	}
	for _, tc := range cases {
		newer, err := update.IsNewer(tc.current, tc.latest)
		require.NoError(t, err)
		assert.Equal(t, tc.newer, newer, "%s vs %s", tc.current, tc.latest)
	}

	_, err := update.IsNewer("not-a-version", "1.0.0")
	assert.Error(t, err)
}

func TestCheckForUpdate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tag_name": "v1.2.0", "html_url": "https://example.com/rel", "body": "notes"}`))
	}))
	defer srv.Close()

	checker := update.NewCheckerWithEndpoint(srv.URL)

	rel, newer, err := checker.CheckForUpdate(context.Background(), "1.0.0")
	require.NoError(t, err)
	assert.True(t, newer)
	assert.Equal(t, "v1.2.0", rel.Version)
	assert.Equal(t, "https://example.com/rel", rel.URL)

	_, newer, err = checker.CheckForUpdate(context.Background(), "1.2.0")
	require.NoError(t, err)
	assert.False(t, newer)
}

func TestCheckForUpdateDevBuild(t *testing.T) {
	checker := update.NewCheckerWithEndpoint("http://127.0.0.1:0")
	rel, newer, err := checker.CheckForUpdate(context.Background(), "dev")
	require.NoError(t, err)
	assert.Nil(t, rel)
	assert.False(t, newer)
}

func TestCheckForUpdateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, _, err := update.NewCheckerWithEndpoint(srv.URL).CheckForUpdate(context.Background(), "1.0.0")
	assert.Error(t, err)
}
