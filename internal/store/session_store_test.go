package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modlingo/modlingo/internal/models"
	"github.com/modlingo/modlingo/internal/store"
	"github.com/modlingo/modlingo/internal/testutil"
)

func TestUpsertAndGetSession(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))

	start := time.Now()
	require.NoError(t, st.UpsertSession(&models.SessionSummary{
		SessionID:      "2025-01-02_15-04-05",
		JobID:          "job-1",
		DisplayName:    "examplemod en_us.json",
		TargetLanguage: "German",
		Status:         "processing",
		TotalChunks:    4,
		StartTime:      start,
	}))

	sum, err := st.GetSessionByJobID("job-1")
	require.NoError(t, err)
	assert.Equal(t, "processing", sum.Status)
	assert.Equal(t, 4, sum.TotalChunks)
	assert.Nil(t, sum.EndTime)

	// The second upsert for the same job updates in place.
	end := time.Now()
	require.NoError(t, st.UpsertSession(&models.SessionSummary{
		SessionID:      "2025-01-02_15-04-05",
		JobID:          "job-1",
		DisplayName:    "examplemod en_us.json",
		TargetLanguage: "German",
		Status:         "completed",
		TotalChunks:    4,
		TotalAPICalls:  6,
		StartTime:      start,
		EndTime:        &end,
	}))

	sum, err = st.GetSessionByJobID("job-1")
	require.NoError(t, err)
	assert.Equal(t, "completed", sum.Status)
	assert.Equal(t, 6, sum.TotalAPICalls)
	require.NotNil(t, sum.EndTime)

	all, err := st.ListSessions(0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestListSessionsNewestFirstWithLimit(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, st.UpsertSession(&models.SessionSummary{
			SessionID: "s",
			JobID:     string(rune('a' + i)),
			Status:    "completed",
			StartTime: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	sessions, err := st.ListSessions(2)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "c", sessions[0].JobID)
	assert.Equal(t, "b", sessions[1].JobID)
}

func TestDeleteSession(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))

	require.NoError(t, st.UpsertSession(&models.SessionSummary{
		SessionID: "s", JobID: "job-1", Status: "failed", StartTime: time.Now(),
	}))
	require.NoError(t, st.DeleteSession("job-1"))

	_, err := st.GetSessionByJobID("job-1")
	assert.Error(t, err)
}
