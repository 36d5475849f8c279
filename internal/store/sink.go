package store

import (
	"encoding/json"
	"time"

	"github.com/modlingo/modlingo/internal/models"
	"github.com/modlingo/modlingo/internal/translator"
)

// TelemetrySink persists orchestrator telemetry: a sessions row per job run
// plus an append-only event log. It is registered with the translator
// service as a fire-and-forget sink, so a database hiccup never fails a job.
type TelemetrySink struct {
	store *Store
}

func NewTelemetrySink(s *Store) *TelemetrySink {
	return &TelemetrySink{store: s}
}

func (t *TelemetrySink) Invoke(name string, args map[string]any) error {
	payload, err := json.Marshal(args)
	if err != nil {
		return err
	}
	jobID := argString(args, "job_id")

	switch name {
	case translator.CmdJobCreated:
		if err := t.store.UpsertSession(&models.SessionSummary{
			SessionID:      argString(args, "session_id"),
			JobID:          jobID,
			DisplayName:    argString(args, "display_name"),
			TargetLanguage: argString(args, "target_language"),
			Status:         string(models.JobStatusPending),
			TotalChunks:    argInt(args, "total_chunks"),
			StartTime:      time.Now(),
		}); err != nil {
			return err
		}
	case translator.CmdJobStarted:
		if err := t.store.UpsertSession(&models.SessionSummary{
			SessionID:      argString(args, "session_id"),
			JobID:          jobID,
			DisplayName:    argString(args, "display_name"),
			TargetLanguage: argString(args, "target_language"),
			Status:         string(models.JobStatusProcessing),
			TotalChunks:    argInt(args, "total_chunks"),
			StartTime:      time.Now(),
		}); err != nil {
			return err
		}
	case translator.CmdJobFinished:
		now := time.Now()
		if err := t.store.UpsertSession(&models.SessionSummary{
			SessionID:      argString(args, "session_id"),
			JobID:          jobID,
			DisplayName:    argString(args, "display_name"),
			TargetLanguage: argString(args, "target_language"),
			Status:         argString(args, "status"),
			TotalChunks:    argInt(args, "total_chunks"),
			FailedChunks:   argInt(args, "failed_chunks"),
			TotalAPICalls:  argInt(args, "total_calls"),
			StartTime:      now,
			EndTime:        &now,
		}); err != nil {
			return err
		}
	}

	return t.store.AddEvent(jobID, name, string(payload))
}

func argString(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

func argInt(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
