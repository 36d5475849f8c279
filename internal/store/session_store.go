package store

import (
	"database/sql"
	"time"

	"github.com/modlingo/modlingo/internal/models"
)

// UpsertSession records or refreshes the summary row for a job run, keyed by
// job ID. Called on job start and again on every status change.
func (s *Store) UpsertSession(sum *models.SessionSummary) error {
	_, err := s.db.Exec(`
		INSERT INTO sessions (session_id, job_id, display_name, target_language, status, total_chunks, failed_chunks, total_api_calls, start_time, end_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(job_id) DO UPDATE SET
			status = excluded.status,
			failed_chunks = excluded.failed_chunks,
			total_api_calls = excluded.total_api_calls,
			end_time = excluded.end_time`,
		sum.SessionID, sum.JobID, sum.DisplayName, sum.TargetLanguage, sum.Status,
		sum.TotalChunks, sum.FailedChunks, sum.TotalAPICalls, sum.StartTime, sum.EndTime)
	return err
}

// GetSessionByJobID retrieves one session summary.
func (s *Store) GetSessionByJobID(jobID string) (*models.SessionSummary, error) {
	row := s.db.QueryRow(`
		SELECT id, session_id, job_id, display_name, target_language, status, total_chunks, failed_chunks, total_api_calls, start_time, end_time
		FROM sessions WHERE job_id = ?`, jobID)
	return scanSession(row)
}

// ListSessions returns session summaries, newest first. A limit of 0 returns
// everything.
func (s *Store) ListSessions(limit int) ([]*models.SessionSummary, error) {
	query := `
		SELECT id, session_id, job_id, display_name, target_language, status, total_chunks, failed_chunks, total_api_calls, start_time, end_time
		FROM sessions ORDER BY start_time DESC, id DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.Query(query+" LIMIT ?", limit)
	} else {
		rows, err = s.db.Query(query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.SessionSummary
	for rows.Next() {
		sum, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// DeleteSession removes a session summary by job ID.
func (s *Store) DeleteSession(jobID string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE job_id = ?", jobID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*models.SessionSummary, error) {
	var sum models.SessionSummary
	var end sql.NullTime
	err := row.Scan(&sum.ID, &sum.SessionID, &sum.JobID, &sum.DisplayName, &sum.TargetLanguage,
		&sum.Status, &sum.TotalChunks, &sum.FailedChunks, &sum.TotalAPICalls, &sum.StartTime, &end)
	if err != nil {
		return nil, err
	}
	if end.Valid {
		t := end.Time.In(time.Local)
		sum.EndTime = &t
	}
	return &sum, nil
}
