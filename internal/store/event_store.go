package store

import (
	"time"
)

// Event is one persisted telemetry record for a job.
type Event struct {
	ID        int64     `json:"id"`
	JobID     string    `json:"job_id"`
	Name      string    `json:"name"`
	Payload   string    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// AddEvent appends a telemetry event. Payload is pre-serialized JSON.
func (s *Store) AddEvent(jobID, name, payload string) error {
	_, err := s.db.Exec(`
		INSERT INTO events (job_id, name, payload, created_at) VALUES (?, ?, ?, ?)`,
		jobID, name, payload, time.Now())
	return err
}

// ListEvents returns the events recorded for a job, in insertion order.
func (s *Store) ListEvents(jobID string) ([]*Event, error) {
	rows, err := s.db.Query(`
		SELECT id, job_id, name, payload, created_at FROM events
		WHERE job_id = ? ORDER BY id ASC`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Event
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.ID, &ev.JobID, &ev.Name, &ev.Payload, &ev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &ev)
	}
	return out, rows.Err()
}
