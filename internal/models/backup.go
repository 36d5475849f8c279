package models

import "time"

// BackupRecord describes one pre-translation snapshot archive.
type BackupRecord struct {
	ID             int64     `json:"id"`
	SessionID      string    `json:"session_id"`
	SourceName     string    `json:"source_name"`
	TargetLanguage string    `json:"target_language"`
	ArchivePath    string    `json:"archive_path"`
	FileCount      int       `json:"file_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// SessionSummary is the persisted record of one translation job run.
type SessionSummary struct {
	ID             int64      `json:"id"`
	SessionID      string     `json:"session_id"`
	JobID          string     `json:"job_id"`
	DisplayName    string     `json:"display_name,omitempty"`
	TargetLanguage string     `json:"target_language"`
	Status         string     `json:"status"`
	TotalChunks    int        `json:"total_chunks"`
	FailedChunks   int        `json:"failed_chunks"`
	TotalAPICalls  int        `json:"total_api_calls"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        *time.Time `json:"end_time,omitempty"`
}
