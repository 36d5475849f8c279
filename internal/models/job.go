package models

import "time"

// ChunkStatus tracks the lifecycle of a single chunk.
type ChunkStatus string

const (
	ChunkStatusPending    ChunkStatus = "pending"
	ChunkStatusProcessing ChunkStatus = "processing"
	ChunkStatusCompleted  ChunkStatus = "completed"
	ChunkStatusFailed     ChunkStatus = "failed"
)

// Terminal reports whether the status is final. A chunk counts toward job
// progress the moment it leaves processing, regardless of outcome.
func (s ChunkStatus) Terminal() bool {
	return s == ChunkStatusCompleted || s == ChunkStatusFailed
}

// JobStatus tracks the lifecycle of a translation job.
type JobStatus string

const (
	JobStatusPending     JobStatus = "pending"
	JobStatusProcessing  JobStatus = "processing"
	JobStatusCompleted   JobStatus = "completed"
	JobStatusFailed      JobStatus = "failed"
	JobStatusInterrupted JobStatus = "interrupted"
)

// Terminal reports whether the status is final. A terminal job is immutable.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed || s == JobStatusInterrupted
}

// Chunk is a sub-partition of a job's dataset sized to fit one remote call.
// Content keys are unique within a chunk and keep the dataset's original
// iteration order.
type Chunk struct {
	ID                int               `json:"id"`
	Content           *Dataset          `json:"content"`
	Status            ChunkStatus       `json:"status"`
	TranslatedContent map[string]string `json:"translated_content,omitempty"`
	Error             string            `json:"error,omitempty"`
	// SyntheticKeys lists content keys the splitter fabricated for
	// long-content parts; every other key came verbatim from the input.
	SyntheticKeys []string `json:"synthetic_keys,omitempty"`
}

// IsSyntheticKey reports whether key was fabricated by long-content
// splitting rather than taken from the input dataset.
func (c *Chunk) IsSyntheticKey(key string) bool {
	for _, k := range c.SyntheticKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Job is one translation request for an entire dataset. It is mutated in
// place by the orchestrator while running and becomes immutable once Status
// is terminal.
type Job struct {
	ID              string     `json:"id"`
	DisplayName     string     `json:"display_name,omitempty"`
	TargetLanguage  string     `json:"target_language"`
	Chunks          []*Chunk   `json:"chunks"`
	Status          JobStatus  `json:"status"`
	Progress        int        `json:"progress"` // 0-100
	SessionID       string     `json:"session_id"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	TotalAPICalls   int        `json:"total_api_calls"`
	CurrentFileName string     `json:"current_file_name,omitempty"`
}

// ValidChunkTransition enforces the allowed chunk state machine edges.
func ValidChunkTransition(from, to ChunkStatus) bool {
	switch from {
	case ChunkStatusPending:
		return to == ChunkStatusProcessing
	case ChunkStatusProcessing:
		return to == ChunkStatusCompleted || to == ChunkStatusFailed
	default:
		return false
	}
}

// ValidJobTransition enforces the allowed job state machine edges.
func ValidJobTransition(from, to JobStatus) bool {
	switch from {
	case JobStatusPending:
		return to == JobStatusProcessing || to == JobStatusInterrupted
	case JobStatusProcessing:
		return to == JobStatusCompleted || to == JobStatusFailed || to == JobStatusInterrupted
	default:
		return false
	}
}
