package models

// ProgressUpdate is the message broadcast over the websocket hub after
// every chunk transition and at job start/end.
type ProgressUpdate struct {
	JobID       string  `json:"job_id"`
	Message     string  `json:"message"`
	Progress    float64 `json:"progress"`
	Status      string  `json:"status"`
	ChunkIndex  int     `json:"chunk_index,omitempty"`
	TotalChunks int     `json:"total_chunks"`
	Done        bool    `json:"done"`
}
