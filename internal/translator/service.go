// Package translator implements the translation job engine: job creation
// and registry, the sequential chunk runner with its retry protocol, and
// progress/telemetry reporting.
package translator

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/modlingo/modlingo/internal/chunker"
	"github.com/modlingo/modlingo/internal/config"
	"github.com/modlingo/modlingo/internal/models"
	"github.com/modlingo/modlingo/internal/tokens"
	"github.com/modlingo/modlingo/internal/websocket"
)

// SessionIDLayout is the timestamp format used for session IDs, shared with
// the backup snapshot naming.
const SessionIDLayout = "2006-01-02_15-04-05"

// jobEntry pairs a job record with its out-of-band interruption flag. The
// flag lives outside the Job so callers can set it at any time while the
// runner exclusively mutates the record.
type jobEntry struct {
	job         *models.Job
	interrupted atomic.Bool
	running     atomic.Bool
}

// Service owns the job registry and drives job runs. Jobs live for as long
// as the caller keeps them (CreateJob/ClearJob); there is no hidden global
// state.
type Service struct {
	mu   sync.RWMutex
	jobs map[string]*jobEntry

	cfg   *config.Config
	hub   *websocket.Hub
	sinks []Sink

	// retryBaseDelay is the unit of the linear backoff (delay = base *
	// attempt). Tests shorten it.
	retryBaseDelay time.Duration
}

// NewService creates a translation service. hub may be nil (no progress
// broadcasting); sinks receive fire-and-forget telemetry.
func NewService(cfg *config.Config, hub *websocket.Hub, sinks ...Sink) *Service {
	return &Service{
		jobs:           make(map[string]*jobEntry),
		cfg:            cfg,
		hub:            hub,
		sinks:          sinks,
		retryBaseDelay: time.Second,
	}
}

// SetRetryBaseDelay overrides the backoff unit. Used by tests.
func (s *Service) SetRetryBaseDelay(d time.Duration) { s.retryBaseDelay = d }

// CreateJob splits content into chunks under the configured policy and
// registers a new pending job. Split failures surface here, before any
// remote call is made. An empty dataset yields a zero-chunk job that
// completes immediately when run.
func (s *Service) CreateJob(content *models.Dataset, targetLanguage, displayName string) (*models.Job, error) {
	profile := tokens.ProfileFor(s.cfg.Provider.ID)

	mode := chunker.PolicyToken
	if s.cfg.Translation.Policy == "entry" {
		mode = chunker.PolicyEntry
	}
	chunks, err := chunker.Split(content, chunker.Policy{
		Mode:                  mode,
		ChunkSize:             s.cfg.Translation.ChunkSize,
		MaxTokensPerChunk:     s.cfg.Translation.MaxTokensPerChunk,
		LongContentThreshold:  s.cfg.Translation.LongContentThreshold,
		MaxPartLength:         s.cfg.Translation.MaxPartLength,
		FallbackToEntryPolicy: s.cfg.Translation.FallbackToEntryPolicy,
		Profile:               profile,
	})
	if err != nil {
		return nil, err
	}

	job := &models.Job{
		ID:              uuid.NewString(),
		DisplayName:     displayName,
		TargetLanguage:  targetLanguage,
		Chunks:          chunks,
		Status:          models.JobStatusPending,
		SessionID:       time.Now().Format(SessionIDLayout),
		StartTime:       time.Now(),
		CurrentFileName: displayName,
	}

	s.mu.Lock()
	s.jobs[job.ID] = &jobEntry{job: job}
	s.mu.Unlock()

	s.emit(CmdJobCreated, map[string]any{
		"job_id":          job.ID,
		"session_id":      job.SessionID,
		"display_name":    job.DisplayName,
		"target_language": job.TargetLanguage,
		"total_chunks":    len(job.Chunks),
	})
	return job, nil
}

// GetJob returns the job record for reading. Mutation is reserved to the
// runner.
func (s *Service) GetJob(jobID string) (*models.Job, error) {
	entry, ok := s.lookup(jobID)
	if !ok {
		return nil, ErrJobNotFound
	}
	return entry.job, nil
}

// ListJobs returns all registered jobs, newest first.
func (s *Service) ListJobs() []*models.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Job, 0, len(s.jobs))
	for _, e := range s.jobs {
		out = append(out, e.job)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out
}

// ClearJob removes a job from the registry.
func (s *Service) ClearJob(jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[jobID]; !ok {
		return ErrJobNotFound
	}
	delete(s.jobs, jobID)
	return nil
}

// Interrupt sets the job's interruption flag. The flag is sticky and is
// observed before each chunk starts and before each retry attempt, so
// cancellation latency is bounded by one in-flight remote call.
func (s *Service) Interrupt(jobID string) error {
	entry, ok := s.lookup(jobID)
	if !ok {
		return ErrJobNotFound
	}
	entry.interrupted.Store(true)
	return nil
}

// CombinedContent reassembles the translated output of all completed
// chunks, in chunk order. Synthetic "_part_n" keys produced by long-content
// splitting are re-merged onto their original key by concatenating the
// parts in order, so the output key set matches the input dataset. Only
// keys the splitter recorded as fabricated are re-merged; a genuine input
// key that happens to end in "_part_n" passes through untouched.
func (s *Service) CombinedContent(jobID string) (map[string]string, error) {
	entry, ok := s.lookup(jobID)
	if !ok {
		return nil, ErrJobNotFound
	}

	combined := make(map[string]string)
	// Parts arrive in chunk order, which is part order.
	partsSeen := make(map[string]int)

	for _, chunk := range entry.job.Chunks {
		if chunk.Status != models.ChunkStatusCompleted {
			continue
		}
		for _, key := range chunk.Content.Keys() {
			value, ok := chunk.TranslatedContent[key]
			if !ok {
				continue
			}
			if orig, _, isPart := chunker.IsPartKey(key); isPart && chunk.IsSyntheticKey(key) {
				if partsSeen[orig] > 0 {
					combined[orig] = combined[orig] + " " + strings.TrimSpace(value)
				} else {
					combined[orig] = strings.TrimSpace(value)
				}
				partsSeen[orig]++
				continue
			}
			combined[key] = value
		}
	}
	return combined, nil
}

func (s *Service) lookup(jobID string) (*jobEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.jobs[jobID]
	return entry, ok
}

func (s *Service) publish(job *models.Job, message string, chunkIndex int, done bool) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastJSON(models.ProgressUpdate{
		JobID:       job.ID,
		Message:     message,
		Progress:    float64(job.Progress),
		Status:      string(job.Status),
		ChunkIndex:  chunkIndex,
		TotalChunks: len(job.Chunks),
		Done:        done,
	})
}
