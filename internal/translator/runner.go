package translator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/modlingo/modlingo/internal/models"
	"github.com/modlingo/modlingo/internal/translator/providers"
)

const defaultMaxRetries = 3

// RunJob drives one job to a terminal state, processing its chunks strictly
// sequentially. The job record is mutated in place; callers read it via
// GetJob. Returns ErrInterrupted when the interruption flag halted the run.
func (s *Service) RunJob(ctx context.Context, jobID string) error {
	entry, ok := s.lookup(jobID)
	if !ok {
		return ErrJobNotFound
	}
	if entry.job.Status.Terminal() || !entry.running.CompareAndSwap(false, true) {
		return ErrJobNotRunnable
	}
	defer entry.running.Store(false)
	return s.run(ctx, entry)
}

// RunBatch runs jobs strictly sequentially, one fully drained before the
// next begins. An interruption stops the remainder of the whole batch;
// other job failures are isolated and the batch continues.
func (s *Service) RunBatch(ctx context.Context, jobIDs []string) error {
	for _, id := range jobIDs {
		err := s.RunJob(ctx, id)
		if errors.Is(err, ErrInterrupted) || errors.Is(err, context.Canceled) {
			return err
		}
		if err != nil {
			log.Printf("Job %s finished with error: %v", id, err)
		}
	}
	return nil
}

func (s *Service) run(ctx context.Context, entry *jobEntry) error {
	job := entry.job

	prov, ok := providers.Get(s.cfg.Provider.ID)
	if !ok {
		s.finish(job, models.JobStatusFailed)
		return fmt.Errorf("provider %q is not registered", s.cfg.Provider.ID)
	}

	// Interruption set before the job even started.
	if entry.interrupted.Load() {
		s.finish(job, models.JobStatusInterrupted)
		return ErrInterrupted
	}

	job.Status = models.JobStatusProcessing
	job.StartTime = time.Now()
	s.publish(job, "Translation started", 0, false)
	s.emit(CmdJobStarted, map[string]any{
		"job_id":          job.ID,
		"session_id":      job.SessionID,
		"display_name":    job.DisplayName,
		"target_language": job.TargetLanguage,
		"total_chunks":    len(job.Chunks),
	})

	for i, chunk := range job.Chunks {
		// Checkpoint: before each chunk.
		if entry.interrupted.Load() {
			s.finish(job, models.JobStatusInterrupted)
			return ErrInterrupted
		}

		chunk.Status = models.ChunkStatusProcessing
		s.publish(job, fmt.Sprintf("Translating chunk %d of %d", i+1, len(job.Chunks)), i, false)

		result, err := s.translateChunk(ctx, entry, prov, chunk)
		if errors.Is(err, ErrInterrupted) || errors.Is(err, context.Canceled) {
			// No terminal result was attached; the chunk returns to
			// pending so an interrupted job keeps a clean terminal prefix.
			chunk.Status = models.ChunkStatusPending
			s.finish(job, models.JobStatusInterrupted)
			return ErrInterrupted
		}

		if err != nil {
			chunk.Status = models.ChunkStatusFailed
			chunk.Error = err.Error()
			log.Printf("Job %s chunk %d failed: %v", job.ID, chunk.ID, err)
		} else {
			chunk.Status = models.ChunkStatusCompleted
			chunk.TranslatedContent = result
		}

		job.Progress = Progress(job)
		s.publish(job, fmt.Sprintf("Chunk %d of %d %s", i+1, len(job.Chunks), chunk.Status), i, false)
		s.emit(CmdChunkProgress, map[string]any{
			"job_id":      job.ID,
			"chunk_id":    chunk.ID,
			"status":      string(chunk.Status),
			"progress":    job.Progress,
			"error":       chunk.Error,
			"total_calls": job.TotalAPICalls,
		})

		// Credential failures would repeat on every remaining chunk;
		// abort the whole job unless configured otherwise.
		if err != nil && providers.IsAuthError(err) && s.cfg.Translation.AbortOnAuthError {
			s.finish(job, models.JobStatusFailed)
			return err
		}

		if interval := s.cfg.Provider.RequestIntervalMs; interval > 0 && i < len(job.Chunks)-1 {
			if !s.sleep(ctx, entry, time.Duration(interval)*time.Millisecond) {
				s.finish(job, models.JobStatusInterrupted)
				return ErrInterrupted
			}
		}
	}

	s.finish(job, terminalStatus(job))
	return nil
}

// terminalStatus applies the completion rule: all chunks completed means
// completed, any failure means failed. Interruption is handled by callers.
func terminalStatus(job *models.Job) models.JobStatus {
	for _, c := range job.Chunks {
		if c.Status != models.ChunkStatusCompleted {
			return models.JobStatusFailed
		}
	}
	return models.JobStatusCompleted
}

func (s *Service) finish(job *models.Job, status models.JobStatus) {
	now := time.Now()
	job.Status = status
	job.Progress = Progress(job)
	job.EndTime = &now

	failed := 0
	for _, c := range job.Chunks {
		if c.Status == models.ChunkStatusFailed {
			failed++
		}
	}
	s.publish(job, fmt.Sprintf("Translation %s", status), len(job.Chunks), true)
	s.emit(CmdJobFinished, map[string]any{
		"job_id":          job.ID,
		"session_id":      job.SessionID,
		"display_name":    job.DisplayName,
		"target_language": job.TargetLanguage,
		"status":          string(status),
		"total_chunks":    len(job.Chunks),
		"failed_chunks":   failed,
		"total_calls":     job.TotalAPICalls,
	})
}

// translateChunk performs the remote call with the retry protocol: auth
// errors are terminal, rate limits honor the server-suggested delay, other
// errors back off linearly, and the interruption flag is re-checked before
// every retry. Validation and parse errors are terminal for the chunk; the
// retry budget was already spent producing them.
func (s *Service) translateChunk(ctx context.Context, entry *jobEntry, prov models.Provider, chunk *models.Chunk) (map[string]string, error) {
	req := &models.TranslationRequest{
		Content:        chunk.Content,
		TargetLanguage: entry.job.TargetLanguage,
		PromptTemplate: s.cfg.Provider.PromptTemplate,
	}

	maxRetries := s.cfg.Translation.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			// Checkpoint: before each retry.
			if entry.interrupted.Load() {
				return nil, ErrInterrupted
			}
			delay := s.retryBaseDelay * time.Duration(attempt)
			if rl, ok := providers.AsRateLimit(lastErr); ok && rl.RetryAfter > 0 {
				delay = rl.RetryAfter
			}
			if !s.sleep(ctx, entry, delay) {
				return nil, ErrInterrupted
			}
		}

		resp, err := prov.Translate(ctx, req)
		entry.job.TotalAPICalls++
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			if providers.IsAuthError(err) {
				return nil, err
			}
			lastErr = err
			continue
		}

		result := resp.Content
		if result == nil {
			result, err = Reconstruct(chunk.Content.Keys(), resp.RawText)
			if err != nil {
				return nil, err
			}
		}
		if err := Validate(chunk.Content.Keys(), result); err != nil {
			return nil, err
		}
		return result, nil
	}
	return nil, lastErr
}

// sleep waits for d, returning false if the context was cancelled or the
// job was interrupted while waiting.
func (s *Service) sleep(ctx context.Context, entry *jobEntry, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
			return true
		case <-ticker.C:
			if entry.interrupted.Load() {
				return false
			}
		}
	}
}
