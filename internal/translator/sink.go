package translator

import "log"

// Sink receives fire-and-forget telemetry commands: job start, per-chunk
// progress, completion summaries, backup records. A sink failure must never
// abort translation; emit recovers panics and logs locally.
type Sink interface {
	Invoke(name string, args map[string]any) error
}

// Telemetry command names emitted by the orchestrator.
const (
	CmdJobCreated    = "job_created"
	CmdJobStarted    = "job_started"
	CmdChunkProgress = "chunk_progress"
	CmdJobFinished   = "job_finished"
)

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(name string, args map[string]any) error

func (f SinkFunc) Invoke(name string, args map[string]any) error { return f(name, args) }

func (s *Service) emit(name string, args map[string]any) {
	for _, sink := range s.sinks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("Telemetry sink panicked on %s: %v", name, r)
				}
			}()
			if err := sink.Invoke(name, args); err != nil {
				log.Printf("Telemetry sink failed on %s: %v", name, err)
			}
		}()
	}
}
