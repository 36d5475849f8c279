// This file implements a file system watcher for the mods directory. It
// uses OS-level file system events to detect new or changed JARs and
// triggers a rescan through the job manager.

package library

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/modlingo/modlingo/internal/jobs"
)

// WatcherService watches the mods directory and schedules a mod scan when
// JAR files are added, modified, or deleted.
type WatcherService struct {
	ctx           jobs.JobContext
	watcher       *fsnotify.Watcher
	mu            sync.Mutex
	debounceTimer *time.Timer
	debounceDelay time.Duration
	stopChan      chan struct{}
}

// NewWatcherService creates a new file system watcher service.
func NewWatcherService(ctx jobs.JobContext) *WatcherService {
	return &WatcherService{
		ctx:           ctx,
		debounceDelay: 2 * time.Second, // Wait for copies to settle before scanning
		stopChan:      make(chan struct{}),
	}
}

// Start begins watching the mods directory for changes.
func (w *WatcherService) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = watcher

	modsPath := w.ctx.Config().Mods.Path
	err = filepath.WalkDir(modsPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		// Files are watched through their parent directory.
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return err
	}

	log.Printf("File watcher started for mods directory: %s", modsPath)
	go w.processEvents()
	return nil
}

// Stop stops the file watcher service.
func (w *WatcherService) Stop() error {
	close(w.stopChan)
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

func (w *WatcherService) processEvents() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)

		case <-w.stopChan:
			return
		}
	}
}

func (w *WatcherService) handleEvent(event fsnotify.Event) {
	// Chmod fires when files are merely opened; ignore it.
	if event.Op == fsnotify.Chmod {
		return
	}

	relevant := event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
	if !relevant {
		return
	}

	info, err := os.Stat(event.Name)
	isDir := err == nil && info.IsDir()

	// New subdirectories join the watch list.
	if isDir && event.Op&fsnotify.Create != 0 {
		w.watcher.Add(event.Name)
		w.scheduleScan()
		return
	}

	if !isDir && strings.EqualFold(filepath.Ext(event.Name), ".jar") {
		w.scheduleScan()
	}
}

// scheduleScan debounces bursts of file events into one scan request.
func (w *WatcherService) scheduleScan() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceDelay, func() {
		if err := w.ctx.JobManager().RunJob(jobs.JobModScan, w.ctx); err != nil {
			log.Printf("Watcher-triggered scan could not start: %v", err)
		}
	})
}
