// Package library scans a mods directory for JAR files and exposes their
// metadata and translatable language files.
package library

import (
	"sync"

	"github.com/modlingo/modlingo/internal/models"
)

// Library is the in-memory index of scanned mods, keyed by mod ID. Refresh
// rebuilds it from disk; readers get stable snapshots.
type Library struct {
	mu   sync.RWMutex
	root string
	mods []*models.ModInfo
	byID map[string]*models.ModInfo
}

func New(root string) *Library {
	return &Library{root: root, byID: make(map[string]*models.ModInfo)}
}

// Root returns the scanned mods directory.
func (l *Library) Root() string { return l.root }

// Refresh rescans the mods directory and replaces the index.
func (l *Library) Refresh() error {
	mods, err := ScanDirectory(l.root)
	if err != nil {
		return err
	}

	byID := make(map[string]*models.ModInfo, len(mods))
	for _, m := range mods {
		byID[m.ID] = m
	}

	l.mu.Lock()
	l.mods = mods
	l.byID = byID
	l.mu.Unlock()
	return nil
}

// Mods returns the indexed mods in natural filename order.
func (l *Library) Mods() []*models.ModInfo {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*models.ModInfo, len(l.mods))
	copy(out, l.mods)
	return out
}

// Get returns a mod by its ID.
func (l *Library) Get(id string) (*models.ModInfo, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	m, ok := l.byID[id]
	return m, ok
}
