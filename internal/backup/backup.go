// Package backup snapshots language files into zip archives before a
// translation session overwrites them, and prunes old snapshots per source.
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mholt/archives"

	"github.com/modlingo/modlingo/internal/models"
	"github.com/modlingo/modlingo/internal/store"
	"github.com/modlingo/modlingo/internal/translator"
)

// ValidSessionID reports whether id matches the shared timestamp layout.
// Session IDs end up in archive file names, so anything else is rejected.
func ValidSessionID(id string) bool {
	_, err := time.Parse(translator.SessionIDLayout, id)
	return err == nil
}

// SnapshotName builds the archive filename for a session and source, e.g.
// "examplemod_2025-01-02_15-04-05.zip".
func SnapshotName(sourceName, sessionID string) string {
	return fmt.Sprintf("%s_%s.zip", sourceName, sessionID)
}

// CreateSnapshot archives the given files into backupDir and records the
// snapshot. Files are stored under their base names; lang file snapshots
// are flat by nature.
func CreateSnapshot(ctx context.Context, st *store.Store, backupDir, sourceName, sessionID, targetLanguage string, files []string) (*models.BackupRecord, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to snapshot for %s", sourceName)
	}
	if !ValidSessionID(sessionID) {
		return nil, fmt.Errorf("invalid session id %q", sessionID)
	}
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	nameMap := make(map[string]string, len(files))
	for _, f := range files {
		nameMap[f] = filepath.Base(f)
	}
	fileInfos, err := archives.FilesFromDisk(ctx, nil, nameMap)
	if err != nil {
		return nil, fmt.Errorf("failed to stat snapshot files: %w", err)
	}

	archivePath := filepath.Join(backupDir, SnapshotName(sourceName, sessionID))
	out, err := os.Create(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}
	defer out.Close()

	format := archives.Zip{}
	if err := format.Archive(ctx, out, fileInfos); err != nil {
		os.Remove(archivePath)
		return nil, fmt.Errorf("failed to write archive: %w", err)
	}

	rec := &models.BackupRecord{
		SessionID:      sessionID,
		SourceName:     sourceName,
		TargetLanguage: targetLanguage,
		ArchivePath:    archivePath,
		FileCount:      len(files),
		CreatedAt:      time.Now(),
	}
	id, err := st.AddBackup(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to record backup: %w", err)
	}
	rec.ID = id
	return rec, nil
}

// Prune deletes the oldest snapshots of each source beyond keep, both the
// archive files and their records. Returns how many snapshots were removed.
func Prune(st *store.Store, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}

	all, err := st.ListBackups()
	if err != nil {
		return 0, err
	}

	sources := make(map[string]bool)
	for _, rec := range all {
		sources[rec.SourceName] = true
	}

	removed := 0
	for source := range sources {
		recs, err := st.ListBackupsForSource(source)
		if err != nil {
			return removed, err
		}
		for len(recs) > keep {
			rec := recs[0]
			recs = recs[1:]
			if err := os.Remove(rec.ArchivePath); err != nil && !os.IsNotExist(err) {
				return removed, fmt.Errorf("failed to remove %s: %w", rec.ArchivePath, err)
			}
			if err := st.DeleteBackup(rec.ID); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}
