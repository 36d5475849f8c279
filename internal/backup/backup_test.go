package backup_test

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modlingo/modlingo/internal/backup"
	"github.com/modlingo/modlingo/internal/models"
	"github.com/modlingo/modlingo/internal/store"
	"github.com/modlingo/modlingo/internal/testutil"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCreateSnapshot(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))
	srcDir := t.TempDir()
	backupDir := filepath.Join(t.TempDir(), "backups")

	en := writeFile(t, srcDir, "en_us.json", `{"key": "value"}`)
	de := writeFile(t, srcDir, "de_de.json", `{"key": "wert"}`)

	rec, err := backup.CreateSnapshot(context.Background(), st, backupDir,
		"examplemod", "2025-01-02_15-04-05", "German", []string{en, de})
	require.NoError(t, err)

	assert.Equal(t, "examplemod", rec.SourceName)
	assert.Equal(t, 2, rec.FileCount)
	assert.FileExists(t, rec.ArchivePath)
	assert.Equal(t, "examplemod_2025-01-02_15-04-05.zip", filepath.Base(rec.ArchivePath))

	// Archive contains both files under their base names.
	zr, err := zip.OpenReader(rec.ArchivePath)
	require.NoError(t, err)
	defer zr.Close()
	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	assert.True(t, names["en_us.json"])
	assert.True(t, names["de_de.json"])

	// And it was recorded in the store.
	recs, err := st.ListBackups()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, rec.ID, recs[0].ID)
}

func TestCreateSnapshotNoFiles(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))
	_, err := backup.CreateSnapshot(context.Background(), st, t.TempDir(),
		"examplemod", "2025-01-02_15-04-05", "German", nil)
	assert.Error(t, err)
}

func TestCreateSnapshotRejectsBadSessionID(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))
	src := writeFile(t, t.TempDir(), "en_us.json", "{}")
	_, err := backup.CreateSnapshot(context.Background(), st, t.TempDir(),
		"examplemod", "../escape", "German", []string{src})
	assert.ErrorContains(t, err, "invalid session id")
}

func TestValidSessionID(t *testing.T) {
	assert.True(t, backup.ValidSessionID("2025-01-02_15-04-05"))
	assert.False(t, backup.ValidSessionID("2025-01-02"))
	assert.False(t, backup.ValidSessionID("not-a-timestamp"))
}

func TestPruneKeepsNewest(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))
	dir := t.TempDir()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var paths []string
	for i := 0; i < 5; i++ {
		path := writeFile(t, dir, SnapshotNameForTest(i), "archive")
		paths = append(paths, path)
		_, err := st.AddBackup(&models.BackupRecord{
			SessionID:   "s",
			SourceName:  "examplemod",
			ArchivePath: path,
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	removed, err := backup.Prune(st, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	// The three oldest archives are gone, the two newest remain.
	for i, path := range paths {
		if i < 3 {
			assert.NoFileExists(t, path)
		} else {
			assert.FileExists(t, path)
		}
	}
	recs, err := st.ListBackupsForSource("examplemod")
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestPruneDisabled(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))
	removed, err := backup.Prune(st, 0)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func SnapshotNameForTest(i int) string {
	return backup.SnapshotName("examplemod", time.Date(2025, 1, 1, i, 0, 0, 0, time.UTC).Format("2006-01-02_15-04-05"))
}
