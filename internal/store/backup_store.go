package store

import (
	"github.com/modlingo/modlingo/internal/models"
)

// AddBackup records a snapshot archive and returns its row ID.
func (s *Store) AddBackup(rec *models.BackupRecord) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO backups (session_id, source_name, target_language, archive_path, file_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.SourceName, rec.TargetLanguage, rec.ArchivePath, rec.FileCount, rec.CreatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListBackups returns all backup records, newest first.
func (s *Store) ListBackups() ([]*models.BackupRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, session_id, source_name, target_language, archive_path, file_count, created_at
		FROM backups ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.BackupRecord
	for rows.Next() {
		var rec models.BackupRecord
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.SourceName, &rec.TargetLanguage,
			&rec.ArchivePath, &rec.FileCount, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// ListBackupsForSource returns backup records for one source, oldest first,
// which is the order the retention sweep prunes them in.
func (s *Store) ListBackupsForSource(sourceName string) ([]*models.BackupRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, session_id, source_name, target_language, archive_path, file_count, created_at
		FROM backups WHERE source_name = ? ORDER BY created_at ASC, id ASC`, sourceName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.BackupRecord
	for rows.Next() {
		var rec models.BackupRecord
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.SourceName, &rec.TargetLanguage,
			&rec.ArchivePath, &rec.FileCount, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// DeleteBackup removes a backup record by ID.
func (s *Store) DeleteBackup(id int64) error {
	_, err := s.db.Exec("DELETE FROM backups WHERE id = ?", id)
	return err
}
