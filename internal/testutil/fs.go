package testutil

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

// CreateTestJar creates a temporary mod JAR containing the given entries
// (path -> content). It's useful for testing JAR metadata and lang file
// extraction.
func CreateTestJar(t *testing.T, dir, name string, entries map[string]string) string {
	t.Helper()
	filePath := filepath.Join(dir, name)
	file, err := os.Create(filePath)
	if err != nil {
		t.Fatalf("Failed to create temp jar file: %v", err)
	}
	defer file.Close()

	zipWriter := zip.NewWriter(file)
	defer zipWriter.Close()

	for entry, content := range entries {
		w, err := zipWriter.Create(entry)
		if err != nil {
			t.Fatalf("Failed to create entry '%s' in jar: %v", entry, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write entry '%s' in jar: %v", entry, err)
		}
	}
	return filePath
}
