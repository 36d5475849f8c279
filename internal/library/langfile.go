// Codecs for Minecraft language files: modern JSON (ordered key/value
// object) and the legacy .lang key=value format.

package library

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modlingo/modlingo/internal/models"
)

// DecodeLang parses lang file data by extension (".json" or ".lang") into a
// dataset that preserves the file's key order.
func DecodeLang(data []byte, ext string) (*models.Dataset, error) {
	switch strings.ToLower(ext) {
	case ".json":
		ds := models.NewDataset()
		if err := ds.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return ds, nil
	case ".lang":
		return decodeLegacyLang(data)
	default:
		return nil, fmt.Errorf("unsupported lang file extension %q", ext)
	}
}

// EncodeLang renders a dataset back to lang file data in the given format.
func EncodeLang(ds *models.Dataset, ext string) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".json":
		data, err := ds.MarshalJSON()
		if err != nil {
			return nil, err
		}
		var out bytes.Buffer
		if err := json.Indent(&out, data, "", "  "); err != nil {
			return nil, err
		}
		out.WriteByte('\n')
		return out.Bytes(), nil
	case ".lang":
		return encodeLegacyLang(ds), nil
	default:
		return nil, fmt.Errorf("unsupported lang file extension %q", ext)
	}
}

// decodeLegacyLang parses the pre-1.13 key=value format. Blank lines and
// #-comments are dropped; they carry no translatable content.
func decodeLegacyLang(data []byte) (*models.Dataset, error) {
	ds := models.NewDataset()
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		ds.Set(strings.TrimSpace(key), value)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ds, nil
}

func encodeLegacyLang(ds *models.Dataset) []byte {
	var out bytes.Buffer
	for _, key := range ds.Keys() {
		value, _ := ds.Get(key)
		out.WriteString(key)
		out.WriteByte('=')
		out.WriteString(value)
		out.WriteByte('\n')
	}
	return out.Bytes()
}
