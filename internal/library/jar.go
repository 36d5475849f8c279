// This file parses mod JAR archives: mod metadata from fabric.mod.json or
// META-INF/mods.toml, the mod icon, and the bundled language files.

package library

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"regexp"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/modlingo/modlingo/internal/models"
)

// langPathRe matches language files bundled under assets/<namespace>/lang/.
var langPathRe = regexp.MustCompile(`^assets/[^/]+/lang/([^/]+)\.(json|lang)$`)

type fabricModJSON struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version"`
	Icon    string `json:"icon"`
}

type forgeModsTOML struct {
	Mods []struct {
		ModID       string `toml:"modId"`
		DisplayName string `toml:"displayName"`
		Version     string `toml:"version"`
		LogoFile    string `toml:"logoFile"`
	} `toml:"mods"`
}

// InspectJar opens a mod JAR and extracts its identity and language files.
// Fabric metadata takes precedence; Forge's mods.toml is the fallback. A JAR
// with neither is reported by filename only, as some resource packs ship
// lang files without mod metadata.
func InspectJar(path string) (*models.ModInfo, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open jar: %w", err)
	}
	defer r.Close()

	files := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		files[f.Name] = f
	}

	mod := &models.ModInfo{
		JarPath: path,
		ID:      strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Name:    strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
	}

	iconPath := ""
	if f, ok := files["fabric.mod.json"]; ok {
		var meta fabricModJSON
		if err := readJarJSON(f, &meta); err != nil {
			log.Printf("Unreadable fabric.mod.json in %s: %v", path, err)
		} else {
			applyMeta(mod, meta.ID, meta.Name, meta.Version)
			iconPath = meta.Icon
		}
	} else if f, ok := files["META-INF/mods.toml"]; ok {
		var meta forgeModsTOML
		data, err := readJarFile(f)
		if err == nil {
			err = toml.Unmarshal(data, &meta)
		}
		if err != nil {
			log.Printf("Unreadable mods.toml in %s: %v", path, err)
		} else if len(meta.Mods) > 0 {
			applyMeta(mod, meta.Mods[0].ModID, meta.Mods[0].DisplayName, meta.Mods[0].Version)
			iconPath = meta.Mods[0].LogoFile
		}
	}

	if iconPath != "" {
		if f, ok := files[iconPath]; ok {
			if data, err := readJarFile(f); err == nil {
				if uri, err := GenerateThumbnail(data); err == nil {
					mod.IconURI = uri
				}
			}
		}
	}

	for _, f := range r.File {
		m := langPathRe.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		data, err := readJarFile(f)
		if err != nil {
			log.Printf("Unreadable lang file %s in %s: %v", f.Name, path, err)
			continue
		}
		content, err := DecodeLang(data, "."+m[2])
		if err != nil {
			log.Printf("Invalid lang file %s in %s: %v", f.Name, path, err)
			continue
		}
		mod.LangFiles = append(mod.LangFiles, models.LangFile{
			Language: strings.ToLower(m[1]),
			Path:     f.Name,
			Content:  content,
		})
	}

	return mod, nil
}

func applyMeta(mod *models.ModInfo, id, name, version string) {
	if id != "" {
		mod.ID = id
	}
	if name != "" {
		mod.Name = name
	}
	mod.Version = version
}

func readJarFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func readJarJSON(f *zip.File, v any) error {
	data, err := readJarFile(f)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
