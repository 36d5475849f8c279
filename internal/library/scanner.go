// This file contains the main logic for scanning the mods directory. It
// walks the tree, identifies mod JARs, and uses the jar helpers to extract
// metadata and language files.

package library

import (
	"io/fs"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"github.com/modlingo/modlingo/internal/models"
	"github.com/modlingo/modlingo/internal/util"
)

// ScanDirectory walks root and inspects every .jar file found. JARs that
// cannot be parsed are logged and skipped so one broken mod never aborts a
// scan. Results come back in natural filename order.
func ScanDirectory(root string) ([]*models.ModInfo, error) {
	var jarPaths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip hidden directories like .git or .cache.
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".jar") {
			jarPaths = append(jarPaths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(jarPaths, func(i, j int) bool {
		return util.NaturalSortLess(filepath.Base(jarPaths[i]), filepath.Base(jarPaths[j]))
	})

	var mods []*models.ModInfo
	for _, path := range jarPaths {
		mod, err := InspectJar(path)
		if err != nil {
			log.Printf("Skipping mod jar %s: %v", path, err)
			continue
		}
		mods = append(mods, mod)
	}
	return mods, nil
}
