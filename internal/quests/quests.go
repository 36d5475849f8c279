// Package quests extracts translatable text from modpack quest files and
// writes translations back. Two formats are supported: FTB Quests chapter
// files (SNBT) and BetterQuesting's DefaultQuests.json.
package quests

import (
	"path/filepath"
	"strings"
)

// Format identifies a supported quest file format.
type Format string

const (
	FormatFTBQuests      Format = "ftbquests"
	FormatBetterQuesting Format = "betterquesting"
	FormatUnknown        Format = "unknown"
)

// DetectFormat guesses the quest format from a file path.
func DetectFormat(path string) Format {
	base := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(base, ".snbt"):
		return FormatFTBQuests
	case base == "defaultquests.json" || strings.HasSuffix(base, "quests.json"):
		return FormatBetterQuesting
	default:
		return FormatUnknown
	}
}
