// FTB Quests chapter files are SNBT. Extraction is line-based: title and
// subtitle values, and the quoted strings inside description arrays. Apply
// replays the same scan and substitutes translated values, leaving the rest
// of the file byte-for-byte untouched.

package quests

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/modlingo/modlingo/internal/models"
)

var (
	snbtFieldRe = regexp.MustCompile(`^(\s*)(title|subtitle|text):\s*"(.*)"(,?)\s*$`)
	snbtDescRe  = regexp.MustCompile(`^(\s*)(description|text):\s*\[`)
	snbtItemRe  = regexp.MustCompile(`^(\s*)"(.*)"(,?)\s*$`)
)

// ExtractSNBT collects translatable strings from an SNBT chapter file. Keys
// encode the source line number so ApplySNBT can put translations back
// without any ambiguity. Empty strings are skipped; they are spacer lines
// in quest descriptions.
func ExtractSNBT(text string) *models.Dataset {
	ds := models.NewDataset()
	lines := strings.Split(text, "\n")

	inList := false
	for i, line := range lines {
		if inList {
			if m := snbtItemRe.FindStringSubmatch(line); m != nil {
				if value := snbtUnescape(m[2]); value != "" {
					ds.Set(fmt.Sprintf("description_line_%d", i+1), value)
				}
				continue
			}
			if strings.Contains(line, "]") {
				inList = false
			}
			continue
		}
		if m := snbtFieldRe.FindStringSubmatch(line); m != nil {
			if value := snbtUnescape(m[3]); value != "" {
				ds.Set(fmt.Sprintf("%s_line_%d", m[2], i+1), value)
			}
			continue
		}
		if snbtDescRe.MatchString(line) && !strings.Contains(line, "]") {
			inList = true
		}
	}
	return ds
}

// ApplySNBT writes translated values back into the SNBT text. Keys not
// present in translations keep their original value.
func ApplySNBT(text string, translations map[string]string) string {
	lines := strings.Split(text, "\n")

	inList := false
	for i, line := range lines {
		if inList {
			if m := snbtItemRe.FindStringSubmatch(line); m != nil {
				key := fmt.Sprintf("description_line_%d", i+1)
				if value, ok := translations[key]; ok {
					lines[i] = fmt.Sprintf(`%s"%s"%s`, m[1], snbtEscape(value), m[3])
				}
				continue
			}
			if strings.Contains(line, "]") {
				inList = false
			}
			continue
		}
		if m := snbtFieldRe.FindStringSubmatch(line); m != nil {
			key := fmt.Sprintf("%s_line_%d", m[2], i+1)
			if value, ok := translations[key]; ok {
				lines[i] = fmt.Sprintf(`%s%s: "%s"%s`, m[1], m[2], snbtEscape(value), m[4])
			}
			continue
		}
		if snbtDescRe.MatchString(line) && !strings.Contains(line, "]") {
			inList = true
		}
	}
	return strings.Join(lines, "\n")
}

func snbtUnescape(s string) string {
	s = strings.ReplaceAll(s, `\"`, `"`)
	return strings.ReplaceAll(s, `\\`, `\`)
}

func snbtEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
