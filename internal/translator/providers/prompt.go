package providers

import (
	"strconv"
	"strings"

	"github.com/modlingo/modlingo/internal/models"
)

// DefaultPromptTemplate instructs the model to translate line by line and
// keep the line count stable, so the response can be matched back to keys.
// Supported placeholders: {line_count}, {target_language}.
const DefaultPromptTemplate = `You are a professional translator. Translate the following text into {target_language}, one line at a time, in order.

Each input line has the form "key: value". Reply with the same "key: value" form, keeping the key untouched and translating only the value.

# The number of lines to translate: {line_count}

# Rules
- Never include any greeting or explanation other than the translation result.
- The number of output lines must equal the number of input lines. Never add or remove lines.
- Adjacent lines may look related, but each line is an independent entry. Do not merge them.
- Preserve escape characters, formatting codes and placeholders such as %s, %1$s, \n and \".
`

// BuildSystemPrompt resolves the prompt template for a request, substituting
// the line count and target language.
func BuildSystemPrompt(req *models.TranslationRequest) string {
	tpl := req.PromptTemplate
	if tpl == "" {
		tpl = DefaultPromptTemplate
	}
	tpl = strings.ReplaceAll(tpl, "{line_count}", strconv.Itoa(req.Content.Len()))
	tpl = strings.ReplaceAll(tpl, "{target_language}", req.TargetLanguage)
	return tpl
}

// BuildUserPrompt renders the dataset as ordered "key: value" lines.
// Embedded newlines are flattened so one entry stays one line.
func BuildUserPrompt(content *models.Dataset) string {
	var b strings.Builder
	for _, key := range content.Keys() {
		value, _ := content.Get(key)
		value = strings.ReplaceAll(value, "\r\n", " ")
		value = strings.ReplaceAll(value, "\n", " ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteByte('\n')
	}
	return b.String()
}
