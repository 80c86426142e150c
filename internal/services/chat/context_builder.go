package chat

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/lebonkosi/foliochat/internal/models"
)

// BuildContext assembles the generation context from the routed sections.
// Pure and deterministic: identical (document, keys) input yields
// byte-identical output. Keys without a matching section are skipped.
func BuildContext(doc *models.ProfileDocument, keys []string) string {
	var sb strings.Builder

	sb.WriteString("Selected sections: ")
	sb.WriteString(strings.Join(keys, ", "))
	sb.WriteString("\n\nRelevant information from knowledge base:\n")

	for _, key := range keys {
		raw, ok := doc.Section(key)
		if !ok {
			continue
		}
		sb.WriteString("\n=== ")
		sb.WriteString(strings.ToUpper(key))
		sb.WriteString(" ===\n")
		sb.WriteString(indentJSON(raw))
		sb.WriteString("\n")
	}

	return sb.String()
}

// indentJSON pretty-prints a raw section value. Values that fail to
// re-indent (which parsed once already, so this is unexpected) pass
// through verbatim.
func indentJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
