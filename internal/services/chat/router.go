package chat

import "strings"

// FallbackSectionKey is selected whenever routing produces nothing usable.
// The contact section is the safest place to send an unroutable question.
const FallbackSectionKey = "contact"

// ParseRoutedKeys turns the router's raw comma-separated output into an
// ordered, de-duplicated list of section keys. Tokens are trimmed,
// stripped of wrapping quotes, and dropped unless they appear in the valid
// key list — a server-side invariant that holds regardless of what the
// model returns. An empty result collapses to the fallback key.
func ParseRoutedKeys(raw string, validKeys []string) []string {
	valid := make(map[string]struct{}, len(validKeys))
	for _, key := range validKeys {
		valid[key] = struct{}{}
	}

	seen := make(map[string]struct{})
	var keys []string
	for _, token := range strings.Split(raw, ",") {
		key := strings.Trim(strings.TrimSpace(token), `"'`)
		if key == "" {
			continue
		}
		if _, ok := valid[key]; !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	if len(keys) == 0 {
		return []string{FallbackSectionKey}
	}
	return keys
}
