package logging

import (
	"regexp"
	"strings"
)

// redactor masks sensitive values in log key-value pairs before they
// reach the log file. Admin API tokens and credentials must never be
// written out, even at debug level.
type redactor struct {
	sensitive map[string]bool
}

var segmentRe = regexp.MustCompile(`[^a-z0-9]+`)

func newRedactor() *redactor {
	words := []string{
		"secret", "password", "token", "key", "auth",
		"credential", "bearer", "authorization",
	}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return &redactor{sensitive: m}
}

// redact returns a copy of the flattened key-value slice with the value
// of every sensitive key replaced by "[REDACTED]". Keys like
// "api_token" or "Authorization-Header" match because each segment is
// checked on its own.
func (r *redactor) redact(pairs []any) []any {
	if len(pairs) == 0 {
		return pairs
	}
	result := make([]any, len(pairs))
	copy(result, pairs)
	for i := 0; i+1 < len(result); i += 2 {
		key, ok := result[i].(string)
		if !ok {
			continue
		}
		if r.isSensitive(key) {
			result[i+1] = "[REDACTED]"
		}
	}
	return result
}

// isSensitive reports whether any segment of the key, split on
// non-alphanumeric runs, is a sensitive word.
func (r *redactor) isSensitive(key string) bool {
	for _, part := range segmentRe.Split(strings.ToLower(key), -1) {
		if r.sensitive[part] {
			return true
		}
	}
	return false
}
