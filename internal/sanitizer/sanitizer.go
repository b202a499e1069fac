// Package sanitizer strips markup from user supplied strings.
package sanitizer

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer removes unsafe HTML from strings, keeping user generated content tags.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// New creates a Sanitizer backed by the bluemonday UGC policy.
func New() *Sanitizer {
	return &Sanitizer{policy: bluemonday.UGCPolicy()}
}

// String sanitizes a single value. Strings without markup are returned as is,
// so tokens, boundaries and quoted text are not entity-escaped.
func (s *Sanitizer) String(v string) string {
	if !strings.Contains(v, "<") {
		return v
	}
	return s.policy.Sanitize(v)
}

// Value walks decoded JSON and sanitizes every string in place.
func (s *Sanitizer) Value(v any) any {
	switch t := v.(type) {
	case string:
		return s.String(t)
	case []any:
		for i := range t {
			t[i] = s.Value(t[i])
		}
		return t
	case map[string]any:
		for k, item := range t {
			t[k] = s.Value(item)
		}
		return t
	default:
		return v
	}
}

// JSON sanitizes every string of a JSON document.
func (s *Sanitizer) JSON(body []byte) ([]byte, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return body, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}

	return json.Marshal(s.Value(doc))
}
