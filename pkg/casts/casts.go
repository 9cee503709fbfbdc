// Package casts prevents double-encoding of structured model attributes on
// save. Models declare which attributes are cast to JSON-backed structures;
// string values submitted for those attributes are decoded before
// persistence, with decode failures falling back to the cast's empty value.
package casts

import (
	"encoding/json"
	"strings"
)

// Cast kinds recognised by Decode. Anything else passes through untouched.
const (
	KindJSON       = "json"
	KindArray      = "array"
	KindObject     = "object"
	KindCollection = "collection"
)

// Source exposes which model attributes are cast to structured types, mapping
// attribute name to cast kind.
type Source interface {
	Casts() map[string]string
}

// Map is the simplest Source: a literal attribute-to-kind mapping.
type Map map[string]string

// Casts returns the mapping itself.
func (m Map) Casts() map[string]string { return m }

// Structured reports whether a cast kind decodes from a JSON string.
func Structured(kind string) bool {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindJSON, KindArray, KindObject, KindCollection:
		return true
	default:
		return false
	}
}

// Decode returns a copy of values where every attribute the source casts to a
// structured kind has been decoded from its JSON string form. Non-string
// values and attributes without a structured cast pass through unchanged. A
// value that fails to decode is replaced with the cast's empty value so a
// broken payload never propagates an encoding error into the save path.
func Decode(src Source, values map[string]any) map[string]any {
	if len(values) == 0 {
		return nil
	}

	var kinds map[string]string
	if src != nil {
		kinds = src.Casts()
	}

	out := make(map[string]any, len(values))
	for attr, value := range values {
		kind, ok := kinds[attr]
		if !ok || !Structured(kind) {
			out[attr] = value
			continue
		}
		out[attr] = decodeValue(kind, value)
	}
	return out
}

func decodeValue(kind string, value any) any {
	raw, ok := value.(string)
	if !ok {
		return value
	}

	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil || decoded == nil {
		return emptyValue(kind)
	}
	return decoded
}

func emptyValue(kind string) any {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindArray, KindCollection:
		return []any{}
	default:
		return map[string]any{}
	}
}
