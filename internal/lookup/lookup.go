package lookup

import "strings"

// Get resolves a dotted path (e.g. "device.id") inside m, matching keys
// case-insensitively at every segment. A missing intermediate segment yields
// (nil, false), never a panic; semi-structured event payloads rarely carry
// every field the mapper asks for.
func Get(m map[string]any, path string) (any, bool) {
	return get(m, strings.Split(path, "."))
}

func get(m map[string]any, segs []string) (any, bool) {
	if m == nil || len(segs) == 0 {
		return nil, false
	}
	v, ok := Field(m, segs[0])
	if !ok {
		return nil, false
	}
	if len(segs) == 1 {
		return v, true
	}
	sub, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	return get(sub, segs[1:])
}

// Field reads a single key from m, preferring an exact match before falling
// back to a case-insensitive scan. When several keys fold to the same name
// the lexicographically smallest wins, so lookups stay deterministic.
func Field(m map[string]any, key string) (any, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	var best string
	found := false
	for k := range m {
		if strings.EqualFold(k, key) && (!found || k < best) {
			best, found = k, true
		}
	}
	if !found {
		return nil, false
	}
	return m[best], true
}

// String coerces a lookup result to a string; anything else becomes "".
// Designed to chain: String(Get(m, "library.name")).
func String(v any, ok bool) string {
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Float coerces a lookup result to a float64. JSON numbers decode as
// float64, but YAML fixtures and hand-built maps often carry ints.
func Float(v any, ok bool) (float64, bool) {
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Map coerces a lookup result to a nested object.
func Map(v any, ok bool) (map[string]any, bool) {
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// Slice coerces a lookup result to a JSON array.
func Slice(v any, ok bool) ([]any, bool) {
	if !ok {
		return nil, false
	}
	s, ok := v.([]any)
	return s, ok
}
