package attrs

import "fmt"

// Has reports whether the mapping contains the key with a non-nil value.
// A key that is present but explicitly null is treated as absent, matching
// the convention specs' "omitted and null are equivalent" reading.
func Has(m map[string]any, key string) bool {
	if m == nil {
		return false
	}
	v, ok := m[key]
	return ok && v != nil
}

// AsString converts a value to a string.
func AsString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// AsFloat converts a numeric value to a float64. JSON numbers decode as
// float64, but values built in-process may be any integer or float type.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// AsInt converts a numeric value to an int. Floats convert only when they
// carry no fractional part, so a shape of [1000.5, 1000] is rejected.
func AsInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// AsStringSlice converts a value to a []string. Accepts []string directly
// or a []any whose elements are all strings.
func AsStringSlice(v any) ([]string, bool) {
	switch s := v.(type) {
	case []string:
		return s, true
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			str, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	default:
		return nil, false
	}
}

// AsFloatSlice converts a value to a []float64. Accepts []float64 directly
// or a []any of numbers.
func AsFloatSlice(v any) ([]float64, bool) {
	switch s := v.(type) {
	case []float64:
		return s, true
	case []any:
		out := make([]float64, 0, len(s))
		for _, item := range s {
			f, ok := AsFloat(item)
			if !ok {
				return nil, false
			}
			out = append(out, f)
		}
		return out, true
	default:
		return nil, false
	}
}

// AsIntSlice converts a value to a []int. Accepts []int directly or a
// []any of whole numbers.
func AsIntSlice(v any) ([]int, bool) {
	switch s := v.(type) {
	case []int:
		return s, true
	case []any:
		out := make([]int, 0, len(s))
		for _, item := range s {
			n, ok := AsInt(item)
			if !ok {
				return nil, false
			}
			out = append(out, n)
		}
		return out, true
	default:
		return nil, false
	}
}

// AsMap converts a value to a map[string]any.
func AsMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// AsSlice converts a value to a []any. Accepts []any directly or a
// []map[string]any built in-process (each element is widened to any).
func AsSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []map[string]any:
		out := make([]any, len(s))
		for i, m := range s {
			out[i] = m
		}
		return out, true
	default:
		return nil, false
	}
}

// GetString extracts a string from the mapping, falling back to defaultVal
// when the key is absent, null, or not a string.
func GetString(m map[string]any, key, defaultVal string) string {
	if !Has(m, key) {
		return defaultVal
	}
	if s, ok := AsString(m[key]); ok {
		return s
	}
	return defaultVal
}

// GetStringSlice extracts a []string from the mapping, or nil on mismatch.
// Mixed-type lists are rendered element-wise with fmt so display code can
// still show something useful.
func GetStringSlice(m map[string]any, key string) []string {
	if !Has(m, key) {
		return nil
	}
	if s, ok := AsStringSlice(m[key]); ok {
		return s
	}
	if s, ok := m[key].([]any); ok {
		out := make([]string, 0, len(s))
		for _, item := range s {
			if item == nil {
				continue
			}
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	}
	return nil
}

// GetFloatSlice extracts a []float64 from the mapping, or nil on mismatch.
func GetFloatSlice(m map[string]any, key string) []float64 {
	if !Has(m, key) {
		return nil
	}
	if s, ok := AsFloatSlice(m[key]); ok {
		return s
	}
	return nil
}

// GetMap extracts a nested mapping, or nil on mismatch.
func GetMap(m map[string]any, key string) map[string]any {
	if !Has(m, key) {
		return nil
	}
	if nested, ok := AsMap(m[key]); ok {
		return nested
	}
	return nil
}

// GetSlice extracts a list value, or nil on mismatch.
func GetSlice(m map[string]any, key string) []any {
	if !Has(m, key) {
		return nil
	}
	if s, ok := AsSlice(m[key]); ok {
		return s
	}
	return nil
}
