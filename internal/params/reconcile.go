// Package params resolves alias argument names into canonical parameters.
//
// Callers mix naming conventions (max_results vs maxResults, target_id vs
// targetId). Each tool declares an AliasMap and passes whatever alias values
// it received, in a fixed order, to Reconcile.
package params

// AliasMap maps an alias argument name to its canonical key.
type AliasMap map[string]string

// Param is one caller-supplied argument.
type Param struct {
	Key   string
	Value any
}

// Reconcile returns a copy of canonical in which every entry of extra whose
// key is a known alias overwrites the canonical key it maps to.
// When several aliases resolve to the same key, the last one in extra wins.
// Unknown keys in extra are ignored.
func Reconcile(canonical map[string]any, aliases AliasMap, extra []Param) map[string]any {
	out := make(map[string]any, len(canonical))
	for k, v := range canonical {
		out[k] = v
	}
	for _, p := range extra {
		if key, ok := aliases[p.Key]; ok {
			out[key] = p.Value
		}
	}
	return out
}

// Collect builds an ordered extra list from optional alias values.
// Nil pointers are skipped so an absent alias never overrides anything.
func Collect(pairs ...Param) []Param {
	out := make([]Param, 0, len(pairs))
	for _, p := range pairs {
		switch v := p.Value.(type) {
		case nil:
			continue
		case *int:
			if v == nil {
				continue
			}
			out = append(out, Param{Key: p.Key, Value: *v})
		case *string:
			if v == nil {
				continue
			}
			out = append(out, Param{Key: p.Key, Value: *v})
		case *bool:
			if v == nil {
				continue
			}
			out = append(out, Param{Key: p.Key, Value: *v})
		case *float64:
			if v == nil {
				continue
			}
			out = append(out, Param{Key: p.Key, Value: *v})
		default:
			out = append(out, p)
		}
	}
	return out
}

// String reads a string parameter, returning "" when absent or not a string.
func String(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// Int reads an integer parameter, accepting the numeric shapes JSON decoding
// produces. It returns def when the key is absent or not numeric.
func Int(m map[string]any, key string, def int) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}
