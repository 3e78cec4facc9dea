// Package normalize flattens nested backend JSON into ordered records driven
// by declarative field tables.
//
// A FieldSpec lists (output key, source path, default) triples. Normalize
// walks each source path through the raw document and falls back to the
// default when any segment is missing, has the wrong type, or is out of
// range. It never fails. Paths use gjson syntax: dot-separated keys, with
// numeric segments indexing into arrays.
package normalize

import (
	"encoding/json"

	"github.com/tidwall/gjson"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Field maps one output key to a nested source path.
type Field struct {
	Key     string
	Path    string
	Default any

	// Convert, when set, post-processes a value that was found.
	Convert func(any) any
}

// FieldSpec is an ordered table of fields for one backend entity.
type FieldSpec []Field

// Keys returns the declared output keys in order.
func (s FieldSpec) Keys() []string {
	keys := make([]string, len(s))
	for i, f := range s {
		keys[i] = f.Key
	}
	return keys
}

// Record is an ordered output-key to value mapping. It marshals to a JSON
// object whose keys follow the FieldSpec order.
type Record struct {
	m *orderedmap.OrderedMap[string, any]
}

// NewRecord returns an empty record.
func NewRecord() Record {
	return Record{m: orderedmap.New[string, any]()}
}

func (r Record) ensure() *orderedmap.OrderedMap[string, any] {
	if r.m == nil {
		return orderedmap.New[string, any]()
	}
	return r.m
}

// Set adds or replaces key. New keys are appended.
func (r *Record) Set(key string, value any) {
	if r.m == nil {
		r.m = orderedmap.New[string, any]()
	}
	r.m.Set(key, value)
}

// Get returns the value for key.
func (r Record) Get(key string) (any, bool) {
	if r.m == nil {
		return nil, false
	}
	return r.m.Get(key)
}

// String returns the value for key if it is a string.
func (r Record) String(key string) string {
	v, _ := r.Get(key)
	s, _ := v.(string)
	return s
}

// Len returns the number of keys.
func (r Record) Len() int {
	if r.m == nil {
		return 0
	}
	return r.m.Len()
}

// Keys returns the keys in insertion order.
func (r Record) Keys() []string {
	keys := make([]string, 0, r.Len())
	if r.m == nil {
		return keys
	}
	for pair := r.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Map returns an unordered copy.
func (r Record) Map() map[string]any {
	out := make(map[string]any, r.Len())
	if r.m == nil {
		return out
	}
	for pair := r.m.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value
	}
	return out
}

func (r Record) MarshalJSON() ([]byte, error) {
	return r.ensure().MarshalJSON()
}

func (r *Record) UnmarshalJSON(data []byte) error {
	m := orderedmap.New[string, any]()
	if err := json.Unmarshal(data, m); err != nil {
		return err
	}
	r.m = m
	return nil
}

// Normalize produces one record from raw using spec. Every declared key is
// present in the result. A JSON null counts as absent.
func Normalize(raw []byte, spec FieldSpec) Record {
	rec := Record{m: orderedmap.New[string, any]()}
	valid := gjson.ValidBytes(raw)
	for _, f := range spec {
		var v any = f.Default
		if valid {
			if res := gjson.GetBytes(raw, f.Path); res.Exists() && res.Type != gjson.Null {
				v = res.Value()
				if f.Convert != nil {
					v = f.Convert(v)
				}
			}
		}
		rec.m.Set(f.Key, v)
	}
	return rec
}

// NormalizeValue is Normalize for an already-decoded value.
func NormalizeValue(v any, spec FieldSpec) Record {
	raw, err := json.Marshal(v)
	if err != nil {
		raw = nil
	}
	return Normalize(raw, spec)
}

// NormalizeList normalizes each element independently. An empty input
// yields an empty, non-nil slice.
func NormalizeList(raws [][]byte, spec FieldSpec) []Record {
	out := make([]Record, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Normalize(raw, spec))
	}
	return out
}

// Items returns the raw elements of the array at path. A missing path or a
// non-array value yields no elements. An empty path addresses the document
// root.
func Items(raw []byte, path string) [][]byte {
	var res gjson.Result
	if path == "" {
		res = gjson.ParseBytes(raw)
	} else {
		res = gjson.GetBytes(raw, path)
	}
	if !res.IsArray() {
		return [][]byte{}
	}
	arr := res.Array()
	out := make([][]byte, 0, len(arr))
	for _, item := range arr {
		out = append(out, []byte(item.Raw))
	}
	return out
}

// List is Items followed by NormalizeList.
func List(raw []byte, path string, spec FieldSpec) []Record {
	return NormalizeList(Items(raw, path), spec)
}

// Lookup returns the value at path or def, with the same rules as Normalize.
func Lookup(raw []byte, path string, def any) any {
	res := gjson.GetBytes(raw, path)
	if !res.Exists() || res.Type == gjson.Null {
		return def
	}
	return res.Value()
}

// Int returns the integer at path or def.
func Int(raw []byte, path string, def int) int {
	res := gjson.GetBytes(raw, path)
	if res.Type != gjson.Number {
		return def
	}
	return int(res.Int())
}

// Str returns the string at path or def.
func Str(raw []byte, path string, def string) string {
	res := gjson.GetBytes(raw, path)
	if res.Type != gjson.String {
		return def
	}
	return res.String()
}

// Strings collects the string values of the array at path.
func Strings(raw []byte, path string) []string {
	out := []string{}
	res := gjson.GetBytes(raw, path)
	if !res.IsArray() {
		return out
	}
	res.ForEach(func(_, v gjson.Result) bool {
		if v.Type == gjson.String {
			out = append(out, v.String())
		}
		return true
	})
	return out
}
