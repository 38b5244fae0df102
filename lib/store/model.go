package store

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"unicode/utf8"
)

// --------------------------------------------------------------------------
// Data Model
// --------------------------------------------------------------------------

// Root maps database names to databases. It is the whole state of a store.
type Root map[string]Database

// Database maps table names to tables.
type Database map[string]Table

// Table maps field names to fields.
type Table map[string]Field

// Field is the ordered sequence of records of a single field.
type Field []Record

// Record is a single value of a field together with its index tag.
// The index is the length of the field at the time the record was appended;
// it is a content tag and is never rewritten by in-place edits or renames.
//
// On the wire a record is the 2-element array [index, value].
type Record struct {
	Index int
	Value any
}

// --------------------------------------------------------------------------
// Cloning
// --------------------------------------------------------------------------

// Clone returns an independent deep copy of the root.
func (r Root) Clone() Root {
	out := make(Root, len(r))
	for name, db := range r {
		out[name] = db.Clone()
	}
	return out
}

// Clone returns an independent deep copy of the database.
func (d Database) Clone() Database {
	out := make(Database, len(d))
	for name, table := range d {
		out[name] = table.Clone()
	}
	return out
}

// Clone returns an independent deep copy of the table.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for name, field := range t {
		out[name] = field.Clone()
	}
	return out
}

// Clone returns an independent deep copy of the field.
// The result is never nil, so an empty field stays an empty list on the wire.
func (f Field) Clone() Field {
	out := make(Field, len(f))
	for i, rec := range f {
		out[i] = Record{Index: rec.Index, Value: CloneValue(rec.Value)}
	}
	return out
}

// CloneValue deep copies the containers of the JSON data model.
// Scalars are immutable and returned as is.
func CloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = CloneValue(elem)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = CloneValue(elem)
		}
		return out
	default:
		return val
	}
}

// --------------------------------------------------------------------------
// Serialization
// --------------------------------------------------------------------------

// MarshalJSON encodes the record as [index, value].
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{r.Index, r.Value})
}

// UnmarshalJSON decodes a record from [index, value].
func (r *Record) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("record must be an array: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("record must have exactly 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &r.Index); err != nil {
		return fmt.Errorf("record index must be an integer: %w", err)
	}
	r.Value = nil
	if err := json.Unmarshal(raw[1], &r.Value); err != nil {
		return fmt.Errorf("invalid record value: %w", err)
	}
	return nil
}

// MarshalJSON encodes a nil field as an empty list.
func (f Field) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Record(f))
}

// --------------------------------------------------------------------------
// Values
// --------------------------------------------------------------------------

// NormalizeValue converts v to the JSON data model: nil, bool, float64,
// string, []any and map[string]any. Values that cannot be represented as
// JSON (channels, NaN, invalid UTF-8 at any depth, ...) are rejected.
func NormalizeValue(v any) (any, error) {
	switch val := v.(type) {
	case nil, bool:
		return v, nil
	case string:
		if !utf8.ValidString(val) {
			return nil, fmt.Errorf("value is not JSON representable: invalid UTF-8 in %q", val)
		}
		return v, nil
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil, fmt.Errorf("value is not JSON representable: %v", val)
		}
		return v, nil
	}
	if s, ok := invalidString(reflect.ValueOf(v), 0); ok {
		return nil, fmt.Errorf("value is not JSON representable: invalid UTF-8 in %q", s)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("value is not JSON representable: %w", err)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("value is not JSON representable: %w", err)
	}
	return out, nil
}

// maxWalkDepth bounds invalidString on cyclic values; json.Marshal reports
// the cycle itself.
const maxWalkDepth = 1000

// invalidString returns the first string reachable from v (map keys included)
// that is not valid UTF-8. encoding/json would silently replace it with U+FFFD.
func invalidString(v reflect.Value, depth int) (string, bool) {
	if depth > maxWalkDepth || !v.IsValid() {
		return "", false
	}
	switch v.Kind() {
	case reflect.String:
		if s := v.String(); !utf8.ValidString(s) {
			return s, true
		}
	case reflect.Pointer, reflect.Interface:
		if !v.IsNil() {
			return invalidString(v.Elem(), depth+1)
		}
	case reflect.Slice, reflect.Array:
		// []byte is encoded as base64
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return "", false
		}
		for i := 0; i < v.Len(); i++ {
			if s, ok := invalidString(v.Index(i), depth+1); ok {
				return s, true
			}
		}
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			if s, ok := invalidString(iter.Key(), depth+1); ok {
				return s, true
			}
			if s, ok := invalidString(iter.Value(), depth+1); ok {
				return s, true
			}
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if !v.Type().Field(i).IsExported() {
				continue
			}
			if s, ok := invalidString(v.Field(i), depth+1); ok {
				return s, true
			}
		}
	}
	return "", false
}

// ValuesEqual reports whether a and b are the same JSON value.
// Numbers compare by value regardless of their Go type.
func ValuesEqual(a, b any) bool {
	na, err := NormalizeValue(a)
	if err != nil {
		return false
	}
	nb, err := NormalizeValue(b)
	if err != nil {
		return false
	}
	return reflect.DeepEqual(na, nb)
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[M ~map[string]V, V any](m M) []string {
	return slices.Sorted(maps.Keys(m))
}
