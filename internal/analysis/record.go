package analysis

import (
	"strings"
	"time"
)

// Record is a loosely-typed session record as returned by a session store.
// The document store returns nested lowercase documents, the warehouse store
// returns flat rows with UPPERCASE column names; both logical schemas are the
// same, so field access tries the canonical name, then its uppercase form,
// then its lowercase form.
type Record map[string]any

// Field walks the given path through nested records and returns the value
// found at the end, or def when any step hits a missing key or a non-record
// value. Absence never fails, it only degrades to the default.
func (r Record) Field(def any, path ...string) any {
	var current any = map[string]any(r)
	for _, key := range path {
		m, ok := asRecord(current)
		if !ok {
			return def
		}
		if v, found := m[key]; found {
			current = v
		} else if v, found := m[strings.ToUpper(key)]; found {
			current = v
		} else if v, found := m[strings.ToLower(key)]; found {
			current = v
		} else {
			return def
		}
	}
	if current == nil {
		return def
	}
	return current
}

func (r Record) stringField(def string, path ...string) string {
	if s, ok := r.Field(def, path...).(string); ok {
		return s
	}
	return def
}

func (r Record) intField(def int, path ...string) int {
	switch v := r.Field(def, path...).(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

func (r Record) timeField(def time.Time, path ...string) time.Time {
	switch v := r.Field(def, path...).(type) {
	case time.Time:
		return v
	case string:
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			return ts
		}
		return def
	default:
		return def
	}
}

func (r Record) recordField(path ...string) Record {
	if m, ok := asRecord(r.Field(nil, path...)); ok {
		return m
	}
	return nil
}

func (r Record) sliceField(path ...string) []any {
	if s, ok := r.Field(nil, path...).([]any); ok {
		return s
	}
	return nil
}

func asRecord(v any) (Record, bool) {
	switch m := v.(type) {
	case Record:
		return m, true
	case map[string]any:
		return m, true
	default:
		return nil, false
	}
}
