package collection

import (
	"fmt"
	"strconv"
)

// Record is a single row of a collection: a mapping from field name to
// scalar or nested value, always including a stable "id" field unique
// within its snapshot.
type Record map[string]any

// FieldID is the identifier field present on every record.
const FieldID = "id"

// ID returns the record's stable identifier as a string.
// JSON decoding yields float64 for numeric ids, so both string and
// numeric forms are normalized.
func (r Record) ID() string {
	v, ok := r[FieldID]
	if !ok {
		return ""
	}
	return scalarString(v)
}

// Str returns the field value as a string. Missing fields and non-scalar
// values report ok=false so callers can treat them as non-matching.
func (r Record) Str(field string) (string, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return "", false
	}
	switch v.(type) {
	case string, float64, int, int64, bool:
		return scalarString(v), true
	default:
		return "", false
	}
}

// Clone returns a shallow copy of the record. Field values are assumed
// scalar; nested values are shared.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge returns a copy of the record with the given fields overlaid.
// The receiver is not modified.
func (r Record) Merge(fields map[string]any) Record {
	out := r.Clone()
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// scalarString formats a scalar value the way it would appear in a cell.
func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// Whole numbers print without a decimal point, matching ids
		// and counts decoded from JSON.
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
