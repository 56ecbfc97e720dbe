// Package filter provides the pure filter/search/sort engine over
// collection snapshots. Apply is a pure function of (records, state):
// it never mutates its input and always returns a new slice.
package filter

import (
	"strings"

	"github.com/advisorlane/advisor-admin/internal/collection"
)

// Wildcard is the filter value that matches every record.
const Wildcard = "all"

// State holds the current filter, search, and sort selections for one
// collection view.
type State struct {
	Values map[string]string // filter name -> value; Wildcard or "" match all
	Search string            // free-text search, case-insensitive
	Sort   string            // sort key; empty keeps original order
}

// NewState returns a neutral state for the given collection: every
// filter at the wildcard, empty search, no sort.
func NewState(spec collection.Spec) State {
	values := make(map[string]string, len(spec.Filters))
	for _, f := range spec.Filters {
		values[f.Name] = Wildcard
	}
	return State{Values: values}
}

// Clone returns an independent copy of the state.
func (s State) Clone() State {
	values := make(map[string]string, len(s.Values))
	for k, v := range s.Values {
		values[k] = v
	}
	return State{Values: values, Search: s.Search, Sort: s.Sort}
}

// IsNeutral reports whether the state matches every record in original
// order: all filters at the wildcard, no search, no sort.
func (s State) IsNeutral() bool {
	if s.Search != "" || s.Sort != "" {
		return false
	}
	for _, v := range s.Values {
		if v != "" && v != Wildcard {
			return false
		}
	}
	return true
}

// Apply returns the ordered visible subset of records for the given
// filter state. A record passes iff every active filter matches and the
// search string (if any) is found in one of the collection's searchable
// fields. Sorting is stable; original order is the tiebreak.
func Apply(records []collection.Record, spec collection.Spec, state State) []collection.Record {
	result := make([]collection.Record, 0, len(records))
	for _, r := range records {
		if matches(r, spec, state) {
			result = append(result, r)
		}
	}
	return sortRecords(result, spec, state.Sort)
}

// matches reports whether a single record passes every active filter
// plus the search string.
func matches(r collection.Record, spec collection.Spec, state State) bool {
	for _, f := range spec.Filters {
		value := state.Values[f.Name]
		if value == "" || value == Wildcard {
			continue
		}
		if !matchFilter(r, f, value) {
			return false
		}
	}
	return matchSearch(r, spec.SearchFields, state.Search)
}

// matchFilter applies one active filter to a record. Missing or
// malformed fields are non-matching, never an error.
func matchFilter(r collection.Record, f collection.FilterSpec, value string) bool {
	raw, ok := r.Str(f.Field)
	if !ok {
		return false
	}
	switch f.Kind {
	case collection.FilterExact:
		return raw == value
	case collection.FilterStateCode:
		return StateCode(raw) == value
	case collection.FilterMoneyRange:
		rng, ok := f.Ranges[value]
		if !ok {
			return false
		}
		amount, err := ParseMoney(raw)
		if err != nil {
			// Unparsable amounts are excluded from every active
			// range filter rather than crashing the view.
			return false
		}
		return rng.Contains(amount)
	default:
		return false
	}
}

// matchSearch reports whether any searchable field contains the query
// as a case-insensitive substring. An empty query matches everything.
func matchSearch(r collection.Record, fields []string, query string) bool {
	if query == "" {
		return true
	}
	needle := strings.ToLower(query)
	for _, field := range fields {
		value, ok := r.Str(field)
		if !ok || value == "" {
			continue
		}
		if strings.Contains(strings.ToLower(value), needle) {
			return true
		}
	}
	return false
}

// StateCode extracts the two-letter state code from a "City, ST"
// location string. The extraction rule is shared with the fallback
// generator; the location filter only works because both sides split
// on ", " and take the second token.
func StateCode(location string) string {
	parts := strings.SplitN(location, ", ", 2)
	if len(parts) != 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
