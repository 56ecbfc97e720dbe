package filter

import (
	"sort"
	"strings"

	"github.com/advisorlane/advisor-admin/internal/collection"
)

// Sort key constants. Field sorts are spelled "<field>-high" and
// "<field>-low" for any field listed in the collection's SortFields.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
)

// SortKeys returns the sort keys valid for the given collection, in
// cycling order for the UI.
func SortKeys(spec collection.Spec) []string {
	keys := []string{SortNewest, SortOldest}
	for _, f := range spec.SortFields {
		keys = append(keys, f+"-high", f+"-low")
	}
	return keys
}

// ValidSortKey reports whether the key is usable with the collection.
func ValidSortKey(spec collection.Spec, key string) bool {
	if key == "" {
		return true
	}
	for _, k := range SortKeys(spec) {
		if k == key {
			return true
		}
	}
	return false
}

// sortRecords orders records by the given sort key. The sort is stable:
// records that compare equal keep their original relative order. An
// empty or unknown key keeps the original order entirely.
func sortRecords(records []collection.Record, spec collection.Spec, key string) []collection.Record {
	if key == "" || len(records) < 2 {
		return records
	}

	field, descending, ok := resolveSortKey(spec, key)
	if !ok {
		return records
	}

	sort.SliceStable(records, func(i, j int) bool {
		return lessByField(records[i], records[j], field, descending)
	})
	return records
}

// resolveSortKey maps a sort key to (field, descending). Newest/oldest
// sort on the collection's date field.
func resolveSortKey(spec collection.Spec, key string) (field string, descending, ok bool) {
	switch key {
	case SortNewest:
		return spec.DateField, true, spec.DateField != ""
	case SortOldest:
		return spec.DateField, false, spec.DateField != ""
	}
	for _, f := range spec.SortFields {
		switch key {
		case f + "-high":
			return f, true, true
		case f + "-low":
			return f, false, true
		}
	}
	return "", false, false
}

// lessByField compares two records on one field. Money-formatted and
// plain numeric values compare numerically, other values compare as
// strings, and the direction flips only within a class: numeric values
// always order before unparsable ones and missing fields always order
// last, so an "N/A" figure never floats to the top of a high-to-low
// view.
func lessByField(a, b collection.Record, field string, descending bool) bool {
	aRank, aNum, aStr := sortValue(a, field)
	bRank, bNum, bStr := sortValue(b, field)
	if aRank != bRank {
		return aRank < bRank
	}
	if aRank == rankNumeric {
		if descending {
			return aNum > bNum
		}
		return aNum < bNum
	}
	if descending {
		return strings.Compare(aStr, bStr) > 0
	}
	return strings.Compare(aStr, bStr) < 0
}

const (
	rankNumeric = iota
	rankString
	rankMissing
)

// sortValue classifies a record field for sorting.
func sortValue(r collection.Record, field string) (rank int, num float64, str string) {
	v, ok := r.Str(field)
	if !ok {
		return rankMissing, 0, ""
	}
	if n, err := ParseMoney(v); err == nil {
		return rankNumeric, n, v
	}
	return rankString, 0, v
}
