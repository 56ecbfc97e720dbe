package collection

import (
	"math"
	"time"
)

// FilterKind selects the matching semantics of a filter.
type FilterKind string

const (
	// FilterExact matches when the record field equals the filter value.
	FilterExact FilterKind = "exact"
	// FilterStateCode matches the two-letter state extracted from a
	// "City, ST" field against the filter value.
	FilterStateCode FilterKind = "state-code"
	// FilterMoneyRange parses a formatted money field and matches when
	// the amount falls in the named range.
	FilterMoneyRange FilterKind = "money-range"
)

// Range is a half-open money interval in dollars. Max of +Inf means
// unbounded above.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether the amount falls inside the range.
func (r Range) Contains(amount float64) bool {
	return amount >= r.Min && amount < r.Max
}

// FilterSpec declares one named filter over a collection field.
type FilterSpec struct {
	Name   string
	Field  string
	Kind   FilterKind
	Ranges map[string]Range // money-range only: filter value -> interval
}

// Spec is the registry entry for one collection: its remote endpoint,
// response shape, filterable and searchable fields, and fallback sizing.
type Spec struct {
	ID          ID
	Path        string // endpoint path relative to the API base URL
	EnvelopeKey string // response envelope array key; empty for a bare array

	SearchFields []string
	Filters      []FilterSpec
	SortFields   []string // fields usable with the -high/-low sort keys
	DateField    string   // field backing the newest/oldest sort keys

	Required      []string // fields a create dialog must provide
	FallbackCount int
	TTL           time.Duration // 0 means the coordinator default
	Ops           []Op          // mutations the backend implements
}

// Supports reports whether the backend implements the given mutation op.
func (s Spec) Supports(op Op) bool {
	for _, o := range s.Ops {
		if o == op {
			return true
		}
	}
	return false
}

// FilterByName returns the filter spec with the given name.
func (s Spec) FilterByName(name string) (FilterSpec, bool) {
	for _, f := range s.Filters {
		if f.Name == name {
			return f, true
		}
	}
	return FilterSpec{}, false
}

var allOps = []Op{OpCreate, OpUpdate, OpDelete}

// aumRanges bucket assets under management, expressed in dollars.
var aumRanges = map[string]Range{
	"under50":  {Min: 0, Max: 50e6},
	"50to100":  {Min: 50e6, Max: 100e6},
	"100to250": {Min: 100e6, Max: 250e6},
	"over250":  {Min: 250e6, Max: math.Inf(1)},
}

// dealValueRanges bucket deal values, expressed in dollars.
var dealValueRanges = map[string]Range{
	"under1":  {Min: 0, Max: 1e6},
	"1to3":    {Min: 1e6, Max: 3e6},
	"3to10":   {Min: 3e6, Max: 10e6},
	"over10":  {Min: 10e6, Max: math.Inf(1)},
}

var registry = map[ID]Spec{
	FirmDeals: {
		ID:           FirmDeals,
		Path:         "/api/admin/firm-deals",
		SearchFields: []string{"firmName", "advisorName", "location"},
		Filters: []FilterSpec{
			{Name: "stage", Field: "stage", Kind: FilterExact},
			{Name: "dealType", Field: "dealType", Kind: FilterExact},
			{Name: "location", Field: "location", Kind: FilterStateCode},
			{Name: "value", Field: "value", Kind: FilterMoneyRange, Ranges: dealValueRanges},
		},
		SortFields:    []string{"value"},
		DateField:     "createdAt",
		Required:      []string{"firmName", "advisorName", "dealType", "stage"},
		FallbackCount: 20,
		Ops:           allOps,
	},
	FirmParameters: {
		ID:           FirmParameters,
		Path:         "/api/admin/firm-parameters",
		SearchFields: []string{"firmName", "custodian"},
		Filters: []FilterSpec{
			{Name: "custodian", Field: "custodian", Kind: FilterExact},
		},
		SortFields:    []string{"payoutRate"},
		DateField:     "updatedAt",
		Required:      []string{"firmName", "payoutRate", "custodian"},
		FallbackCount: 12,
		// Calculation parameters are only ever edited, never removed.
		Ops: []Op{OpCreate, OpUpdate},
	},
	FirmProfiles: {
		ID:           FirmProfiles,
		Path:         "/api/admin/firm-profiles",
		SearchFields: []string{"firmName", "headquarters", "custodian"},
		Filters: []FilterSpec{
			{Name: "status", Field: "status", Kind: FilterExact},
			{Name: "headquarters", Field: "headquarters", Kind: FilterStateCode},
			{Name: "aum", Field: "aum", Kind: FilterMoneyRange, Ranges: aumRanges},
		},
		SortFields:    []string{"aum", "advisors"},
		DateField:     "updatedAt",
		Required:      []string{"firmName", "headquarters"},
		FallbackCount: 15,
		Ops:           allOps,
	},
	AdminUsers: {
		ID:           AdminUsers,
		Path:         "/api/admin/users",
		SearchFields: []string{"name", "email", "firmName"},
		Filters: []FilterSpec{
			{Name: "role", Field: "role", Kind: FilterExact},
			{Name: "status", Field: "status", Kind: FilterExact},
		},
		DateField:     "lastLoginAt",
		Required:      []string{"name", "email", "role"},
		FallbackCount: 25,
		Ops:           allOps,
	},
	BlogPosts: {
		ID:           BlogPosts,
		Path:         "/api/admin/blog-posts",
		EnvelopeKey:  "posts",
		SearchFields: []string{"title", "author", "category"},
		Filters: []FilterSpec{
			{Name: "category", Field: "category", Kind: FilterExact},
			{Name: "status", Field: "status", Kind: FilterExact},
		},
		DateField:     "publishedAt",
		Required:      []string{"title", "author", "category"},
		FallbackCount: 18,
		Ops:           allOps,
	},
	NewsArticles: {
		ID:           NewsArticles,
		Path:         "/api/admin/news-articles",
		EnvelopeKey:  "newsArticles",
		SearchFields: []string{"headline", "sourceName", "topic"},
		Filters: []FilterSpec{
			{Name: "topic", Field: "topic", Kind: FilterExact},
			{Name: "status", Field: "status", Kind: FilterExact},
		},
		DateField:     "publishedAt",
		Required:      []string{"headline", "sourceName", "topic"},
		FallbackCount: 16,
		Ops:           allOps,
	},
	PracticeListings: {
		ID:           PracticeListings,
		Path:         "/api/admin/practice-listings",
		SearchFields: []string{"practiceName", "location"},
		Filters: []FilterSpec{
			{Name: "status", Field: "status", Kind: FilterExact},
			{Name: "location", Field: "location", Kind: FilterStateCode},
			{Name: "aum", Field: "aum", Kind: FilterMoneyRange, Ranges: aumRanges},
		},
		SortFields:    []string{"aum", "price", "revenue"},
		DateField:     "listedAt",
		Required:      []string{"practiceName", "location", "status"},
		FallbackCount: 35,
		Ops:           allOps,
	},
}

// SpecFor returns the registry entry for the given collection.
func SpecFor(id ID) (Spec, bool) {
	spec, ok := registry[id]
	return spec, ok
}

// MustSpec returns the registry entry for the given collection and
// panics if the collection is unknown. For use with compile-time IDs.
func MustSpec(id ID) Spec {
	spec, ok := registry[id]
	if !ok {
		panic("unknown collection: " + id.String())
	}
	return spec
}
