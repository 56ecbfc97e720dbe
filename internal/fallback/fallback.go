// Package fallback deterministically generates placeholder records for
// a collection when a real fetch returns no rows, so the admin console
// stays demonstrable against an empty backend. Generation is seeded:
// the same seed always yields the same dataset, which keeps tests
// reproducible. The coordinator invokes it only on an empty successful
// fetch, never on a fetch error.
package fallback

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/advisorlane/advisor-admin/internal/collection"
)

// Generator produces synthetic datasets. Safe for sequential use; each
// Generate call derives its own rand source from the seed and the
// collection id, so collections are independent of generation order.
type Generator struct {
	seed   int64
	anchor time.Time // reference "now" for generated dates
}

// Option configures a Generator.
type Option func(*Generator)

// WithAnchor pins the reference time used for generated dates. Tests
// use this to make date fields fully deterministic.
func WithAnchor(t time.Time) Option {
	return func(g *Generator) {
		g.anchor = t
	}
}

// New creates a seeded generator.
func New(seed int64, opts ...Option) *Generator {
	g := &Generator{
		seed:   seed,
		anchor: time.Now().UTC().Truncate(24 * time.Hour),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces count synthetic records for the collection. Every
// record carries the same required fields as a real record of that
// collection, so the filter engine needs no special-casing. Unknown
// collections yield an empty slice.
func (g *Generator) Generate(id collection.ID, count int) []collection.Record {
	build, ok := builders[id]
	if !ok || count <= 0 {
		return []collection.Record{}
	}

	rng := rand.New(rand.NewSource(g.seed ^ int64(idHash(id))))
	records := make([]collection.Record, 0, count)
	for i := 0; i < count; i++ {
		rec := build(rng, g.anchor, i)
		rec[collection.FieldID] = fmt.Sprintf("%s-%03d", shortPrefix(id), i+1)
		records = append(records, rec)
	}
	return records
}

// idHash folds a collection id into the seed so each collection gets
// its own deterministic stream.
func idHash(id collection.ID) uint32 {
	var h uint32 = 2166136261
	for _, c := range []byte(id.String()) {
		h ^= uint32(c)
		h *= 16777619
	}
	return h
}

// shortPrefix maps a collection id to the id prefix used for synthetic
// records, e.g. "practice-listings" -> "pl".
func shortPrefix(id collection.ID) string {
	switch id {
	case collection.FirmDeals:
		return "deal"
	case collection.FirmParameters:
		return "param"
	case collection.FirmProfiles:
		return "firm"
	case collection.AdminUsers:
		return "user"
	case collection.BlogPosts:
		return "post"
	case collection.NewsArticles:
		return "news"
	case collection.PracticeListings:
		return "listing"
	default:
		return "rec"
	}
}
