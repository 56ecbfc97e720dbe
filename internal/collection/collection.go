// Package collection provides the domain layer for admin collections.
// It contains collection identifiers, records, snapshots, and mutation
// intents shared by the gateway, cache, filter, and controller layers.
package collection

import (
	"fmt"
	"time"
)

// ID identifies one named dataset managed by the admin console.
type ID string

const (
	FirmDeals        ID = "firm-deals"
	FirmParameters   ID = "firm-parameters"
	FirmProfiles     ID = "firm-profiles"
	AdminUsers       ID = "admin-users"
	BlogPosts        ID = "blog-posts"
	NewsArticles     ID = "news-articles"
	PracticeListings ID = "practice-listings"
)

// IsValid checks if the collection ID is a known collection.
func (id ID) IsValid() bool {
	switch id {
	case FirmDeals, FirmParameters, FirmProfiles, AdminUsers,
		BlogPosts, NewsArticles, PracticeListings:
		return true
	default:
		return false
	}
}

// String returns the string representation of the ID.
func (id ID) String() string {
	return string(id)
}

// ParseID parses a string into a collection ID.
func ParseID(s string) (ID, error) {
	id := ID(s)
	if !id.IsValid() {
		return "", fmt.Errorf("unknown collection: %s", s)
	}
	return id, nil
}

// All returns every known collection ID in registry order.
func All() []ID {
	return []ID{
		FirmDeals,
		FirmParameters,
		FirmProfiles,
		AdminUsers,
		BlogPosts,
		NewsArticles,
		PracticeListings,
	}
}

// Source tags where a snapshot's records came from.
type Source string

const (
	SourceRemote    Source = "remote"
	SourceSynthetic Source = "synthetic"
)

// String returns the string representation of the source.
func (s Source) String() string {
	return string(s)
}

// Freshness describes the lifecycle state of a snapshot.
type Freshness string

const (
	FreshnessLoading Freshness = "loading"
	FreshnessFresh   Freshness = "fresh"
	FreshnessStale   Freshness = "stale"
	FreshnessError   Freshness = "error"
)

// String returns the string representation of the freshness.
func (f Freshness) String() string {
	return string(f)
}

// Snapshot is the published in-memory value of a collection.
// A snapshot is immutable once published: any change produces a new
// snapshot, never an in-place edit visible to consumers mid-update.
type Snapshot struct {
	Records   []Record
	Freshness Freshness
	Source    Source
	FetchedAt time.Time
}

// NewSnapshot creates a fresh snapshot over the given records.
func NewSnapshot(records []Record, source Source, fetchedAt time.Time) Snapshot {
	return Snapshot{
		Records:   records,
		Freshness: FreshnessFresh,
		Source:    source,
		FetchedAt: fetchedAt,
	}
}

// Len returns the number of records in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Records)
}

// FindByID returns the record with the given id, if present.
func (s Snapshot) FindByID(id string) (Record, bool) {
	for _, r := range s.Records {
		if r.ID() == id {
			return r, true
		}
	}
	return nil, false
}
