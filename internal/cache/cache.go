// Package cache holds the last-known-good snapshot of each collection
// and reconciles mutation outcomes back into it. It is the only shared
// mutable state in the console: every published snapshot is swapped in
// as a single assignment under the coordinator lock, so readers observe
// either the pre- or post-mutation value, never a partial update.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/advisorlane/advisor-admin/internal/collection"
	"github.com/advisorlane/advisor-admin/internal/logging"
)

// DefaultTTL is how long a snapshot is served before Get refetches.
const DefaultTTL = 5 * time.Minute

// Fetcher retrieves the remote records of a collection. Satisfied by
// the gateway client.
type Fetcher interface {
	Fetch(ctx context.Context, spec collection.Spec) ([]collection.Record, error)
}

// Generator produces synthetic placeholder records. Satisfied by the
// fallback generator.
type Generator interface {
	Generate(id collection.ID, count int) []collection.Record
}

// State is the lifecycle state of one collection slot.
type State string

const (
	StateEmpty   State = "empty"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateErrored State = "errored"
)

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// entry is one collection slot. snapshot is only meaningful in
// StateReady; err only in StateErrored.
type entry struct {
	state    State
	snapshot collection.Snapshot
	err      error
}

// Coordinator owns the per-collection cache slots.
type Coordinator struct {
	mu      sync.Mutex
	entries map[collection.ID]*entry

	fetcher    Fetcher
	generator  Generator
	defaultTTL time.Duration
	logger     logging.Logger
	now        func() time.Time
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithTTL overrides the default snapshot TTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *Coordinator) {
		if ttl > 0 {
			c.defaultTTL = ttl
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Coordinator) {
		c.logger = l
	}
}

// WithClock replaces the time source. Tests use this to drive TTL
// expiry without sleeping.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		c.now = now
	}
}

// New creates a coordinator over the given fetcher and fallback
// generator.
func New(fetcher Fetcher, generator Generator, opts ...Option) *Coordinator {
	c := &Coordinator{
		entries:    make(map[collection.ID]*entry),
		fetcher:    fetcher,
		generator:  generator,
		defaultTTL: DefaultTTL,
		logger:     logging.Noop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the lifecycle state of a collection slot.
func (c *Coordinator) State(id collection.ID) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[id]
	if !ok {
		return StateEmpty
	}
	return e.state
}

// Get returns the current snapshot of a collection, fetching when the
// slot is empty, errored, or stale beyond its TTL. An empty successful
// fetch is replaced by synthetic fallback data; a fetch error is not,
// so outages stay visible.
func (c *Coordinator) Get(ctx context.Context, id collection.ID) (collection.Snapshot, error) {
	spec, ok := collection.SpecFor(id)
	if !ok {
		return collection.Snapshot{}, &UnknownCollectionError{ID: id}
	}

	c.mu.Lock()
	e, exists := c.entries[id]
	if exists && e.state == StateReady && !c.expired(e, spec) {
		snap := e.snapshot
		c.mu.Unlock()
		return snap, nil
	}
	if !exists {
		e = &entry{}
		c.entries[id] = e
	}
	e.state = StateLoading
	c.mu.Unlock()

	return c.fetch(ctx, spec)
}

// Invalidate forces the next Get of the collection to refetch.
func (c *Coordinator) Invalidate(id collection.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[id]; ok && e.state == StateReady {
		e.snapshot.Freshness = collection.FreshnessStale
		e.snapshot.FetchedAt = time.Time{}
	}
}

// Forget drops the collection slot entirely, as when a view unmounts.
// Late mutation results for a forgotten slot are discarded.
func (c *Coordinator) Forget(id collection.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

// ApplyMutation reconciles a successful mutation outcome into the
// cached snapshot: creates append the returned record, updates replace
// the record with the matching id, deletes remove it. The swap is a
// single assignment; a failed mutation never reaches this method, so
// the snapshot is untouched on failure. Outcomes arriving for a slot
// that is no longer Ready are discarded without error.
func (c *Coordinator) ApplyMutation(id collection.ID, m collection.Mutation, outcome collection.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[id]
	if !ok || e.state != StateReady {
		c.logger.Debug("discarding mutation outcome for inactive collection",
			"collection", id.String(), "op", m.Op.String())
		return
	}

	old := e.snapshot
	records := make([]collection.Record, 0, len(old.Records)+1)
	switch m.Op {
	case collection.OpCreate:
		records = append(records, old.Records...)
		records = append(records, outcome)
	case collection.OpUpdate:
		for _, r := range old.Records {
			if r.ID() == m.ID {
				records = append(records, outcome)
			} else {
				records = append(records, r)
			}
		}
	case collection.OpDelete:
		for _, r := range old.Records {
			if r.ID() != m.ID {
				records = append(records, r)
			}
		}
	default:
		return
	}

	e.snapshot = collection.Snapshot{
		Records:   records,
		Freshness: old.Freshness,
		Source:    old.Source,
		FetchedAt: old.FetchedAt,
	}
}

// fetch performs the remote read outside the lock and publishes the
// result. Concurrent fetches for the same collection are applied in
// completion order; the last writer wins.
func (c *Coordinator) fetch(ctx context.Context, spec collection.Spec) (collection.Snapshot, error) {
	records, err := c.fetcher.Fetch(ctx, spec)
	fetchedAt := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[spec.ID]
	if !ok {
		// Slot was forgotten mid-flight; discard the result.
		return collection.Snapshot{}, err
	}

	if err != nil {
		e.state = StateErrored
		e.err = err
		c.logger.Warn("collection fetch failed", "collection", spec.ID.String(), "error", err)
		return collection.Snapshot{Freshness: collection.FreshnessError}, err
	}

	source := collection.SourceRemote
	if len(records) == 0 && c.generator != nil {
		// Empty success only; errors above never reach this branch.
		records = c.generator.Generate(spec.ID, spec.FallbackCount)
		source = collection.SourceSynthetic
		c.logger.Info("collection empty, using synthetic fallback",
			"collection", spec.ID.String(), "records", len(records))
	}

	e.state = StateReady
	e.err = nil
	e.snapshot = collection.NewSnapshot(records, source, fetchedAt)
	return e.snapshot, nil
}

// expired reports whether a ready snapshot is stale beyond its TTL.
func (c *Coordinator) expired(e *entry, spec collection.Spec) bool {
	if e.snapshot.Freshness == collection.FreshnessStale {
		return true
	}
	ttl := c.defaultTTL
	if spec.TTL > 0 {
		ttl = spec.TTL
	}
	return c.now().Sub(e.snapshot.FetchedAt) > ttl
}

// UnknownCollectionError reports a Get against an unregistered
// collection id.
type UnknownCollectionError struct {
	ID collection.ID
}

// Error implements the error interface.
func (e *UnknownCollectionError) Error() string {
	return "unknown collection: " + e.ID.String()
}
