// Package controller orchestrates one collection view: it wires the
// cache coordinator, the gateway, the filter engine, and the
// notification surface, and owns the dialog state machine for create
// and edit forms. Each admin surface (CLI command or TUI tab) holds one
// Controller per collection.
package controller

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/advisorlane/advisor-admin/internal/cache"
	"github.com/advisorlane/advisor-admin/internal/collection"
	"github.com/advisorlane/advisor-admin/internal/filter"
	"github.com/advisorlane/advisor-admin/internal/gateway"
	"github.com/advisorlane/advisor-admin/internal/history"
	"github.com/advisorlane/advisor-admin/internal/logging"
	"github.com/advisorlane/advisor-admin/internal/notify"
)

// Mutator executes mutations against the remote API. Satisfied by the
// gateway client.
type Mutator interface {
	Mutate(ctx context.Context, spec collection.Spec, m collection.Mutation) (collection.Record, error)
}

// Recorder appends to the local mutation history. Satisfied by the
// history store.
type Recorder interface {
	Record(e history.Entry) error
}

// Controller drives one collection view.
type Controller struct {
	mu     sync.Mutex
	spec   collection.Spec
	coord  *cache.Coordinator
	mut    Mutator
	notes  notify.Notifier
	rec    Recorder
	logger logging.Logger

	state  filter.State
	dialog Dialog
	closed bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithNotifier attaches the operator notification surface.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Controller) {
		c.notes = n
	}
}

// WithRecorder attaches the local mutation history.
func WithRecorder(r Recorder) Option {
	return func(c *Controller) {
		c.rec = r
	}
}

// WithLogger attaches a structured logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithFilterState applies a saved view preset as the initial state.
func WithFilterState(state filter.State) Option {
	return func(c *Controller) {
		c.state = state.Clone()
	}
}

// New creates a controller for one collection.
func New(spec collection.Spec, coord *cache.Coordinator, mut Mutator, opts ...Option) *Controller {
	c := &Controller{
		spec:   spec,
		coord:  coord,
		mut:    mut,
		logger: logging.Noop(),
		state:  filter.NewState(spec),
		dialog: Dialog{Mode: DialogClosed},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Spec returns the collection registry entry this controller drives.
func (c *Controller) Spec() collection.Spec {
	return c.spec
}

// FilterState returns a copy of the current filter state.
func (c *Controller) FilterState() filter.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// SetFilter updates one named filter value.
func (c *Controller) SetFilter(name, value string) error {
	if _, ok := c.spec.FilterByName(name); !ok {
		return fmt.Errorf("unknown filter %q for %s", name, c.spec.ID)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Values[name] = value
	return nil
}

// SetSearch updates the free-text search string.
func (c *Controller) SetSearch(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Search = query
}

// SetSort updates the sort key.
func (c *Controller) SetSort(key string) error {
	if !filter.ValidSortKey(c.spec, key) {
		return fmt.Errorf("unknown sort key %q for %s", key, c.spec.ID)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Sort = key
	return nil
}

// ResetFilters returns the view to the neutral state.
func (c *Controller) ResetFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = filter.NewState(c.spec)
}

// Snapshot returns the current collection snapshot, fetching if needed.
func (c *Controller) Snapshot(ctx context.Context) (collection.Snapshot, error) {
	return c.coord.Get(ctx, c.spec.ID)
}

// Visible returns the filtered, sorted records currently visible.
// Fetch failures surface both as the returned error and through the
// notifier, so the view can show a retry affordance instead of a blank
// screen.
func (c *Controller) Visible(ctx context.Context) ([]collection.Record, error) {
	snap, err := c.coord.Get(ctx, c.spec.ID)
	if err != nil {
		c.notifyError("Failed to load "+c.spec.ID.String(), err)
		return nil, err
	}
	return filter.Apply(snap.Records, c.spec, c.FilterState()), nil
}

// Refresh invalidates the cached snapshot and refetches immediately.
func (c *Controller) Refresh(ctx context.Context) error {
	c.coord.Invalidate(c.spec.ID)
	_, err := c.coord.Get(ctx, c.spec.ID)
	if err != nil {
		c.notifyError("Refresh failed for "+c.spec.ID.String(), err)
		return err
	}
	c.notify("Refreshed "+c.spec.ID.String(), "", notify.KindInfo)
	return nil
}

// Close marks the view unmounted. Mutation results that complete after
// Close are discarded without error, and the cache slot is released.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.dialog = Dialog{Mode: DialogClosed}
	c.mu.Unlock()
	c.coord.Forget(c.spec.ID)
}

// Delete issues a delete mutation for the given record id.
func (c *Controller) Delete(ctx context.Context, id string) error {
	return c.execute(ctx, collection.NewDelete(id))
}

// execute runs one mutation through the gateway and reconciles the
// outcome. On success the cache is patched and the operator notified;
// on failure the cache and visible list are left untouched and the
// failure reason is surfaced. Results arriving after Close are
// discarded.
func (c *Controller) execute(ctx context.Context, m collection.Mutation) (err error) {
	// Genuinely unexpected panics below the gateway boundary are
	// converted into a generic server error for display.
	defer func() {
		if r := recover(); r != nil {
			err = &gateway.Error{Kind: gateway.KindServer, Message: fmt.Sprintf("unexpected: %v", r)}
			c.notifyError(mutationTitle(c.spec, m)+" failed", err)
		}
	}()

	outcome, err := c.mut.Mutate(ctx, c.spec, m)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.logger.Debug("discarding mutation result after close",
			"collection", c.spec.ID.String(), "op", m.Op.String())
		return nil
	}
	c.mu.Unlock()

	if err != nil {
		c.record(m, history.OutcomeFailure, err.Error())
		c.notifyError(mutationTitle(c.spec, m)+" failed", err)
		return err
	}

	c.coord.ApplyMutation(c.spec.ID, m, outcome)
	c.record(m, history.OutcomeSuccess, outcome.ID())
	c.notify(mutationTitle(c.spec, m), describeOutcome(m, outcome), notify.KindSuccess)
	return nil
}

// record appends to the local history log when one is attached.
func (c *Controller) record(m collection.Mutation, outcome, detail string) {
	if c.rec == nil {
		return
	}
	recordID := m.ID
	if recordID == "" {
		recordID = detail
	}
	if err := c.rec.Record(history.Entry{
		Collection: c.spec.ID.String(),
		Op:         m.Op.String(),
		RecordID:   recordID,
		Outcome:    outcome,
		Detail:     detail,
	}); err != nil {
		c.logger.Warn("failed to record mutation history", "error", err)
	}
}

func (c *Controller) notify(title, description string, kind notify.Kind) {
	if c.notes != nil {
		c.notes.Notify(title, description, kind)
	}
}

func (c *Controller) notifyError(title string, err error) {
	c.notify(title, err.Error(), notify.KindError)
}

// mutationTitle builds the operator-facing title for a mutation result.
func mutationTitle(spec collection.Spec, m collection.Mutation) string {
	switch m.Op {
	case collection.OpCreate:
		return "Created " + singular(spec.ID)
	case collection.OpUpdate:
		return "Updated " + singular(spec.ID)
	case collection.OpDelete:
		return "Deleted " + singular(spec.ID)
	default:
		return spec.ID.String()
	}
}

// describeOutcome summarizes the affected record for a notification.
func describeOutcome(m collection.Mutation, outcome collection.Record) string {
	id := outcome.ID()
	if id == "" {
		id = m.ID
	}
	if id == "" {
		return ""
	}
	return "record " + id
}

// singular maps a collection id to a singular noun for notifications.
func singular(id collection.ID) string {
	switch id {
	case collection.FirmDeals:
		return "deal"
	case collection.FirmParameters:
		return "parameter set"
	case collection.FirmProfiles:
		return "firm profile"
	case collection.AdminUsers:
		return "user"
	case collection.BlogPosts:
		return "blog post"
	case collection.NewsArticles:
		return "news article"
	case collection.PracticeListings:
		return "practice listing"
	default:
		return "record"
	}
}

// coerceField converts a bound form value into the field type sent to
// the remote: integers stay integers, everything else is a string. The
// marketplace stores formatted money strings as-is.
func coerceField(value string) any {
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	return value
}
