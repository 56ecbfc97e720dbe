package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/advisorlane/advisor-admin/internal/cache"
	"github.com/advisorlane/advisor-admin/internal/collection"
	"github.com/advisorlane/advisor-admin/internal/config"
	"github.com/advisorlane/advisor-admin/internal/controller"
	"github.com/advisorlane/advisor-admin/internal/fallback"
	"github.com/advisorlane/advisor-admin/internal/gateway"
	"github.com/advisorlane/advisor-admin/internal/history"
	"github.com/advisorlane/advisor-admin/internal/logging"
	"github.com/advisorlane/advisor-admin/internal/notify"
	"github.com/advisorlane/advisor-admin/internal/settings"
)

// app wires the configured gateway, cache, and history store. Each
// command builds one, uses it, and closes it.
type app struct {
	gateway *gateway.Client
	coord   *cache.Coordinator
	store   *history.Store
	presets settings.Presets
}

// newApp assembles the console from global config.
func newApp() (*app, error) {
	logger := logging.GetGlobal()

	gw := gateway.New(
		config.Get("api_base_url", "http://localhost:8787"),
		config.Get("api_token", ""),
		time.Duration(config.GetInt("request_timeout", 15))*time.Second,
		gateway.WithLogger(logger),
	)

	var gen cache.Generator
	if config.GetBool("fallback_enabled", true) {
		gen = fallback.New(config.GetInt64("fallback_seed", 1))
	}

	coord := cache.New(gw, gen,
		cache.WithTTL(time.Duration(config.GetInt("cache_ttl", 300))*time.Second),
		cache.WithLogger(logger),
	)

	var store *history.Store
	if config.GetBool("history_enabled", true) {
		path := filepath.Join(config.Get("state_dir", ""), "history.db")
		s, err := history.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open history store: %w", err)
		}
		store = s
	}

	presets, err := settings.Load()
	if err != nil {
		logger.Warn("failed to load view presets", "error", err)
		presets = settings.Presets{}
	}

	return &app{gateway: gw, coord: coord, store: store, presets: presets}, nil
}

// close releases the app's resources.
func (a *app) close() {
	if a.store != nil {
		_ = a.store.Close()
	}
}

// controllerFor builds a controller for one collection, seeded with its
// saved view preset, notifying through the given surface.
func (a *app) controllerFor(id collection.ID, notes notify.Notifier) *controller.Controller {
	spec := collection.MustSpec(id)
	opts := []controller.Option{
		controller.WithNotifier(notes),
		controller.WithLogger(logging.GetGlobal()),
	}
	if a.store != nil {
		opts = append(opts, controller.WithRecorder(a.store))
	}
	if preset, ok := a.presets[id.String()]; ok {
		opts = append(opts, controller.WithFilterState(preset.ToState(spec)))
	}
	return controller.New(spec, a.coord, a.gateway, opts...)
}
