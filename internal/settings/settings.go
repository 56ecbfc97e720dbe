// Package settings persists per-collection view presets: the sort key,
// filter values, and search text an operator last saved for a
// collection. Presets live in a TOML file next to the main config.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/advisorlane/advisor-admin/internal/collection"
	"github.com/advisorlane/advisor-admin/internal/config"
	"github.com/advisorlane/advisor-admin/internal/filter"
)

const presetsFileName = "presets.toml"

// Preset is a saved view configuration for one collection.
type Preset struct {
	Sort    string            `toml:"sort"`
	Search  string            `toml:"search"`
	Filters map[string]string `toml:"filters"`
}

// Presets maps collection ids to their saved presets.
type Presets map[string]Preset

// FromState captures a filter state as a preset.
func FromState(state filter.State) Preset {
	filters := make(map[string]string, len(state.Values))
	for k, v := range state.Values {
		filters[k] = v
	}
	return Preset{Sort: state.Sort, Search: state.Search, Filters: filters}
}

// ToState converts a preset back into a filter state for the given
// collection. Unknown filter names and invalid sort keys are dropped so
// a stale preset can never break the view.
func (p Preset) ToState(spec collection.Spec) filter.State {
	state := filter.NewState(spec)
	for name, value := range p.Filters {
		if _, ok := spec.FilterByName(name); ok && value != "" {
			state.Values[name] = value
		}
	}
	state.Search = p.Search
	if filter.ValidSortKey(spec, p.Sort) {
		state.Sort = p.Sort
	}
	return state
}

// path returns the presets file location.
func path() string {
	return filepath.Join(config.Get("config_dir", ""), presetsFileName)
}

// Load reads saved presets. A missing file yields an empty set, not an
// error.
func Load() (Presets, error) {
	data, err := os.ReadFile(path())
	if err != nil {
		if os.IsNotExist(err) {
			return Presets{}, nil
		}
		return nil, fmt.Errorf("read presets: %w", err)
	}
	var presets Presets
	if err := toml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	if presets == nil {
		presets = Presets{}
	}
	return presets, nil
}

// Save writes the presets file, creating the config directory if
// needed.
func Save(presets Presets) error {
	data, err := toml.Marshal(presets)
	if err != nil {
		return fmt.Errorf("marshal presets: %w", err)
	}
	p := path()
	if err := os.MkdirAll(filepath.Dir(p), config.FileModeDir); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(p, data, config.FileModeFile); err != nil {
		return fmt.Errorf("write presets: %w", err)
	}
	return nil
}
