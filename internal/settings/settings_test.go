package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advisorlane/advisor-admin/internal/collection"
	"github.com/advisorlane/advisor-admin/internal/config"
	"github.com/advisorlane/advisor-admin/internal/filter"
)

func setupConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	config.Load()
	config.Set("config_dir", dir)
	return dir
}

func TestLoad_MissingFile(t *testing.T) {
	setupConfigDir(t)
	presets, err := Load()
	require.NoError(t, err)
	assert.Empty(t, presets)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	setupConfigDir(t)

	saved := Presets{
		"firm-deals": {
			Sort:    "value-high",
			Search:  "acme",
			Filters: map[string]string{"stage": "Closed"},
		},
	}
	require.NoError(t, Save(saved))

	loaded, err := Load()
	require.NoError(t, err)
	require.Contains(t, loaded, "firm-deals")
	assert.Equal(t, "value-high", loaded["firm-deals"].Sort)
	assert.Equal(t, "acme", loaded["firm-deals"].Search)
	assert.Equal(t, "Closed", loaded["firm-deals"].Filters["stage"])
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := setupConfigDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "presets.toml"), []byte("{{{not toml"), 0o644))

	_, err := Load()
	assert.Error(t, err)
}

func TestFromState(t *testing.T) {
	spec := collection.MustSpec(collection.FirmDeals)
	state := filter.NewState(spec)
	state.Values["stage"] = "NDA"
	state.Search = "wealth"
	state.Sort = "newest"

	p := FromState(state)
	assert.Equal(t, "newest", p.Sort)
	assert.Equal(t, "wealth", p.Search)
	assert.Equal(t, "NDA", p.Filters["stage"])
}

func TestToState_DropsStaleEntries(t *testing.T) {
	spec := collection.MustSpec(collection.FirmDeals)
	p := Preset{
		Sort:   "renamed-field-high",
		Search: "acme",
		Filters: map[string]string{
			"stage":         "Closed",
			"renamedFilter": "x",
		},
	}

	state := p.ToState(spec)
	assert.Equal(t, "Closed", state.Values["stage"])
	assert.NotContains(t, state.Values, "renamedFilter")
	assert.Equal(t, "acme", state.Search)
	assert.Empty(t, state.Sort, "invalid sort key is dropped")
}

func TestToState_RoundTripThroughState(t *testing.T) {
	spec := collection.MustSpec(collection.FirmDeals)
	state := filter.NewState(spec)
	state.Values["dealType"] = "Acquisition"
	state.Sort = "value-low"

	restored := FromState(state).ToState(spec)
	assert.Equal(t, "Acquisition", restored.Values["dealType"])
	assert.Equal(t, "value-low", restored.Sort)
}
