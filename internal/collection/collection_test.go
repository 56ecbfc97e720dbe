package collection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"firm-deals", false},
		{"practice-listings", false},
		{"admin-users", false},
		{"unknown", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			id, err := ParseID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.input, id.String())
			assert.True(t, id.IsValid())
		})
	}
}

func TestAll_CoveredByRegistry(t *testing.T) {
	for _, id := range All() {
		spec, ok := SpecFor(id)
		require.True(t, ok, "missing registry entry for %s", id)
		assert.Equal(t, id, spec.ID)
		assert.NotEmpty(t, spec.Path)
		assert.NotEmpty(t, spec.SearchFields)
		assert.NotEmpty(t, spec.Required)
		assert.Greater(t, spec.FallbackCount, 0)
		assert.NotEmpty(t, spec.Ops)
	}
}

func TestSpec_Supports(t *testing.T) {
	params := MustSpec(FirmParameters)
	assert.True(t, params.Supports(OpCreate))
	assert.True(t, params.Supports(OpUpdate))
	assert.False(t, params.Supports(OpDelete), "parameter sets are never deleted")

	listings := MustSpec(PracticeListings)
	assert.True(t, listings.Supports(OpDelete))
}

func TestSpec_FilterByName(t *testing.T) {
	spec := MustSpec(PracticeListings)

	f, ok := spec.FilterByName("aum")
	require.True(t, ok)
	assert.Equal(t, FilterMoneyRange, f.Kind)
	assert.NotEmpty(t, f.Ranges)

	_, ok = spec.FilterByName("bogus")
	assert.False(t, ok)
}

func TestRange_Contains(t *testing.T) {
	rng := Range{Min: 100e6, Max: 250e6}
	assert.True(t, rng.Contains(135e6))
	assert.True(t, rng.Contains(100e6))
	assert.False(t, rng.Contains(250e6))
	assert.False(t, rng.Contains(45e6))
}

func TestRecord_ID(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{"string id", Record{"id": "deal-001"}, "deal-001"},
		{"numeric id from json", Record{"id": float64(7)}, "7"},
		{"int id", Record{"id": 42}, "42"},
		{"missing id", Record{"name": "x"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rec.ID())
		})
	}
}

func TestRecord_Str(t *testing.T) {
	rec := Record{
		"name":    "Summit Wealth",
		"clients": float64(120),
		"active":  true,
		"nested":  map[string]any{"x": 1},
		"empty":   nil,
	}

	v, ok := rec.Str("name")
	assert.True(t, ok)
	assert.Equal(t, "Summit Wealth", v)

	v, ok = rec.Str("clients")
	assert.True(t, ok)
	assert.Equal(t, "120", v)

	v, ok = rec.Str("active")
	assert.True(t, ok)
	assert.Equal(t, "true", v)

	_, ok = rec.Str("nested")
	assert.False(t, ok, "nested values are not scalars")

	_, ok = rec.Str("empty")
	assert.False(t, ok)

	_, ok = rec.Str("missing")
	assert.False(t, ok)
}

func TestRecord_Merge(t *testing.T) {
	orig := Record{"id": "u1", "name": "Sarah", "role": "editor"}
	merged := orig.Merge(map[string]any{"role": "admin"})

	role, _ := merged.Str("role")
	assert.Equal(t, "admin", role)
	// Original untouched
	role, _ = orig.Str("role")
	assert.Equal(t, "editor", role)
}

func TestMutation_Validate(t *testing.T) {
	tests := []struct {
		name    string
		m       Mutation
		wantErr bool
	}{
		{"valid create", NewCreate(map[string]any{"name": "x"}), false},
		{"create without fields", NewCreate(nil), true},
		{"valid update", NewUpdate("u1", map[string]any{"name": "x"}), false},
		{"update without id", NewUpdate("", map[string]any{"name": "x"}), true},
		{"update without fields", NewUpdate("u1", nil), true},
		{"valid delete", NewDelete("u1"), false},
		{"delete without id", NewDelete(""), true},
		{"invalid op", Mutation{Op: "upsert"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSnapshot(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	records := []Record{{"id": "a"}, {"id": "b"}}
	snap := NewSnapshot(records, SourceRemote, now)

	assert.Equal(t, FreshnessFresh, snap.Freshness)
	assert.Equal(t, SourceRemote, snap.Source)
	assert.Equal(t, 2, snap.Len())

	r, ok := snap.FindByID("b")
	require.True(t, ok)
	assert.Equal(t, "b", r.ID())

	_, ok = snap.FindByID("missing")
	assert.False(t, ok)
}
