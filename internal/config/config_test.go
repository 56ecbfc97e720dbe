package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	Load()

	assert.Equal(t, "http://localhost:8787", Get("api_base_url", ""))
	assert.Equal(t, 15, GetInt("request_timeout", 0))
	assert.Equal(t, 300, GetInt("cache_ttl", 0))
	assert.True(t, GetBool("fallback_enabled", false))
	assert.Equal(t, int64(1), GetInt64("fallback_seed", 0))
	assert.True(t, GetBool("history_enabled", false))
	assert.False(t, GetBool("debug", true))
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ADVISOR_ADMIN_API_BASE_URL", "https://admin.example.com")
	t.Setenv("ADVISOR_ADMIN_CACHE_TTL", "60")
	Load()

	assert.Equal(t, "https://admin.example.com", Get("api_base_url", ""))
	assert.Equal(t, 60, GetInt("cache_ttl", 0))
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `api_base_url = "https://file.example.com"
api_token = "secret"
request_timeout = 30
fallback_enabled = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("ADVISOR_ADMIN_CONFIG_PATH", path)
	Load()

	assert.Equal(t, "https://file.example.com", Get("api_base_url", ""))
	assert.Equal(t, "secret", Get("api_token", ""))
	assert.Equal(t, 30, GetInt("request_timeout", 0))
	assert.False(t, GetBool("fallback_enabled", true))
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`api_base_url = "https://file.example.com"`), 0o644))
	t.Setenv("ADVISOR_ADMIN_CONFIG_PATH", path)
	t.Setenv("ADVISOR_ADMIN_API_BASE_URL", "https://env.example.com")
	Load()

	assert.Equal(t, "https://env.example.com", Get("api_base_url", ""))
}

func TestLoad_InvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ADVISOR_ADMIN_REQUEST_TIMEOUT", "not-a-number")
	t.Setenv("ADVISOR_ADMIN_LOGGING_LEVEL", "verbose")
	Load()

	assert.Equal(t, 15, GetInt("request_timeout", 0))
	assert.Equal(t, "info", Get("logging_level", ""))
}

func TestLoad_BoolNormalization(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"yes", true},
		{"on", true},
		{"TRUE", true},
		{"0", false},
		{"no", false},
		{"off", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", t.TempDir())
			t.Setenv("ADVISOR_ADMIN_DEBUG", tt.value)
			Load()
			assert.Equal(t, tt.want, GetBool("debug", !tt.want))
		})
	}
}

func TestSet(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	Load()
	Set("api_token", "override")
	assert.Equal(t, "override", Get("api_token", ""))
}

func TestGet_MissingKeyUsesDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	Load()
	assert.Equal(t, "fallback", Get("no_such_key", "fallback"))
	assert.Equal(t, 7, GetInt("no_such_key", 7))
	assert.True(t, GetBool("no_such_key", true))
}

func TestCoerceConfigValue(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
		ok    bool
	}{
		{"string", "hello", "hello", true},
		{"int", 42, "42", true},
		{"int64", int64(42), "42", true},
		{"float", 1.5, "1.5", true},
		{"bool", true, "true", true},
		{"unsupported", []string{"x"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := coerceConfigValue(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
