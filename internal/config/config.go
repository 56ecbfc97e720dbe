// Package config provides configuration loading: defaults, a TOML
// config file, and environment overrides, in that order of precedence
// with the environment winning.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/advisorlane/advisor-admin/internal/colors"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// ADVISOR_ADMIN_API_BASE_URL overrides api_base_url.
const EnvPrefix = "ADVISOR_ADMIN_"

// File permission constants
const (
	// FileModeDir is the permission for directories (rwxr-xr-x)
	FileModeDir os.FileMode = 0755
	// FileModeFile is the permission for data files (rw-r--r--)
	FileModeFile os.FileMode = 0644

	// FileExtTOML is the file extension for TOML configuration files.
	FileExtTOML = ".toml"
)

var (
	mu       sync.RWMutex
	values   map[string]string // effective configuration
	defaults map[string]string // fallback values for failed validation
)

func init() {
	initValidators()
}

// Load initializes configuration. Environment variables are applied
// before reading the config file (so config_dir itself can be
// overridden) and again after, so the environment always wins.
func Load() {
	mu.Lock()
	defer mu.Unlock()

	values = make(map[string]string)
	defaults = make(map[string]string)

	setDefaults()
	applyEnv()
	applyFile()
	applyEnv()
	validate()
}

func setDefault(key, value string) {
	values[key] = value
	defaults[key] = value
}

func setDefaults() {
	home, _ := os.UserHomeDir()
	xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfigHome == "" {
		xdgConfigHome = filepath.Join(home, ".config")
	}
	xdgStateHome := os.Getenv("XDG_STATE_HOME")
	if xdgStateHome == "" {
		xdgStateHome = filepath.Join(home, ".local", "state")
	}

	setDefault("config_dir", filepath.Join(xdgConfigHome, "advisor-admin"))
	setDefault("state_dir", filepath.Join(xdgStateHome, "advisor-admin"))
	setDefault("api_base_url", "http://localhost:8787")
	setDefault("api_token", "")
	setDefault("request_timeout", "15")
	setDefault("cache_ttl", "300")
	setDefault("fallback_enabled", "true")
	setDefault("fallback_seed", "1")
	setDefault("history_enabled", "true")
	setDefault("logging_enabled", "false")
	setDefault("logging_level", "info")
	setDefault("logging_max_files", "10")
	setDefault("debug", "false")
	setDefault("quiet", "false")
}

// applyFile overlays values from the TOML config file. The file path
// comes from ADVISOR_ADMIN_CONFIG_PATH or defaults to
// {config_dir}/config.toml; a missing file is not an error.
func applyFile() {
	path := os.Getenv(EnvPrefix + "CONFIG_PATH")
	if path == "" {
		if configDir, ok := values["config_dir"]; ok {
			path = filepath.Join(configDir, "config"+FileExtTOML)
			if _, err := os.Stat(path); err != nil {
				return
			}
		}
	}
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		colors.Debug(fmt.Sprintf("unable to read config file %s: %v", path, err))
		return
	}
	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		colors.Warning(fmt.Sprintf("unable to parse config file %s: %v", path, err))
		return
	}
	for k, v := range raw {
		key := strings.ToLower(k)
		converted, ok := coerceConfigValue(v)
		if !ok {
			colors.Warning(fmt.Sprintf("unsupported config value type for %s: %T", key, v))
			continue
		}
		values[key] = converted
	}
}

// coerceConfigValue converts a TOML value to its string form. Supported
// types are string, int, int64, float64, and bool.
func coerceConfigValue(value interface{}) (string, bool) {
	switch typed := value.(type) {
	case string:
		return typed, true
	case int:
		return strconv.Itoa(typed), true
	case int64:
		return strconv.FormatInt(typed, 10), true
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(typed), true
	default:
		return "", false
	}
}

// applyEnv overlays ADVISOR_ADMIN_* environment variables.
func applyEnv() {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, EnvPrefix) {
			continue
		}
		key, value, ok := strings.Cut(strings.TrimPrefix(env, EnvPrefix), "=")
		if !ok {
			continue
		}
		values[strings.ToLower(key)] = value
	}
}

// validate runs registered validators over the loaded values, replacing
// anything invalid with its default.
func validate() {
	for key, value := range values {
		validator := getValidator(key)
		if validator == nil {
			continue
		}
		defaultValue := defaults[key]
		normalized, err := validator(key, value, defaultValue)
		if err != nil {
			colors.Warning(fmt.Sprintf("validation error for %s: %v, using default: %s", key, err, defaultValue))
			values[key] = defaultValue
			continue
		}
		values[key] = normalized
	}
}

// normalizeBool converts accepted boolean spellings to "true"/"false".
func normalizeBool(val string) string {
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return "true"
	case "0", "false", "no", "off":
		return "false"
	default:
		return val
	}
}

func initValidators() {
	positiveInt := PositiveIntValidator()
	RegisterValidator("request_timeout", positiveInt)
	RegisterValidator("cache_ttl", positiveInt)
	RegisterValidator("logging_max_files", positiveInt)

	RegisterValidator("logging_level", EnumValidator(map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}))

	boolean := BoolValidator()
	for _, key := range []string{
		"fallback_enabled", "history_enabled", "logging_enabled", "debug", "quiet",
	} {
		RegisterValidator(key, boolean)
	}
}

// allowedValues returns a sorted comma-separated list of enum values.
func allowedValues(allowed map[string]bool) string {
	keys := make([]string, 0, len(allowed))
	for k := range allowed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}

func lookup(key string) (string, bool) {
	mu.RLock()
	defer mu.RUnlock()
	val, ok := values[key]
	return val, ok
}

// Get returns a configuration value, or the default when unset.
func Get(key, defaultValue string) string {
	if val, ok := lookup(key); ok {
		return val
	}
	return defaultValue
}

// GetInt returns a configuration value as an int, or the default when
// unset or unparsable.
func GetInt(key string, defaultValue int) int {
	val, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return n
}

// GetInt64 returns a configuration value as an int64, or the default
// when unset or unparsable.
func GetInt64(key string, defaultValue int64) int64 {
	val, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return defaultValue
	}
	return n
}

// GetBool returns a configuration value as a bool, or the default when
// unset or not a recognized boolean spelling.
func GetBool(key string, defaultValue bool) bool {
	val, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	switch normalizeBool(val) {
	case "true":
		return true
	case "false":
		return false
	default:
		return defaultValue
	}
}

// Set overrides a configuration value for the current process. Intended
// for flags and tests.
func Set(key, value string) {
	mu.Lock()
	defer mu.Unlock()
	if values == nil {
		values = make(map[string]string)
		defaults = make(map[string]string)
	}
	values[strings.ToLower(key)] = value
}
