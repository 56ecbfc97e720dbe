package config

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/advisorlane/advisor-admin/internal/colors"
)

// Validator validates and normalizes one configuration value. It
// returns the normalized value, or an error when the value cannot be
// salvaged and the default should be used.
type Validator func(key, value, defaultValue string) (normalized string, err error)

var (
	validatorsMu sync.RWMutex
	validators   = make(map[string]Validator)
)

// RegisterValidator registers a validator for a configuration key.
// Panics if a validator is already registered for the key.
func RegisterValidator(key string, validator Validator) {
	validatorsMu.Lock()
	defer validatorsMu.Unlock()
	if _, exists := validators[key]; exists {
		panic(fmt.Sprintf("validator already registered for key: %s", key))
	}
	validators[key] = validator
}

func getValidator(key string) Validator {
	validatorsMu.RLock()
	defer validatorsMu.RUnlock()
	return validators[key]
}

// PositiveIntValidator validates that a value is a positive integer.
// Invalid values warn and fall back to the default.
func PositiveIntValidator() Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			colors.Warning(fmt.Sprintf("invalid %s value '%s': must be a positive integer, using default: %s", key, value, defaultValue))
			return defaultValue, nil
		}
		return value, nil
	}
}

// EnumValidator validates that a value is one of the allowed set,
// case-insensitively. Invalid values warn and fall back to the default.
func EnumValidator(allowed map[string]bool) Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		lower := strings.ToLower(value)
		if !allowed[lower] {
			colors.Warning(fmt.Sprintf("invalid %s value '%s': must be one of: %s; using default: %s", key, value, allowedValues(allowed), defaultValue))
			return defaultValue, nil
		}
		return lower, nil
	}
}

// BoolValidator normalizes boolean spellings (1/true/yes/on and their
// negatives) to "true"/"false". Anything else warns and falls back to
// the default.
func BoolValidator() Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		normalized := normalizeBool(value)
		if normalized != "true" && normalized != "false" {
			colors.Warning(fmt.Sprintf("invalid boolean value for %s: '%s', must be one of: 1, true, yes, on, 0, false, no, off; using default: %s", key, value, defaultValue))
			return defaultValue, nil
		}
		return normalized, nil
	}
}
