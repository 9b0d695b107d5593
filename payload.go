package main

import (
	"fmt"
	"strconv"
)

// This file is the typed-access layer over the raw API payloads. OpenWeatherMap
// responses are decoded into a generic map[string]any tree and every read goes
// through one of these helpers. The governing rule: an absent or null optional
// leaf is fine, a present but uncoercible leaf is fatal.

// coerceFloat converts a raw JSON leaf to a float64. encoding/json delivers
// numbers as float64; numeric strings are accepted as well.
func coerceFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidValue, value)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrInvalidValue, value)
	}
}

// coerceInt converts a raw JSON leaf to an int. Fractional values are
// truncated; strings must parse as integers.
func coerceInt(value any) (int, error) {
	switch v := value.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case string:
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidValue, value)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrInvalidValue, value)
	}
}

// requiredFloat reads a mandatory numeric field from a block.
func requiredFloat(block map[string]any, key string) (float64, error) {
	value, ok := block[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingField, key)
	}
	f, err := coerceFloat(value)
	if err != nil {
		return 0, fmt.Errorf("поле %q: %w", key, err)
	}
	return f, nil
}

// requiredInt reads a mandatory integer field from a block.
func requiredInt(block map[string]any, key string) (int, error) {
	value, ok := block[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingField, key)
	}
	i, err := coerceInt(value)
	if err != nil {
		return 0, fmt.Errorf("поле %q: %w", key, err)
	}
	return i, nil
}

// optionalFloat returns nil for an absent/null leaf and an error for a
// malformed one.
func optionalFloat(value any) (*float64, error) {
	if value == nil {
		return nil, nil
	}
	f, err := coerceFloat(value)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// optionalInt returns nil for an absent/null leaf and an error for a
// malformed one.
func optionalInt(value any) (*int, error) {
	if value == nil {
		return nil, nil
	}
	i, err := coerceInt(value)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// floatWithDefault substitutes fallback for an absent leaf. A malformed leaf
// still fails.
func floatWithDefault(value any, fallback float64) (float64, error) {
	f, err := optionalFloat(value)
	if err != nil {
		return 0, err
	}
	if f == nil {
		return fallback, nil
	}
	return *f, nil
}

// intWithDefault substitutes fallback for an absent leaf. A malformed leaf
// still fails.
func intWithDefault(value any, fallback int) (int, error) {
	i, err := optionalInt(value)
	if err != nil {
		return 0, err
	}
	if i == nil {
		return fallback, nil
	}
	return *i, nil
}

// safeGet reads a key out of a value that may not be a map at all. A
// mis-shaped container yields fallback, never an error; only leaf coercion
// can fail.
func safeGet(block any, key string, fallback any) any {
	m, ok := block.(map[string]any)
	if !ok {
		return fallback
	}
	value, ok := m[key]
	if !ok {
		return fallback
	}
	return value
}

// subMap returns a nested object or nil when the key is absent or the value
// is not an object.
func subMap(block map[string]any, key string) map[string]any {
	m, _ := block[key].(map[string]any)
	return m
}

// subList returns a nested array or nil when the key is absent or the value
// is not an array.
func subList(block map[string]any, key string) []any {
	l, _ := block[key].([]any)
	return l
}
