package utils

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ToFloat64 coerces loosely-typed values (JSON numbers, interpreter exports,
// numeric strings) into a finite float64. NaN and infinities are rejected so
// reported figures stay finite.
func ToFloat64(v interface{}) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int32:
		f = float64(val)
	case int64:
		f = float64(val)
	case uint:
		f = float64(val)
	case uint64:
		f = float64(val)
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ToInt64 coerces a loosely-typed value into an int64 via ToFloat64.
func ToInt64(v interface{}) (int64, bool) {
	f, ok := ToFloat64(v)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

// ToString returns the string form of v, or "" when v is not a string.
func ToString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// FloatOrDefault coerces v and falls back to def when coercion fails.
func FloatOrDefault(v interface{}, def float64) float64 {
	f, ok := ToFloat64(v)
	if !ok {
		return def
	}
	return f
}

// ToPointer returns a pointer to the given value.
func ToPointer[T any](value T) *T {
	return &value
}

// ContainsString checks if a slice of strings contains a specific string.
func ContainsString(slice []string, str string) bool {
	for _, item := range slice {
		if item == str {
			return true
		}
	}
	return false
}
