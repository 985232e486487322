// Package settings merges user-supplied strategy parameters with the full
// table of defaulted risk and position-management knobs.
package settings

import (
	"strings"

	"golang-backtest/internal/dto"
	"golang-backtest/pkg/utils"
)

// Normalize returns a complete settings map: every recognized knob is present
// with either the caller's value or its default, and every caller-supplied
// key (strategy-specific parameters included) is carried through untouched.
// Values are not range-checked here; out-of-range knobs are the strategy's
// problem. The input map is never mutated.
func Normalize(userSettings map[string]interface{}) map[string]interface{} {
	marketType := marketTypeOf(userSettings)

	normalized := Defaults(marketType)
	for key, value := range userSettings {
		if value == nil {
			// An explicit null must not shadow a documented default.
			if _, known := normalized[key]; known {
				continue
			}
		}
		normalized[key] = value
	}
	normalized["marketType"] = marketType

	return normalized
}

func marketTypeOf(userSettings map[string]interface{}) string {
	for _, key := range []string{"market_type", "marketType"} {
		if mt := strings.ToLower(utils.ToString(userSettings[key])); mt != "" {
			return mt
		}
	}
	return dto.MarketTypeFutures
}
