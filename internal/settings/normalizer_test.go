package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_FeeDefaults(t *testing.T) {
	tests := []struct {
		name     string
		settings map[string]interface{}
		wantFee  float64
	}{
		{
			name:     "spot defaults to 0.1",
			settings: map[string]interface{}{"market_type": "spot"},
			wantFee:  0.1,
		},
		{
			name:     "futures defaults to 0.05",
			settings: map[string]interface{}{"market_type": "futures"},
			wantFee:  0.05,
		},
		{
			name:     "missing market type defaults to futures fee",
			settings: map[string]interface{}{},
			wantFee:  0.05,
		},
		{
			name:     "explicit fee wins over market default",
			settings: map[string]interface{}{"market_type": "spot", "feePercent": 0.02},
			wantFee:  0.02,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized := Normalize(tt.settings)
			assert.Equal(t, tt.wantFee, normalized["feePercent"])
		})
	}
}

func TestNormalize_EveryKnobPresent(t *testing.T) {
	normalized := Normalize(map[string]interface{}{"market_type": "futures"})

	for key := range Defaults("futures") {
		_, exists := normalized[key]
		assert.Truef(t, exists, "knob %s must exist after normalization", key)
	}
}

func TestNormalize_CallerValuesAndStrategyKeys(t *testing.T) {
	user := map[string]interface{}{
		"leverage":  10.0,
		"rsiPeriod": 14, // strategy-specific, not in the defaults table
	}

	normalized := Normalize(user)

	assert.Equal(t, 10.0, normalized["leverage"])
	assert.Equal(t, 14, normalized["rsiPeriod"])
	assert.Equal(t, 100.0, normalized["equityPercent"], "untouched knobs keep their default")
}

func TestNormalize_NullDoesNotShadowDefault(t *testing.T) {
	normalized := Normalize(map[string]interface{}{"leverage": nil})
	assert.Equal(t, 1.0, normalized["leverage"])
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	user := map[string]interface{}{"market_type": "spot"}
	_ = Normalize(user)

	require.Len(t, user, 1)
}

func TestDefaults_KnobCount(t *testing.T) {
	// The knob table is a contract with translated strategies; shrinking it
	// silently would reintroduce "undefined" observations.
	assert.GreaterOrEqual(t, len(Defaults("futures")), 60)
}
