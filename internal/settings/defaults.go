package settings

import "golang-backtest/internal/dto"

// Defaults returns the complete table of risk and position-management knobs
// with their documented default values. Every key a translated strategy may
// reference exists here, so after normalization a strategy never observes an
// undefined knob. Keys defaulting to nil are recognized but intentionally
// unset until the caller supplies a value.
func Defaults(marketType string) map[string]interface{} {
	feePercent := dto.DefaultFeePercentFutures
	if marketType == dto.MarketTypeSpot {
		feePercent = dto.DefaultFeePercentSpot
	}

	return map[string]interface{}{
		// Position sizing
		"leverage":         1.0,
		"equityPercent":    100.0,
		"positionSizeMode": "percent",
		"fixedOrderSize":   nil,

		// Stop loss / take profit variants
		"useStopLoss":       false,
		"stopLossPercent":   nil,
		"stopLossPrice":     nil,
		"useTakeProfit":     false,
		"takeProfitPercent": nil,
		"takeProfitPrice":   nil,
		"riskRewardRatio":   nil,

		// Trailing stop / break even
		"useTrailingStop":         false,
		"trailingStopPercent":     nil,
		"trailingStepPercent":     nil,
		"useBreakEven":            false,
		"breakEvenTriggerPercent": nil,
		"breakEvenOffsetPercent":  0.0,

		// Partial close / scaling
		"usePartialClose":     false,
		"partialClosePercent": nil,
		"useScaleIn":          false,
		"scaleInPercent":      nil,
		"scaleInMaxCount":     0,
		"useScaleOut":         false,
		"scaleOutPercent":     nil,

		// Martingale family
		"useMartingale":            false,
		"martingaleMultiplier":     2.0,
		"useAntiMartingale":        false,
		"antiMartingaleMultiplier": 2.0,
		"useRecovery":              false,
		"recoveryMultiplier":       nil,

		// Position count limits
		"maxOpenPositions":  1,
		"maxLongPositions":  nil,
		"maxShortPositions": nil,

		// Direction control
		"allowLong":             true,
		"allowShort":            true,
		"reverseSignals":        false,
		"closeOnOppositeSignal": true,

		// Time filters
		"useTimeFilter":    false,
		"tradingStartHour": 0,
		"tradingEndHour":   23,
		"tradeOnMonday":    true,
		"tradeOnTuesday":   true,
		"tradeOnWednesday": true,
		"tradeOnThursday":  true,
		"tradeOnFriday":    true,
		"tradeOnSaturday":  true,
		"tradeOnSunday":    true,

		// Market condition filters
		"useMarketFilter":      false,
		"marketTrendPeriod":    200,
		"useVolatilityFilter":  false,
		"minVolatilityPercent": nil,
		"maxVolatilityPercent": nil,
		"useSpreadFilter":      false,
		"maxSpreadPercent":     nil,
		"useTrendFilter":       false,
		"trendFilterPeriod":    200,
		"useVolumeFilter":      false,
		"minVolume":            nil,

		// Hedging / grid / pyramiding
		"useHedging":            false,
		"useGridTrading":        false,
		"gridLevels":            5,
		"gridSpacingPercent":    1.0,
		"usePyramiding":         false,
		"pyramidingMaxEntries":  3,
		"pyramidingStepPercent": 1.0,

		// Costs
		"feePercent":      feePercent,
		"slippagePercent": 0.0,

		// Run context
		"marketType":     marketType,
		"initialBalance": dto.DefaultInitialBalance,
	}
}
