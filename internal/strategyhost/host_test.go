package strategyhost

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-backtest/config"
	"golang-backtest/internal/apperrors"
	"golang-backtest/internal/dto"
	"golang-backtest/pkg/logger"
)

func testHost() *Host {
	cfg := &config.Config{}
	cfg.Strategy.MaxCallStackSize = 1024
	cfg.Strategy.SourcePreviewBytes = 80
	return New(cfg, logger.NewNop())
}

func testCandles(count int) []dto.Candle {
	candles := make([]dto.Candle, count)
	for i := range candles {
		candles[i] = dto.Candle{
			Timestamp: int64(i) * 60_000,
			Open:      100,
			High:      101,
			Low:       99,
			Close:     100,
			Volume:    5,
		}
	}
	return candles
}

func TestCompile_MissingEntryPoint(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{name: "empty source", source: ""},
		{name: "unrelated code", source: "function analyze(candles) { return []; }"},
		{name: "marker only in similar name", source: "function runStrategyV2kind() {}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testHost().Compile(tt.source)

			var invalid *apperrors.StrategyInvalidError
			require.ErrorAs(t, err, &invalid)
		})
	}
}

func TestCompile_SyntaxError(t *testing.T) {
	_, err := testHost().Compile("function runStrategy(candles, settings) { return {{; }")

	var invalid *apperrors.StrategyInvalidError
	require.ErrorAs(t, err, &invalid)
}

func TestRun_ReturnsTradesAndReadsSettings(t *testing.T) {
	source := `
function runStrategy(candles, settings) {
	var trades = [];
	if (candles.length > 1) {
		trades.push({
			entry_time: candles[0].timestamp,
			entry_price: candles[0].close,
			exit_time: candles[1].timestamp,
			exit_price: candles[1].close,
			side: "LONG",
			pnl: 0,
			size: 1,
			balance: settings.initialBalance
		});
	}
	return { trades: trades, fee_used: settings.feePercent };
}`
	strategy, err := testHost().Compile(source)
	require.NoError(t, err)

	raw, err := strategy.Run(context.Background(), testCandles(3), map[string]interface{}{
		"initialBalance": 10000.0,
		"feePercent":     0.05,
	})
	require.NoError(t, err)

	trades, ok := raw["trades"].([]interface{})
	require.True(t, ok)
	assert.Len(t, trades, 1)
	assert.EqualValues(t, 0.05, raw["fee_used"])
}

func TestRun_IndicatorsReachableWithoutImport(t *testing.T) {
	source := `
function runStrategy(candles, settings) {
	var closes = [];
	for (var i = 0; i < candles.length; i++) {
		closes.push(candles[i].close);
	}
	var sma = SMA(closes, 2);
	var rsi = RSI(closes, 2);
	return { trades: [], sma_len: sma.length, rsi_len: rsi.length };
}`
	strategy, err := testHost().Compile(source)
	require.NoError(t, err)

	raw, err := strategy.Run(context.Background(), testCandles(5), map[string]interface{}{})
	require.NoError(t, err)

	assert.EqualValues(t, 5, raw["sma_len"])
	assert.EqualValues(t, 5, raw["rsi_len"])
}

func TestRun_ThrowBecomesExecutionError(t *testing.T) {
	source := `
function runStrategy(candles, settings) {
	throw new Error("strategy blew up");
}`
	strategy, err := testHost().Compile(source)
	require.NoError(t, err)

	_, err = strategy.Run(context.Background(), testCandles(2), map[string]interface{}{})

	var execution *apperrors.StrategyExecutionError
	require.ErrorAs(t, err, &execution)
	assert.Contains(t, execution.Message, "strategy blew up")
	assert.NotEmpty(t, execution.SourcePreview)
	assert.LessOrEqual(t, len(execution.SourcePreview), 80+len("..."))
}

func TestRun_MissingTrades(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{
			name:   "object without trades",
			source: `function runStrategy(c, s) { return { equity_curve: [] }; }`,
		},
		{
			name:   "non-object result",
			source: `function runStrategy(c, s) { return 42; }`,
		},
		{
			name:   "entry point is not callable",
			source: `var runStrategy = 7;`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy, err := testHost().Compile(tt.source)
			require.NoError(t, err)

			_, err = strategy.Run(context.Background(), testCandles(2), map[string]interface{}{})

			var invalid *apperrors.StrategyInvalidError
			require.ErrorAs(t, err, &invalid)
		})
	}
}

func TestRun_DeadlineInterruptsHotLoop(t *testing.T) {
	source := `
function runStrategy(candles, settings) {
	while (true) {}
}`
	strategy, err := testHost().Compile(source)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = strategy.Run(ctx, testCandles(2), map[string]interface{}{})

	var execution *apperrors.StrategyExecutionError
	require.ErrorAs(t, err, &execution)
	assert.Contains(t, execution.Message, "deadline")
	assert.Less(t, time.Since(start), 5*time.Second)
}
