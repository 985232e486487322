package dto

import (
	"strings"
	"time"

	"golang-backtest/pkg/utils"
)

// BacktestRequest carries a strategy identifier plus the flat settings map.
// Settings holds both the universal keys (symbol, market_type, timeframe,
// startDate, endDate, initialBalance) and any strategy-specific or
// risk-management knobs.
type BacktestRequest struct {
	StrategyID string                 `json:"strategy_id" validate:"required"`
	Settings   map[string]interface{} `json:"settings" validate:"required"`
}

func (r *BacktestRequest) setting(keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := r.Settings[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func (r *BacktestRequest) Symbol() string {
	return utils.ToString(r.setting("symbol"))
}

func (r *BacktestRequest) MarketType() string {
	mt := strings.ToLower(utils.ToString(r.setting("market_type", "marketType")))
	if mt == "" {
		return MarketTypeFutures
	}
	return mt
}

func (r *BacktestRequest) Timeframe() string {
	tf := utils.ToString(r.setting("timeframe"))
	if tf == "" {
		return Timeframe1Min
	}
	return tf
}

func (r *BacktestRequest) InitialBalance() float64 {
	return utils.FloatOrDefault(r.setting("initialBalance", "initial_balance"), DefaultInitialBalance)
}

// StartMs and EndMs return the requested date range as epoch milliseconds,
// with 0 / max meaning unbounded.
func (r *BacktestRequest) StartMs() int64 {
	return parseTimeMs(r.setting("startDate", "start_date"), 0)
}

func (r *BacktestRequest) EndMs() int64 {
	return parseTimeMs(r.setting("endDate", "end_date"), int64(1)<<62)
}

// parseTimeMs accepts epoch milliseconds, RFC3339, or a plain date string.
func parseTimeMs(v interface{}, def int64) int64 {
	if v == nil {
		return def
	}
	if ms, ok := utils.ToInt64(v); ok {
		return ms
	}
	s := utils.ToString(v)
	if s == "" {
		return def
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli()
		}
	}
	return def
}

// Trade is one closed position in the normalized reporting schema.
// CoinSize is always a base-asset quantity; UsdtSize is the notional value.
type Trade struct {
	EntryTime  int64   `json:"entry_time"`
	EntryPrice float64 `json:"entry_price"`
	ExitTime   int64   `json:"exit_time"`
	ExitPrice  float64 `json:"exit_price"`
	Side       string  `json:"side"`
	Pnl        float64 `json:"pnl"`
	Fee        float64 `json:"fee"`
	CoinSize   float64 `json:"coin_size"`
	UsdtSize   float64 `json:"usdt_size"`
	Duration   float64 `json:"duration"`
	OrderType  string  `json:"order_type"`
	Balance    float64 `json:"balance"`
}

// EquityCurvePoint is one equity observation per processed candle.
type EquityCurvePoint struct {
	Timestamp int64   `json:"timestamp"`
	Balance   float64 `json:"balance"`
	Equity    float64 `json:"equity"`
	Drawdown  float64 `json:"drawdown"`
}

// BacktestResponse is the stable outbound schema. Every field is always
// present and typed regardless of what the strategy returned.
type BacktestResponse struct {
	Trades         []Trade            `json:"trades"`
	EquityCurve    []EquityCurvePoint `json:"equity_curve"`
	Roi            float64            `json:"roi"`
	Mdd            float64            `json:"mdd"`
	WinRate        float64            `json:"win_rate"`
	TotalTrades    int                `json:"total_trades"`
	LongTrades     int                `json:"long_trades"`
	ShortTrades    int                `json:"short_trades"`
	WinningTrades  int                `json:"winning_trades"`
	LosingTrades   int                `json:"losing_trades"`
	MaxProfit      float64            `json:"max_profit"`
	MaxLoss        float64            `json:"max_loss"`
	AvgProfit      float64            `json:"avg_profit"`
	AvgLoss        float64            `json:"avg_loss"`
	AvgDuration    float64            `json:"avg_duration"`
	MaxDuration    float64            `json:"max_duration"`
	TotalFee       float64            `json:"total_fee"`
	FinalBalance   float64            `json:"final_balance"`
	InitialBalance float64            `json:"initial_balance"`
	Symbol         string             `json:"symbol"`
	Timeframe      string             `json:"timeframe"`
}
