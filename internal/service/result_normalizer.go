package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"golang-backtest/internal/dto"
	"golang-backtest/pkg/utils"
)

// NormalizeResult reshapes the raw strategy output into the stable reporting
// schema. Whatever the strategy returned, every response field comes out
// present, typed, and finite: numeric coercion failures degrade to zero (or
// to the initial balance for final_balance) rather than erroring.
// Normalizing an already-normalized result is a no-op.
func NormalizeResult(raw map[string]interface{}, symbol, timeframe string, initialBalance float64) *dto.BacktestResponse {
	response := &dto.BacktestResponse{
		Trades:         normalizeTrades(raw["trades"]),
		EquityCurve:    normalizeEquityCurve(raw["equity_curve"]),
		Roi:            utils.FloatOrDefault(raw["roi"], 0),
		Mdd:            utils.FloatOrDefault(raw["mdd"], 0),
		WinRate:        utils.FloatOrDefault(raw["win_rate"], 0),
		MaxProfit:      utils.FloatOrDefault(raw["max_profit"], 0),
		MaxLoss:        utils.FloatOrDefault(raw["max_loss"], 0),
		AvgProfit:      utils.FloatOrDefault(raw["avg_profit"], 0),
		AvgLoss:        utils.FloatOrDefault(raw["avg_loss"], 0),
		TotalFee:       utils.FloatOrDefault(raw["total_fee"], 0),
		FinalBalance:   utils.FloatOrDefault(raw["final_balance"], initialBalance),
		InitialBalance: initialBalance,
		Symbol:         symbol,
		Timeframe:      timeframe,
	}

	// Trade counts and durations are derived from the filtered trade list so
	// they stay consistent with what is actually reported.
	var totalDuration float64
	for _, trade := range response.Trades {
		response.TotalTrades++
		switch trade.Side {
		case dto.SideLong:
			response.LongTrades++
		case dto.SideShort:
			response.ShortTrades++
		}
		if trade.Pnl > 0 {
			response.WinningTrades++
		} else {
			response.LosingTrades++
		}
		totalDuration += trade.Duration
		if trade.Duration > response.MaxDuration {
			response.MaxDuration = trade.Duration
		}
	}
	if response.TotalTrades > 0 {
		response.AvgDuration = totalDuration / float64(response.TotalTrades)
	}

	return response
}

func normalizeTrades(raw interface{}) []dto.Trade {
	rawTrades, _ := raw.([]interface{})
	trades := make([]dto.Trade, 0, len(rawTrades))

	for _, item := range rawTrades {
		rawTrade, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		// Trades with missing or non-positive balance are post-bankruptcy
		// noise and are dropped.
		balance, hasBalance := utils.ToFloat64(rawTrade["balance"])
		if !hasBalance || balance <= 0 {
			continue
		}

		trades = append(trades, normalizeTrade(rawTrade, balance))
	}
	return trades
}

func normalizeTrade(rawTrade map[string]interface{}, balance float64) dto.Trade {
	trade := dto.Trade{
		EntryPrice: utils.FloatOrDefault(rawTrade["entry_price"], 0),
		ExitPrice:  utils.FloatOrDefault(rawTrade["exit_price"], 0),
		Side:       strings.ToUpper(utils.ToString(rawTrade["side"])),
		Pnl:        utils.FloatOrDefault(rawTrade["pnl"], 0),
		Fee:        utils.FloatOrDefault(rawTrade["fee"], 0),
		Duration:   utils.FloatOrDefault(rawTrade["duration"], 0),
		OrderType:  utils.ToString(rawTrade["order_type"]),
		Balance:    balance,
	}
	trade.EntryTime, _ = utils.ToInt64(rawTrade["entry_time"])
	trade.ExitTime, _ = utils.ToInt64(rawTrade["exit_time"])

	// size is a base-asset quantity by contract, never a notional amount.
	// coin_size is accepted as a fallback so re-normalization is stable.
	size, hasSize := utils.ToFloat64(rawTrade["size"])
	if !hasSize {
		size, hasSize = utils.ToFloat64(rawTrade["coin_size"])
	}
	entryPrice, hasEntryPrice := utils.ToFloat64(rawTrade["entry_price"])

	if hasSize {
		trade.CoinSize = roundTo(size, 8)
	}
	if hasSize && hasEntryPrice {
		trade.UsdtSize = roundTo(trade.CoinSize*entryPrice, 2)
	}

	trade.OrderType = normalizeOrderType(trade.OrderType, trade.Side)
	return trade
}

// normalizeOrderType prefixes the order type with the trade direction unless
// it already mentions one.
func normalizeOrderType(orderType, side string) string {
	if side == "" {
		return orderType
	}

	upper := strings.ToUpper(orderType)
	if strings.Contains(upper, "BUY") || strings.Contains(upper, "SELL") {
		return orderType
	}

	prefix := "BUY"
	if side == dto.SideShort {
		prefix = "SELL"
	}
	if orderType == "" {
		return prefix
	}
	return prefix + " " + orderType
}

func normalizeEquityCurve(raw interface{}) []dto.EquityCurvePoint {
	rawPoints, _ := raw.([]interface{})
	points := make([]dto.EquityCurvePoint, 0, len(rawPoints))

	for _, item := range rawPoints {
		rawPoint, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		point := dto.EquityCurvePoint{
			Balance:  utils.FloatOrDefault(rawPoint["balance"], 0),
			Equity:   utils.FloatOrDefault(rawPoint["equity"], 0),
			Drawdown: utils.FloatOrDefault(rawPoint["drawdown"], 0),
		}
		point.Timestamp, _ = utils.ToInt64(rawPoint["timestamp"])
		points = append(points, point)
	}
	return points
}

func roundTo(value float64, places int32) float64 {
	rounded, _ := decimal.NewFromFloat(value).Round(places).Float64()
	return rounded
}
