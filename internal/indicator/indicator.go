// Package indicator is the pure numeric capability set exposed to strategy
// code. Every function is stateless and deterministic: a sequence of values
// in, a sequence (or pair) of values out, no side effects. Most of the math
// is delegated to go-talib.
package indicator

import (
	"math"

	talib "github.com/markcheno/go-talib"
)

// MacdResult bundles the three MACD series.
type MacdResult struct {
	Macd      []float64 `json:"macd"`
	Signal    []float64 `json:"signal"`
	Histogram []float64 `json:"histogram"`
}

// BandsResult bundles the three Bollinger band series.
type BandsResult struct {
	Upper  []float64 `json:"upper"`
	Middle []float64 `json:"middle"`
	Lower  []float64 `json:"lower"`
}

// StochResult bundles the slow %K and %D series.
type StochResult struct {
	K []float64 `json:"k"`
	D []float64 `json:"d"`
}

func Sma(values []float64, period int) []float64 {
	return talib.Sma(values, period)
}

func Ema(values []float64, period int) []float64 {
	return talib.Ema(values, period)
}

func Wma(values []float64, period int) []float64 {
	return talib.Wma(values, period)
}

func Tema(values []float64, period int) []float64 {
	return talib.Tema(values, period)
}

func Rsi(values []float64, period int) []float64 {
	return talib.Rsi(values, period)
}

func Macd(values []float64, fastPeriod, slowPeriod, signalPeriod int) MacdResult {
	macd, signal, hist := talib.Macd(values, fastPeriod, slowPeriod, signalPeriod)
	return MacdResult{Macd: macd, Signal: signal, Histogram: hist}
}

func BBands(values []float64, period int, devUp, devDown float64) BandsResult {
	upper, middle, lower := talib.BBands(values, period, devUp, devDown, talib.SMA)
	return BandsResult{Upper: upper, Middle: middle, Lower: lower}
}

func Atr(high, low, close []float64, period int) []float64 {
	return talib.Atr(high, low, close, period)
}

func Stoch(high, low, close []float64, fastKPeriod, slowKPeriod, slowDPeriod int) StochResult {
	k, d := talib.Stoch(high, low, close, fastKPeriod, slowKPeriod, talib.SMA, slowDPeriod, talib.SMA)
	return StochResult{K: k, D: d}
}

func Adx(high, low, close []float64, period int) []float64 {
	return talib.Adx(high, low, close, period)
}

func Cci(high, low, close []float64, period int) []float64 {
	return talib.Cci(high, low, close, period)
}

func Mfi(high, low, close, volume []float64, period int) []float64 {
	return talib.Mfi(high, low, close, volume, period)
}

func Mom(values []float64, period int) []float64 {
	return talib.Mom(values, period)
}

func Roc(values []float64, period int) []float64 {
	return talib.Roc(values, period)
}

func Obv(values, volume []float64) []float64 {
	return talib.Obv(values, volume)
}

func WillR(high, low, close []float64, period int) []float64 {
	return talib.WillR(high, low, close, period)
}

func Sar(high, low []float64, acceleration, maximum float64) []float64 {
	return talib.Sar(high, low, acceleration, maximum)
}

// Highest returns, per index, the highest value over the trailing period.
// Indices with fewer than period values behind them are NaN, matching the
// warm-up convention of the talib series.
func Highest(values []float64, period int) []float64 {
	return rolling(values, period, func(window []float64) float64 {
		max := window[0]
		for _, v := range window[1:] {
			if v > max {
				max = v
			}
		}
		return max
	})
}

// Lowest returns, per index, the lowest value over the trailing period.
func Lowest(values []float64, period int) []float64 {
	return rolling(values, period, func(window []float64) float64 {
		min := window[0]
		for _, v := range window[1:] {
			if v < min {
				min = v
			}
		}
		return min
	})
}

func rolling(values []float64, period int, agg func([]float64) float64) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		if period <= 0 || i < period-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = agg(values[i-period+1 : i+1])
	}
	return out
}

// Crossover reports whether series a crossed above series b at index i.
func Crossover(a, b []float64, i int) bool {
	if i < 1 || i >= len(a) || i >= len(b) {
		return false
	}
	return a[i-1] <= b[i-1] && a[i] > b[i]
}

// Crossunder reports whether series a crossed below series b at index i.
func Crossunder(a, b []float64, i int) bool {
	if i < 1 || i >= len(a) || i >= len(b) {
		return false
	}
	return a[i-1] >= b[i-1] && a[i] < b[i]
}
