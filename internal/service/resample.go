package service

import "golang-backtest/internal/dto"

var timeframeMinutes = map[string]int64{
	dto.Timeframe5Min:  5,
	dto.Timeframe15Min: 15,
	dto.Timeframe30Min: 30,
	dto.Timeframe1Hour: 60,
	dto.Timeframe4Hour: 240,
	dto.Timeframe1Day:  1440,
}

// ResampleCandles groups 1-minute candles into fixed epoch-aligned buckets of
// the target timeframe: open from the first candle, close from the last,
// high/low extrema, volume summed. "1m" and unrecognized timeframes pass
// through unchanged. Chronological order is preserved.
func ResampleCandles(candles []dto.Candle, timeframe string) []dto.Candle {
	minutes, ok := timeframeMinutes[timeframe]
	if !ok || len(candles) == 0 {
		return candles
	}
	bucketMs := minutes * 60 * 1000

	var resampled []dto.Candle
	currentBucket := int64(-1)
	for _, candle := range candles {
		bucket := candle.Timestamp - candle.Timestamp%bucketMs
		if bucket != currentBucket {
			resampled = append(resampled, dto.Candle{
				Timestamp: bucket,
				Open:      candle.Open,
				High:      candle.High,
				Low:       candle.Low,
				Close:     candle.Close,
				Volume:    candle.Volume,
			})
			currentBucket = bucket
			continue
		}

		last := &resampled[len(resampled)-1]
		if candle.High > last.High {
			last.High = candle.High
		}
		if candle.Low < last.Low {
			last.Low = candle.Low
		}
		last.Close = candle.Close
		last.Volume += candle.Volume
	}
	return resampled
}

// sliceRange returns the candles whose timestamps fall inside [startMs, endMs].
func sliceRange(candles []dto.Candle, startMs, endMs int64) []dto.Candle {
	var sliced []dto.Candle
	for _, candle := range candles {
		if candle.Timestamp < startMs || candle.Timestamp > endMs {
			continue
		}
		sliced = append(sliced, candle)
	}
	return sliced
}
