package dto

// Candle is one OHLCV observation for a fixed time interval.
// Timestamp is epoch milliseconds. A candle series is ordered by
// non-decreasing timestamp and treated as immutable once constructed.
type Candle struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}
