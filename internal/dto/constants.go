package dto

const (
	MarketTypeFutures = "futures"
	MarketTypeSpot    = "spot"
)

const (
	SideLong  = "LONG"
	SideShort = "SHORT"
)

const (
	Timeframe1Min  = "1m"
	Timeframe5Min  = "5m"
	Timeframe15Min = "15m"
	Timeframe30Min = "30m"
	Timeframe1Hour = "1h"
	Timeframe4Hour = "4h"
	Timeframe1Day  = "1d"
)

// Default taker fees in percent, applied when the caller supplies none.
const (
	DefaultFeePercentFutures = 0.05
	DefaultFeePercentSpot    = 0.1
)

const DefaultInitialBalance = 10000.0
