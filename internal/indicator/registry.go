package indicator

// Entry binds an indicator implementation to the name strategy code calls it
// by. Names are part of the strategy contract: translated strategies call
// them directly, without any import.
type Entry struct {
	Name string
	Fn   interface{}
}

// Registry lists every indicator made reachable inside the strategy runtime.
func Registry() []Entry {
	return []Entry{
		{Name: "SMA", Fn: Sma},
		{Name: "EMA", Fn: Ema},
		{Name: "WMA", Fn: Wma},
		{Name: "TEMA", Fn: Tema},
		{Name: "RSI", Fn: Rsi},
		{Name: "MACD", Fn: Macd},
		{Name: "BBANDS", Fn: BBands},
		{Name: "ATR", Fn: Atr},
		{Name: "STOCH", Fn: Stoch},
		{Name: "ADX", Fn: Adx},
		{Name: "CCI", Fn: Cci},
		{Name: "MFI", Fn: Mfi},
		{Name: "MOM", Fn: Mom},
		{Name: "ROC", Fn: Roc},
		{Name: "OBV", Fn: Obv},
		{Name: "WILLR", Fn: WillR},
		{Name: "SAR", Fn: Sar},
		{Name: "HIGHEST", Fn: Highest},
		{Name: "LOWEST", Fn: Lowest},
		{Name: "CROSSOVER", Fn: Crossover},
		{Name: "CROSSUNDER", Fn: Crossunder},
	}
}
