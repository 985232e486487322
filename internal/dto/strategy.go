package dto

// StrategySource is the payload returned by the strategy-translation
// service. JSCode may arrive wrapped in explanatory prose or code fences and
// must be cleaned before use.
type StrategySource struct {
	JSCode string `json:"js_code"`
}
