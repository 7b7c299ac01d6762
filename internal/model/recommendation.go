package model

// Action is the per-holding trade recommendation.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// TradeDelta is a signed rebalancing trade attached to a recommendation.
// Positive means buy, negative means sell.
type TradeDelta struct {
	Quantity float64
	Value    float64
}

// Recommendation is the final per-holding output of one pipeline run.
// It is rendered into the digest email and then discarded.
type Recommendation struct {
	Ticker    string
	Action    Action
	Rationale []string
	Delta     *TradeDelta // nil when no rebalancing trade applies
	Conflict  bool        // classification and rebalance direction disagree
}
