package model

// RebalanceEntry is the per-holding row of a RebalancePlan. Quantity and
// Value are signed: positive buys, negative sells. A holding within the
// deviation threshold, or whose trade falls below the minimum trade
// value, carries no trade and an explanatory Reason.
type RebalanceEntry struct {
	Ticker        string
	CurrentWeight float64 // percent
	TargetWeight  float64 // percent
	Deviation     float64 // percentage points, current - target
	Quantity      float64
	Value         float64
	HasTrade      bool
	Reason        string
}

// RebalancePlan is the portfolio-level rebalancing output of one run.
// Skipped is set when the portfolio configuration is invalid (e.g.
// target weights do not sum to 100); per-holding analysis still runs.
type RebalancePlan struct {
	TotalValue float64
	Entries    []RebalanceEntry
	Skipped    bool
	SkipReason string
}

// Entry returns the plan entry for a ticker, or nil.
func (p *RebalancePlan) Entry(ticker string) *RebalanceEntry {
	if p == nil {
		return nil
	}
	for i := range p.Entries {
		if p.Entries[i].Ticker == ticker {
			return &p.Entries[i]
		}
	}
	return nil
}
