package rebalance

import (
	"fmt"
	"math"

	"github.com/gabomartinez21/invesment-track/internal/model"
)

// Engine computes the trades needed to move current weights toward
// target weights. A single pass is sufficient: trades are sized
// directly against the target on a static valuation snapshot.
type Engine struct {
	MinTradeValue   float64 // currency units; trades below this are suppressed
	MaxDeviation    float64 // percentage points before a holding is rebalanced
	WeightTolerance float64 // allowed deviation of the target-weight sum from 100
}

// NewEngine creates an Engine with the documented defaults for
// zero-valued parameters (min trade 100, max deviation 5pp,
// tolerance 0.5pp). A negative MinTradeValue is kept as-is and
// reported as invalid configuration by Plan.
func NewEngine(minTradeValue, maxDeviation, weightTolerance float64) *Engine {
	if minTradeValue == 0 {
		minTradeValue = 100
	}
	if maxDeviation == 0 {
		maxDeviation = 5
	}
	if weightTolerance == 0 {
		weightTolerance = 0.5
	}
	return &Engine{
		MinTradeValue:   minTradeValue,
		MaxDeviation:    maxDeviation,
		WeightTolerance: weightTolerance,
	}
}

// Plan computes the rebalancing plan for the full set of holdings.
// Invalid portfolio configuration (target weights not summing to 100
// within tolerance, or a negative minimum trade value) does not fail
// the run: the plan comes back with Skipped set and the reason, and
// per-holding analysis proceeds elsewhere.
func (e *Engine) Plan(holdings []model.Holding, prices map[string]float64) *model.RebalancePlan {
	plan := &model.RebalancePlan{}

	if e.MinTradeValue < 0 {
		plan.Skipped = true
		plan.SkipReason = fmt.Sprintf("invalid configuration: minimum trade value %.2f is negative", e.MinTradeValue)
		return plan
	}

	weightSum := 0.0
	for _, h := range holdings {
		weightSum += h.TargetWeight
	}
	if math.Abs(weightSum-100) > e.WeightTolerance {
		plan.Skipped = true
		plan.SkipReason = fmt.Sprintf("invalid configuration: target weights sum to %.2f%%, expected 100%% ±%.2f", weightSum, e.WeightTolerance)
		return plan
	}

	total := 0.0
	for _, h := range holdings {
		if p := prices[h.Ticker]; p > 0 {
			total += h.Quantity * p
		}
	}
	plan.TotalValue = total
	if total <= 0 {
		plan.Skipped = true
		plan.SkipReason = "portfolio has no priced value"
		return plan
	}

	for _, h := range holdings {
		price := prices[h.Ticker]
		entry := model.RebalanceEntry{
			Ticker:       h.Ticker,
			TargetWeight: h.TargetWeight,
		}

		if price <= 0 {
			entry.Reason = "no price data"
			plan.Entries = append(plan.Entries, entry)
			continue
		}

		value := h.Quantity * price
		entry.CurrentWeight = value / total * 100
		entry.Deviation = entry.CurrentWeight - entry.TargetWeight

		if math.Abs(entry.Deviation) <= e.MaxDeviation {
			entry.Reason = "balanced"
			plan.Entries = append(plan.Entries, entry)
			continue
		}

		targetValue := total * h.TargetWeight / 100
		tradeQty := targetValue/price - h.Quantity
		// Never sell more than is held.
		if tradeQty < -h.Quantity {
			tradeQty = -h.Quantity
		}
		tradeValue := tradeQty * price

		if math.Abs(tradeValue) < e.MinTradeValue {
			entry.Reason = fmt.Sprintf("no action: trade value %.2f below minimum %.2f", math.Abs(tradeValue), e.MinTradeValue)
			plan.Entries = append(plan.Entries, entry)
			continue
		}

		entry.HasTrade = true
		entry.Quantity = tradeQty
		entry.Value = tradeValue
		if tradeQty > 0 {
			entry.Reason = fmt.Sprintf("underweight (%.1f%% vs %.1f%%)", entry.CurrentWeight, entry.TargetWeight)
		} else {
			entry.Reason = fmt.Sprintf("overweight (%.1f%% vs %.1f%%)", entry.CurrentWeight, entry.TargetWeight)
		}
		plan.Entries = append(plan.Entries, entry)
	}

	return plan
}
