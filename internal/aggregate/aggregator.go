package aggregate

import (
	"fmt"

	"github.com/gabomartinez21/invesment-track/internal/model"
	"github.com/gabomartinez21/invesment-track/internal/signal"
)

// Input pairs one holding's classification with its rebalance plan
// entry and optional advisory sentiment.
type Input struct {
	Ticker    string
	Signal    signal.Result
	Entry     *model.RebalanceEntry
	Sentiment *model.SentimentSummary
}

// Merge combines classification and rebalancing into one final
// Recommendation per ticker, preserving input order. When a rebalance
// trade exists its direction is the executable action; if the
// indicator classification disagrees, both sides are surfaced verbatim
// in the rationale with an explicit conflict marker rather than one
// silently winning. Sentiment is advisory: it is appended to the
// rationale and never changes the action.
func Merge(inputs []Input) []model.Recommendation {
	recs := make([]model.Recommendation, 0, len(inputs))
	for _, in := range inputs {
		recs = append(recs, merge(in))
	}
	return recs
}

func merge(in Input) model.Recommendation {
	rec := model.Recommendation{
		Ticker:    in.Ticker,
		Action:    in.Signal.Action,
		Rationale: append([]string(nil), in.Signal.Reasons...),
	}

	if in.Entry != nil {
		if in.Entry.HasTrade {
			direction := model.ActionBuy
			verb := "buy"
			if in.Entry.Quantity < 0 {
				direction = model.ActionSell
				verb = "sell"
			}
			rec.Rationale = append(rec.Rationale, fmt.Sprintf(
				"rebalance: %s %.2f shares (value %.2f): %s",
				verb, abs(in.Entry.Quantity), abs(in.Entry.Value), in.Entry.Reason))
			rec.Delta = &model.TradeDelta{
				Quantity: in.Entry.Quantity,
				Value:    in.Entry.Value,
			}

			if in.Signal.Action != model.ActionHold && in.Signal.Action != direction {
				rec.Conflict = true
				rec.Rationale = append(rec.Rationale, fmt.Sprintf(
					"conflicting signal: indicators say %s, rebalance says %s",
					in.Signal.Action, direction))
			}
			rec.Action = direction
		} else if in.Entry.Reason != "" && in.Entry.Reason != "balanced" {
			rec.Rationale = append(rec.Rationale, "rebalance: "+in.Entry.Reason)
		}
	}

	if in.Sentiment != nil && in.Sentiment.Label != "" {
		rec.Rationale = append(rec.Rationale, fmt.Sprintf(
			"news sentiment: %s (confidence %.2f)", in.Sentiment.Label, in.Sentiment.Confidence))
	}

	return rec
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
