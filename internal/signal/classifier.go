package signal

import (
	"fmt"

	"github.com/gabomartinez21/invesment-track/internal/model"
)

// RSI boundaries. Exactly 30 or 70 is neutral (boundary is exclusive).
const (
	rsiOversold   = 30
	rsiOverbought = 70
)

// upsideThreshold is the analyst-target upside fraction that earns a
// directional point in either direction.
const upsideThreshold = 0.10

// Result is the classifier output for one holding: the action, the
// ordered list of contributing reasons, and whether a strong band+RSI
// rule fired.
type Result struct {
	Action  model.Action
	Reasons []string
	Strong  bool
}

// Classify maps an IndicatorSet plus the holding's configured price
// bands into BUY, SELL or HOLD. The rules form an explicit ordered
// list: the two strong band+RSI rules win outright, otherwise
// directional points are tallied and any mixed or all-zero tally
// resolves to HOLD. All matching reasons are recorded in rule order.
func Classify(ind model.IndicatorSet, holding model.Holding, price float64) Result {
	if !ind.HasTechnical() && !ind.Upside.Valid {
		return Result{Action: model.ActionHold, Reasons: []string{"insufficient data"}}
	}

	rsi := ind.RSI14
	belowBuyBand := holding.BuyBelow > 0 && price > 0 && price <= holding.BuyBelow
	aboveSellBand := holding.SellAbove > 0 && price > 0 && price >= holding.SellAbove

	// Rule 1: price at or below the buy band while oversold.
	if belowBuyBand && rsi.Valid && rsi.Value < rsiOversold {
		return Result{
			Action: model.ActionBuy,
			Strong: true,
			Reasons: []string{
				fmt.Sprintf("price %.2f at or below buy target %.2f", price, holding.BuyBelow),
				fmt.Sprintf("RSI oversold (%.1f)", rsi.Value),
			},
		}
	}

	// Rule 2: price at or above the sell band while overbought.
	if aboveSellBand && rsi.Valid && rsi.Value > rsiOverbought {
		return Result{
			Action: model.ActionSell,
			Strong: true,
			Reasons: []string{
				fmt.Sprintf("price %.2f at or above sell target %.2f", price, holding.SellAbove),
				fmt.Sprintf("RSI overbought (%.1f)", rsi.Value),
			},
		}
	}

	// Rule 3: directional point tally.
	var buyPoints, sellPoints int
	var reasons []string

	if belowBuyBand {
		reasons = append(reasons, fmt.Sprintf("price %.2f at or below buy target %.2f", price, holding.BuyBelow))
	}
	if aboveSellBand {
		reasons = append(reasons, fmt.Sprintf("price %.2f at or above sell target %.2f", price, holding.SellAbove))
	}

	if rsi.Valid {
		if rsi.Value < rsiOversold {
			buyPoints++
			reasons = append(reasons, fmt.Sprintf("RSI oversold (%.1f)", rsi.Value))
		} else if rsi.Value > rsiOverbought {
			sellPoints++
			reasons = append(reasons, fmt.Sprintf("RSI overbought (%.1f)", rsi.Value))
		}
	}

	if ind.MACDHist.Valid {
		if ind.MACDHist.Value > 0 {
			buyPoints++
			reasons = append(reasons, "MACD above signal line (bullish momentum)")
		} else if ind.MACDHist.Value < 0 {
			sellPoints++
			reasons = append(reasons, "MACD below signal line (bearish momentum)")
		}
	}

	if ind.SMA50.Valid && ind.SMA200.Valid && price > 0 &&
		price < ind.SMA50.Value && price > ind.SMA200.Value {
		buyPoints++
		reasons = append(reasons, "dip in uptrend (below SMA50, above SMA200)")
	}

	if ind.Upside.Valid {
		if ind.Upside.Value > upsideThreshold {
			buyPoints++
			reasons = append(reasons, fmt.Sprintf("analyst target upside %+.1f%%", ind.Upside.Value*100))
		} else if ind.Upside.Value < -upsideThreshold {
			sellPoints++
			reasons = append(reasons, fmt.Sprintf("analyst target downside %+.1f%%", ind.Upside.Value*100))
		}
	}

	// Rule 4: unanimous points decide; mixed or all-zero ties to HOLD.
	action := model.ActionHold
	if buyPoints > 0 && sellPoints == 0 {
		action = model.ActionBuy
	} else if sellPoints > 0 && buyPoints == 0 {
		action = model.ActionSell
	}
	if len(reasons) == 0 {
		reasons = []string{"no directional signals"}
	}

	return Result{Action: action, Reasons: reasons}
}
