package signal

import (
	"fmt"
	"strings"

	"github.com/gabomartinez21/invesment-track/internal/model"
)

// TechnicalSummary renders the technical indicators as a short
// human-readable line for the digest email.
func TechnicalSummary(ind model.IndicatorSet, price float64) string {
	var parts []string

	if ind.RSI14.Valid {
		switch {
		case ind.RSI14.Value < rsiOversold:
			parts = append(parts, fmt.Sprintf("RSI oversold (%.1f)", ind.RSI14.Value))
		case ind.RSI14.Value > rsiOverbought:
			parts = append(parts, fmt.Sprintf("RSI overbought (%.1f)", ind.RSI14.Value))
		default:
			parts = append(parts, fmt.Sprintf("RSI neutral (%.1f)", ind.RSI14.Value))
		}
	}

	if ind.MACDHist.Valid {
		if ind.MACDHist.Value > 0 {
			parts = append(parts, "MACD positive")
		} else {
			parts = append(parts, "MACD negative")
		}
	}

	if ind.SMA200.Valid && price > 0 {
		if price > ind.SMA200.Value {
			parts = append(parts, "above SMA200 (bull market)")
		} else {
			parts = append(parts, "below SMA200 (bear market)")
		}
	}

	if ind.Volatility.Valid {
		switch {
		case ind.Volatility.Value > 0.40:
			parts = append(parts, fmt.Sprintf("high volatility (%.0f%%)", ind.Volatility.Value*100))
		case ind.Volatility.Value < 0.20:
			parts = append(parts, fmt.Sprintf("low volatility (%.0f%%)", ind.Volatility.Value*100))
		}
	}

	if len(parts) == 0 {
		return "no technical signals"
	}
	return strings.Join(parts, " | ")
}

// FundamentalSummary renders the fundamental ratios as a short line.
func FundamentalSummary(ind model.IndicatorSet) string {
	var parts []string

	if ind.PE.Valid {
		switch {
		case ind.PE.Value < 15:
			parts = append(parts, fmt.Sprintf("low P/E (%.1f)", ind.PE.Value))
		case ind.PE.Value > 30:
			parts = append(parts, fmt.Sprintf("high P/E (%.1f)", ind.PE.Value))
		default:
			parts = append(parts, fmt.Sprintf("P/E %.1f", ind.PE.Value))
		}
	}

	if ind.DividendYield.Valid && ind.DividendYield.Value > 0.02 {
		parts = append(parts, fmt.Sprintf("dividend %.2f%%", ind.DividendYield.Value*100))
	}

	if ind.TargetPrice.Valid && ind.Upside.Valid {
		parts = append(parts, fmt.Sprintf("target %.2f (%+.1f%%)", ind.TargetPrice.Value, ind.Upside.Value*100))
	}

	if ind.Beta.Valid {
		if ind.Beta.Value > 1.5 {
			parts = append(parts, fmt.Sprintf("high beta (%.2f)", ind.Beta.Value))
		} else if ind.Beta.Value < 0.5 {
			parts = append(parts, fmt.Sprintf("low beta (%.2f)", ind.Beta.Value))
		}
	}

	if len(parts) == 0 {
		return "no fundamental data"
	}
	return strings.Join(parts, " | ")
}
