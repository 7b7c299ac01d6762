package indicator

import "github.com/gabomartinez21/invesment-track/internal/model"

// MACDResult holds the last values of the 12/26/9 MACD computation plus
// signal-line cross flags for the most recent bar.
type MACDResult struct {
	MACD        model.Metric
	Signal      model.Metric
	Hist        model.Metric
	CrossedUp   bool
	CrossedDown bool
}

// MACD computes the 12/26 EMA difference with a 9-period signal line.
// Requires at least 26 closes; unavailable otherwise.
func MACD(closes []float64) MACDResult {
	if len(closes) < 26 {
		return MACDResult{}
	}

	fast := EMA(closes, 12)
	slow := EMA(closes, 26)

	macd := make([]float64, len(closes))
	for i := range closes {
		macd[i] = fast[i] - slow[i]
	}
	signal := EMA(macd, 9)

	last := len(closes) - 1
	hist := macd[last] - signal[last]

	res := MACDResult{
		MACD:   model.MetricOf(macd[last]),
		Signal: model.MetricOf(signal[last]),
		Hist:   model.MetricOf(hist),
	}
	if last > 0 {
		prevHist := macd[last-1] - signal[last-1]
		res.CrossedUp = hist > 0 && prevHist <= 0
		res.CrossedDown = hist < 0 && prevHist >= 0
	}
	return res
}
