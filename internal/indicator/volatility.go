package indicator

import (
	"math"

	"github.com/gabomartinez21/invesment-track/internal/model"
)

// tradingSessionsPerYear is used to annualize daily volatility.
const tradingSessionsPerYear = 252

// Volatility computes the annualized standard deviation of daily log
// returns over the trailing window. Requires window+1 closes.
func Volatility(closes []float64, window int) model.Metric {
	if window <= 1 || len(closes) < window+1 {
		return model.Metric{}
	}

	returns := make([]float64, 0, window)
	for i := len(closes) - window; i < len(closes); i++ {
		if closes[i-1] <= 0 || closes[i] <= 0 {
			return model.Metric{}
		}
		returns = append(returns, math.Log(closes[i]/closes[i-1]))
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns) - 1)

	return model.MetricOf(math.Sqrt(variance) * math.Sqrt(tradingSessionsPerYear))
}
