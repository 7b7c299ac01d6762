package indicator

import "github.com/gabomartinez21/invesment-track/internal/model"

// RSI computes the Wilder-smoothed Relative Strength Index over the
// given period. Requires at least period+1 closes; unavailable otherwise.
func RSI(closes []float64, period int) model.Metric {
	if period <= 0 || len(closes) < period+1 {
		return model.Metric{}
	}

	// Initial average gain/loss over the first `period` changes
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change // make positive
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	// Wilder smoothing for remaining closes
	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return model.MetricOf(100.0)
	}
	rs := avgGain / avgLoss
	return model.MetricOf(100.0 - 100.0/(1.0+rs))
}
