package indicator

import "github.com/gabomartinez21/invesment-track/internal/model"

// SMA computes the simple moving average of the last period closes.
// Unavailable when fewer than period points exist.
func SMA(closes []float64, period int) model.Metric {
	if period <= 0 || len(closes) < period {
		return model.Metric{}
	}
	sum := 0.0
	for i := len(closes) - period; i < len(closes); i++ {
		sum += closes[i]
	}
	return model.MetricOf(sum / float64(period))
}

// EMA computes the full exponential moving average series with
// smoothing 2/(period+1), seeded from the first close.
func EMA(closes []float64, period int) []float64 {
	if len(closes) == 0 || period <= 0 {
		return nil
	}
	alpha := 2.0 / (float64(period) + 1.0)
	out := make([]float64, len(closes))
	out[0] = closes[0]
	for i := 1; i < len(closes); i++ {
		out[i] = alpha*closes[i] + (1-alpha)*out[i-1]
	}
	return out
}
