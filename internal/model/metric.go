package model

import "fmt"

// Metric is an indicator or fundamental value that may be unavailable,
// e.g. when the price series is shorter than the indicator's window or
// the data provider omitted the field. The zero value is unavailable.
type Metric struct {
	Value float64
	Valid bool
}

// MetricOf wraps a known value.
func MetricOf(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

func (m Metric) String() string {
	if !m.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", m.Value)
}
