package model

import (
	"errors"
	"time"
)

// ErrEmptySeries and ErrUnsortedSeries are the two malformed-series
// conditions. They are fatal for a single ticker's analysis only; the
// run continues for the rest of the portfolio.
var (
	ErrEmptySeries    = errors.New("price series is empty")
	ErrUnsortedSeries = errors.New("price series is not ascending by time")
)

// PricePoint is one daily close observation.
type PricePoint struct {
	Time  time.Time
	Close float64
}

// PriceSeries holds the daily closes for one ticker, ascending by time.
type PriceSeries struct {
	Ticker    string
	Points    []PricePoint
	FetchedAt time.Time
}

// Closes returns the close prices in time order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.Close
	}
	return closes
}

// Validate reports whether the series is usable for analysis: non-empty,
// ascending by time, no duplicate timestamps.
func (s PriceSeries) Validate() error {
	if len(s.Points) == 0 {
		return ErrEmptySeries
	}
	for i := 1; i < len(s.Points); i++ {
		if !s.Points[i].Time.After(s.Points[i-1].Time) {
			return ErrUnsortedSeries
		}
	}
	return nil
}

// Quote is the latest price snapshot for one ticker.
type Quote struct {
	Price     float64
	PrevClose float64
}
