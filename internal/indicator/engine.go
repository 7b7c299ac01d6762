package indicator

import (
	"github.com/gabomartinez21/invesment-track/internal/model"
)

// Engine derives an IndicatorSet from a price series and an optional
// fundamentals snapshot. It is a pure function of its inputs: running
// it twice on the same series yields identical values.
type Engine struct {
	RSIPeriod        int
	VolatilityWindow int
}

// NewEngine creates an Engine, applying the 14/30 defaults for
// non-positive window sizes.
func NewEngine(rsiPeriod, volatilityWindow int) *Engine {
	if rsiPeriod <= 0 {
		rsiPeriod = 14
	}
	if volatilityWindow <= 0 {
		volatilityWindow = 30
	}
	return &Engine{RSIPeriod: rsiPeriod, VolatilityWindow: volatilityWindow}
}

// Compute returns the IndicatorSet for one ticker. Indicators whose
// window exceeds the series length come back unavailable; the only
// errors are an empty or unsorted series.
func (e *Engine) Compute(series model.PriceSeries, fund *model.FundamentalsSnapshot) (model.IndicatorSet, error) {
	if err := series.Validate(); err != nil {
		return model.IndicatorSet{}, err
	}

	closes := series.Closes()
	last := closes[len(closes)-1]

	set := model.IndicatorSet{
		LastClose:  last,
		SMA20:      SMA(closes, 20),
		SMA50:      SMA(closes, 50),
		SMA200:     SMA(closes, 200),
		RSI14:      RSI(closes, e.RSIPeriod),
		Volatility: Volatility(closes, e.VolatilityWindow),
	}

	macd := MACD(closes)
	set.MACD = macd.MACD
	set.MACDSignal = macd.Signal
	set.MACDHist = macd.Hist
	set.MACDCrossedUp = macd.CrossedUp
	set.MACDCrossedDown = macd.CrossedDown

	if fund != nil {
		set.PE = fund.PE
		set.ForwardPE = fund.ForwardPE
		set.DividendYield = fund.DividendYield
		set.Beta = fund.Beta
		set.TargetPrice = fund.TargetPrice
		set.High52w = fund.High52w
		set.Low52w = fund.Low52w
		if fund.TargetPrice.Valid && last > 0 {
			set.Upside = model.MetricOf((fund.TargetPrice.Value - last) / last)
		}
	}

	return set, nil
}
