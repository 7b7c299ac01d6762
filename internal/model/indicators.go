package model

// IndicatorSet holds all computed technical and fundamental values for
// one ticker at one point in time. It is immutable once produced and
// owned solely by the pipeline run that created it.
type IndicatorSet struct {
	LastClose float64

	SMA20  Metric
	SMA50  Metric
	SMA200 Metric

	RSI14 Metric

	MACD       Metric
	MACDSignal Metric
	MACDHist   Metric
	// MACDCrossedUp / MACDCrossedDown report a signal-line cross on the
	// most recent bar (histogram changed sign).
	MACDCrossedUp   bool
	MACDCrossedDown bool

	Volatility Metric // annualized std of daily log returns

	PE            Metric
	ForwardPE     Metric
	DividendYield Metric
	Beta          Metric
	TargetPrice   Metric
	Upside        Metric // (target - last close) / last close
	High52w       Metric
	Low52w        Metric
}

// HasTechnical reports whether at least one technical indicator could
// be computed from the series.
func (s IndicatorSet) HasTechnical() bool {
	return s.RSI14.Valid || s.MACDHist.Valid || s.SMA20.Valid || s.SMA50.Valid || s.SMA200.Valid || s.Volatility.Valid
}
