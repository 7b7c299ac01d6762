package model

// FundamentalsSnapshot holds point-in-time fundamental values for one
// ticker. Any field may be absent.
type FundamentalsSnapshot struct {
	PE             Metric
	ForwardPE      Metric
	DividendYield  Metric // fraction, e.g. 0.025 for 2.5%
	Beta           Metric
	TargetPrice    Metric // analyst mean target
	High52w        Metric
	Low52w         Metric
	MarketCap      Metric
	EPS            Metric
	Recommendation string // analyst consensus key: buy, hold, sell; "" if absent
}
