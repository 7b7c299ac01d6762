package model

// Holding is one position from the portfolio sheet after normalization.
type Holding struct {
	Ticker       string
	Quantity     float64
	AvgCost      float64
	BuyBelow     float64 // buy band; 0 means not configured
	SellAbove    float64 // sell band; 0 means not configured
	TargetWeight float64 // desired share of total portfolio value, percent
	Notes        string
	Active       bool
}

// PortfolioSummary is the portfolio-level header of a digest.
type PortfolioSummary struct {
	TotalValue   float64
	Cash         float64
	NetWorth     float64
	DayChange    float64
	DayChangePct float64
}
