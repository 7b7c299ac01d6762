package model

import "time"

// StockReport gathers everything the email renderer needs for one holding.
type StockReport struct {
	Ticker    string
	Company   string
	Price     float64
	PrevClose float64
	ChangePct float64

	Quantity      float64
	AvgCost       float64
	Value         float64
	PnL           float64
	PnLPct        float64
	CurrentWeight float64
	TargetWeight  float64

	Recommendation     Recommendation
	TechnicalSummary   string
	FundamentalSummary string
	Sentiment          SentimentSummary
	Advisory           string // optional prose from the language-model summarizer
	Articles           []NewsArticle
}

// DigestReport is the full output of one pipeline run, in holdings order.
type DigestReport struct {
	GeneratedAt time.Time
	Summary     PortfolioSummary
	Stocks      []StockReport
	Plan        *RebalancePlan
}
