package digest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gabomartinez21/invesment-track/internal/advisor"
	"github.com/gabomartinez21/invesment-track/internal/aggregate"
	"github.com/gabomartinez21/invesment-track/internal/collector"
	"github.com/gabomartinez21/invesment-track/internal/indicator"
	"github.com/gabomartinez21/invesment-track/internal/model"
	"github.com/gabomartinez21/invesment-track/internal/news"
	"github.com/gabomartinez21/invesment-track/internal/rebalance"
	"github.com/gabomartinez21/invesment-track/internal/sheet"
	"github.com/gabomartinez21/invesment-track/internal/signal"
)

// Pipeline runs one full digest over a static snapshot of holdings and
// market data: load sheet, fetch data, compute indicators, classify,
// rebalance, aggregate, enrich with news and prose. Partial failure is
// the default posture: one ticker's bad data never blocks the rest.
type Pipeline struct {
	SheetSource string
	SheetClient *http.Client

	Collector  *collector.Collector
	Indicators *indicator.Engine
	Rebalancer *rebalance.Engine

	RebalanceEnabled bool

	News    *news.Aggregator // optional
	Advisor *advisor.Advisor // optional
}

// Run executes the pipeline once and returns the report, in holdings
// order. It fails only when the holdings sheet itself cannot be loaded.
func (p *Pipeline) Run(ctx context.Context) (*model.DigestReport, error) {
	holdings, cash, err := sheet.Load(ctx, p.SheetClient, p.SheetSource)
	if err != nil {
		return nil, fmt.Errorf("load holdings: %w", err)
	}
	if len(holdings) == 0 {
		return nil, fmt.Errorf("no active holdings in sheet")
	}
	log.Printf("[INFO] loaded %d holdings, cash %.2f", len(holdings), cash)

	snaps := p.Collector.Collect(ctx, holdings)

	// Valuation snapshot. A missing quote falls back to the last close
	// of the series; tickers with neither stay unpriced.
	prices := make(map[string]float64, len(snaps))
	var total, prevTotal float64
	for _, s := range snaps {
		price := s.Quote.Price
		if price == 0 && len(s.Series.Points) > 0 {
			price = s.Series.Points[len(s.Series.Points)-1].Close
		}
		prices[s.Holding.Ticker] = price
		if price > 0 {
			total += s.Holding.Quantity * price
		}
		if s.Quote.PrevClose > 0 {
			prevTotal += s.Holding.Quantity * s.Quote.PrevClose
		}
	}

	// Indicators and classification, per ticker.
	sets := make([]model.IndicatorSet, len(snaps))
	results := make([]signal.Result, len(snaps))
	for i, s := range snaps {
		set, err := p.Indicators.Compute(s.Series, s.Fundamentals)
		if err != nil {
			reason := "insufficient data"
			if errors.Is(err, model.ErrUnsortedSeries) {
				reason = "no data: " + err.Error()
			} else if errors.Is(err, model.ErrEmptySeries) {
				reason = "no data: " + err.Error()
			}
			log.Printf("[WARN] %s: indicators: %v", s.Holding.Ticker, err)
			results[i] = signal.Result{Action: model.ActionHold, Reasons: []string{reason}}
			continue
		}
		sets[i] = set
		results[i] = signal.Classify(set, s.Holding, prices[s.Holding.Ticker])
	}

	// Rebalancing plan for the whole portfolio.
	var plan *model.RebalancePlan
	if p.RebalanceEnabled && p.Rebalancer != nil {
		plan = p.Rebalancer.Plan(holdings, prices)
		if plan.Skipped {
			log.Printf("[WARN] rebalancing skipped: %s", plan.SkipReason)
		}
	}

	// News and sentiment, per ticker (optional).
	articles := make([][]model.NewsArticle, len(snaps))
	sentiments := make([]*model.SentimentSummary, len(snaps))
	if p.News != nil {
		for i, s := range snaps {
			articles[i] = p.News.FetchForTicker(ctx, s.Holding.Ticker, s.Company)
			sum := news.Summarize(articles[i])
			sentiments[i] = &sum
		}
	}

	// Merge classification with the plan, preserving input order.
	inputs := make([]aggregate.Input, len(snaps))
	for i, s := range snaps {
		inputs[i] = aggregate.Input{
			Ticker:    s.Holding.Ticker,
			Signal:    results[i],
			Entry:     plan.Entry(s.Holding.Ticker),
			Sentiment: sentiments[i],
		}
	}
	recs := aggregate.Merge(inputs)

	report := &model.DigestReport{
		GeneratedAt: time.Now(),
		Plan:        plan,
	}
	report.Summary = model.PortfolioSummary{
		TotalValue: total,
		Cash:       cash,
		NetWorth:   total + cash,
	}
	if prevTotal > 0 {
		report.Summary.DayChange = total - prevTotal
		report.Summary.DayChangePct = (total - prevTotal) / prevTotal * 100
	}

	for i, s := range snaps {
		report.Stocks = append(report.Stocks, p.buildStockReport(ctx, s, prices[s.Holding.Ticker], total, sets[i], recs[i], articles[i], sentiments[i]))
	}

	return report, nil
}

func (p *Pipeline) buildStockReport(ctx context.Context, snap collector.Snapshot, price, total float64,
	set model.IndicatorSet, rec model.Recommendation,
	articles []model.NewsArticle, sentiment *model.SentimentSummary) model.StockReport {

	h := snap.Holding
	st := model.StockReport{
		Ticker:         h.Ticker,
		Company:        snap.Company,
		Price:          price,
		PrevClose:      snap.Quote.PrevClose,
		Quantity:       h.Quantity,
		AvgCost:        h.AvgCost,
		TargetWeight:   h.TargetWeight,
		Recommendation: rec,
		Articles:       articles,
	}
	if sentiment != nil {
		st.Sentiment = *sentiment
	}

	if price > 0 && st.PrevClose > 0 {
		st.ChangePct = (price - st.PrevClose) / st.PrevClose * 100
	}
	if h.Quantity > 0 && price > 0 {
		st.Value = h.Quantity * price
		if h.AvgCost > 0 {
			cost := h.Quantity * h.AvgCost
			st.PnL = st.Value - cost
			st.PnLPct = st.PnL / cost * 100
		}
		if total > 0 {
			st.CurrentWeight = st.Value / total * 100
		}
	}

	if set.HasTechnical() {
		st.TechnicalSummary = signal.TechnicalSummary(set, price)
		st.FundamentalSummary = signal.FundamentalSummary(set)
	}

	if p.Advisor != nil && price > 0 {
		analysis, err := p.Advisor.Analyze(ctx, advisor.Request{
			Ticker:     h.Ticker,
			Company:    snap.Company,
			Price:      price,
			PrevClose:  st.PrevClose,
			Holding:    h,
			Indicators: set,
			Articles:   articles,
		})
		if err != nil {
			log.Printf("[WARN] %s: advisor: %v", h.Ticker, err)
		} else {
			st.Advisory = analysis.FullText
		}
	}

	return st
}
