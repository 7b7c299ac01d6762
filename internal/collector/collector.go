package collector

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/gabomartinez21/invesment-track/internal/model"
)

// Snapshot is the per-ticker fetch result. Fields may be partially
// populated: a missing series or fundamentals degrades that ticker's
// analysis, it never aborts the run. The snapshot is read-only once
// handed to the indicator engine.
type Snapshot struct {
	Holding      model.Holding
	Company      string
	Quote        model.Quote
	Series       model.PriceSeries
	Fundamentals *model.FundamentalsSnapshot
	Err          error // quote fetch failure; the ticker has no price
}

// Collector fetches market data for every holding concurrently and
// returns snapshots in the original holdings order, so downstream
// output stays deterministic.
type Collector struct {
	Fetcher     Fetcher
	HistoryDays int
	Concurrency int
}

// NewCollector creates a Collector. historyDays bounds the price
// series length (365 by default, enough for SMA200).
func NewCollector(fetcher Fetcher, historyDays int) *Collector {
	if historyDays <= 0 {
		historyDays = 365
	}
	return &Collector{Fetcher: fetcher, HistoryDays: historyDays, Concurrency: 4}
}

// Collect fetches quote, price history, fundamentals and company name
// for each holding. Results land in a preallocated slice indexed by
// input position; after the join the slice is read-only.
func (c *Collector) Collect(ctx context.Context, holdings []model.Holding) []Snapshot {
	out := make([]Snapshot, len(holdings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Concurrency)

	for i, h := range holdings {
		i, h := i, h
		g.Go(func() error {
			out[i] = c.fetchOne(gctx, h)
			return nil
		})
	}
	// Per-ticker errors are recorded in the snapshots, never returned.
	_ = g.Wait()

	return out
}

func (c *Collector) fetchOne(ctx context.Context, h model.Holding) Snapshot {
	snap := Snapshot{Holding: h, Company: h.Ticker}

	quote, err := c.Fetcher.FetchQuote(ctx, h.Ticker)
	if err != nil {
		log.Printf("[WARN] %s: fetch quote: %v", h.Ticker, err)
		snap.Err = err
	} else {
		snap.Quote = quote
	}

	series, err := c.Fetcher.FetchDailyCloses(ctx, h.Ticker, c.HistoryDays)
	if err != nil {
		log.Printf("[WARN] %s: fetch price history: %v", h.Ticker, err)
	} else {
		snap.Series = series
	}

	fund, err := c.Fetcher.FetchFundamentals(ctx, h.Ticker)
	if err != nil {
		log.Printf("[WARN] %s: fetch fundamentals: %v", h.Ticker, err)
	} else {
		snap.Fundamentals = fund
	}

	if name, err := c.Fetcher.CompanyName(ctx, h.Ticker); err == nil && name != "" {
		snap.Company = name
	}

	return snap
}
