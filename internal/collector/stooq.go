package collector

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gabomartinez21/invesment-track/internal/model"
)

// StooqFetcher implements Fetcher using the Stooq daily CSV endpoint.
// It serves as a fallback provider: it carries no fundamentals, so
// fundamental-derived signals degrade when it is the active source.
type StooqFetcher struct {
	Client *http.Client
}

// NewStooqFetcher creates a new Stooq fetcher with optional proxy support.
func NewStooqFetcher(proxyURL string) *StooqFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &StooqFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *StooqFetcher) Name() string { return "stooq" }

// stooqSymbol maps a plain US ticker to Stooq's convention (aapl.us).
// Tickers that already carry a market suffix pass through unchanged.
func stooqSymbol(ticker string) string {
	s := strings.ToLower(ticker)
	if strings.Contains(s, ".") {
		return s
	}
	return s + ".us"
}

func (f *StooqFetcher) fetchCSV(ctx context.Context, ticker string) ([]model.PricePoint, error) {
	u := fmt.Sprintf("https://stooq.com/q/d/l/?s=%s&i=d", url.QueryEscape(stooqSymbol(ticker)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stooq fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stooq: status %d", resp.StatusCode)
	}

	cr := csv.NewReader(resp.Body)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("stooq decode: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("stooq: no data for %s", ticker)
	}

	// Header: Date,Open,High,Low,Close,Volume
	points := make([]model.PricePoint, 0, len(records)-1)
	for _, row := range records[1:] {
		if len(row) < 5 {
			continue
		}
		day, err := time.Parse("2006-01-02", row[0])
		if err != nil {
			continue
		}
		close, err := strconv.ParseFloat(row[4], 64)
		if err != nil || close <= 0 {
			continue
		}
		points = append(points, model.PricePoint{Time: day, Close: close})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("stooq: no usable rows for %s", ticker)
	}
	return points, nil
}

func (f *StooqFetcher) FetchQuote(ctx context.Context, ticker string) (model.Quote, error) {
	points, err := f.fetchCSV(ctx, ticker)
	if err != nil {
		return model.Quote{}, err
	}
	q := model.Quote{Price: points[len(points)-1].Close}
	if len(points) > 1 {
		q.PrevClose = points[len(points)-2].Close
	}
	return q, nil
}

func (f *StooqFetcher) FetchDailyCloses(ctx context.Context, ticker string, days int) (model.PriceSeries, error) {
	points, err := f.fetchCSV(ctx, ticker)
	if err != nil {
		return model.PriceSeries{}, err
	}
	if len(points) > days {
		points = points[len(points)-days:]
	}
	return model.PriceSeries{Ticker: ticker, Points: points, FetchedAt: time.Now()}, nil
}

// FetchFundamentals returns no data: Stooq has no fundamentals endpoint.
func (f *StooqFetcher) FetchFundamentals(_ context.Context, _ string) (*model.FundamentalsSnapshot, error) {
	return nil, nil
}

func (f *StooqFetcher) CompanyName(_ context.Context, ticker string) (string, error) {
	return ticker, nil
}
