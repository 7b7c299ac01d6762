package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/gabomartinez21/invesment-track/internal/model"
)

// YahooFetcher implements Fetcher using the Yahoo Finance public API.
type YahooFetcher struct {
	Client *http.Client
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy support.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) get(ctx context.Context, u string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("yahoo decode: %w", err)
	}
	return nil
}

// yahooQuote is the response structure from the v7 quote API.
type yahooQuote struct {
	QuoteResponse struct {
		Result []struct {
			RegularMarketPrice         *float64 `json:"regularMarketPrice"`
			RegularMarketPreviousClose *float64 `json:"regularMarketPreviousClose"`
			ShortName                  string   `json:"shortName"`
			LongName                   string   `json:"longName"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteResponse"`
}

func (f *YahooFetcher) quote(ctx context.Context, ticker string) (*yahooQuote, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v7/finance/quote?symbols=%s", url.QueryEscape(ticker))
	var q yahooQuote
	if err := f.get(ctx, u, &q); err != nil {
		return nil, err
	}
	if q.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", q.QuoteResponse.Error.Description)
	}
	if len(q.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no quote for %s", ticker)
	}
	return &q, nil
}

func (f *YahooFetcher) FetchQuote(ctx context.Context, ticker string) (model.Quote, error) {
	q, err := f.quote(ctx, ticker)
	if err != nil {
		return model.Quote{}, err
	}
	res := q.QuoteResponse.Result[0]
	var out model.Quote
	if res.RegularMarketPrice != nil {
		out.Price = *res.RegularMarketPrice
	}
	if res.RegularMarketPreviousClose != nil {
		out.PrevClose = *res.RegularMarketPreviousClose
	}
	if out.Price == 0 {
		return model.Quote{}, fmt.Errorf("yahoo: no price for %s", ticker)
	}
	return out, nil
}

func (f *YahooFetcher) CompanyName(ctx context.Context, ticker string) (string, error) {
	q, err := f.quote(ctx, ticker)
	if err != nil {
		return "", err
	}
	res := q.QuoteResponse.Result[0]
	if res.LongName != "" {
		return res.LongName, nil
	}
	if res.ShortName != "" {
		return res.ShortName, nil
	}
	return ticker, nil
}

// yahooChart is the response structure from the v8 chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (f *YahooFetcher) FetchDailyCloses(ctx context.Context, ticker string, days int) (model.PriceSeries, error) {
	rng := "2y"
	switch {
	case days <= 30:
		rng = "1mo"
	case days <= 90:
		rng = "3mo"
	case days <= 180:
		rng = "6mo"
	case days <= 365:
		rng = "1y"
	}
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=%s",
		url.PathEscape(ticker), rng)

	var chart yahooChart
	if err := f.get(ctx, u, &chart); err != nil {
		return model.PriceSeries{}, err
	}
	if chart.Chart.Error != nil {
		return model.PriceSeries{}, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return model.PriceSeries{}, fmt.Errorf("yahoo: no chart data for %s", ticker)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return model.PriceSeries{}, fmt.Errorf("yahoo: no quote indicators for %s", ticker)
	}
	closes := result.Indicators.Quote[0].Close

	points := make([]model.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil || *closes[i] == 0 {
			continue // skip null bars (holidays etc.)
		}
		points = append(points, model.PricePoint{Time: time.Unix(ts, 0), Close: *closes[i]})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })

	if len(points) > days {
		points = points[len(points)-days:]
	}
	return model.PriceSeries{Ticker: ticker, Points: points, FetchedAt: time.Now()}, nil
}

// rawValue is Yahoo's {raw, fmt} wrapper for numeric fields.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

func (v rawValue) metric() model.Metric {
	if v.Raw == nil {
		return model.Metric{}
	}
	return model.MetricOf(*v.Raw)
}

// yahooSummary is the response structure from the v10 quoteSummary API.
type yahooSummary struct {
	QuoteSummary struct {
		Result []struct {
			SummaryDetail struct {
				TrailingPE       rawValue `json:"trailingPE"`
				DividendYield    rawValue `json:"dividendYield"`
				Beta             rawValue `json:"beta"`
				FiftyTwoWeekHigh rawValue `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow  rawValue `json:"fiftyTwoWeekLow"`
				MarketCap        rawValue `json:"marketCap"`
			} `json:"summaryDetail"`
			FinancialData struct {
				TargetMeanPrice   rawValue `json:"targetMeanPrice"`
				RecommendationKey string   `json:"recommendationKey"`
			} `json:"financialData"`
			DefaultKeyStatistics struct {
				ForwardPE   rawValue `json:"forwardPE"`
				TrailingEps rawValue `json:"trailingEps"`
			} `json:"defaultKeyStatistics"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

func (f *YahooFetcher) FetchFundamentals(ctx context.Context, ticker string) (*model.FundamentalsSnapshot, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v10/finance/quoteSummary/%s?modules=summaryDetail,financialData,defaultKeyStatistics",
		url.PathEscape(ticker))

	var sum yahooSummary
	if err := f.get(ctx, u, &sum); err != nil {
		return nil, err
	}
	if sum.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", sum.QuoteSummary.Error.Description)
	}
	if len(sum.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no fundamentals for %s", ticker)
	}

	res := sum.QuoteSummary.Result[0]
	return &model.FundamentalsSnapshot{
		PE:             res.SummaryDetail.TrailingPE.metric(),
		ForwardPE:      res.DefaultKeyStatistics.ForwardPE.metric(),
		DividendYield:  res.SummaryDetail.DividendYield.metric(),
		Beta:           res.SummaryDetail.Beta.metric(),
		TargetPrice:    res.FinancialData.TargetMeanPrice.metric(),
		High52w:        res.SummaryDetail.FiftyTwoWeekHigh.metric(),
		Low52w:         res.SummaryDetail.FiftyTwoWeekLow.metric(),
		MarketCap:      res.SummaryDetail.MarketCap.metric(),
		EPS:            res.DefaultKeyStatistics.TrailingEps.metric(),
		Recommendation: res.FinancialData.RecommendationKey,
	}, nil
}
