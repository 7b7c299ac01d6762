package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/gabomartinez21/invesment-track/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Quotes       map[string]model.Quote
	Series       map[string]model.PriceSeries
	Fundamentals map[string]*model.FundamentalsSnapshot
	Companies    map[string]string
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchQuote(_ context.Context, ticker string) (model.Quote, error) {
	q, ok := m.Quotes[ticker]
	if !ok {
		return model.Quote{}, fmt.Errorf("mock: no quote for %s", ticker)
	}
	return q, nil
}

func (m *MockFetcher) FetchDailyCloses(_ context.Context, ticker string, days int) (model.PriceSeries, error) {
	s, ok := m.Series[ticker]
	if !ok {
		return model.PriceSeries{}, fmt.Errorf("mock: no series for %s", ticker)
	}
	if len(s.Points) > days {
		s.Points = s.Points[len(s.Points)-days:]
	}
	return s, nil
}

func (m *MockFetcher) FetchFundamentals(_ context.Context, ticker string) (*model.FundamentalsSnapshot, error) {
	return m.Fundamentals[ticker], nil
}

func (m *MockFetcher) CompanyName(_ context.Context, ticker string) (string, error) {
	if name, ok := m.Companies[ticker]; ok {
		return name, nil
	}
	return ticker, nil
}

// GenerateSeries builds a synthetic ascending-time series around a base
// price, useful for development runs against the mock fetcher.
func GenerateSeries(ticker string, basePrice float64, count int) model.PriceSeries {
	points := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		points[i] = model.PricePoint{
			Time:  time.Now().AddDate(0, 0, -(count - i)),
			Close: p,
		}
	}
	return model.PriceSeries{Ticker: ticker, Points: points, FetchedAt: time.Now()}
}
