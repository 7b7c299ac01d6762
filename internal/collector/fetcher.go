package collector

import (
	"context"

	"github.com/gabomartinez21/invesment-track/internal/model"
)

// Fetcher defines the narrow capability interface for market data.
// Implementations own their timeouts and retries; the pipeline only
// sees plain data records.
type Fetcher interface {
	FetchQuote(ctx context.Context, ticker string) (model.Quote, error)
	FetchDailyCloses(ctx context.Context, ticker string, days int) (model.PriceSeries, error)
	FetchFundamentals(ctx context.Context, ticker string) (*model.FundamentalsSnapshot, error)
	CompanyName(ctx context.Context, ticker string) (string, error)
	Name() string
}
