package sheet

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gabomartinez21/invesment-track/internal/model"
)

// cash sentinel tickers: these rows feed the cash balance and are
// excluded from per-ticker analysis.
var cashTickers = map[string]bool{"CASH": true, "CASH_USD": true}

// Load reads the portfolio from a published CSV export (http/https URL)
// or a local file. It returns the active holdings in sheet order plus
// the cash balance. Supported columns: Ticker (required), Qty or
// Shares, AvgCost, BuyBelow, SellAbove, TargetWeight, Cash, Active,
// Notes. When no TargetWeight column exists, targets are split equally
// across the positions.
func Load(ctx context.Context, client *http.Client, source string) ([]model.Holding, float64, error) {
	rc, err := open(ctx, client, source)
	if err != nil {
		return nil, 0, err
	}
	defer rc.Close()
	return parse(rc)
}

func open(ctx context.Context, client *http.Client, source string) (io.ReadCloser, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch sheet: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch sheet: status %d", resp.StatusCode)
		}
		return resp.Body, nil
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open sheet: %w", err)
	}
	return f, nil
}

func parse(r io.Reader) ([]model.Holding, float64, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("parse sheet: %w", err)
	}
	if len(records) == 0 {
		return nil, 0, fmt.Errorf("sheet is empty")
	}

	cols := map[string]int{}
	for i, name := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["ticker"]; !ok {
		return nil, 0, fmt.Errorf("sheet is missing required column: Ticker")
	}
	_, hasTargetWeight := cols["targetweight"]

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var holdings []model.Holding
	var cash float64

	for _, row := range records[1:] {
		ticker := strings.ToUpper(field(row, "ticker"))
		if ticker == "" {
			continue
		}

		if cashTickers[ticker] {
			cash += parseFloat(field(row, "cash"))
			continue
		}

		qty := parseFloat(field(row, "qty"))
		if _, ok := cols["qty"]; !ok {
			qty = parseFloat(field(row, "shares"))
		}

		h := model.Holding{
			Ticker:       ticker,
			Quantity:     qty,
			AvgCost:      parseFloat(field(row, "avgcost")),
			BuyBelow:     parseFloat(field(row, "buybelow")),
			SellAbove:    parseFloat(field(row, "sellabove")),
			TargetWeight: parseFloat(field(row, "targetweight")),
			Notes:        field(row, "notes"),
			Active:       parseActive(field(row, "active")),
		}
		if !h.Active {
			continue
		}
		holdings = append(holdings, h)
	}

	if !hasTargetWeight && len(holdings) > 0 {
		equal := 100.0 / float64(len(holdings))
		for i := range holdings {
			holdings[i].TargetWeight = equal
		}
	}

	return holdings, cash, nil
}

func parseFloat(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(strings.TrimPrefix(s, "$"), ",", ""))
	s = strings.TrimSuffix(s, "%")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseActive(s string) bool {
	if s == "" {
		return true // absent column means every row is active
	}
	switch strings.ToLower(s) {
	case "true", "1", "yes", "y", "si", "sí":
		return true
	}
	return false
}
