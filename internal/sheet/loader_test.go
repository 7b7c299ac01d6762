package sheet

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSheet(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portfolio.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write sheet: %v", err)
	}
	return path
}

func TestLoad_FullSheet(t *testing.T) {
	path := writeSheet(t, strings.Join([]string{
		"Ticker,Qty,AvgCost,BuyBelow,SellAbove,TargetWeight,Cash,Active,Notes",
		"aapl,1,180.50,210,260,25,,true,core position",
		"VOO,0.72,\"$1,020.00\",,,75%,,yes,",
		"CASH,,,,,,312.45,,",
		"TSLA,2,250,,,0,,false,paused",
	}, "\n"))

	holdings, cash, err := Load(context.Background(), nil, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(holdings) != 2 {
		t.Fatalf("expected 2 active holdings, got %d: %+v", len(holdings), holdings)
	}
	if cash != 312.45 {
		t.Errorf("expected cash 312.45, got %.2f", cash)
	}

	aapl := holdings[0]
	if aapl.Ticker != "AAPL" {
		t.Errorf("tickers should be upper-cased, got %q", aapl.Ticker)
	}
	if aapl.Quantity != 1 || aapl.AvgCost != 180.50 || aapl.BuyBelow != 210 || aapl.SellAbove != 260 {
		t.Errorf("unexpected AAPL fields: %+v", aapl)
	}
	if aapl.TargetWeight != 25 {
		t.Errorf("expected target weight 25, got %.2f", aapl.TargetWeight)
	}
	if aapl.Notes != "core position" {
		t.Errorf("unexpected notes: %q", aapl.Notes)
	}

	voo := holdings[1]
	if voo.AvgCost != 1020 {
		t.Errorf("currency formatting should be stripped, got %.2f", voo.AvgCost)
	}
	if voo.TargetWeight != 75 {
		t.Errorf("percent suffix should be stripped, got %.2f", voo.TargetWeight)
	}
}

func TestLoad_SharesColumnAlias(t *testing.T) {
	path := writeSheet(t, "Ticker,Shares\nMSFT,3.5\n")

	holdings, _, err := Load(context.Background(), nil, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(holdings) != 1 || holdings[0].Quantity != 3.5 {
		t.Errorf("expected Shares to feed quantity: %+v", holdings)
	}
}

func TestLoad_EqualSplitWithoutTargetWeight(t *testing.T) {
	path := writeSheet(t, "Ticker,Qty\nAAA,1\nBBB,1\nCCC,1\n")

	holdings, _, err := Load(context.Background(), nil, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(holdings) != 3 {
		t.Fatalf("expected 3 holdings, got %d", len(holdings))
	}
	sum := 0.0
	for _, h := range holdings {
		if math.Abs(h.TargetWeight-100.0/3) > 1e-9 {
			t.Errorf("%s: expected equal split, got %.4f", h.Ticker, h.TargetWeight)
		}
		sum += h.TargetWeight
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Errorf("equal split should sum to 100, got %.6f", sum)
	}
}

func TestLoad_ActiveColumnVariants(t *testing.T) {
	path := writeSheet(t, strings.Join([]string{
		"Ticker,Qty,Active",
		"AAA,1,true",
		"BBB,1,si",
		"CCC,1,0",
		"DDD,1,no",
		"EEE,1,",
	}, "\n"))

	holdings, _, err := Load(context.Background(), nil, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := map[string]bool{}
	for _, h := range holdings {
		got[h.Ticker] = true
	}
	for _, want := range []string{"AAA", "BBB", "EEE"} {
		if !got[want] {
			t.Errorf("%s should be active", want)
		}
	}
	for _, skip := range []string{"CCC", "DDD"} {
		if got[skip] {
			t.Errorf("%s should be inactive", skip)
		}
	}
}

func TestLoad_CashRowsAccumulate(t *testing.T) {
	path := writeSheet(t, strings.Join([]string{
		"Ticker,Qty,Cash",
		"CASH,,100.50",
		"CASH_USD,,50",
		"AAPL,1,",
	}, "\n"))

	holdings, cash, err := Load(context.Background(), nil, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cash != 150.50 {
		t.Errorf("expected cash 150.50, got %.2f", cash)
	}
	for _, h := range holdings {
		if h.Ticker == "CASH" || h.Ticker == "CASH_USD" {
			t.Errorf("cash rows must not become holdings: %+v", h)
		}
	}
}

func TestLoad_MissingTickerColumn(t *testing.T) {
	path := writeSheet(t, "Symbol,Qty\nAAPL,1\n")

	if _, _, err := Load(context.Background(), nil, path); err == nil {
		t.Fatal("expected an error for a sheet without a Ticker column")
	}
}

func TestLoad_EmptySheet(t *testing.T) {
	path := writeSheet(t, "")

	if _, _, err := Load(context.Background(), nil, path); err == nil {
		t.Fatal("expected an error for an empty sheet")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, _, err := Load(context.Background(), nil, filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
