package advisor

import (
	"strings"
	"testing"

	"github.com/gabomartinez21/invesment-track/internal/model"
)

func TestParseRecommendation(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"El análisis sugiere cautela.\nCOMPRAR - buen punto de entrada", "COMPRAR"},
		{"VENDER - sobreponderada y sobrecomprada", "VENDER"},
		{"Podría ser momento de comprar, pero...\nMANTENER - esperar confirmación", "MANTENER"},
		{"sin veredicto explícito", "MANTENER"},
		{"", "MANTENER"},
	}
	for _, tc := range cases {
		if got := parseRecommendation(tc.text); got != tc.want {
			t.Errorf("parseRecommendation(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt(Request{
		Ticker:    "AAPL",
		Company:   "Apple Inc.",
		Price:     230,
		PrevClose: 232,
		Holding: model.Holding{
			Ticker: "AAPL", Quantity: 1, AvgCost: 180.5, TargetWeight: 25,
			Notes: "core position",
		},
		Indicators: model.IndicatorSet{
			LastClose: 230,
			RSI14:     model.MetricOf(24),
		},
		Articles: []model.NewsArticle{
			{Title: "Apple ships new thing", Source: "Example"},
		},
	})

	for _, want := range []string{
		"Apple Inc.", "AAPL", "230.00", "24.00",
		"core position", "Apple ships new thing",
		"COMPRAR / VENDER / MANTENER",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	// Unavailable indicators render as n/a instead of zeros.
	if !strings.Contains(prompt, "n/a") {
		t.Error("unavailable metrics should render as n/a")
	}
}
