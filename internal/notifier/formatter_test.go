package notifier

import (
	"strings"
	"testing"
	"time"

	"github.com/gabomartinez21/invesment-track/internal/model"
)

func sampleReport() *model.DigestReport {
	return &model.DigestReport{
		GeneratedAt: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		Summary: model.PortfolioSummary{
			TotalValue:   626,
			Cash:         312.45,
			NetWorth:     938.45,
			DayChange:    -4.2,
			DayChangePct: -0.67,
		},
		Stocks: []model.StockReport{
			{
				Ticker:    "AAPL",
				Company:   "Apple Inc.",
				Price:     230,
				PrevClose: 232,
				ChangePct: -0.86,
				Quantity:  1,
				AvgCost:   180.5,
				Value:     230,
				PnL:       49.5,
				PnLPct:    27.42,

				CurrentWeight: 36.7,
				TargetWeight:  25,
				Recommendation: model.Recommendation{
					Ticker: "AAPL",
					Action: model.ActionSell,
					Rationale: []string{
						"RSI oversold (24.0)",
						"rebalance: sell 0.32 shares (value 73.50): overweight (36.7% vs 25.0%)",
						"conflicting signal: indicators say BUY, rebalance says SELL",
					},
					Conflict: true,
				},
				TechnicalSummary: "RSI 24.0 (oversold)",
				Advisory:         "VENDER - posición sobreponderada",
				Articles: []model.NewsArticle{
					{Title: "Apple ships new thing", Link: "https://example.com/a", Source: "Example"},
				},
			},
		},
		Plan: &model.RebalancePlan{
			TotalValue: 626,
			Entries: []model.RebalanceEntry{
				{
					Ticker: "AAPL", CurrentWeight: 36.7, TargetWeight: 25,
					Deviation: 11.7, HasTrade: true, Quantity: -0.32, Value: -73.5,
					Reason: "overweight (36.7% vs 25.0%)",
				},
				{Ticker: "VOO", CurrentWeight: 63.3, TargetWeight: 75, Deviation: -11.7, Reason: "no action: trade value 73.50 below minimum 100.00"},
			},
		},
	}
}

func TestFormatSubject(t *testing.T) {
	subject := FormatSubject(sampleReport())
	if !strings.Contains(subject, "2025-06-02") {
		t.Errorf("subject should carry the date: %q", subject)
	}
	if !strings.Contains(subject, "$938") {
		t.Errorf("subject should carry the net worth: %q", subject)
	}
}

func TestFormatDigestHTML(t *testing.T) {
	html := FormatDigestHTML(sampleReport())

	for _, want := range []string{
		"AAPL",
		"Apple Inc.",
		"SELL",
		colorSell, // sell badge color
		"conflicting signal",
		"#ff6600", // conflict highlight
		"overweight",
		"Rebalancing",
		"Sell 0.32 shares",
		"https://example.com/a",
		"VENDER",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("digest HTML missing %q", want)
		}
	}

	if !strings.Contains(html, "$938.45") {
		t.Error("digest HTML missing net worth")
	}
}

func TestFormatDigestHTML_SkippedPlan(t *testing.T) {
	report := sampleReport()
	report.Plan = &model.RebalancePlan{
		Skipped:    true,
		SkipReason: "invalid configuration: target weights sum to 90.00%, expected 100% ±0.50",
	}

	html := FormatDigestHTML(report)
	if !strings.Contains(html, "Rebalancing skipped") {
		t.Error("skipped plan should be announced")
	}
	if !strings.Contains(html, "target weights sum to 90.00%") {
		t.Error("skip reason should be shown")
	}
}

func TestFormatDigestHTML_EscapesUntrustedText(t *testing.T) {
	report := sampleReport()
	report.Stocks[0].Articles = []model.NewsArticle{
		{Title: `<script>alert("x")</script>`, Link: "https://example.com", Source: "Example"},
	}

	html := FormatDigestHTML(report)
	if strings.Contains(html, `<script>alert`) {
		t.Error("article titles must be HTML-escaped")
	}
}

func TestBadgeColors(t *testing.T) {
	if !strings.Contains(badge(model.ActionBuy), colorBuy) {
		t.Error("buy badge should be green")
	}
	if !strings.Contains(badge(model.ActionSell), colorSell) {
		t.Error("sell badge should be red")
	}
	if !strings.Contains(badge(model.ActionHold), colorHold) {
		t.Error("hold badge should be yellow")
	}
}
