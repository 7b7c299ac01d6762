package signal

import (
	"strings"
	"testing"

	"github.com/gabomartinez21/invesment-track/internal/model"
)

func hasReason(reasons []string, substr string) bool {
	for _, r := range reasons {
		if strings.Contains(r, substr) {
			return true
		}
	}
	return false
}

func TestClassify_StrongBuyOnBandAndOversold(t *testing.T) {
	ind := model.IndicatorSet{
		LastClose: 95,
		RSI14:     model.MetricOf(25),
		MACDHist:  model.MetricOf(-1), // bearish momentum must not dilute the strong rule
	}
	h := model.Holding{Ticker: "AAPL", BuyBelow: 100}

	res := Classify(ind, h, 95)
	if res.Action != model.ActionBuy {
		t.Fatalf("expected BUY, got %s", res.Action)
	}
	if !res.Strong {
		t.Error("band + oversold should be a strong signal")
	}
	if !hasReason(res.Reasons, "buy target") || !hasReason(res.Reasons, "RSI oversold") {
		t.Errorf("missing strong-rule reasons: %v", res.Reasons)
	}
}

func TestClassify_StrongSellOnBandAndOverbought(t *testing.T) {
	ind := model.IndicatorSet{
		LastClose: 210,
		RSI14:     model.MetricOf(78),
	}
	h := model.Holding{Ticker: "NVDA", SellAbove: 200}

	res := Classify(ind, h, 210)
	if res.Action != model.ActionSell || !res.Strong {
		t.Fatalf("expected strong SELL, got %+v", res)
	}
}

func TestClassify_RSIBoundariesAreExclusive(t *testing.T) {
	h := model.Holding{Ticker: "T"}

	for _, rsi := range []float64{30, 70} {
		ind := model.IndicatorSet{LastClose: 100, RSI14: model.MetricOf(rsi)}
		res := Classify(ind, h, 100)
		if res.Action != model.ActionHold {
			t.Errorf("RSI exactly %.0f should be neutral, got %s", rsi, res.Action)
		}
		if hasReason(res.Reasons, "RSI") {
			t.Errorf("RSI %.0f should not produce an RSI reason: %v", rsi, res.Reasons)
		}
	}
}

func TestClassify_UnanimousTallyDecides(t *testing.T) {
	// Oversold RSI plus bullish MACD, nothing on the sell side.
	ind := model.IndicatorSet{
		LastClose: 100,
		RSI14:     model.MetricOf(22),
		MACDHist:  model.MetricOf(0.8),
	}
	res := Classify(ind, model.Holding{Ticker: "T"}, 100)
	if res.Action != model.ActionBuy {
		t.Fatalf("expected BUY from unanimous tally, got %+v", res)
	}
	if res.Strong {
		t.Error("tally outcome should not be flagged strong")
	}
	if len(res.Reasons) != 2 {
		t.Errorf("expected 2 reasons, got %v", res.Reasons)
	}
}

func TestClassify_MixedTallyHolds(t *testing.T) {
	// A buy point (oversold) against a sell point (analyst downside).
	ind := model.IndicatorSet{
		LastClose: 100,
		RSI14:     model.MetricOf(22),
		Upside:    model.MetricOf(-0.2),
	}
	res := Classify(ind, model.Holding{Ticker: "T"}, 100)
	if res.Action != model.ActionHold {
		t.Fatalf("mixed tally should HOLD, got %s", res.Action)
	}
	// Both sides must still be visible in the rationale.
	if !hasReason(res.Reasons, "RSI oversold") || !hasReason(res.Reasons, "downside") {
		t.Errorf("expected both contributing reasons: %v", res.Reasons)
	}
}

func TestClassify_DipInUptrend(t *testing.T) {
	ind := model.IndicatorSet{
		LastClose: 100,
		SMA50:     model.MetricOf(105),
		SMA200:    model.MetricOf(90),
	}
	res := Classify(ind, model.Holding{Ticker: "T"}, 100)
	if res.Action != model.ActionBuy {
		t.Fatalf("expected BUY for dip in uptrend, got %+v", res)
	}
	if !hasReason(res.Reasons, "dip in uptrend") {
		t.Errorf("missing dip reason: %v", res.Reasons)
	}
}

func TestClassify_UpsideThreshold(t *testing.T) {
	// Exactly at the 10% threshold earns no point.
	ind := model.IndicatorSet{LastClose: 100, Upside: model.MetricOf(0.10)}
	res := Classify(ind, model.Holding{Ticker: "T"}, 100)
	if res.Action != model.ActionHold {
		t.Errorf("10%% upside exactly should be neutral, got %s", res.Action)
	}

	ind.Upside = model.MetricOf(0.11)
	res = Classify(ind, model.Holding{Ticker: "T"}, 100)
	if res.Action != model.ActionBuy || !hasReason(res.Reasons, "upside") {
		t.Errorf("11%% upside should BUY, got %+v", res)
	}
}

func TestClassify_BandHitAloneDoesNotScore(t *testing.T) {
	// Inside the buy band but with neutral indicators: the band hit is
	// recorded but carries no point, so the action stays HOLD.
	ind := model.IndicatorSet{LastClose: 95, RSI14: model.MetricOf(50)}
	h := model.Holding{Ticker: "T", BuyBelow: 100}

	res := Classify(ind, h, 95)
	if res.Action != model.ActionHold {
		t.Fatalf("band hit alone should HOLD, got %s", res.Action)
	}
	if !hasReason(res.Reasons, "buy target") {
		t.Errorf("band hit should still be recorded: %v", res.Reasons)
	}
}

func TestClassify_InsufficientData(t *testing.T) {
	res := Classify(model.IndicatorSet{LastClose: 100}, model.Holding{Ticker: "T"}, 100)
	if res.Action != model.ActionHold {
		t.Fatalf("expected HOLD, got %s", res.Action)
	}
	if !hasReason(res.Reasons, "insufficient data") {
		t.Errorf("expected insufficient-data reason: %v", res.Reasons)
	}
}

func TestClassify_NoDirectionalSignals(t *testing.T) {
	ind := model.IndicatorSet{LastClose: 100, RSI14: model.MetricOf(50)}
	res := Classify(ind, model.Holding{Ticker: "T"}, 100)
	if res.Action != model.ActionHold || !hasReason(res.Reasons, "no directional signals") {
		t.Errorf("quiet indicators should HOLD with placeholder reason, got %+v", res)
	}
}
