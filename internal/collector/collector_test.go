package collector

import (
	"context"
	"testing"

	"github.com/gabomartinez21/invesment-track/internal/model"
)

func TestCollect_PreservesHoldingsOrder(t *testing.T) {
	fetcher := &MockFetcher{
		Quotes: map[string]model.Quote{
			"AAA": {Price: 10, PrevClose: 9},
			"BBB": {Price: 20, PrevClose: 21},
			"CCC": {Price: 30, PrevClose: 30},
		},
		Series: map[string]model.PriceSeries{
			"AAA": GenerateSeries("AAA", 10, 50),
			"BBB": GenerateSeries("BBB", 20, 50),
			"CCC": GenerateSeries("CCC", 30, 50),
		},
		Companies: map[string]string{"AAA": "Alpha Inc."},
	}
	col := NewCollector(fetcher, 365)

	holdings := []model.Holding{
		{Ticker: "AAA"}, {Ticker: "BBB"}, {Ticker: "CCC"},
	}
	snaps := col.Collect(context.Background(), holdings)

	if len(snaps) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(snaps))
	}
	for i, want := range []string{"AAA", "BBB", "CCC"} {
		if snaps[i].Holding.Ticker != want {
			t.Errorf("position %d: expected %s, got %s", i, want, snaps[i].Holding.Ticker)
		}
	}
	if snaps[0].Company != "Alpha Inc." {
		t.Errorf("expected resolved company name, got %q", snaps[0].Company)
	}
	if snaps[1].Company != "BBB" {
		t.Errorf("expected ticker fallback for company name, got %q", snaps[1].Company)
	}
}

func TestCollect_PartialFailureIsRecordedNotFatal(t *testing.T) {
	fetcher := &MockFetcher{
		Quotes: map[string]model.Quote{
			"GOOD": {Price: 100, PrevClose: 99},
		},
		Series: map[string]model.PriceSeries{
			"GOOD": GenerateSeries("GOOD", 100, 50),
		},
	}
	col := NewCollector(fetcher, 365)

	snaps := col.Collect(context.Background(), []model.Holding{
		{Ticker: "GOOD"}, {Ticker: "BAD"},
	})

	if snaps[0].Err != nil {
		t.Errorf("GOOD should have no error: %v", snaps[0].Err)
	}
	if snaps[0].Quote.Price != 100 {
		t.Errorf("GOOD quote lost: %+v", snaps[0].Quote)
	}
	if snaps[1].Err == nil {
		t.Error("BAD should record its quote failure")
	}
	if len(snaps[1].Series.Points) != 0 {
		t.Errorf("BAD should have no series, got %d points", len(snaps[1].Series.Points))
	}
}

func TestCollect_HistoryDaysBoundsSeries(t *testing.T) {
	fetcher := &MockFetcher{
		Quotes: map[string]model.Quote{"AAA": {Price: 10}},
		Series: map[string]model.PriceSeries{"AAA": GenerateSeries("AAA", 10, 400)},
	}
	col := NewCollector(fetcher, 30)

	snaps := col.Collect(context.Background(), []model.Holding{{Ticker: "AAA"}})
	if got := len(snaps[0].Series.Points); got != 30 {
		t.Errorf("expected series trimmed to 30 points, got %d", got)
	}
}
