package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/gabomartinez21/invesment-track/internal/advisor"
	"github.com/gabomartinez21/invesment-track/internal/collector"
	"github.com/gabomartinez21/invesment-track/internal/config"
	"github.com/gabomartinez21/invesment-track/internal/digest"
	"github.com/gabomartinez21/invesment-track/internal/indicator"
	"github.com/gabomartinez21/invesment-track/internal/news"
	"github.com/gabomartinez21/invesment-track/internal/notifier"
	"github.com/gabomartinez21/invesment-track/internal/rebalance"
	"github.com/gabomartinez21/invesment-track/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] portfolio digest starting...")

	// .env is optional; real env vars win either way.
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init market-data fetcher
	var fetcher collector.Fetcher
	switch os.Getenv("DATA_SOURCE") {
	case "stooq":
		fetcher = collector.NewStooqFetcher(cfg.Proxy)
	default:
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	col := collector.NewCollector(fetcher, cfg.Analysis.HistoryDays)

	// Optional collaborators
	var newsAgg *news.Aggregator
	if os.Getenv("DISABLE_NEWS") != "true" {
		newsAgg = news.NewAggregator(cfg.Proxy, cfg.News.MarketAuxAPIKey, cfg.News.MaxPerSource)
	}
	var adv *advisor.Advisor
	if cfg.OpenAI.APIKey != "" {
		adv = advisor.New(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.Proxy)
	} else {
		log.Println("[INFO] no OpenAI key configured, skipping prose analysis")
	}

	pipeline := &digest.Pipeline{
		SheetSource:      cfg.SheetSource(),
		SheetClient:      &http.Client{Timeout: 30 * time.Second},
		Collector:        col,
		Indicators:       indicator.NewEngine(cfg.Analysis.RSIPeriod, cfg.Analysis.VolatilityWindow),
		Rebalancer:       rebalance.NewEngine(cfg.Rebalance.MinTradeValue, cfg.Rebalance.MaxDeviation, cfg.Rebalance.WeightTolerance),
		RebalanceEnabled: cfg.Rebalance.Enabled,
		News:             newsAgg,
		Advisor:          adv,
	}

	mailer := notifier.NewMailer(cfg.Email.From, cfg.Email.To, cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.SMTPUser, cfg.Email.SMTPPass)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, pipeline, mailer, cfg.Schedule.SendTZ, cfg.Schedule.SendAfter)

	// One-shot mode: run the pipeline once and exit.
	if os.Getenv("RUN_ONCE") == "true" {
		sched.RunNow()
		return
	}

	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing digest now")
		go sched.RunNow()
	}

	log.Println("[INFO] portfolio digest is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] portfolio digest stopped")
}
