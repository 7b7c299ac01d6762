package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/gabomartinez21/invesment-track/internal/model"
)

// financeTerms narrows the Google News query to market-moving stories.
var financeTerms = []string{
	"earnings", "results", "guidance", "upgrade", "downgrade",
	"acquisition", "dividend", "forecast", "stock",
}

// Aggregator fetches headlines for a ticker from multiple sources:
// Google News RSS, the Yahoo Finance per-ticker feed, and optionally
// the MarketAux API (the only source that carries sentiment tags).
type Aggregator struct {
	parser       *gofeed.Parser
	client       *http.Client
	MarketAuxKey string
	MaxPerSource int
}

// NewAggregator creates a news aggregator with optional proxy support.
// marketAuxKey may be empty; that source is then skipped.
func NewAggregator(proxyURL, marketAuxKey string, maxPerSource int) *Aggregator {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if maxPerSource <= 0 {
		maxPerSource = 3
	}
	client := &http.Client{Timeout: 20 * time.Second, Transport: transport}

	parser := gofeed.NewParser()
	parser.Client = client

	return &Aggregator{
		parser:       parser,
		client:       client,
		MarketAuxKey: marketAuxKey,
		MaxPerSource: maxPerSource,
	}
}

// FetchForTicker aggregates recent articles for one ticker from all
// configured sources, newest first. Failed sources are skipped; the
// result may be empty but the call never fails the pipeline.
func (a *Aggregator) FetchForTicker(ctx context.Context, ticker, company string) []model.NewsArticle {
	var all []model.NewsArticle

	if articles, err := a.fetchGoogleNews(ctx, ticker, company); err != nil {
		log.Printf("[WARN] %s: google news: %v", ticker, err)
	} else {
		all = append(all, articles...)
	}

	if articles, err := a.fetchYahooFeed(ctx, ticker); err != nil {
		log.Printf("[WARN] %s: yahoo news: %v", ticker, err)
	} else {
		all = append(all, articles...)
	}

	if a.MarketAuxKey != "" {
		if articles, err := a.fetchMarketAux(ctx, ticker); err != nil {
			log.Printf("[WARN] %s: marketaux: %v", ticker, err)
		} else {
			all = append(all, articles...)
		}
	}

	all = filterRelevant(all, ticker, company)
	sort.Slice(all, func(i, j int) bool { return all[i].Published.After(all[j].Published) })
	return all
}

func (a *Aggregator) fetchGoogleNews(ctx context.Context, ticker, company string) ([]model.NewsArticle, error) {
	query := fmt.Sprintf("%q OR %q (%s)", ticker, company, strings.Join(financeTerms, " OR "))
	feedURL := fmt.Sprintf("https://news.google.com/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en",
		url.QueryEscape(query))
	return a.parseFeed(ctx, feedURL, "Google News")
}

func (a *Aggregator) fetchYahooFeed(ctx context.Context, ticker string) ([]model.NewsArticle, error) {
	feedURL := fmt.Sprintf("https://feeds.finance.yahoo.com/rss/2.0/headline?s=%s&region=US&lang=en-US",
		url.QueryEscape(ticker))
	return a.parseFeed(ctx, feedURL, "Yahoo Finance")
}

func (a *Aggregator) parseFeed(ctx context.Context, feedURL, sourceName string) ([]model.NewsArticle, error) {
	feed, err := a.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	articles := make([]model.NewsArticle, 0, a.MaxPerSource)
	for _, item := range feed.Items {
		if len(articles) >= a.MaxPerSource {
			break
		}
		article := model.NewsArticle{
			Title:  item.Title,
			Link:   item.Link,
			Source: sourceName,
		}
		if item.PublishedParsed != nil {
			article.Published = *item.PublishedParsed
		}
		articles = append(articles, article)
	}
	return articles, nil
}

// marketAuxResponse is the shape of the MarketAux news endpoint.
type marketAuxResponse struct {
	Data []struct {
		Title       string `json:"title"`
		URL         string `json:"url"`
		Source      string `json:"source"`
		PublishedAt string `json:"published_at"`
		Entities    []struct {
			SentimentScore *float64 `json:"sentiment_score"`
		} `json:"entities"`
	} `json:"data"`
}

func (a *Aggregator) fetchMarketAux(ctx context.Context, ticker string) ([]model.NewsArticle, error) {
	u := fmt.Sprintf("https://api.marketaux.com/v1/news/all?symbols=%s&filter_entities=true&language=en&limit=%d&api_token=%s",
		url.QueryEscape(ticker), a.MaxPerSource, url.QueryEscape(a.MarketAuxKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("marketaux fetch: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("marketaux read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("marketaux: status %d, body: %s", resp.StatusCode, string(body))
	}

	var out marketAuxResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("marketaux decode: %w", err)
	}

	articles := make([]model.NewsArticle, 0, len(out.Data))
	for _, d := range out.Data {
		article := model.NewsArticle{
			Title:     d.Title,
			Link:      d.URL,
			Source:    d.Source,
			Sentiment: sentimentLabel(d.Entities),
		}
		if ts, err := time.Parse("2006-01-02T15:04:05.000000Z", d.PublishedAt); err == nil {
			article.Published = ts
		}
		articles = append(articles, article)
	}
	return articles, nil
}

func sentimentLabel(entities []struct {
	SentimentScore *float64 `json:"sentiment_score"`
}) string {
	for _, e := range entities {
		if e.SentimentScore == nil {
			continue
		}
		switch {
		case *e.SentimentScore > 0.1:
			return "positive"
		case *e.SentimentScore < -0.1:
			return "negative"
		default:
			return "neutral"
		}
	}
	return ""
}

// filterRelevant drops articles that mention neither the ticker nor the
// company name, which Google's broad queries occasionally return.
func filterRelevant(articles []model.NewsArticle, ticker, company string) []model.NewsArticle {
	ticker = strings.ToLower(ticker)
	// Match on the company's leading word; suffixes like "Inc." are noise.
	companyToken := strings.ToLower(company)
	if i := strings.IndexByte(companyToken, ' '); i > 0 {
		companyToken = companyToken[:i]
	}

	kept := articles[:0]
	for _, a := range articles {
		title := strings.ToLower(a.Title)
		if strings.Contains(title, ticker) || (companyToken != "" && strings.Contains(title, companyToken)) {
			kept = append(kept, a)
		}
	}
	return kept
}
