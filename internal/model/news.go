package model

import "time"

// NewsArticle is one headline relevant to a ticker.
type NewsArticle struct {
	Title     string
	Link      string
	Source    string
	Published time.Time
	Sentiment string // positive, negative, neutral; "" when the source has no tag
}

// SentimentSummary is the dominant sentiment across a ticker's articles.
type SentimentSummary struct {
	Label      string // positive, negative, neutral
	Confidence float64
}
