package news

import "github.com/gabomartinez21/invesment-track/internal/model"

// Summarize tallies the per-article sentiment tags into a dominant
// label with a confidence. Untagged articles count as neutral only
// when at least one article carries a tag; with no tags at all the
// summary is neutral at 0.5 confidence.
func Summarize(articles []model.NewsArticle) model.SentimentSummary {
	if len(articles) == 0 {
		return model.SentimentSummary{Label: "neutral", Confidence: 0}
	}

	var positive, negative, neutral, tagged int
	for _, a := range articles {
		switch a.Sentiment {
		case "positive":
			positive++
			tagged++
		case "negative":
			negative++
			tagged++
		case "neutral":
			neutral++
			tagged++
		}
	}
	if tagged == 0 {
		return model.SentimentSummary{Label: "neutral", Confidence: 0.5}
	}

	total := float64(tagged)
	switch {
	case positive > negative && positive > neutral:
		return model.SentimentSummary{Label: "positive", Confidence: float64(positive) / total}
	case negative > positive && negative > neutral:
		return model.SentimentSummary{Label: "negative", Confidence: float64(negative) / total}
	default:
		return model.SentimentSummary{Label: "neutral", Confidence: float64(neutral) / total}
	}
}
