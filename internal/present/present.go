// Package present turns a classifier response into renderer-ready values.
//
// Every function here is pure and total: unknown sentiments fall back to the
// neutral configuration and missing distributions are synthesized.
package present

import (
	"math"
	"time"

	"github.com/csheth/moodscope/internal/analysis"
)

// SentimentConfig is the static display data for one sentiment class.
type SentimentConfig struct {
	Emoji string
	Label string
	Class string
}

var sentimentConfigs = map[analysis.Sentiment]SentimentConfig{
	analysis.Positive: {Emoji: "😊", Label: "Positive", Class: "positive"},
	analysis.Negative: {Emoji: "😞", Label: "Negative", Class: "negative"},
	analysis.Neutral:  {Emoji: "😐", Label: "Neutral", Class: "neutral"},
}

// TagStagger is the entrance delay between consecutive keyword tags.
const TagStagger = 100 * time.Millisecond

// Model is the fully derived bundle the renderer paints after a success.
type Model struct {
	Emoji             string
	Label             string
	Class             string
	ConfidencePercent int
	StrengthLabel     string
	DetailedLabel     string
	Explanation       string
	Keywords          []Tag
	ChartSeries       [3]float64
	GeneratedText     string
}

// Tag is one keyword chip plus its suggested entrance delay.
type Tag struct {
	Text  string
	Delay time.Duration
}

// Build derives the presentation model for a successful response.
func Build(resp analysis.Response) Model {
	cfg := PickSentimentConfig(resp.Sentiment)
	pct := ConfidencePercent(resp.Confidence)
	return Model{
		Emoji:             cfg.Emoji,
		Label:             cfg.Label,
		Class:             cfg.Class,
		ConfidencePercent: pct,
		StrengthLabel:     ConfidenceStrength(pct),
		DetailedLabel:     DetailedLabel(cfg.Class, pct),
		Explanation:       PlainExplanation(resp.Explanation),
		Keywords:          KeywordTags(resp.Keywords),
		ChartSeries:       ChartSeries(resp.Distribution, cfg.Class),
		GeneratedText:     resp.GeneratedText,
	}
}

// PickSentimentConfig maps a sentiment to its display config; anything unknown is neutral.
func PickSentimentConfig(sentiment analysis.Sentiment) SentimentConfig {
	if cfg, ok := sentimentConfigs[sentiment]; ok {
		return cfg
	}
	return sentimentConfigs[analysis.Neutral]
}

// ConfidencePercent rounds half-up to an integer percent. Values outside the
// int32 range, infinities included, saturate at its bounds.
func ConfidencePercent(raw float64) int {
	switch {
	case math.IsNaN(raw):
		return 0
	case raw >= math.MaxInt32:
		return math.MaxInt32
	case raw <= math.MinInt32:
		return math.MinInt32
	}
	return int(math.Floor(raw + 0.5))
}

// ConfidenceStrength describes how decisive the classification was.
func ConfidenceStrength(pct int) string {
	switch {
	case pct > 85:
		return "very strong"
	case pct >= 60:
		return "fairly clear"
	default:
		return "uncertain"
	}
}

// DetailedLabel picks a finer emotion label. Bands are checked top-down.
func DetailedLabel(class string, pct int) string {
	switch class {
	case "positive":
		switch {
		case pct > 90:
			return "very positive"
		case pct >= 75:
			return "happy"
		default:
			return "positive"
		}
	case "negative":
		switch {
		case pct > 90:
			return "very negative"
		case pct >= 75:
			return "angry"
		case pct >= 60:
			return "sad"
		default:
			return "afraid"
		}
	default:
		switch {
		case pct > 80:
			return "neutral (strong)"
		case pct >= 60:
			return "surprised"
		default:
			return "uncertain"
		}
	}
}

// ChartSeries returns [positive, neutral, negative]. A present distribution is
// clamped at zero but not renormalized; an absent one becomes one-hot.
func ChartSeries(dist *analysis.Distribution, class string) [3]float64 {
	if dist != nil {
		return [3]float64{
			math.Max(dist.Positive, 0),
			math.Max(dist.Neutral, 0),
			math.Max(dist.Negative, 0),
		}
	}
	switch class {
	case "positive":
		return [3]float64{100, 0, 0}
	case "negative":
		return [3]float64{0, 0, 100}
	default:
		return [3]float64{0, 100, 0}
	}
}

// KeywordTags keeps keyword order and staggers each tag by TagStagger.
func KeywordTags(keywords []string) []Tag {
	tags := make([]Tag, 0, len(keywords))
	for i, keyword := range keywords {
		tags = append(tags, Tag{Text: keyword, Delay: time.Duration(i) * TagStagger})
	}
	return tags
}
