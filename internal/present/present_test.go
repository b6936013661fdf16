package present

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/moodscope/internal/analysis"
)

func TestPickSentimentConfigDefaultsToNeutral(t *testing.T) {
	assert.Equal(t, "positive", PickSentimentConfig(analysis.Positive).Class)
	assert.Equal(t, "negative", PickSentimentConfig(analysis.Negative).Class)
	assert.Equal(t, "neutral", PickSentimentConfig("").Class)
	assert.Equal(t, "neutral", PickSentimentConfig("ecstatic").Class)
}

func TestConfidencePercentRoundsHalfUp(t *testing.T) {
	assert.Equal(t, 86, ConfidencePercent(85.5))
	assert.Equal(t, 85, ConfidencePercent(85.49))
	assert.Equal(t, 0, ConfidencePercent(0))
	assert.Equal(t, 100, ConfidencePercent(99.5))
}

func TestConfidencePercentSaturates(t *testing.T) {
	assert.Equal(t, math.MaxInt32, ConfidencePercent(1e300))
	assert.Equal(t, math.MaxInt32, ConfidencePercent(math.Inf(1)))
	assert.Equal(t, math.MinInt32, ConfidencePercent(math.Inf(-1)))
	assert.Equal(t, "very strong", ConfidenceStrength(ConfidencePercent(1e300)))
}

func TestConfidenceStrength(t *testing.T) {
	assert.Equal(t, "very strong", ConfidenceStrength(86))
	assert.Equal(t, "fairly clear", ConfidenceStrength(85))
	assert.Equal(t, "fairly clear", ConfidenceStrength(60))
	assert.Equal(t, "uncertain", ConfidenceStrength(59))
}

func TestDetailedLabelBands(t *testing.T) {
	cases := []struct {
		class string
		pct   int
		want  string
	}{
		{"positive", 91, "very positive"},
		{"positive", 90, "happy"},
		{"positive", 75, "happy"},
		{"positive", 74, "positive"},
		{"negative", 91, "very negative"},
		{"negative", 80, "angry"},
		{"negative", 75, "angry"},
		{"negative", 70, "sad"},
		{"negative", 60, "sad"},
		{"negative", 59, "afraid"},
		{"neutral", 81, "neutral (strong)"},
		{"neutral", 80, "surprised"},
		{"neutral", 60, "surprised"},
		{"neutral", 50, "uncertain"},
		{"anything", 95, "neutral (strong)"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DetailedLabel(tc.class, tc.pct), "%s %d", tc.class, tc.pct)
	}
}

func TestChartSeriesKeepsDistributionAsIs(t *testing.T) {
	dist := &analysis.Distribution{Positive: 70, Neutral: 20, Negative: 10}
	assert.Equal(t, [3]float64{70, 20, 10}, ChartSeries(dist, "positive"))

	skewed := &analysis.Distribution{Positive: 40, Neutral: -5, Negative: 10}
	assert.Equal(t, [3]float64{40, 0, 10}, ChartSeries(skewed, "positive"))
}

func TestChartSeriesSynthesizesOneHot(t *testing.T) {
	assert.Equal(t, [3]float64{0, 0, 100}, ChartSeries(nil, "negative"))
	assert.Equal(t, [3]float64{100, 0, 0}, ChartSeries(nil, "positive"))
	assert.Equal(t, [3]float64{0, 100, 0}, ChartSeries(nil, "neutral"))
}

func TestKeywordTagsStagger(t *testing.T) {
	tags := KeywordTags([]string{"love", "great", "fun"})
	require.Len(t, tags, 3)
	assert.Equal(t, "love", tags[0].Text)
	assert.Equal(t, time.Duration(0), tags[0].Delay)
	assert.Equal(t, 200*time.Millisecond, tags[2].Delay)
	assert.Empty(t, KeywordTags(nil))
}

func TestBuild(t *testing.T) {
	model := Build(analysis.Response{
		Success:     true,
		Sentiment:   analysis.Negative,
		Confidence:  69.6,
		Explanation: "The **tone** is *bitter*.",
		Keywords:    []string{"awful"},
	})
	assert.Equal(t, "Negative", model.Label)
	assert.Equal(t, "negative", model.Class)
	assert.Equal(t, 70, model.ConfidencePercent)
	assert.Equal(t, "fairly clear", model.StrengthLabel)
	assert.Equal(t, "sad", model.DetailedLabel)
	assert.Equal(t, "The tone is bitter.", model.Explanation)
	assert.Equal(t, [3]float64{0, 0, 100}, model.ChartSeries)
	require.Len(t, model.Keywords, 1)
}

func TestFlattenMarkdown(t *testing.T) {
	got := FlattenMarkdown("# Verdict\n\n- warm *praise*\n- `kind` words\n\nOverall upbeat.")
	assert.Equal(t, "Verdict warm praise kind words Overall upbeat.", got)
	assert.Equal(t, "", PlainExplanation("   "))
}
