package core

import (
	"testing"
	"time"

	"github.com/qualens/qualens/schema"
	"github.com/stretchr/testify/assert"
)

func feedbackRecord(id, notes string, rating int) schema.EvaluationRecord {
	r := testRecord(id, rating, time.Duration(len(id))*time.Minute)
	r.Notes = notes
	return r
}

func TestScoreSentimentVeryPositive(t *testing.T) {
	result := ScoreSentiment("r1", "this is amazing and very helpful")

	assert.Greater(t, result.Score, 0.6)
	assert.Equal(t, schema.SentimentVeryPositive, result.Bucket)
	assert.Contains(t, result.MatchedPatterns, "intensified_positive")
	assert.Greater(t, result.Confidence, 0.0)
}

func TestScoreSentimentNegative(t *testing.T) {
	result := ScoreSentiment("r1", "the answer was wrong and the response doesn't work at all")

	assert.Less(t, result.Score, -0.2)
	assert.Contains(t, result.MatchedPatterns, "not_working")
}

func TestScoreSentimentNegatedPositive(t *testing.T) {
	result := ScoreSentiment("r1", "this was not helpful")

	// "helpful" alone contributes +0.6 once, but the negation pattern
	// carries double indicator weight and pulls the score negative.
	assert.Less(t, result.Score, 0.0)
	assert.Contains(t, result.MatchedPatterns, "negated_positive")
}

func TestScoreSentimentNoIndicators(t *testing.T) {
	result := ScoreSentiment("r1", "the response arrived at noon")

	assert.Zero(t, result.Score)
	assert.Equal(t, schema.SentimentNeutral, result.Bucket)
	assert.Empty(t, result.MatchedPatterns)
}

func TestScoreSentimentEmptyText(t *testing.T) {
	result := ScoreSentiment("r1", "   ")

	assert.Zero(t, result.Score)
	assert.Zero(t, result.Confidence)
}

func TestScoreSentimentScoreBounds(t *testing.T) {
	texts := []string{
		"terrible awful horrible useless garbage worst",
		"amazing excellent perfect outstanding fantastic",
		"good bad good bad good bad",
	}
	for _, text := range texts {
		result := ScoreSentiment("r1", text)
		assert.GreaterOrEqual(t, result.Score, -1.0, text)
		assert.LessOrEqual(t, result.Score, 1.0, text)
		assert.GreaterOrEqual(t, result.Confidence, 0.0, text)
		assert.LessOrEqual(t, result.Confidence, 1.0, text)
	}
}

func TestScoreSentimentEmotions(t *testing.T) {
	result := ScoreSentiment("r1", "so frustrating, I am confused by this response")

	assert.ElementsMatch(t, []string{"frustrated", "confused"}, result.Emotions)
}

func TestScoreSentimentConfidenceBlendsLength(t *testing.T) {
	short := ScoreSentiment("r1", "amazing")
	long := ScoreSentiment("r2",
		"amazing work on this one, the answer covered every part of my question in depth and more")

	// One strong hit saturates a short text's score but not its confidence.
	assert.InDelta(t, 1.0, short.Score, 1e-9)
	assert.Less(t, short.Confidence, long.Confidence)
}

func TestAnalyzeSentimentBucketsSumToAnalyzed(t *testing.T) {
	records := []schema.EvaluationRecord{
		feedbackRecord("a", "this is amazing and very helpful", 5),
		feedbackRecord("b", "good and fast but incomplete", 4),
		feedbackRecord("c", "the response arrived at noon", 3),
		feedbackRecord("d", "pretty bad and slow", 2),
		feedbackRecord("e", "terrible, useless garbage", 1),
		feedbackRecord("f", "", 3), // No text: excluded
	}

	report := AnalyzeSentiment(records, true)

	assert.Equal(t, 5, report.AnalyzedRecords)
	total := report.Distribution.VeryPositive + report.Distribution.Positive +
		report.Distribution.Neutral + report.Distribution.Negative +
		report.Distribution.VeryNegative
	assert.Equal(t, report.AnalyzedRecords, total)
	assert.Len(t, report.Results, 5)
	assert.Equal(t, 1, report.Distribution.VeryPositive)
	assert.Equal(t, 1, report.Distribution.VeryNegative)
}

func TestAnalyzeSentimentWithoutDetailOmitsResults(t *testing.T) {
	records := []schema.EvaluationRecord{feedbackRecord("a", "great stuff", 5)}

	report := AnalyzeSentiment(records, false)

	assert.Empty(t, report.Results)
	assert.Equal(t, 1, report.AnalyzedRecords)
}

func TestAnalyzeSentimentTalliesEmotionsAndPatterns(t *testing.T) {
	records := []schema.EvaluationRecord{
		feedbackRecord("a", "very helpful, I am impressed", 5),
		feedbackRecord("b", "this doesn't work and is frustrating", 1),
		feedbackRecord("c", "it doesn't help and keeps failing", 1),
	}

	report := AnalyzeSentiment(records, false)

	assert.Equal(t, 1, report.EmotionCounts["delighted"])
	assert.Equal(t, 1, report.EmotionCounts["frustrated"])
	assert.Equal(t, 2, report.PatternCounts["not_working"])
	assert.Equal(t, 1, report.PatternCounts["intensified_positive"])
}

func TestAnalyzeCategories(t *testing.T) {
	records := []schema.EvaluationRecord{
		feedbackRecord("a", "way too slow to respond", 2),
		feedbackRecord("b", "slow and full of errors", 1),
		feedbackRecord("c", "the answer was wrong", 2),
		feedbackRecord("d", "clear and thorough", 5),
	}

	stats := AnalyzeCategories(records)

	byCat := map[string]schema.FeedbackCategoryStat{}
	for _, s := range stats {
		byCat[s.Category] = s
	}
	perf, ok := byCat["performance"]
	assert.True(t, ok)
	assert.Equal(t, 2, perf.Mentions)
	assert.InDelta(t, 1.5, perf.AverageRating, 1e-9)
	assert.Equal(t, 1, byCat["accuracy"].Mentions)
	assert.Equal(t, 1, byCat["errors"].Mentions)
	// Sorted by mentions, so performance leads.
	assert.Equal(t, "performance", stats[0].Category)
}
