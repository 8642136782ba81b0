package core

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/qualens/qualens/schema"
)

// Keyword tiers. Each single-keyword hit contributes one indicator with the
// tier's signed weight.
var sentimentKeywords = map[string]float64{
	// Very positive (+1.0)
	"amazing": 1.0, "excellent": 1.0, "perfect": 1.0, "outstanding": 1.0,
	"fantastic": 1.0, "brilliant": 1.0, "awesome": 1.0, "superb": 1.0,
	"exceptional": 1.0, "love": 1.0, "flawless": 1.0,
	// Positive (+0.6)
	"good": 0.6, "great": 0.6, "helpful": 0.6, "useful": 0.6, "nice": 0.6,
	"works": 0.6, "correct": 0.6, "accurate": 0.6, "clear": 0.6, "fast": 0.6,
	"solid": 0.6, "reliable": 0.6, "thanks": 0.6, "thank": 0.6, "better": 0.6,
	// Negative (-0.6)
	"bad": -0.6, "wrong": -0.6, "slow": -0.6, "unclear": -0.6,
	"confusing": -0.6, "incomplete": -0.6, "missing": -0.6, "poor": -0.6,
	"unhelpful": -0.6, "broken": -0.6, "worse": -0.6, "incorrect": -0.6,
	// Very negative (-1.0)
	"terrible": -1.0, "awful": -1.0, "horrible": -1.0, "useless": -1.0,
	"garbage": -1.0, "unusable": -1.0, "worst": -1.0, "hate": -1.0,
	"disaster": -1.0, "unacceptable": -1.0,
}

// phrasePattern is one weighted regex scanned against the full lowercased
// text. A phrase hit counts as two indicators relative to a single keyword.
type phrasePattern struct {
	name   string
	re     *regexp.Regexp
	weight float64
}

const phraseIndicatorWeight = 2

var phrasePatterns = []phrasePattern{
	{
		name:   "not_working",
		re:     regexp.MustCompile(`(does not|doesn't|do not|don't|didn't|won't|can't|cannot) (work|help|respond|load|answer)`),
		weight: -0.8,
	},
	{
		name:   "negated_positive",
		re:     regexp.MustCompile(`(not|never|no) (good|great|helpful|useful|correct|accurate|working|clear)`),
		weight: -0.7,
	},
	{
		name:   "intensified_positive",
		re:     regexp.MustCompile(`(very|really|extremely|incredibly|super) (good|great|helpful|useful|accurate|fast|clear|nice)`),
		weight: 0.8,
	},
	{
		name:   "intensified_negative",
		re:     regexp.MustCompile(`(very|really|extremely|incredibly|super) (bad|slow|wrong|confusing|poor|unclear|disappointing)`),
		weight: -0.8,
	},
	{
		name:   "stopped_working",
		re:     regexp.MustCompile(`(stopped working|keeps? failing|keeps? crashing|broke again)`),
		weight: -0.9,
	},
	{
		name:   "exceeded_expectations",
		re:     regexp.MustCompile(`(exceeded|beyond) (my |all )?expectations|better than expected`),
		weight: 0.9,
	},
}

// Emotion tags are presence-based keyword matches, independent of the
// sentiment score.
var emotionKeywords = map[string][]string{
	"frustrated": {"frustrated", "frustrating", "annoying", "annoyed", "infuriating", "fed up"},
	"confused":   {"confused", "confusing", "unclear", "don't understand", "makes no sense"},
	"satisfied":  {"satisfied", "happy", "pleased", "glad", "works well"},
	"delighted":  {"delighted", "thrilled", "amazed", "impressed", "blown away"},
}

// emotionOrder keeps emotion tags deterministic per record.
var emotionOrder = []string{"frustrated", "confused", "satisfied", "delighted"}

// Feedback categories scanned independently of sentiment.
var categoryKeywords = map[string][]string{
	"performance":  {"slow", "fast", "latency", "speed", "timeout", "lag", "sluggish"},
	"accuracy":     {"wrong", "correct", "accurate", "inaccurate", "incorrect", "mistake", "hallucinat"},
	"completeness": {"incomplete", "missing", "partial", "complete", "thorough", "cut off"},
	"clarity":      {"unclear", "confusing", "clear", "concise", "verbose", "rambling"},
	"helpfulness":  {"helpful", "unhelpful", "useful", "useless"},
	"errors":       {"error", "crash", "bug", "broken", "failed", "exception"},
}

var categoryOrder = []string{"performance", "accuracy", "completeness", "clarity", "helpfulness", "errors"}

// Confidence blend denominators.
const (
	confidenceIndicatorScale = 5.0
	confidenceWordScale      = 20.0
)

// ScoreSentiment scores one text against the keyword tiers and phrase
// patterns. The score is the indicator-weighted sum normalized by total
// indicator count, so a short text with one strong keyword saturates
// toward the tier weight while its confidence stays low.
func ScoreSentiment(recordID, text string) schema.SentimentResult {
	result := schema.SentimentResult{RecordID: recordID, Bucket: schema.SentimentNeutral}
	lowered := strings.ToLower(text)
	words := strings.Fields(lowered)
	if len(words) == 0 {
		return result
	}

	var weightedSum float64
	indicators := 0
	for _, w := range words {
		token := strings.Trim(w, ".,!?;:()[]\"'")
		if weight, ok := sentimentKeywords[token]; ok {
			weightedSum += weight
			indicators++
		}
	}
	for _, p := range phrasePatterns {
		matches := p.re.FindAllString(lowered, -1)
		if len(matches) == 0 {
			continue
		}
		result.MatchedPatterns = append(result.MatchedPatterns, p.name)
		weightedSum += p.weight * phraseIndicatorWeight * float64(len(matches))
		indicators += phraseIndicatorWeight * len(matches)
	}

	if indicators > 0 {
		result.Score = math.Max(-1, math.Min(1, weightedSum/float64(indicators)))
	}
	result.Confidence = (math.Min(float64(indicators)/confidenceIndicatorScale, 1) +
		math.Min(float64(len(words))/confidenceWordScale, 1)) / 2
	result.Bucket = schema.BucketForScore(result.Score)

	for _, emotion := range emotionOrder {
		for _, kw := range emotionKeywords[emotion] {
			if strings.Contains(lowered, kw) {
				result.Emotions = append(result.Emotions, emotion)
				break
			}
		}
	}
	return result
}

// AnalyzeSentiment scores every record with non-empty free text and
// aggregates buckets, emotions, phrase patterns and feedback categories.
// Per-record results are attached only when includeResults is set.
func AnalyzeSentiment(records []schema.EvaluationRecord, includeResults bool) schema.SentimentReport {
	report := schema.SentimentReport{
		EmotionCounts: map[string]int{},
		PatternCounts: map[string]int{},
	}

	var scoreSum float64
	for _, r := range records {
		text := r.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		result := ScoreSentiment(r.ID, text)
		report.AnalyzedRecords++
		scoreSum += result.Score

		switch result.Bucket {
		case schema.SentimentVeryPositive:
			report.Distribution.VeryPositive++
		case schema.SentimentPositive:
			report.Distribution.Positive++
		case schema.SentimentNeutral:
			report.Distribution.Neutral++
		case schema.SentimentNegative:
			report.Distribution.Negative++
		case schema.SentimentVeryNegative:
			report.Distribution.VeryNegative++
		}
		for _, emotion := range result.Emotions {
			report.EmotionCounts[emotion]++
		}
		for _, pattern := range result.MatchedPatterns {
			report.PatternCounts[pattern]++
		}
		if includeResults {
			report.Results = append(report.Results, result)
		}
	}

	if report.AnalyzedRecords > 0 {
		report.AverageScore = scoreSum / float64(report.AnalyzedRecords)
	}
	report.Categories = AnalyzeCategories(records)
	return report
}

// AnalyzeCategories correlates feedback categories with quality. A record
// counts as a mention of every category whose keywords appear in its text.
func AnalyzeCategories(records []schema.EvaluationRecord) []schema.FeedbackCategoryStat {
	type catAccum struct {
		mentions  int
		rated     int
		ratingSum float64
	}
	accums := make(map[string]*catAccum, len(categoryOrder))
	for _, cat := range categoryOrder {
		accums[cat] = &catAccum{}
	}

	for _, r := range records {
		text := strings.ToLower(r.Text())
		if strings.TrimSpace(text) == "" {
			continue
		}
		for _, cat := range categoryOrder {
			for _, kw := range categoryKeywords[cat] {
				if strings.Contains(text, kw) {
					a := accums[cat]
					a.mentions++
					if r.Rating >= 1 && r.Rating <= 5 {
						a.rated++
						a.ratingSum += float64(r.Rating)
					}
					break
				}
			}
		}
	}

	stats := make([]schema.FeedbackCategoryStat, 0, len(categoryOrder))
	for _, cat := range categoryOrder {
		a := accums[cat]
		if a.mentions == 0 {
			continue
		}
		s := schema.FeedbackCategoryStat{Category: cat, Mentions: a.mentions}
		if a.rated > 0 {
			s.AverageRating = a.ratingSum / float64(a.rated)
		}
		stats = append(stats, s)
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Mentions > stats[j].Mentions })
	return stats
}
