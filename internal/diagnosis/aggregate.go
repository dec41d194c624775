package diagnosis

import (
	"math"

	"github.com/Tessa-777/StudyGapAI-Backend/internal/quiz"
	"github.com/Tessa-777/StudyGapAI-Backend/internal/taxonomy"
)

// FluencyIndex combines accuracy with self-reported confidence, grading
// mastery more strictly than accuracy alone. Result is clamped to [0,100].
func FluencyIndex(accuracy, avgConfidence float64) float64 {
	fi := accuracy * (avgConfidence / 5.0)
	return clamp(fi, 0, 100)
}

// StatusFor grades a topic from its fluency index and accuracy.
func StatusFor(fluency, accuracy float64) TopicStatus {
	switch {
	case fluency < 50 || accuracy < 60:
		return StatusWeak
	case fluency > 70 && accuracy > 75:
		return StatusStrong
	default:
		return StatusDeveloping
	}
}

// SeverityFor qualifies a status. Strong topics carry no severity.
func SeverityFor(status TopicStatus, accuracy float64) Severity {
	switch status {
	case StatusWeak:
		if accuracy < 40 {
			return SeverityCritical
		}
		return SeverityModerate
	case StatusDeveloping:
		return SeverityModerate
	}
	return ""
}

// EnforceFiveTopics re-derives the per-topic breakdown directly from the raw
// responses, mapped through the taxonomy. The model's own aggregation is not
// trusted: however many entries it produced, the output is exactly one entry
// per canonical topic in taxonomy order. modelBreakdown contributes only
// dominant_error_type hints; every numeric field is recomputed.
func EnforceFiveTopics(modelBreakdown []TopicBreakdown, responses []quiz.Response) []TopicBreakdown {
	byTopic := make(map[taxonomy.Canonical][]quiz.Response, len(taxonomy.Order))
	for _, r := range responses {
		c := taxonomy.MapToCanonical(r.Topic)
		byTopic[c] = append(byTopic[c], r)
	}

	// A valid dominant_error_type declared by the model for a canonical
	// topic is kept; everything else falls back to the classifier.
	modelDominant := make(map[taxonomy.Canonical]ErrorType)
	for _, tb := range modelBreakdown {
		if tb.DominantErrorType == "" || !IsValidErrorType(string(tb.DominantErrorType)) {
			continue
		}
		c := taxonomy.MapToCanonical(tb.Topic)
		if _, ok := modelDominant[c]; !ok {
			modelDominant[c] = tb.DominantErrorType
		}
	}

	out := make([]TopicBreakdown, 0, len(taxonomy.Order))
	for _, c := range taxonomy.Order {
		rs := byTopic[c]
		if len(rs) == 0 {
			out = append(out, TopicBreakdown{
				Topic:  string(c),
				Status: StatusWeak,
			})
			continue
		}

		correct := 0
		for _, r := range rs {
			if r.IsCorrect {
				correct++
			}
		}
		accuracy := float64(correct) / float64(len(rs)) * 100.0
		avgConf := quiz.AvgConfidence(rs)
		fluency := FluencyIndex(accuracy, avgConf)
		status := StatusFor(fluency, accuracy)

		entry := TopicBreakdown{
			Topic:              string(c),
			Accuracy:           round2(accuracy),
			FluencyIndex:       round2(fluency),
			Status:             status,
			QuestionsAttempted: len(rs),
			Severity:           SeverityFor(status, accuracy),
		}

		if dom, ok := modelDominant[c]; ok {
			entry.DominantErrorType = dom
		} else if dom, ok := dominantFromResponses(rs); ok {
			entry.DominantErrorType = dom
		}

		out = append(out, entry)
	}
	return out
}

// dominantFromResponses classifies the topic's incorrect responses and
// returns the most frequent category. False when every response was correct.
func dominantFromResponses(responses []quiz.Response) (ErrorType, bool) {
	dist := Distribution(responses)
	return dist.ArgMax()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
