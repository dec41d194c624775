package diagnosis

import (
	"strings"

	"github.com/Tessa-777/StudyGapAI-Backend/internal/quiz"
)

// shortExplanationLen is the length below which an unmatched explanation is
// taken as evidence the student simply lacked the knowledge.
const shortExplanationLen = 20

// ClassifyError assigns an incorrect response to exactly one error category.
// The second return is false for correct responses, which carry no error
// type. For any incorrect response, including one with an empty explanation
// and no confidence, a category is always returned.
func ClassifyError(r quiz.Response) (ErrorType, bool) {
	if r.IsCorrect {
		return "", false
	}

	expl := strings.ToLower(r.Explanation)
	conf := r.Confidence
	if !r.HasConfidence() {
		conf = 3
	}

	// First keyword match wins, in fixed category order. Careless mistakes
	// additionally require high confidence: a confident wrong answer with
	// slip language is a slip, a hesitant one is not.
	for _, t := range classifierOrder {
		if t == CarelessMistake && conf < 4 {
			continue
		}
		if containsAny(expl, classifierKeywords[t]) {
			return t, true
		}
	}

	// No keyword matched; fall back on secondary signals.
	switch {
	case conf >= 4:
		return CarelessMistake, true
	case len(expl) < shortExplanationLen:
		return KnowledgeGap, true
	case strings.Contains(expl, "step") || strings.Contains(expl, "calculate"):
		return ProceduralError, true
	default:
		return KnowledgeGap, true
	}
}

// Distribution classifies every incorrect response in the set and sums the
// results into a fully keyed distribution. If any incorrect responses exist
// the returned distribution is never all-zero.
func Distribution(responses []quiz.Response) ErrorDistribution {
	var dist ErrorDistribution
	incorrect := 0
	for _, r := range responses {
		if r.IsCorrect {
			continue
		}
		incorrect++
		if t, ok := ClassifyError(r); ok {
			dist.Add(t)
		}
	}
	if incorrect > 0 && dist.Total() == 0 {
		dist.KnowledgeGap = incorrect
	}
	return dist
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
