// Package diagnosis turns a raw quiz submission into a guaranteed-shape
// diagnostic report: a structured prompt goes out to the model, and whatever
// comes back is validated, repaired, and aggregated until it satisfies every
// invariant the rest of the product depends on.
package diagnosis

import "github.com/Tessa-777/StudyGapAI-Backend/internal/taxonomy"

// ErrorType is one of the five closed error categories an incorrect response
// can be classified into. Any off-taxonomy value from the model is discarded.
type ErrorType string

const (
	ConceptualGap     ErrorType = "conceptual_gap"
	ProceduralError   ErrorType = "procedural_error"
	CarelessMistake   ErrorType = "careless_mistake"
	KnowledgeGap      ErrorType = "knowledge_gap"
	Misinterpretation ErrorType = "misinterpretation"
)

// ErrorTypes is the fixed category order, used for deterministic arg-max
// tie-breaks and for zero-filling distributions.
var ErrorTypes = []ErrorType{
	ConceptualGap,
	ProceduralError,
	CarelessMistake,
	KnowledgeGap,
	Misinterpretation,
}

// IsValidErrorType reports whether s is one of the five categories.
func IsValidErrorType(s string) bool {
	for _, t := range ErrorTypes {
		if s == string(t) {
			return true
		}
	}
	return false
}

// TopicStatus grades a canonical topic's mastery.
type TopicStatus string

const (
	StatusWeak       TopicStatus = "weak"
	StatusDeveloping TopicStatus = "developing"
	StatusStrong     TopicStatus = "strong"
)

// Severity qualifies weak and developing topics.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityModerate Severity = "moderate"
	SeverityMild     Severity = "mild"
)

// Report is the diagnostic analysis returned to the caller. The field names
// and enum values are a wire contract the frontend depends on byte-for-byte.
type Report struct {
	OverallPerformance OverallPerformance `json:"overall_performance"`
	TopicBreakdown     []TopicBreakdown   `json:"topic_breakdown"`
	RootCauseAnalysis  RootCauseAnalysis  `json:"root_cause_analysis"`
	PredictedJambScore PredictedJambScore `json:"predicted_jamb_score"`
	StudyPlan          StudyPlan          `json:"study_plan"`
	Recommendations    []Recommendation   `json:"recommendations"`
	AnalysisSummary    string             `json:"analysis_summary"`
}

// OverallPerformance summarizes the whole submission. Always recomputed from
// the submission itself, never taken from the model.
type OverallPerformance struct {
	Accuracy        float64 `json:"accuracy"`
	TotalQuestions  int     `json:"total_questions"`
	CorrectAnswers  int     `json:"correct_answers"`
	AvgConfidence   float64 `json:"avg_confidence"`
	TimePerQuestion float64 `json:"time_per_question"`
}

// TopicBreakdown is the per-canonical-topic entry. Exactly five appear in
// every report, one per taxonomy topic, even when no question touched it.
type TopicBreakdown struct {
	Topic              string      `json:"topic"`
	Accuracy           float64     `json:"accuracy"`
	FluencyIndex       float64     `json:"fluency_index"`
	Status             TopicStatus `json:"status"`
	QuestionsAttempted int         `json:"questions_attempted"`
	Severity           Severity    `json:"severity,omitempty"`
	DominantErrorType  ErrorType   `json:"dominant_error_type,omitempty"`
}

// ErrorDistribution counts classified errors per category. All five keys are
// always present in the JSON output, zero-filled.
type ErrorDistribution struct {
	ConceptualGap     int `json:"conceptual_gap"`
	ProceduralError   int `json:"procedural_error"`
	CarelessMistake   int `json:"careless_mistake"`
	KnowledgeGap      int `json:"knowledge_gap"`
	Misinterpretation int `json:"misinterpretation"`
}

// Add increments the count for t.
func (d *ErrorDistribution) Add(t ErrorType) {
	switch t {
	case ConceptualGap:
		d.ConceptualGap++
	case ProceduralError:
		d.ProceduralError++
	case CarelessMistake:
		d.CarelessMistake++
	case KnowledgeGap:
		d.KnowledgeGap++
	case Misinterpretation:
		d.Misinterpretation++
	}
}

// Count returns the count for t.
func (d ErrorDistribution) Count(t ErrorType) int {
	switch t {
	case ConceptualGap:
		return d.ConceptualGap
	case ProceduralError:
		return d.ProceduralError
	case CarelessMistake:
		return d.CarelessMistake
	case KnowledgeGap:
		return d.KnowledgeGap
	case Misinterpretation:
		return d.Misinterpretation
	}
	return 0
}

// Total sums all category counts.
func (d ErrorDistribution) Total() int {
	return d.ConceptualGap + d.ProceduralError + d.CarelessMistake + d.KnowledgeGap + d.Misinterpretation
}

// ArgMax returns the category with the highest count. Ties resolve to the
// earlier category in ErrorTypes order. The second return is false when every
// count is zero.
func (d ErrorDistribution) ArgMax() (ErrorType, bool) {
	best := ErrorTypes[0]
	bestCount := d.Count(best)
	for _, t := range ErrorTypes[1:] {
		if c := d.Count(t); c > bestCount {
			best, bestCount = t, c
		}
	}
	if bestCount == 0 {
		return "", false
	}
	return best, true
}

// Clamp zeroes any negative counts. Model-supplied distributions pass through
// here before use.
func (d *ErrorDistribution) Clamp() {
	if d.ConceptualGap < 0 {
		d.ConceptualGap = 0
	}
	if d.ProceduralError < 0 {
		d.ProceduralError = 0
	}
	if d.CarelessMistake < 0 {
		d.CarelessMistake = 0
	}
	if d.KnowledgeGap < 0 {
		d.KnowledgeGap = 0
	}
	if d.Misinterpretation < 0 {
		d.Misinterpretation = 0
	}
}

// RootCauseAnalysis pairs the error distribution with its headline category.
// PrimaryWeakness always equals the arg-max of ErrorDistribution.
type RootCauseAnalysis struct {
	PrimaryWeakness   ErrorType         `json:"primary_weakness"`
	ErrorDistribution ErrorDistribution `json:"error_distribution"`
}

// PredictedJambScore projects the student's JAMB result from quiz accuracy.
type PredictedJambScore struct {
	Score              int    `json:"score"`
	ConfidenceInterval string `json:"confidence_interval"`
}

// StudyPlan is a six-week schedule. The length is a hard product contract;
// any other length fails validation outright.
type StudyPlan struct {
	WeeklySchedule []WeekPlan `json:"weekly_schedule"`
}

// WeekPlan is one week of the study plan.
type WeekPlan struct {
	Week          int      `json:"week"`
	Focus         string   `json:"focus"`
	StudyHours    int      `json:"study_hours"`
	KeyActivities []string `json:"key_activities"`
}

// Recommendation is a prioritized study action.
type Recommendation struct {
	Priority  int    `json:"priority"`
	Category  string `json:"category"`
	Action    string `json:"action"`
	Rationale string `json:"rationale"`
}

// canonicalCount is the number of canonical topics every report must carry.
var canonicalCount = len(taxonomy.Order)
