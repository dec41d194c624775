package diagnosis

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/Tessa-777/StudyGapAI-Backend/internal/llm"
	"github.com/Tessa-777/StudyGapAI-Backend/internal/quiz"
)

// ValidationError marks model output that violated a structural contract
// with no safe repair: a missing required section, unparseable JSON, or a
// study plan of the wrong length. Everything else is corrected silently.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid diagnostic response: %s", e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

const defaultConfidenceInterval = "± 25 points"

// ValidateAndRepair turns raw model output into a Report that satisfies every
// invariant, recomputing numeric fields from the submission itself wherever
// ground truth exists. Only qualitative content (summary, plan text,
// recommendations) is trusted from the model. Fails with *ValidationError for
// unrecoverable structural omissions; never returns a partial report.
func ValidateAndRepair(raw json.RawMessage, sub quiz.Submission, logger *zap.Logger) (*Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, &ValidationError{Reason: "response is not a JSON object", Err: err}
	}
	if err := llm.ValidateSchema(structuralSchema, raw); err != nil {
		return nil, &ValidationError{Reason: "missing required sections", Err: err}
	}

	responses := sub.Responses
	report := &Report{}

	// The model's arithmetic is never trusted; every overall metric comes
	// from the submission.
	accuracy := sub.Accuracy()
	report.OverallPerformance = OverallPerformance{
		Accuracy:        round2(accuracy),
		TotalQuestions:  len(responses),
		CorrectAnswers:  sub.CorrectCount(),
		AvgConfidence:   round2(quiz.AvgConfidence(responses)),
		TimePerQuestion: round2(timePerQuestion(sub)),
	}

	// Per-topic metrics are re-derived from the raw responses; the model's
	// breakdown contributes only error-type hints. A breakdown that does
	// not even unmarshal is treated as absent, not fatal.
	var modelBreakdown []TopicBreakdown
	if err := json.Unmarshal(sections["topic_breakdown"], &modelBreakdown); err != nil {
		logger.Warn("discarding unreadable topic_breakdown", zap.Error(err))
		modelBreakdown = nil
	}
	report.TopicBreakdown = EnforceFiveTopics(modelBreakdown, responses)
	if n := len(report.TopicBreakdown); n != canonicalCount {
		return nil, &ValidationError{Reason: fmt.Sprintf("aggregation produced %d topics", n)}
	}

	report.RootCauseAnalysis = repairRootCause(sections["root_cause_analysis"], responses, logger)

	report.PredictedJambScore = PredictedJambScore{
		Score:              jambScore(accuracy),
		ConfidenceInterval: confidenceInterval(sections["predicted_jamb_score"]),
	}

	plan, err := repairStudyPlan(sections["study_plan"])
	if err != nil {
		return nil, err
	}
	report.StudyPlan = *plan

	var recs []Recommendation
	if rawRecs, ok := sections["recommendations"]; ok {
		if err := json.Unmarshal(rawRecs, &recs); err != nil {
			logger.Warn("discarding unreadable recommendations", zap.Error(err))
			recs = nil
		}
	}
	if recs == nil {
		recs = []Recommendation{}
	}
	report.Recommendations = recs

	report.AnalysisSummary = repairSummary(sections["analysis_summary"], report)

	return report, nil
}

// repairRootCause rebuilds the error distribution and forces the headline
// weakness to agree with it.
func repairRootCause(raw json.RawMessage, responses []quiz.Response, logger *zap.Logger) RootCauseAnalysis {
	var declared struct {
		PrimaryWeakness   string            `json:"primary_weakness"`
		ErrorDistribution ErrorDistribution `json:"error_distribution"`
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &declared); err != nil {
			logger.Warn("discarding unreadable root_cause_analysis", zap.Error(err))
		}
	}

	dist := declared.ErrorDistribution
	dist.Clamp()

	incorrect := 0
	for _, r := range responses {
		if !r.IsCorrect {
			incorrect++
		}
	}

	// An empty distribution alongside incorrect answers means the model
	// skipped classification; the keyword classifier fills the gap so the
	// distribution chart is never blank.
	if dist.Total() == 0 && incorrect > 0 {
		dist = Distribution(responses)
	}

	primary, ok := dist.ArgMax()
	if !ok {
		primary = KnowledgeGap
	}

	if declared.PrimaryWeakness != "" && declared.PrimaryWeakness != string(primary) {
		logger.Info("overriding declared primary_weakness to match distribution",
			zap.String("declared", declared.PrimaryWeakness),
			zap.String("computed", string(primary)))
	}

	return RootCauseAnalysis{PrimaryWeakness: primary, ErrorDistribution: dist}
}

// repairStudyPlan accepts only a schedule of exactly six weeks. A plan of the
// wrong length breaks the product contract and has no safe auto-repair.
func repairStudyPlan(raw json.RawMessage) (*StudyPlan, error) {
	var plan StudyPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, &ValidationError{Reason: "unreadable study_plan", Err: err}
	}
	if n := len(plan.WeeklySchedule); n != 6 {
		return nil, &ValidationError{Reason: fmt.Sprintf("study plan must have exactly 6 weeks, got %d", n)}
	}
	return &plan, nil
}

// repairSummary keeps the model's summary when it is a non-empty string and
// otherwise synthesizes one from the repaired report.
func repairSummary(raw json.RawMessage, report *Report) string {
	var summary string
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &summary)
	}
	if strings.TrimSpace(summary) != "" {
		return summary
	}

	weakCount := 0
	for _, tb := range report.TopicBreakdown {
		if tb.Status == StatusWeak {
			weakCount++
		}
	}
	return synthesizeSummary(
		report.OverallPerformance.Accuracy,
		weakCount,
		report.RootCauseAnalysis.PrimaryWeakness,
	)
}

// weaknessLabels are the student-facing names of the error categories.
var weaknessLabels = map[ErrorType]string{
	ConceptualGap:     "conceptual understanding",
	ProceduralError:   "procedural application",
	CarelessMistake:   "attention to detail",
	KnowledgeGap:      "foundational knowledge",
	Misinterpretation: "question interpretation",
}

// synthesizeSummary builds the second-person fallback summary shown when the
// model omits one.
func synthesizeSummary(accuracy float64, weakCount int, primary ErrorType) string {
	var parts []string
	switch {
	case accuracy < 60:
		parts = append(parts, fmt.Sprintf("Your performance shows significant gaps with %.1f%% accuracy.", accuracy))
	case accuracy < 75:
		parts = append(parts, fmt.Sprintf("Your performance is developing with %.1f%% accuracy.", accuracy))
	default:
		parts = append(parts, fmt.Sprintf("You demonstrated strong performance with %.1f%% accuracy.", accuracy))
	}
	if weakCount > 0 {
		parts = append(parts, fmt.Sprintf("You have %d weak topic(s) requiring focused attention.", weakCount))
	}
	if label, ok := weaknessLabels[primary]; ok {
		parts = append(parts, fmt.Sprintf("Your primary weakness is in %s.", label))
	}
	return strings.Join(parts, " ")
}

// jambScore projects quiz accuracy onto the 0-400 JAMB scale.
func jambScore(accuracy float64) int {
	score := int(math.Round(accuracy / 100.0 * 400.0))
	if score < 0 {
		return 0
	}
	if score > 400 {
		return 400
	}
	return score
}

// confidenceInterval keeps the model's interval text unless it is missing or
// a placeholder sentinel.
func confidenceInterval(raw json.RawMessage) string {
	var declared struct {
		ConfidenceInterval string `json:"confidence_interval"`
	}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &declared)
	}
	ci := strings.TrimSpace(declared.ConfidenceInterval)
	if ci == "" || strings.EqualFold(ci, "n/a") {
		return defaultConfidenceInterval
	}
	return ci
}

func timePerQuestion(sub quiz.Submission) float64 {
	if len(sub.Responses) == 0 {
		return 0
	}
	return sub.TimeTakenMinutes * 60.0 / float64(len(sub.Responses))
}
