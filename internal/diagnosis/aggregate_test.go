package diagnosis

import (
	"testing"

	"github.com/Tessa-777/StudyGapAI-Backend/internal/quiz"
	"github.com/Tessa-777/StudyGapAI-Backend/internal/taxonomy"
)

func TestFluencyIndex(t *testing.T) {
	if got := FluencyIndex(80, 5); got != 80 {
		t.Errorf("got %f, want 80", got)
	}
	if got := FluencyIndex(80, 2.5); got != 40 {
		t.Errorf("got %f, want 40", got)
	}
	if got := FluencyIndex(-10, 3); got != 0 {
		t.Errorf("got %f, want clamp to 0", got)
	}
}

func TestStatusFor(t *testing.T) {
	if got := StatusFor(40, 80); got != StatusWeak {
		t.Errorf("low fluency: got %q, want %q", got, StatusWeak)
	}
	if got := StatusFor(80, 50); got != StatusWeak {
		t.Errorf("low accuracy: got %q, want %q", got, StatusWeak)
	}
	if got := StatusFor(80, 90); got != StatusStrong {
		t.Errorf("got %q, want %q", got, StatusStrong)
	}
	if got := StatusFor(60, 70); got != StatusDeveloping {
		t.Errorf("got %q, want %q", got, StatusDeveloping)
	}
}

func TestSeverityFor(t *testing.T) {
	if got := SeverityFor(StatusWeak, 30); got != SeverityCritical {
		t.Errorf("got %q, want %q", got, SeverityCritical)
	}
	if got := SeverityFor(StatusWeak, 55); got != SeverityModerate {
		t.Errorf("got %q, want %q", got, SeverityModerate)
	}
	if got := SeverityFor(StatusDeveloping, 70); got != SeverityModerate {
		t.Errorf("got %q, want %q", got, SeverityModerate)
	}
	if got := SeverityFor(StatusStrong, 90); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestEnforceFiveTopics_AlwaysFive(t *testing.T) {
	out := EnforceFiveTopics(nil, nil)
	if len(out) != 5 {
		t.Fatalf("got %d topics, want 5", len(out))
	}
	for i, tb := range out {
		if tb.Topic != string(taxonomy.Order[i]) {
			t.Errorf("position %d: got %q, want %q", i, tb.Topic, taxonomy.Order[i])
		}
	}
}

func TestEnforceFiveTopics_UnattemptedDefaults(t *testing.T) {
	out := EnforceFiveTopics(nil, nil)
	for _, tb := range out {
		if tb.Status != StatusWeak {
			t.Errorf("%s: got status %q, want %q", tb.Topic, tb.Status, StatusWeak)
		}
		if tb.Accuracy != 0 || tb.FluencyIndex != 0 || tb.QuestionsAttempted != 0 {
			t.Errorf("%s: unattempted topic carries nonzero metrics", tb.Topic)
		}
	}
}

func TestEnforceFiveTopics_MapsSubtopics(t *testing.T) {
	// Fractions rolls up to Number and Numeration, Polynomials to Algebra.
	responses := []quiz.Response{
		{Topic: "Fractions", IsCorrect: true, Confidence: 5},
		{Topic: "Fractions", IsCorrect: true, Confidence: 5},
		{Topic: "Polynomials", IsCorrect: false, Confidence: 1, Explanation: "I don't know this topic"},
	}
	out := EnforceFiveTopics(nil, responses)

	byName := make(map[string]TopicBreakdown)
	for _, tb := range out {
		byName[tb.Topic] = tb
	}

	num := byName[string(taxonomy.NumberAndNumeration)]
	if num.QuestionsAttempted != 2 {
		t.Errorf("Number and Numeration attempted = %d, want 2", num.QuestionsAttempted)
	}
	if num.Accuracy != 100 {
		t.Errorf("Number and Numeration accuracy = %f, want 100", num.Accuracy)
	}
	if num.Status != StatusStrong {
		t.Errorf("Number and Numeration status = %q, want %q", num.Status, StatusStrong)
	}

	alg := byName[string(taxonomy.Algebra)]
	if alg.QuestionsAttempted != 1 {
		t.Errorf("Algebra attempted = %d, want 1", alg.QuestionsAttempted)
	}
	if alg.Accuracy != 0 {
		t.Errorf("Algebra accuracy = %f, want 0", alg.Accuracy)
	}
	if alg.Status != StatusWeak {
		t.Errorf("Algebra status = %q, want %q", alg.Status, StatusWeak)
	}
	if alg.Severity != SeverityCritical {
		t.Errorf("Algebra severity = %q, want %q", alg.Severity, SeverityCritical)
	}
	if alg.DominantErrorType != KnowledgeGap {
		t.Errorf("Algebra dominant error = %q, want %q", alg.DominantErrorType, KnowledgeGap)
	}
}

func TestEnforceFiveTopics_ModelDominantHintKept(t *testing.T) {
	responses := []quiz.Response{
		{Topic: "Polynomials", IsCorrect: false, Confidence: 1, Explanation: "I don't know this topic"},
	}
	model := []TopicBreakdown{
		{Topic: "Algebra", DominantErrorType: ConceptualGap},
	}
	out := EnforceFiveTopics(model, responses)
	for _, tb := range out {
		if tb.Topic == string(taxonomy.Algebra) && tb.DominantErrorType != ConceptualGap {
			t.Errorf("got %q, want model hint %q kept", tb.DominantErrorType, ConceptualGap)
		}
	}
}

func TestEnforceFiveTopics_InvalidModelHintDiscarded(t *testing.T) {
	responses := []quiz.Response{
		{Topic: "Polynomials", IsCorrect: false, Confidence: 1, Explanation: "I don't know this topic"},
	}
	model := []TopicBreakdown{
		{Topic: "Algebra", DominantErrorType: "laziness"},
	}
	out := EnforceFiveTopics(model, responses)
	for _, tb := range out {
		if tb.Topic == string(taxonomy.Algebra) && tb.DominantErrorType != KnowledgeGap {
			t.Errorf("got %q, want classifier fallback %q", tb.DominantErrorType, KnowledgeGap)
		}
	}
}

func TestEnforceFiveTopics_ScoresBounded(t *testing.T) {
	responses := []quiz.Response{
		{Topic: "Fractions", IsCorrect: true, Confidence: 5},
		{Topic: "Circles", IsCorrect: false, Confidence: 1},
		{Topic: "Differentiation", IsCorrect: true, Confidence: 3},
	}
	for _, tb := range EnforceFiveTopics(nil, responses) {
		if tb.Accuracy < 0 || tb.Accuracy > 100 {
			t.Errorf("%s: accuracy %f out of range", tb.Topic, tb.Accuracy)
		}
		if tb.FluencyIndex < 0 || tb.FluencyIndex > 100 {
			t.Errorf("%s: fluency %f out of range", tb.Topic, tb.FluencyIndex)
		}
	}
}
