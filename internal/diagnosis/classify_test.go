package diagnosis

import (
	"testing"

	"github.com/Tessa-777/StudyGapAI-Backend/internal/quiz"
)

func TestClassifyError_CorrectResponse(t *testing.T) {
	_, ok := ClassifyError(quiz.Response{IsCorrect: true})
	if ok {
		t.Error("correct response classified, want no error type")
	}
}

func TestClassifyError_Misinterpretation(t *testing.T) {
	got, ok := ClassifyError(quiz.Response{
		Explanation: "I misread the question and solved for the wrong variable",
		Confidence:  3,
	})
	if !ok || got != Misinterpretation {
		t.Errorf("got %q, want %q", got, Misinterpretation)
	}
}

func TestClassifyError_KnowledgeGapKeyword(t *testing.T) {
	got, _ := ClassifyError(quiz.Response{
		Explanation: "I don't know this topic at all",
		Confidence:  1,
	})
	if got != KnowledgeGap {
		t.Errorf("got %q, want %q", got, KnowledgeGap)
	}
}

func TestClassifyError_CarelessRequiresHighConfidence(t *testing.T) {
	// Slip language with low confidence is not a careless mistake.
	low, _ := ClassifyError(quiz.Response{
		Explanation: "silly mistake, I knew this one",
		Confidence:  2,
	})
	if low == CarelessMistake {
		t.Errorf("low-confidence slip classified as %q", CarelessMistake)
	}

	high, _ := ClassifyError(quiz.Response{
		Explanation: "silly mistake, I knew this one",
		Confidence:  5,
	})
	if high != CarelessMistake {
		t.Errorf("got %q, want %q", high, CarelessMistake)
	}
}

func TestClassifyError_FallbackHighConfidence(t *testing.T) {
	// No keyword match; confident wrong answer reads as a slip.
	got, _ := ClassifyError(quiz.Response{
		Explanation: "the answer looked obviously right when I picked it",
		Confidence:  4,
	})
	if got != CarelessMistake {
		t.Errorf("got %q, want %q", got, CarelessMistake)
	}
}

func TestClassifyError_FallbackShortExplanation(t *testing.T) {
	got, _ := ClassifyError(quiz.Response{Explanation: "no idea", Confidence: 2})
	if got != KnowledgeGap {
		t.Errorf("got %q, want %q", got, KnowledgeGap)
	}
}

func TestClassifyError_FallbackProcedural(t *testing.T) {
	got, _ := ClassifyError(quiz.Response{
		Explanation: "I tried to calculate it but something went sideways near the end",
		Confidence:  2,
	})
	if got != ProceduralError {
		t.Errorf("got %q, want %q", got, ProceduralError)
	}
}

func TestClassifyError_Total(t *testing.T) {
	// Every incorrect response gets a category, whatever its shape.
	inputs := []quiz.Response{
		{},
		{Explanation: ""},
		{Explanation: "??", Confidence: 1},
		{Explanation: "a perfectly ordinary long explanation without trigger words inside it", Confidence: 3},
	}
	for i, r := range inputs {
		got, ok := ClassifyError(r)
		if !ok {
			t.Errorf("input %d: no category returned", i)
		}
		if !IsValidErrorType(string(got)) {
			t.Errorf("input %d: got invalid category %q", i, got)
		}
	}
}

func TestDistribution_SumsIncorrect(t *testing.T) {
	dist := Distribution([]quiz.Response{
		{IsCorrect: true},
		{Explanation: "I don't know this", Confidence: 1},
		{Explanation: "I don't know this either", Confidence: 1},
	})
	if dist.Total() != 2 {
		t.Errorf("got total %d, want 2", dist.Total())
	}
	if dist.KnowledgeGap != 2 {
		t.Errorf("got knowledge_gap %d, want 2", dist.KnowledgeGap)
	}
}

func TestDistribution_NeverAllZeroWithErrors(t *testing.T) {
	dist := Distribution([]quiz.Response{{IsCorrect: false}})
	if dist.Total() == 0 {
		t.Error("distribution is all-zero despite an incorrect response")
	}
}

func TestDistribution_AllCorrect(t *testing.T) {
	dist := Distribution([]quiz.Response{{IsCorrect: true}, {IsCorrect: true}})
	if dist.Total() != 0 {
		t.Errorf("got total %d, want 0", dist.Total())
	}
	if _, ok := dist.ArgMax(); ok {
		t.Error("ArgMax returned a category for an all-zero distribution")
	}
}

func TestArgMax_TieBreak(t *testing.T) {
	// Equal counts resolve to the earlier category in fixed order.
	d := ErrorDistribution{ConceptualGap: 2, KnowledgeGap: 2}
	got, ok := d.ArgMax()
	if !ok || got != ConceptualGap {
		t.Errorf("got %q, want %q", got, ConceptualGap)
	}
}

func TestClamp_ZeroesNegatives(t *testing.T) {
	d := ErrorDistribution{ConceptualGap: -3, KnowledgeGap: 1}
	d.Clamp()
	if d.ConceptualGap != 0 {
		t.Errorf("got conceptual_gap %d, want 0", d.ConceptualGap)
	}
	if d.KnowledgeGap != 1 {
		t.Errorf("got knowledge_gap %d, want 1", d.KnowledgeGap)
	}
}
