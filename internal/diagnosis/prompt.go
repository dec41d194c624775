package diagnosis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Tessa-777/StudyGapAI-Backend/internal/quiz"
)

// TopicInfo is the taxonomy metadata included in the prompt so the model can
// aggregate prerequisite topics and sequence the study plan.
type TopicInfo struct {
	Name          string   `json:"name"`
	JambWeight    float64  `json:"jamb_weight"`
	Prerequisites []string `json:"prerequisites"`
}

// SystemInstruction fixes the model's role and output contract. The JSON-only
// requirement is load-bearing: the gateway strips markdown fences but performs
// no other repair on non-JSON output.
const SystemInstruction = `You are an expert Educational AI Diagnostician specializing in Nigerian JAMB Mathematics.
Your task is to analyze a student's quiz performance data and generate a precise diagnostic report and personalized 6-week study plan.

CORE RULES

Output Format: Return only a valid JSON object strictly following the provided schema. No markdown, no explanations outside the JSON.
Calculations: Apply all formulae correctly (Accuracy, Fluency Index, JAMB Score Projection).
Categorization: Use the thresholds below to assign topic strength categories.
Data Integrity: Use only the provided data. Do not invent or assume results.
Cultural Context: Interpret performance using JAMB standards (400 max score).
Depth of Reasoning: When analyzing errors, prioritize the student's reasoning explanations. Coherent reasoning carries more diagnostic weight than correctness alone.

TOPIC CATEGORIZATION LOGIC

CRITICAL: You MUST return ONLY the 5 main topics in topic_breakdown. These are:
1. Number and Numeration
2. Algebra
3. Geometry and Trigonometry
4. Calculus
5. Statistics and Probability

DO NOT return prerequisite topics (like "Number bases", "Fractions", "Polynomials") as separate entries.

AGGREGATION REQUIREMENT:
- If questions reference prerequisite topics, you MUST aggregate their data into the corresponding main topic.
- For example: questions about "Number bases", "Fractions", "Decimals" all belong under "Number and Numeration"; questions about "Polynomials" or "Equations" belong under "Algebra".
- Calculate the aggregated accuracy, fluency index, and error distribution for each main topic by combining all its prerequisite topics' data.

Calculate Fluency Index (FI) for each MAIN topic (after aggregation):
FI = (Topic Accuracy) * (Average Topic Confidence / 5)

Assign Status based on thresholds:
WEAK: FI < 50 OR Accuracy < 60%
DEVELOPING: FI 50-70 OR Accuracy 60-75%
STRONG: FI > 70 AND Accuracy > 75%

VERIFICATION: Before returning, verify that exactly 5 topics are in topic_breakdown, all topic names match the 5 main topics exactly (no "Subject: " prefix), and no prerequisite topics appear as separate entries.

FOUNDATIONAL DEPENDENCY LOGIC

You will be provided with a list of topics and their prerequisite dependencies. Use this data to infer which foundational topics underlie the student's weaknesses, and design the 6-week study plan in the correct learning sequence so students rebuild their knowledge from the ground up. Always highlight root-level foundational gaps, not just surface topics.

ERROR ANALYSIS (Five Categories)

Each incorrect response must be classified into one of these five error types: conceptual_gap, procedural_error, careless_mistake, knowledge_gap, misinterpretation.

Definitions:
Conceptual Gap: misunderstanding of the core idea (not knowing why formulas work).
Procedural Error: knows the concept but applies it incorrectly (wrong steps).
Careless Mistake: simple arithmetic or sign error despite understanding.
Knowledge Gap: missing prerequisite knowledge (cannot handle fractions or negatives).
Misinterpretation: misreads the question or misuses given data.

Each incorrect answer's explanation must be analyzed to detect and increment the correct error type count.

JAMB SCORE PROJECTION

Base Score = (Quiz Accuracy) * 400
Final Score = min(max(Base + Adjustment + Bonus, 0), 400)

STUDY PLAN GENERATION

Create a 6-week structured plan focusing on root causes first (from the prerequisites list), following logical topic progression based on dependencies. Include targeted actions and curated activities (practice drills, conceptual reviews, problem-solving exercises).

OUTPUT REQUIREMENTS

Return ONLY a valid JSON diagnostic report matching the expected schema, including:
- analysis_summary: a concise 2-4 sentence summary written in SECOND PERSON ("You exhibit...", "Your performance shows...") highlighting root causes, cognitive patterns, and foundational weaknesses. It is displayed directly to the student, so use "you/your", never "the student".
- topic_breakdown: exactly 5 topics, each with topic (just the name, e.g. "Algebra"), accuracy, fluency_index, status, questions_attempted, severity, dominant_error_type.
- root_cause_analysis, predicted_jamb_score, study_plan (exactly 6 weeks), recommendations.

All numeric and text fields must be filled appropriately. No markdown, no extra commentary.`

// BuildUserPrompt renders the per-request section of the prompt. Pure and
// stable for identical input; the cache key upstream depends on that.
func BuildUserPrompt(sub quiz.Submission, topics []TopicInfo) string {
	var b strings.Builder

	b.WriteString("Analyze the following quiz performance data and generate the diagnostic report.\n\n")
	b.WriteString("Quiz Metadata:\n")
	fmt.Fprintf(&b, "- Subject: %s\n", sub.Subject)
	fmt.Fprintf(&b, "- Total Questions: %d\n", sub.TotalQuestions)
	fmt.Fprintf(&b, "- Time Taken: %g minutes\n\n", sub.TimeTakenMinutes)

	b.WriteString("Question Data:\n")
	for i, r := range sub.Responses {
		explanation := r.Explanation
		if explanation == "" {
			explanation = "No explanation provided"
		}
		confidence := r.Confidence
		if !r.HasConfidence() {
			confidence = 3
		}
		fmt.Fprintf(&b,
			"  Question %d: %s - Student Answer: %s, Correct Answer: %s, Correct: %t, Confidence: %d, Explanation: %s\n",
			i+1, r.Topic, r.StudentAnswer, r.CorrectAnswer, r.IsCorrect, confidence, explanation)
	}

	if len(topics) > 0 {
		topicsJSON, err := json.MarshalIndent(topics, "", "  ")
		if err == nil {
			b.WriteString("\nAvailable Topics and Prerequisites (use this to identify foundational dependencies and build the study plan in correct learning sequence):\n")
			b.Write(topicsJSON)
			b.WriteString("\n\nCRITICAL AGGREGATION INSTRUCTIONS:\n")
			b.WriteString("- The topics listed above are the 5 MAIN topics you must return in topic_breakdown.\n")
			b.WriteString("- If a question's topic matches a PREREQUISITE topic, aggregate that question's data into the corresponding MAIN topic.\n")
			b.WriteString("- You MUST return exactly 5 topics in topic_breakdown, one for each main topic.\n")
			b.WriteString("- Topic names must be just the topic name (e.g. \"Algebra\"), NOT \"Mathematics: Algebra\".\n")
			b.WriteString("- If a main topic has no questions, still include it with 0 questions_attempted, 0% accuracy, and \"weak\" status.\n")
		}
	}

	b.WriteString("\nYour Task: Execute the full diagnostic framework, aggregate prerequisite topics into main topics, and output the JSON report with exactly 5 topics.")
	return b.String()
}
