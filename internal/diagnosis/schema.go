package diagnosis

import "github.com/Tessa-777/StudyGapAI-Backend/internal/llm"

// ReportSchema is the structured-output schema sent with every generation
// request. It mirrors Report's JSON shape so the model emits the report
// directly, without a free-text intermediary.
var ReportSchema = &llm.Schema{
	Name: "diagnostic_report",
	Definition: map[string]any{
		"type": "object",
		"required": []any{
			"overall_performance",
			"topic_breakdown",
			"root_cause_analysis",
			"predicted_jamb_score",
			"study_plan",
			"recommendations",
			"analysis_summary",
		},
		"properties": map[string]any{
			"analysis_summary": map[string]any{
				"type":        "string",
				"description": "A concise 2-4 sentence summary in second person ('You exhibit...', 'Your performance shows...') highlighting root causes, cognitive patterns, and foundational weaknesses. Displayed directly to the student.",
			},
			"overall_performance": map[string]any{
				"type":     "object",
				"required": []any{"accuracy", "total_questions", "correct_answers", "avg_confidence", "time_per_question"},
				"properties": map[string]any{
					"accuracy":          map[string]any{"type": "number"},
					"total_questions":   map[string]any{"type": "integer"},
					"correct_answers":   map[string]any{"type": "integer"},
					"avg_confidence":    map[string]any{"type": "number"},
					"time_per_question": map[string]any{"type": "number"},
				},
			},
			"topic_breakdown": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"topic", "accuracy", "fluency_index", "status", "questions_attempted"},
					"properties": map[string]any{
						"topic":               map[string]any{"type": "string"},
						"accuracy":            map[string]any{"type": "number"},
						"fluency_index":       map[string]any{"type": "number"},
						"status":              map[string]any{"type": "string", "enum": []any{"weak", "developing", "strong"}},
						"questions_attempted": map[string]any{"type": "integer"},
						"severity":            map[string]any{"type": "string", "enum": []any{"critical", "moderate", "mild"}},
						"dominant_error_type": map[string]any{"type": "string"},
					},
				},
			},
			"root_cause_analysis": map[string]any{
				"type":     "object",
				"required": []any{"primary_weakness", "error_distribution"},
				"properties": map[string]any{
					"primary_weakness": map[string]any{
						"type": "string",
						"enum": []any{"conceptual_gap", "procedural_error", "careless_mistake", "knowledge_gap", "misinterpretation"},
					},
					"error_distribution": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"conceptual_gap":    map[string]any{"type": "integer"},
							"procedural_error":  map[string]any{"type": "integer"},
							"careless_mistake":  map[string]any{"type": "integer"},
							"knowledge_gap":     map[string]any{"type": "integer"},
							"misinterpretation": map[string]any{"type": "integer"},
						},
					},
				},
			},
			"predicted_jamb_score": map[string]any{
				"type":     "object",
				"required": []any{"score", "confidence_interval"},
				"properties": map[string]any{
					"score":               map[string]any{"type": "integer", "minimum": 0, "maximum": 400},
					"confidence_interval": map[string]any{"type": "string"},
				},
			},
			"study_plan": map[string]any{
				"type":     "object",
				"required": []any{"weekly_schedule"},
				"properties": map[string]any{
					"weekly_schedule": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []any{"week", "focus", "study_hours", "key_activities"},
							"properties": map[string]any{
								"week":        map[string]any{"type": "integer", "minimum": 1, "maximum": 6},
								"focus":       map[string]any{"type": "string"},
								"study_hours": map[string]any{"type": "integer"},
								"key_activities": map[string]any{
									"type":  "array",
									"items": map[string]any{"type": "string"},
								},
							},
						},
					},
				},
			},
			"recommendations": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"priority", "category", "action", "rationale"},
					"properties": map[string]any{
						"priority":  map[string]any{"type": "integer"},
						"category":  map[string]any{"type": "string"},
						"action":    map[string]any{"type": "string"},
						"rationale": map[string]any{"type": "string"},
					},
				},
			},
		},
	},
}

// structuralSchema is the permissive gate applied to raw model output before
// repair. It checks only that the required top-level sections exist; leaf
// values are repaired, not rejected.
var structuralSchema = &llm.Schema{
	Name: "diagnostic_report_structure",
	Definition: map[string]any{
		"type": "object",
		"required": []any{
			"overall_performance",
			"topic_breakdown",
			"root_cause_analysis",
			"predicted_jamb_score",
			"study_plan",
		},
	},
}
