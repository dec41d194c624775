package diagnosis

// Keyword tables backing the error classifier. The classifier scans these in
// classifierOrder; tuning the taxonomy means editing the tables, not the
// control flow.

var classifierOrder = []ErrorType{
	Misinterpretation,
	KnowledgeGap,
	CarelessMistake,
	ConceptualGap,
	ProceduralError,
}

var classifierKeywords = map[ErrorType][]string{
	ConceptualGap: {
		"concept", "understand", "why", "reasoning", "logic", "fundamental", "principle", "theory",
	},
	ProceduralError: {
		"step", "method", "process", "procedure", "formula", "calculation", "solve", "approach",
	},
	CarelessMistake: {
		"mistake", "error", "wrong sign", "forgot", "missed", "accident", "careless", "silly",
	},
	KnowledgeGap: {
		"don't know", "never learned", "unfamiliar", "haven't studied", "missing", "lack",
	},
	Misinterpretation: {
		"misread", "misunderstood", "confused", "thought", "assumed", "interpret",
	},
}
