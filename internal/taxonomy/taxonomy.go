// Package taxonomy maps free-text topic names onto the five canonical JAMB
// Mathematics topics. The mapping is total: any input, including garbage,
// resolves to exactly one canonical topic.
package taxonomy

import "strings"

// Canonical is one of the five fixed top-level subject areas.
type Canonical string

const (
	NumberAndNumeration       Canonical = "Number and Numeration"
	Algebra                   Canonical = "Algebra"
	GeometryAndTrigonometry   Canonical = "Geometry and Trigonometry"
	Calculus                  Canonical = "Calculus"
	StatisticsAndProbability  Canonical = "Statistics and Probability"
)

// Order is the canonical topic ordering used everywhere a deterministic
// sequence is needed: aggregation output, tie-breaks, study plan sequencing.
var Order = []Canonical{
	NumberAndNumeration,
	Algebra,
	GeometryAndTrigonometry,
	Calculus,
	StatisticsAndProbability,
}

// prereqIndex maps lowercase prerequisite names to their canonical topic.
// Built once from the seed table; when a prerequisite name appears under more
// than one canonical topic, the first topic in taxonomy order wins.
var prereqIndex map[string]Canonical

func init() {
	prereqIndex = make(map[string]Canonical, 128)
	for _, c := range Order {
		for _, p := range seedPrerequisites[c] {
			key := strings.ToLower(p)
			if _, ok := prereqIndex[key]; !ok {
				prereqIndex[key] = c
			}
		}
	}
}

// Prerequisites returns the seed prerequisite names for a canonical topic.
func Prerequisites(c Canonical) []string {
	return seedPrerequisites[c]
}

// Weight returns the relative JAMB exam weight of a canonical topic.
func Weight(c Canonical) float64 {
	return seedWeights[c]
}

// MapToCanonical resolves any topic name to a canonical topic. Lookup order:
// canonical exact match, prerequisite exact match, prerequisite containment,
// canonical containment, keyword buckets, then the first canonical topic.
func MapToCanonical(name string) Canonical {
	cleaned := Clean(name)
	if cleaned == "" {
		return NumberAndNumeration
	}
	lower := strings.ToLower(cleaned)

	for _, c := range Order {
		if lower == strings.ToLower(string(c)) {
			return c
		}
	}

	if c, ok := prereqIndex[lower]; ok {
		return c
	}

	// Containment against prerequisites, scanned in taxonomy order so that
	// an ambiguous fragment resolves deterministically.
	for _, c := range Order {
		for _, p := range seedPrerequisites[c] {
			pl := strings.ToLower(p)
			if strings.Contains(lower, pl) || strings.Contains(pl, lower) {
				return c
			}
		}
	}

	for _, c := range Order {
		cl := strings.ToLower(string(c))
		if strings.Contains(lower, cl) || strings.Contains(cl, lower) {
			return c
		}
	}

	for _, c := range Order {
		for _, kw := range seedKeywords[c] {
			if strings.Contains(lower, kw) {
				return c
			}
		}
	}

	return NumberAndNumeration
}

// Clean strips surrounding whitespace and any "Subject: " style prefix from a
// topic name.
func Clean(name string) string {
	s := strings.TrimSpace(name)
	if i := strings.LastIndex(s, ":"); i >= 0 {
		s = strings.TrimSpace(s[i+1:])
	}
	return s
}

// IsCanonical reports whether name is exactly one of the five canonical
// topics (case-insensitive).
func IsCanonical(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, c := range Order {
		if lower == strings.ToLower(string(c)) {
			return true
		}
	}
	return false
}
