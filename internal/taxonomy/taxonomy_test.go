package taxonomy

import "testing"

func TestMapToCanonical_ExactCanonical(t *testing.T) {
	if got := MapToCanonical("Algebra"); got != Algebra {
		t.Errorf("got %q, want %q", got, Algebra)
	}
	if got := MapToCanonical("statistics and probability"); got != StatisticsAndProbability {
		t.Errorf("got %q, want %q", got, StatisticsAndProbability)
	}
}

func TestMapToCanonical_PrerequisiteNames(t *testing.T) {
	cases := map[string]Canonical{
		"Fractions":   NumberAndNumeration,
		"Polynomials": Algebra,
		"Circles":     GeometryAndTrigonometry,
		"Logarithms":  NumberAndNumeration,
	}
	for name, want := range cases {
		if got := MapToCanonical(name); got != want {
			t.Errorf("MapToCanonical(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestMapToCanonical_Containment(t *testing.T) {
	if got := MapToCanonical("Solving quadratic equations"); got != Algebra {
		t.Errorf("got %q, want %q", got, Algebra)
	}
	if got := MapToCanonical("Fractions and ratios"); got != NumberAndNumeration {
		t.Errorf("got %q, want %q", got, NumberAndNumeration)
	}
}

func TestMapToCanonical_PrefixStripped(t *testing.T) {
	if got := MapToCanonical("Mathematics: Polynomials"); got != Algebra {
		t.Errorf("got %q, want %q", got, Algebra)
	}
}

func TestMapToCanonical_Total(t *testing.T) {
	// Garbage input still resolves to a canonical topic.
	for _, name := range []string{"", "   ", "xyzzy", "Underwater basket weaving"} {
		got := MapToCanonical(name)
		if !IsCanonical(string(got)) {
			t.Errorf("MapToCanonical(%q) = %q, not canonical", name, got)
		}
	}
	if got := MapToCanonical("xyzzy"); got != NumberAndNumeration {
		t.Errorf("unknown topic: got %q, want fallback %q", got, NumberAndNumeration)
	}
}

func TestClean(t *testing.T) {
	if got := Clean("  Mathematics: Fractions  "); got != "Fractions" {
		t.Errorf("got %q, want Fractions", got)
	}
	if got := Clean("Fractions"); got != "Fractions" {
		t.Errorf("got %q, want Fractions", got)
	}
}

func TestIsCanonical(t *testing.T) {
	if !IsCanonical("number and numeration") {
		t.Error("case-insensitive canonical name rejected")
	}
	if IsCanonical("Fractions") {
		t.Error("prerequisite name accepted as canonical")
	}
}

func TestOrderAndWeights(t *testing.T) {
	if len(Order) != 5 {
		t.Fatalf("got %d canonical topics, want 5", len(Order))
	}
	total := 0.0
	for _, c := range Order {
		w := Weight(c)
		if w <= 0 {
			t.Errorf("topic %q has non-positive weight %f", c, w)
		}
		total += w
	}
	if total < 0.999 || total > 1.001 {
		t.Errorf("weights sum to %f, want 1.0", total)
	}
}

func TestPrerequisites_NonEmpty(t *testing.T) {
	for _, c := range Order {
		if len(Prerequisites(c)) == 0 {
			t.Errorf("topic %q has no prerequisites", c)
		}
	}
}
