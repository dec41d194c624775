package diagnosis

import (
	"strings"
	"testing"
)

func TestGenerateStudyPlan_SixWeeksDefault(t *testing.T) {
	plan := GenerateStudyPlan([]string{"Algebra"}, 0)
	if len(plan.WeeklySchedule) != 6 {
		t.Fatalf("got %d weeks, want 6", len(plan.WeeklySchedule))
	}
	for i, wp := range plan.WeeklySchedule {
		if wp.Week != i+1 {
			t.Errorf("week %d numbered %d", i+1, wp.Week)
		}
	}
}

func TestGenerateStudyPlan_WeakTopicsFirst(t *testing.T) {
	plan := GenerateStudyPlan([]string{"Algebra", "Calculus"}, 6)
	if plan.WeeklySchedule[0].Focus != "Algebra: Core Concepts & Practice" {
		t.Errorf("week 1 focus = %q", plan.WeeklySchedule[0].Focus)
	}
	if plan.WeeklySchedule[1].Focus != "Calculus: Core Concepts & Practice" {
		t.Errorf("week 2 focus = %q", plan.WeeklySchedule[1].Focus)
	}
	if plan.WeeklySchedule[2].Focus != "Review & Advanced Topics" {
		t.Errorf("week 3 focus = %q", plan.WeeklySchedule[2].Focus)
	}
}

func TestGenerateStudyPlan_FinalWeekSimulation(t *testing.T) {
	plan := GenerateStudyPlan([]string{"Algebra"}, 6)
	last := plan.WeeklySchedule[5]
	if last.Focus != "Full Exam Simulation & Review" {
		t.Errorf("final week focus = %q", last.Focus)
	}
}

func TestGenerateStudyPlan_HoursFrontLoaded(t *testing.T) {
	plan := GenerateStudyPlan(nil, 6)
	for _, wp := range plan.WeeklySchedule {
		want := 6
		if wp.Week <= 3 {
			want = 8
		}
		if wp.StudyHours != want {
			t.Errorf("week %d: got %d hours, want %d", wp.Week, wp.StudyHours, want)
		}
	}
}

func TestGenerateStudyPlan_Activities(t *testing.T) {
	plan := GenerateStudyPlan([]string{"Algebra"}, 6)
	wk1 := plan.WeeklySchedule[0]
	if len(wk1.KeyActivities) != 3 {
		t.Fatalf("got %d activities, want 3", len(wk1.KeyActivities))
	}
	if wk1.KeyActivities[0] != "Review Algebra" {
		t.Errorf("got %q, want Review Algebra", wk1.KeyActivities[0])
	}
	wk2 := plan.WeeklySchedule[1]
	if wk2.KeyActivities[2] != "Take mini-quiz" {
		t.Errorf("even week checkpoint = %q, want Take mini-quiz", wk2.KeyActivities[2])
	}
}

func TestGenerateStudyPlan_Deterministic(t *testing.T) {
	a := GenerateStudyPlan([]string{"Algebra", "Calculus"}, 6)
	b := GenerateStudyPlan([]string{"Algebra", "Calculus"}, 6)
	if len(a.WeeklySchedule) != len(b.WeeklySchedule) {
		t.Fatal("plan lengths differ")
	}
	for i := range a.WeeklySchedule {
		if a.WeeklySchedule[i].Focus != b.WeeklySchedule[i].Focus {
			t.Errorf("week %d focus differs", i+1)
		}
	}
}

func TestAdjustPlan_DropsCompleted(t *testing.T) {
	plan := GenerateStudyPlan([]string{"Algebra", "Calculus"}, 6)
	adjusted := AdjustPlan(plan, []string{"algebra"}, nil)
	if len(adjusted.WeeklySchedule) != 6 {
		t.Fatalf("got %d weeks, want original length 6", len(adjusted.WeeklySchedule))
	}
	if adjusted.WeeklySchedule[0].Focus != "Calculus: Core Concepts & Practice" {
		t.Errorf("week 1 focus = %q, want Calculus first", adjusted.WeeklySchedule[0].Focus)
	}
	for _, wp := range adjusted.WeeklySchedule {
		if strings.HasPrefix(wp.Focus, "Algebra:") {
			t.Errorf("completed topic still scheduled: %q", wp.Focus)
		}
	}
}

func TestAdjustPlan_AddsNewWeakTopics(t *testing.T) {
	plan := GenerateStudyPlan([]string{"Algebra"}, 6)
	adjusted := AdjustPlan(plan, nil, []string{"Statistics and Probability"})
	if adjusted.WeeklySchedule[0].Focus != "Algebra: Core Concepts & Practice" {
		t.Errorf("week 1 focus = %q", adjusted.WeeklySchedule[0].Focus)
	}
	if adjusted.WeeklySchedule[1].Focus != "Statistics and Probability: Core Concepts & Practice" {
		t.Errorf("week 2 focus = %q, want new weak topic", adjusted.WeeklySchedule[1].Focus)
	}
}

func TestAdjustPlan_NoDuplicates(t *testing.T) {
	plan := GenerateStudyPlan([]string{"Algebra"}, 6)
	adjusted := AdjustPlan(plan, nil, []string{"algebra", "Algebra"})
	count := 0
	for _, wp := range adjusted.WeeklySchedule {
		if strings.HasPrefix(wp.Focus, "Algebra:") {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Algebra scheduled %d times, want 1", count)
	}
}

func TestFocusTopic(t *testing.T) {
	if got := focusTopic("Algebra: Core Concepts & Practice"); got != "Algebra" {
		t.Errorf("got %q, want Algebra", got)
	}
	if got := focusTopic("Review & Advanced Topics"); got != "" {
		t.Errorf("got %q, want empty for generic week", got)
	}
}
