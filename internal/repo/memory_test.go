package repo

import (
	"context"
	"errors"
	"testing"
)

func TestMemory_UpsertUser_NewAndByEmail(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	created, err := m.UpsertUser(ctx, User{Email: "ada@example.com", Name: "Ada"})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Fatal("no ID assigned")
	}

	// Same email without an ID updates the existing record.
	again, err := m.UpsertUser(ctx, User{Email: "ADA@example.com", Name: "Ada L."})
	if err != nil {
		t.Fatal(err)
	}
	if again.ID != created.ID {
		t.Errorf("got new ID %q, want reuse of %q", again.ID, created.ID)
	}
	if again.Name != "Ada L." {
		t.Errorf("name not updated: %q", again.Name)
	}
}

func TestMemory_UpsertUser_PreservesTargetScore(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	u, _ := m.UpsertUser(ctx, User{ID: "u1", Email: "a@b.c", TargetScore: 280})
	updated, err := m.UpsertUser(ctx, User{ID: u.ID, Email: "a@b.c", Name: "Renamed"})
	if err != nil {
		t.Fatal(err)
	}
	if updated.TargetScore != 280 {
		t.Errorf("got target score %d, want 280 preserved", updated.TargetScore)
	}
}

func TestMemory_UserByID_NotFound(t *testing.T) {
	m := NewMemory()
	_, err := m.UserByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestMemory_UpdateTargetScore(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	u, _ := m.UpsertUser(ctx, User{ID: "u1", Email: "a@b.c"})
	updated, err := m.UpdateTargetScore(ctx, u.ID, 320)
	if err != nil {
		t.Fatal(err)
	}
	if updated.TargetScore != 320 {
		t.Errorf("got %d, want 320", updated.TargetScore)
	}
}

func TestMemory_DiagnosticQuestions(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	qs, err := m.DiagnosticQuestions(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 5 {
		t.Errorf("got %d questions, want 5", len(qs))
	}

	all, _ := m.DiagnosticQuestions(ctx, 0)
	if len(all) == 0 {
		t.Error("seeded bank is empty")
	}

	over, _ := m.DiagnosticQuestions(ctx, 10000)
	if len(over) != len(all) {
		t.Errorf("oversized request returned %d, want %d", len(over), len(all))
	}
}

func TestMemory_QuizLifecycle(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	quiz, err := m.CreateQuiz(ctx, Quiz{UserID: "u1", TotalQuestions: 2})
	if err != nil {
		t.Fatal(err)
	}
	if quiz.Status != QuizStatusStarted {
		t.Errorf("got status %q, want %q", quiz.Status, QuizStatusStarted)
	}

	err = m.SaveQuizResponses(ctx, quiz.ID, []QuizResponse{
		{QuestionID: "q1", IsCorrect: true},
		{QuestionID: "q2", IsCorrect: false},
	})
	if err != nil {
		t.Fatal(err)
	}

	results, err := m.QuizResults(ctx, quiz.ID)
	if err != nil {
		t.Fatal(err)
	}
	if results.Quiz.Status != QuizStatusSubmitted {
		t.Errorf("got status %q, want %q", results.Quiz.Status, QuizStatusSubmitted)
	}
	if results.Quiz.ScorePercentage != 50 {
		t.Errorf("got score %f, want 50", results.Quiz.ScorePercentage)
	}
	if len(results.Responses) != 2 {
		t.Errorf("got %d responses, want 2", len(results.Responses))
	}
}

func TestMemory_SaveResponses_UnknownQuiz(t *testing.T) {
	m := NewMemory()
	err := m.SaveQuizResponses(context.Background(), "missing", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestMemory_StudyPlanLifecycle(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	plan, err := m.CreateStudyPlan(ctx, StudyPlanRecord{UserID: "u1", PlanData: []byte(`{"weekly_schedule":[]}`)})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := m.UpdateStudyPlan(ctx, plan.ID, []byte(`{"weekly_schedule":[{"week":1}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if string(updated.PlanData) == string(plan.PlanData) {
		t.Error("plan data not updated")
	}

	fetched, err := m.StudyPlanByID(ctx, plan.ID)
	if err != nil {
		t.Fatal(err)
	}
	if string(fetched.PlanData) != string(updated.PlanData) {
		t.Error("fetched plan does not match update")
	}
}

func TestMemory_Progress(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	entry, err := m.MarkProgressComplete(ctx, Progress{UserID: "u1", TopicID: "t1", Status: "completed"})
	if err != nil {
		t.Fatal(err)
	}
	if entry.ID == "" {
		t.Error("no ID assigned")
	}

	items, err := m.UserProgress(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Errorf("got %d entries, want 1", len(items))
	}

	none, _ := m.UserProgress(ctx, "other")
	if len(none) != 0 {
		t.Errorf("got %d entries for other user, want 0", len(none))
	}
}

func TestMemory_TopicsSeeded(t *testing.T) {
	m := NewMemory()
	topics, err := m.TopicsBySubject(context.Background(), "mathematics")
	if err != nil {
		t.Fatal(err)
	}
	if len(topics) != 5 {
		t.Fatalf("got %d topics, want 5", len(topics))
	}
	for _, topic := range topics {
		if topic.JambWeight <= 0 {
			t.Errorf("topic %q has no weight", topic.Name)
		}
		if len(topic.PrerequisiteNames()) == 0 {
			t.Errorf("topic %q has no prerequisites", topic.Name)
		}
	}
}

func TestMemory_AnalyticsDashboard(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, _ = m.UpsertUser(ctx, User{ID: "u1", Email: "a@b.c"})
	quiz, _ := m.CreateQuiz(ctx, Quiz{UserID: "u1", TotalQuestions: 1})
	_ = m.SaveQuizResponses(ctx, quiz.ID, []QuizResponse{{QuestionID: "q1", IsCorrect: true}})

	d, err := m.AnalyticsDashboard(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if d.TotalUsers != 1 || d.TotalQuizzes != 1 {
		t.Errorf("got %d users %d quizzes, want 1/1", d.TotalUsers, d.TotalQuizzes)
	}
	if d.AvgScore != 100 {
		t.Errorf("got avg score %f, want 100", d.AvgScore)
	}
}
