// Package repo is the persistence layer: users, quizzes, responses,
// diagnostics, study plans, progress, and the topic taxonomy. Two
// implementations exist, an in-memory store for development and tests and a
// Postgres-backed store for deployments.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// User is a registered student.
type User struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Email       string    `gorm:"uniqueIndex" json:"email"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone,omitempty"`
	TargetScore int       `json:"target_score"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Question is one diagnostic-bank entry.
type Question struct {
	ID         string         `gorm:"primaryKey" json:"id"`
	Topic      string         `json:"topic"`
	Text       string         `json:"text"`
	Options    datatypes.JSON `json:"options"`
	Answer     string         `json:"answer"`
	Difficulty string         `json:"difficulty"`
}

// Quiz is one diagnostic quiz session.
type Quiz struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	UserID          string    `gorm:"index" json:"user_id"`
	TotalQuestions  int       `json:"total_questions"`
	Status          string    `json:"status"`
	ScorePercentage float64   `json:"score_percentage"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

const (
	QuizStatusStarted   = "started"
	QuizStatusSubmitted = "submitted"
)

// QuizResponse is one stored answer within a submitted quiz.
type QuizResponse struct {
	ID               string    `gorm:"primaryKey" json:"id"`
	QuizID           string    `gorm:"index" json:"quiz_id"`
	QuestionID       string    `json:"question_id"`
	StudentAnswer    string    `json:"student_answer"`
	CorrectAnswer    string    `json:"correct_answer"`
	IsCorrect        bool      `json:"is_correct"`
	ExplanationText  string    `json:"explanation_text"`
	TimeSpentSeconds int       `json:"time_spent_seconds"`
	CreatedAt        time.Time `json:"created_at"`
}

// QuizResults bundles a quiz with its responses.
type QuizResults struct {
	Quiz      Quiz           `json:"quiz"`
	Responses []QuizResponse `json:"responses"`
}

// Diagnostic is a persisted analysis report for a quiz.
type Diagnostic struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	QuizID    string         `gorm:"index" json:"quiz_id"`
	Report    datatypes.JSON `json:"report"`
	CreatedAt time.Time      `json:"created_at"`
}

// StudyPlanRecord is a stored study plan. Adjustments create updated
// records; the diagnostic report itself is never edited.
type StudyPlanRecord struct {
	ID           string         `gorm:"primaryKey" json:"id"`
	UserID       string         `gorm:"index" json:"user_id"`
	DiagnosticID string         `json:"diagnostic_id"`
	PlanData     datatypes.JSON `json:"plan_data"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Progress is one topic-completion entry for a user.
type Progress struct {
	ID                        string    `gorm:"primaryKey" json:"id"`
	UserID                    string    `gorm:"index" json:"user_id"`
	TopicID                   string    `json:"topic_id"`
	Status                    string    `json:"status"`
	ResourcesViewed           int       `json:"resources_viewed"`
	PracticeProblemsCompleted int       `json:"practice_problems_completed"`
	CreatedAt                 time.Time `json:"created_at"`
}

// Topic is a canonical taxonomy entry with its prerequisite topic names.
type Topic struct {
	ID            string         `gorm:"primaryKey" json:"id"`
	Name          string         `json:"name"`
	Subject       string         `gorm:"index" json:"subject"`
	JambWeight    float64        `json:"jamb_weight"`
	Prerequisites datatypes.JSON `json:"prerequisite_topics"`
}

// PrerequisiteNames decodes the stored prerequisite list.
func (t Topic) PrerequisiteNames() []string {
	var names []string
	if len(t.Prerequisites) > 0 {
		_ = json.Unmarshal(t.Prerequisites, &names)
	}
	return names
}

// Dashboard is the aggregate analytics snapshot.
type Dashboard struct {
	TotalUsers   int     `json:"total_users"`
	TotalQuizzes int     `json:"total_quizzes"`
	AvgScore     float64 `json:"avg_score"`
}

// Repository is the persistence contract consumed by the route layer and, for
// TopicsBySubject only, by the analysis pipeline. Implementations must be
// safe for concurrent use.
type Repository interface {
	UpsertUser(ctx context.Context, user User) (*User, error)
	UserByID(ctx context.Context, id string) (*User, error)
	UserByEmail(ctx context.Context, email string) (*User, error)
	UpdateTargetScore(ctx context.Context, id string, targetScore int) (*User, error)

	DiagnosticQuestions(ctx context.Context, total int) ([]Question, error)
	CreateQuiz(ctx context.Context, quiz Quiz) (*Quiz, error)
	SaveQuizResponses(ctx context.Context, quizID string, responses []QuizResponse) error
	QuizResults(ctx context.Context, quizID string) (*QuizResults, error)

	SaveDiagnostic(ctx context.Context, d Diagnostic) (*Diagnostic, error)
	CreateStudyPlan(ctx context.Context, plan StudyPlanRecord) (*StudyPlanRecord, error)
	UpdateStudyPlan(ctx context.Context, id string, planData datatypes.JSON) (*StudyPlanRecord, error)
	StudyPlanByID(ctx context.Context, id string) (*StudyPlanRecord, error)

	UserProgress(ctx context.Context, userID string) ([]Progress, error)
	MarkProgressComplete(ctx context.Context, p Progress) (*Progress, error)

	TopicsBySubject(ctx context.Context, subject string) ([]Topic, error)
	AnalyticsDashboard(ctx context.Context) (*Dashboard, error)
}
