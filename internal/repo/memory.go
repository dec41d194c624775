package repo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Memory is an in-process Repository seeded with the canonical taxonomy and
// a starter question bank. Used in development and tests.
type Memory struct {
	mu         sync.RWMutex
	users      map[string]User
	questions  []Question
	quizzes    map[string]Quiz
	responses  map[string][]QuizResponse
	diags      map[string]Diagnostic
	plans      map[string]StudyPlanRecord
	progress   map[string][]Progress
	topics     []Topic
	now        func() time.Time
}

// NewMemory creates a seeded in-memory repository.
func NewMemory() *Memory {
	return &Memory{
		users:     make(map[string]User),
		questions: SeedQuestions(),
		quizzes:   make(map[string]Quiz),
		responses: make(map[string][]QuizResponse),
		diags:     make(map[string]Diagnostic),
		plans:     make(map[string]StudyPlanRecord),
		progress:  make(map[string][]Progress),
		topics:    SeedTopics("Mathematics"),
		now:       time.Now,
	}
}

func (m *Memory) UpsertUser(_ context.Context, user User) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user.ID == "" {
		// Upsert by email when no explicit ID was supplied.
		for _, u := range m.users {
			if strings.EqualFold(u.Email, user.Email) {
				user.ID = u.ID
				user.CreatedAt = u.CreatedAt
				break
			}
		}
	}
	if existing, ok := m.users[user.ID]; ok {
		user.CreatedAt = existing.CreatedAt
		if user.TargetScore == 0 {
			user.TargetScore = existing.TargetScore
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = m.now()
	}
	user.UpdatedAt = m.now()

	m.users[user.ID] = user
	out := user
	return &out, nil
}

func (m *Memory) UserByID(_ context.Context, id string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := u
	return &out, nil
}

func (m *Memory) UserByEmail(_ context.Context, email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			out := u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UpdateTargetScore(_ context.Context, id string, targetScore int) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u.TargetScore = targetScore
	u.UpdatedAt = m.now()
	m.users[id] = u
	out := u
	return &out, nil
}

func (m *Memory) DiagnosticQuestions(_ context.Context, total int) ([]Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if total <= 0 || total > len(m.questions) {
		total = len(m.questions)
	}
	out := make([]Question, total)
	copy(out, m.questions[:total])
	return out, nil
}

func (m *Memory) CreateQuiz(_ context.Context, quiz Quiz) (*Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if quiz.ID == "" {
		quiz.ID = uuid.NewString()
	}
	quiz.Status = QuizStatusStarted
	quiz.CreatedAt = m.now()
	quiz.UpdatedAt = quiz.CreatedAt
	m.quizzes[quiz.ID] = quiz
	out := quiz
	return &out, nil
}

func (m *Memory) SaveQuizResponses(_ context.Context, quizID string, responses []QuizResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	quiz, ok := m.quizzes[quizID]
	if !ok {
		return ErrNotFound
	}

	stored := make([]QuizResponse, 0, len(responses))
	correct := 0
	for _, r := range responses {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		r.QuizID = quizID
		r.CreatedAt = m.now()
		if r.IsCorrect {
			correct++
		}
		stored = append(stored, r)
	}
	m.responses[quizID] = stored

	quiz.Status = QuizStatusSubmitted
	if len(stored) > 0 {
		quiz.ScorePercentage = float64(correct) / float64(len(stored)) * 100.0
	}
	quiz.UpdatedAt = m.now()
	m.quizzes[quizID] = quiz
	return nil
}

func (m *Memory) QuizResults(_ context.Context, quizID string) (*QuizResults, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	quiz, ok := m.quizzes[quizID]
	if !ok {
		return nil, ErrNotFound
	}
	responses := make([]QuizResponse, len(m.responses[quizID]))
	copy(responses, m.responses[quizID])
	return &QuizResults{Quiz: quiz, Responses: responses}, nil
}

func (m *Memory) SaveDiagnostic(_ context.Context, d Diagnostic) (*Diagnostic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.CreatedAt = m.now()
	m.diags[d.ID] = d
	out := d
	return &out, nil
}

func (m *Memory) CreateStudyPlan(_ context.Context, plan StudyPlanRecord) (*StudyPlanRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	plan.CreatedAt = m.now()
	plan.UpdatedAt = plan.CreatedAt
	m.plans[plan.ID] = plan
	out := plan
	return &out, nil
}

func (m *Memory) UpdateStudyPlan(_ context.Context, id string, planData datatypes.JSON) (*StudyPlanRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	plan, ok := m.plans[id]
	if !ok {
		return nil, ErrNotFound
	}
	plan.PlanData = planData
	plan.UpdatedAt = m.now()
	m.plans[id] = plan
	out := plan
	return &out, nil
}

func (m *Memory) StudyPlanByID(_ context.Context, id string) (*StudyPlanRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	plan, ok := m.plans[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := plan
	return &out, nil
}

func (m *Memory) UserProgress(_ context.Context, userID string) ([]Progress, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Progress, len(m.progress[userID]))
	copy(out, m.progress[userID])
	return out, nil
}

func (m *Memory) MarkProgressComplete(_ context.Context, p Progress) (*Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = m.now()
	m.progress[p.UserID] = append(m.progress[p.UserID], p)
	out := p
	return &out, nil
}

func (m *Memory) TopicsBySubject(_ context.Context, subject string) ([]Topic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Topic
	for _, t := range m.topics {
		if strings.EqualFold(t.Subject, subject) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) AnalyticsDashboard(_ context.Context) (*Dashboard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d := &Dashboard{TotalUsers: len(m.users), TotalQuizzes: len(m.quizzes)}
	submitted := 0
	total := 0.0
	for _, q := range m.quizzes {
		if q.Status == QuizStatusSubmitted {
			submitted++
			total += q.ScorePercentage
		}
	}
	if submitted > 0 {
		d.AvgScore = total / float64(submitted)
	}
	return d, nil
}
