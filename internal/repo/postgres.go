package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Postgres is the Repository backed by a Postgres database via gorm.
type Postgres struct {
	db *gorm.DB
}

// NewPostgres connects to dsn, migrates the schema, and seeds the taxonomy
// and question bank when empty.
func NewPostgres(dsn string) (*Postgres, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.AutoMigrate(
		&User{}, &Question{}, &Quiz{}, &QuizResponse{},
		&Diagnostic{}, &StudyPlanRecord{}, &Progress{}, &Topic{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	p := &Postgres{db: db}
	if err := p.seed(); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return p, nil
}

func (p *Postgres) seed() error {
	var topicCount int64
	if err := p.db.Model(&Topic{}).Count(&topicCount).Error; err != nil {
		return err
	}
	if topicCount == 0 {
		topics := SeedTopics("Mathematics")
		if err := p.db.Create(&topics).Error; err != nil {
			return err
		}
	}

	var questionCount int64
	if err := p.db.Model(&Question{}).Count(&questionCount).Error; err != nil {
		return err
	}
	if questionCount == 0 {
		questions := SeedQuestions()
		if err := p.db.Create(&questions).Error; err != nil {
			return err
		}
	}
	return nil
}

func (p *Postgres) UpsertUser(ctx context.Context, user User) (*User, error) {
	if user.ID == "" {
		var existing User
		err := p.db.WithContext(ctx).Where("lower(email) = ?", strings.ToLower(user.Email)).First(&existing).Error
		switch {
		case err == nil:
			user.ID = existing.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			user.ID = uuid.NewString()
		default:
			return nil, err
		}
	}

	user.UpdatedAt = time.Now()
	err := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "name", "phone", "updated_at"}),
	}).Create(&user).Error
	if err != nil {
		return nil, err
	}
	return p.UserByID(ctx, user.ID)
}

func (p *Postgres) UserByID(ctx context.Context, id string) (*User, error) {
	var user User
	if err := p.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (p *Postgres) UserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := p.db.WithContext(ctx).Where("lower(email) = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (p *Postgres) UpdateTargetScore(ctx context.Context, id string, targetScore int) (*User, error) {
	res := p.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(map[string]any{
		"target_score": targetScore,
		"updated_at":   time.Now(),
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return p.UserByID(ctx, id)
}

func (p *Postgres) DiagnosticQuestions(ctx context.Context, total int) ([]Question, error) {
	if total <= 0 {
		total = 30
	}
	var questions []Question
	err := p.db.WithContext(ctx).Order("id").Limit(total).Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (p *Postgres) CreateQuiz(ctx context.Context, quiz Quiz) (*Quiz, error) {
	if quiz.ID == "" {
		quiz.ID = uuid.NewString()
	}
	quiz.Status = QuizStatusStarted
	if err := p.db.WithContext(ctx).Create(&quiz).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (p *Postgres) SaveQuizResponses(ctx context.Context, quizID string, responses []QuizResponse) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var quiz Quiz
		if err := tx.First(&quiz, "id = ?", quizID).Error; err != nil {
			return notFound(err)
		}

		correct := 0
		for i := range responses {
			if responses[i].ID == "" {
				responses[i].ID = uuid.NewString()
			}
			responses[i].QuizID = quizID
			if responses[i].IsCorrect {
				correct++
			}
		}
		if len(responses) > 0 {
			if err := tx.Create(&responses).Error; err != nil {
				return err
			}
			quiz.ScorePercentage = float64(correct) / float64(len(responses)) * 100.0
		}

		quiz.Status = QuizStatusSubmitted
		quiz.UpdatedAt = time.Now()
		return tx.Save(&quiz).Error
	})
}

func (p *Postgres) QuizResults(ctx context.Context, quizID string) (*QuizResults, error) {
	var quiz Quiz
	if err := p.db.WithContext(ctx).First(&quiz, "id = ?", quizID).Error; err != nil {
		return nil, notFound(err)
	}
	var responses []QuizResponse
	if err := p.db.WithContext(ctx).Where("quiz_id = ?", quizID).Order("created_at").Find(&responses).Error; err != nil {
		return nil, err
	}
	return &QuizResults{Quiz: quiz, Responses: responses}, nil
}

func (p *Postgres) SaveDiagnostic(ctx context.Context, d Diagnostic) (*Diagnostic, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if err := p.db.WithContext(ctx).Create(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (p *Postgres) CreateStudyPlan(ctx context.Context, plan StudyPlanRecord) (*StudyPlanRecord, error) {
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	if err := p.db.WithContext(ctx).Create(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (p *Postgres) UpdateStudyPlan(ctx context.Context, id string, planData datatypes.JSON) (*StudyPlanRecord, error) {
	res := p.db.WithContext(ctx).Model(&StudyPlanRecord{}).Where("id = ?", id).Updates(map[string]any{
		"plan_data":  planData,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return p.StudyPlanByID(ctx, id)
}

func (p *Postgres) StudyPlanByID(ctx context.Context, id string) (*StudyPlanRecord, error) {
	var plan StudyPlanRecord
	if err := p.db.WithContext(ctx).First(&plan, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &plan, nil
}

func (p *Postgres) UserProgress(ctx context.Context, userID string) ([]Progress, error) {
	var items []Progress
	err := p.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (p *Postgres) MarkProgressComplete(ctx context.Context, prog Progress) (*Progress, error) {
	if prog.ID == "" {
		prog.ID = uuid.NewString()
	}
	if err := p.db.WithContext(ctx).Create(&prog).Error; err != nil {
		return nil, err
	}
	return &prog, nil
}

func (p *Postgres) TopicsBySubject(ctx context.Context, subject string) ([]Topic, error) {
	var topics []Topic
	err := p.db.WithContext(ctx).Where("lower(subject) = ?", strings.ToLower(subject)).Order("name").Find(&topics).Error
	if err != nil {
		return nil, err
	}
	return topics, nil
}

func (p *Postgres) AnalyticsDashboard(ctx context.Context) (*Dashboard, error) {
	d := &Dashboard{}

	var users int64
	if err := p.db.WithContext(ctx).Model(&User{}).Count(&users).Error; err != nil {
		return nil, err
	}
	d.TotalUsers = int(users)

	var quizzes int64
	if err := p.db.WithContext(ctx).Model(&Quiz{}).Count(&quizzes).Error; err != nil {
		return nil, err
	}
	d.TotalQuizzes = int(quizzes)

	var avg *float64
	err := p.db.WithContext(ctx).Model(&Quiz{}).
		Where("status = ?", QuizStatusSubmitted).
		Select("avg(score_percentage)").Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	if avg != nil {
		d.AvgScore = *avg
	}
	return d, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
