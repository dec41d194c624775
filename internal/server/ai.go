package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/Tessa-777/StudyGapAI-Backend/internal/diagnosis"
	"github.com/Tessa-777/StudyGapAI-Backend/internal/quiz"
	"github.com/Tessa-777/StudyGapAI-Backend/internal/repo"
)

type analyzeResponseItem struct {
	QuestionID       string `json:"questionId"`
	Topic            string `json:"topic"`
	StudentAnswer    string `json:"studentAnswer"`
	CorrectAnswer    string `json:"correctAnswer"`
	IsCorrect        bool   `json:"isCorrect"`
	Confidence       int    `json:"confidence"`
	Explanation      string `json:"explanation"`
	TimeSpentSeconds int    `json:"timeSpentSeconds"`
}

type analyzeRequest struct {
	QuizID           string                `json:"quizId" binding:"required"`
	Subject          string                `json:"subject"`
	TimeTakenMinutes float64               `json:"timeTaken"`
	Responses        []analyzeResponseItem `json:"responses" binding:"required,min=1"`
}

func (s *Server) analyzeDiagnostic(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if !s.ownsQuiz(c, req.QuizID) {
		return
	}

	sub := quiz.Submission{
		Subject:          req.Subject,
		TotalQuestions:   len(req.Responses),
		TimeTakenMinutes: req.TimeTakenMinutes,
		Responses:        make([]quiz.Response, 0, len(req.Responses)),
	}
	if sub.TimeTakenMinutes <= 0 {
		// Callers that never timed the quiz still get an analysis; assume
		// one minute per question.
		sub.TimeTakenMinutes = float64(len(req.Responses))
	}
	for _, r := range req.Responses {
		sub.Responses = append(sub.Responses, quiz.Response{
			ID:               r.QuestionID,
			Topic:            r.Topic,
			StudentAnswer:    r.StudentAnswer,
			CorrectAnswer:    r.CorrectAnswer,
			IsCorrect:        r.IsCorrect,
			Confidence:       r.Confidence,
			Explanation:      r.Explanation,
			TimeSpentSeconds: r.TimeSpentSeconds,
		})
	}

	report, err := s.diag.AnalyzeDiagnostic(c.Request.Context(), sub)
	if err != nil {
		failFromError(c, err)
		return
	}

	diagnostic := s.persistDiagnostic(c.Request.Context(), req.QuizID, report)

	c.JSON(http.StatusOK, struct {
		ID string `json:"id,omitempty"`
		*diagnosis.Report
	}{ID: diagnostic, Report: report})
}

// persistDiagnostic stores the report; persistence failure is logged, not
// surfaced, since the analysis itself succeeded.
func (s *Server) persistDiagnostic(ctx context.Context, quizID string, report *diagnosis.Report) string {
	b, err := json.Marshal(report)
	if err != nil {
		return ""
	}
	d, err := s.repo.SaveDiagnostic(ctx, repo.Diagnostic{
		QuizID: quizID,
		Report: datatypes.JSON(b),
	})
	if err != nil {
		s.logger.Warn("failed to persist diagnostic")
		return ""
	}
	return d.ID
}

type generatePlanRequest struct {
	DiagnosticID string   `json:"diagnosticId" binding:"required"`
	WeakTopics   []string `json:"weakTopics" binding:"required"`
	TargetScore  int      `json:"targetScore" binding:"required"`
	CurrentScore int      `json:"currentScore"`
	Weeks        int      `json:"weeksAvailable"`
}

func (s *Server) generateStudyPlan(c *gin.Context) {
	var req generatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if req.CurrentScore == 0 {
		req.CurrentScore = 150
	}

	ctx := c.Request.Context()
	plan, err := s.diag.BuildStudyPlan(ctx, req.WeakTopics, req.TargetScore, req.CurrentScore, req.Weeks)
	if err != nil {
		failFromError(c, err)
		return
	}

	planJSON, err := json.Marshal(plan)
	if err != nil {
		failFromError(c, err)
		return
	}
	stored, err := s.repo.CreateStudyPlan(ctx, repo.StudyPlanRecord{
		UserID:       currentUserID(c),
		DiagnosticID: req.DiagnosticID,
		PlanData:     datatypes.JSON(planJSON),
	})
	if err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stored)
}

type adjustPlanRequest struct {
	StudyPlanID     string   `json:"studyPlanId" binding:"required"`
	CompletedTopics []string `json:"completedTopics"`
	NewWeakTopics   []string `json:"newWeakTopics"`
}

func (s *Server) adjustPlan(c *gin.Context) {
	var req adjustPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	ctx := c.Request.Context()
	existing, err := s.repo.StudyPlanByID(ctx, req.StudyPlanID)
	if err != nil {
		failFromError(c, err)
		return
	}
	if existing.UserID != currentUserID(c) {
		fail(c, http.StatusForbidden, "forbidden", "access denied")
		return
	}

	var plan diagnosis.StudyPlan
	if err := json.Unmarshal(existing.PlanData, &plan); err != nil {
		fail(c, http.StatusInternalServerError, "server_error", "stored plan is unreadable")
		return
	}

	adjusted := diagnosis.AdjustPlan(plan, req.CompletedTopics, req.NewWeakTopics)
	adjustedJSON, err := json.Marshal(adjusted)
	if err != nil {
		failFromError(c, err)
		return
	}

	updated, err := s.repo.UpdateStudyPlan(ctx, req.StudyPlanID, datatypes.JSON(adjustedJSON))
	if err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updatedPlan": updated})
}
