package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Tessa-777/StudyGapAI-Backend/internal/repo"
)

const (
	questionsCacheTTL = 2 * time.Minute
	resultsCacheTTL   = 2 * time.Minute
)

func (s *Server) questions(c *gin.Context) {
	total, err := strconv.Atoi(c.DefaultQuery("total", "30"))
	if err != nil || total <= 0 {
		total = 30
	}
	ctx := c.Request.Context()

	key := fmt.Sprintf("questions:%d", total)
	if b, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		c.Data(http.StatusOK, "application/json", b)
		return
	}

	questions, err := s.repo.DiagnosticQuestions(ctx, total)
	if err != nil {
		failFromError(c, err)
		return
	}
	if b, err := json.Marshal(questions); err == nil {
		_ = s.cache.Set(ctx, key, b, questionsCacheTTL)
	}
	c.JSON(http.StatusOK, questions)
}

type startQuizRequest struct {
	TotalQuestions int `json:"totalQuestions"`
}

func (s *Server) startQuiz(c *gin.Context) {
	var req startQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if req.TotalQuestions <= 0 {
		req.TotalQuestions = 30
	}

	quiz, err := s.repo.CreateQuiz(c.Request.Context(), repo.Quiz{
		UserID:         currentUserID(c),
		TotalQuestions: req.TotalQuestions,
	})
	if err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

type submitResponse struct {
	QuestionID       string `json:"questionId"`
	StudentAnswer    string `json:"studentAnswer"`
	CorrectAnswer    string `json:"correctAnswer"`
	IsCorrect        bool   `json:"isCorrect"`
	ExplanationText  string `json:"explanationText"`
	TimeSpentSeconds int    `json:"timeSpentSeconds"`
}

type submitQuizRequest struct {
	Responses []submitResponse `json:"responses" binding:"required,min=1"`
}

func (s *Server) submitQuiz(c *gin.Context) {
	quizID := c.Param("id")

	var req submitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	ctx := c.Request.Context()
	if !s.ownsQuiz(c, quizID) {
		return
	}

	responses := make([]repo.QuizResponse, 0, len(req.Responses))
	for _, r := range req.Responses {
		responses = append(responses, repo.QuizResponse{
			QuizID:           quizID,
			QuestionID:       r.QuestionID,
			StudentAnswer:    r.StudentAnswer,
			CorrectAnswer:    r.CorrectAnswer,
			IsCorrect:        r.IsCorrect,
			ExplanationText:  r.ExplanationText,
			TimeSpentSeconds: r.TimeSpentSeconds,
		})
	}

	if err := s.repo.SaveQuizResponses(ctx, quizID, responses); err != nil {
		failFromError(c, err)
		return
	}
	_ = s.cache.Delete(ctx, "quiz_results:"+quizID)
	c.JSON(http.StatusOK, gin.H{"status": "submitted"})
}

func (s *Server) quizResults(c *gin.Context) {
	quizID := c.Param("id")
	ctx := c.Request.Context()

	key := "quiz_results:" + quizID
	if b, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		var cached repo.QuizResults
		if json.Unmarshal(b, &cached) == nil {
			if cached.Quiz.UserID != currentUserID(c) {
				fail(c, http.StatusForbidden, "forbidden", "access denied")
				return
			}
			c.Data(http.StatusOK, "application/json", b)
			return
		}
	}

	results, err := s.repo.QuizResults(ctx, quizID)
	if err != nil {
		failFromError(c, err)
		return
	}
	if results.Quiz.UserID != currentUserID(c) {
		fail(c, http.StatusForbidden, "forbidden", "quiz not found or access denied")
		return
	}

	if b, err := json.Marshal(results); err == nil {
		_ = s.cache.Set(ctx, key, b, resultsCacheTTL)
	}
	c.JSON(http.StatusOK, results)
}

// ownsQuiz verifies the quiz exists and belongs to the caller, writing the
// error response itself when not.
func (s *Server) ownsQuiz(c *gin.Context, quizID string) bool {
	results, err := s.repo.QuizResults(c.Request.Context(), quizID)
	if err != nil || results.Quiz.UserID != currentUserID(c) {
		fail(c, http.StatusForbidden, "forbidden", "quiz not found or access denied")
		return false
	}
	return true
}
