package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tessa-777/StudyGapAI-Backend/internal/repo"
)

func (s *Server) userProgress(c *gin.Context) {
	userID := c.Param("id")
	if userID != currentUserID(c) {
		fail(c, http.StatusForbidden, "forbidden", "cannot access other users' progress")
		return
	}
	s.writeProgress(c, userID)
}

func (s *Server) currentUserProgress(c *gin.Context) {
	s.writeProgress(c, currentUserID(c))
}

func (s *Server) writeProgress(c *gin.Context, userID string) {
	items, err := s.repo.UserProgress(c.Request.Context(), userID)
	if err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type markCompleteRequest struct {
	TopicID                   string `json:"topicId" binding:"required"`
	Status                    string `json:"status" binding:"required"`
	ResourcesViewed           int    `json:"resourcesViewed"`
	PracticeProblemsCompleted int    `json:"practiceProblemsCompleted"`
}

func (s *Server) markProgressComplete(c *gin.Context) {
	var req markCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	entry, err := s.repo.MarkProgressComplete(c.Request.Context(), repo.Progress{
		UserID:                    currentUserID(c),
		TopicID:                   req.TopicID,
		Status:                    req.Status,
		ResourcesViewed:           req.ResourcesViewed,
		PracticeProblemsCompleted: req.PracticeProblemsCompleted,
	})
	if err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}
