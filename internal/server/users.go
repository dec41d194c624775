package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Tessa-777/StudyGapAI-Backend/internal/repo"
)

const tokenLifetime = 7 * 24 * time.Hour

// signToken issues the bearer token the auth middleware accepts.
func (s *Server) signToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(tokenLifetime).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}

type registerRequest struct {
	Email  string `json:"email" binding:"required,email"`
	Name   string `json:"name" binding:"required"`
	Phone  string `json:"phone"`
	UserID string `json:"userId"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	// An authenticated caller syncs under their token subject; the body's
	// userId is only a fallback for unauthenticated registration.
	userID := currentUserID(c)
	if userID == "" {
		userID = req.UserID
	}

	user, err := s.repo.UpsertUser(c.Request.Context(), repo.User{
		ID:    userID,
		Email: req.Email,
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

type loginRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (s *Server) login(c *gin.Context) {
	ctx := c.Request.Context()

	if userID := currentUserID(c); userID != "" {
		user, err := s.repo.UserByID(ctx, userID)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"user": user, "authenticated": true})
			return
		}
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		fail(c, http.StatusBadRequest, "missing_fields", "email is required")
		return
	}

	user, err := s.repo.UserByEmail(ctx, req.Email)
	if err != nil {
		name := req.Name
		if name == "" {
			name = "Student"
		}
		user, err = s.repo.UpsertUser(ctx, repo.User{Email: req.Email, Name: name})
		if err != nil {
			failFromError(c, err)
			return
		}
	}

	token, err := s.signToken(user.ID)
	if err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token, "authenticated": false})
}

func (s *Server) currentUser(c *gin.Context) {
	user, err := s.repo.UserByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) userByID(c *gin.Context) {
	id := c.Param("id")
	if authed := currentUserID(c); authed != "" && authed != id {
		fail(c, http.StatusForbidden, "forbidden", "cannot access other users' profiles")
		return
	}

	user, err := s.repo.UserByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type targetScoreRequest struct {
	TargetScore int `json:"targetScore" binding:"required"`
}

func (s *Server) updateTargetScore(c *gin.Context) {
	var req targetScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user, err := s.repo.UpdateTargetScore(c.Request.Context(), currentUserID(c), req.TargetScore)
	if err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
