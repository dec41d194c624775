// Package server wires the HTTP surface: routing, auth, CORS, and the
// handlers that sit between the wire and the repository/analysis layers.
package server

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tessa-777/StudyGapAI-Backend/internal/cache"
	"github.com/Tessa-777/StudyGapAI-Backend/internal/config"
	"github.com/Tessa-777/StudyGapAI-Backend/internal/diagnosis"
	"github.com/Tessa-777/StudyGapAI-Backend/internal/repo"
)

// Server hosts the REST API.
type Server struct {
	cfg    config.Config
	repo   repo.Repository
	cache  cache.Cache
	diag   *diagnosis.Service
	logger *zap.Logger
	router *gin.Engine
}

// New assembles the router with all middleware and routes registered.
func New(cfg config.Config, r repo.Repository, c cache.Cache, diag *diagnosis.Service, logger *zap.Logger) *Server {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:    cfg,
		repo:   r,
		cache:  c,
		diag:   diag,
		logger: logger,
		router: gin.New(),
	}

	s.router.Use(gin.Recovery())
	s.router.Use(requestLogger(logger))
	s.router.Use(corsMiddleware(cfg.CORSOrigins))

	s.registerRoutes()
	return s
}

// Run blocks serving HTTP on the configured port.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info("listening", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")

	users := api.Group("/users")
	{
		users.POST("/register", s.optionalAuth(), s.register)
		users.POST("/login", s.optionalAuth(), s.login)
		users.GET("/me", s.requireAuth(), s.currentUser)
		users.PUT("/target-score", s.requireAuth(), s.updateTargetScore)
		users.GET("/:id", s.optionalAuth(), s.userByID)
	}

	api.GET("/questions", s.questions)
	quiz := api.Group("/quiz", s.requireAuth())
	{
		quiz.POST("/start", s.startQuiz)
		quiz.POST("/:id/submit", s.submitQuiz)
		quiz.GET("/:id/results", s.quizResults)
	}

	ai := api.Group("/ai", s.requireAuth())
	{
		ai.POST("/analyze-diagnostic", s.analyzeDiagnostic)
		ai.POST("/generate-study-plan", s.generateStudyPlan)
		ai.POST("/adjust-plan", s.adjustPlan)
	}

	api.GET("/users/:id/progress", s.requireAuth(), s.userProgress)
	api.GET("/progress", s.requireAuth(), s.currentUserProgress)
	api.POST("/progress/mark-complete", s.requireAuth(), s.markProgressComplete)

	api.GET("/analytics/dashboard", s.analyticsDashboard)
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	conf := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	allowAll := false
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll || len(origins) == 0 {
		conf.AllowAllOrigins = true
		conf.AllowCredentials = false
	} else {
		conf.AllowOrigins = origins
	}
	return cors.New(conf)
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
