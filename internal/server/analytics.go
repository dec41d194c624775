package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const dashboardCacheTTL = time.Minute

func (s *Server) analyticsDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	const key = "analytics:dashboard"
	if b, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		c.Data(http.StatusOK, "application/json", b)
		return
	}

	data, err := s.repo.AnalyticsDashboard(ctx)
	if err != nil {
		failFromError(c, err)
		return
	}
	if b, err := json.Marshal(data); err == nil {
		_ = s.cache.Set(ctx, key, b, dashboardCacheTTL)
	}
	c.JSON(http.StatusOK, data)
}
