package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const userIDKey = "user_id"

// requireAuth rejects requests without a valid bearer token and stores the
// authenticated user ID on the context.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := s.authenticate(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "valid bearer token required",
			})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// optionalAuth stores the user ID when a valid token is present and lets the
// request through either way.
func (s *Server) optionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, err := s.authenticate(c); err == nil {
			c.Set(userIDKey, userID)
		}
		c.Next()
	}
}

func (s *Server) authenticate(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return "", jwt.ErrTokenMalformed
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", jwt.ErrTokenSignatureInvalid
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", jwt.ErrTokenInvalidSubject
	}
	return sub, nil
}

// currentUserID returns the authenticated user ID set by requireAuth.
func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
