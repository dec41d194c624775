package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tessa-777/StudyGapAI-Backend/internal/diagnosis"
	"github.com/Tessa-777/StudyGapAI-Backend/internal/llm"
	"github.com/Tessa-777/StudyGapAI-Backend/internal/repo"
)

// fail writes the uniform error payload.
func fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": code, "message": message})
}

// failFromError maps domain errors onto HTTP responses. Gateway failures keep
// their HTTP-style status codes; contract violations from the model surface
// as a bad upstream response.
func failFromError(c *gin.Context, err error) {
	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		fail(c, apiErr.StatusCode, "ai_error", apiErr.Message)
		return
	}

	var valErr *diagnosis.ValidationError
	if errors.As(err, &valErr) {
		fail(c, http.StatusBadGateway, "invalid_ai_response", valErr.Error())
		return
	}

	var invalidResp *llm.ErrInvalidResponse
	if errors.As(err, &invalidResp) {
		fail(c, http.StatusBadGateway, "invalid_ai_response", invalidResp.Error())
		return
	}

	if errors.Is(err, repo.ErrNotFound) {
		fail(c, http.StatusNotFound, "not_found", "record not found")
		return
	}

	fail(c, http.StatusInternalServerError, "server_error", err.Error())
}
