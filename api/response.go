package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	exportdomain "insights/internal/export/domain"
	shareddomain "insights/internal/shared/domain"
)

// Response enveloppe commune des réponses JSON
type Response struct {
	Status    string      `json:"status"`
	Message   string      `json:"message,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

// SuccessResponse écrit une réponse de succès
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Status:    "success",
		Message:   message,
		RequestID: c.GetString(requestIDKey),
		Data:      data,
	})
}

// ErrorResponse écrit une réponse d'échec
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, Response{
		Status:    "fail",
		Message:   message,
		RequestID: c.GetString(requestIDKey),
	})
}

// mapErrorToStatus traduit les catégories d'erreurs du domaine en code HTTP
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, shareddomain.ErrInvalidRange),
		errors.Is(err, shareddomain.ErrInvalidQuantity),
		errors.Is(err, shareddomain.ErrInvalidIdentifier),
		errors.Is(err, shareddomain.ErrInvalidAmount),
		errors.Is(err, exportdomain.ErrUnsupportedExport):
		return http.StatusBadRequest
	case errors.Is(err, shareddomain.ErrUnknownProduct):
		return http.StatusUnprocessableEntity
	case errors.Is(err, shareddomain.ErrNoSuggestion):
		return http.StatusNotFound
	case errors.Is(err, shareddomain.ErrConnectionFailure):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
