package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkadlec/passvault/internal/common"
)

// ErrorResponse is the uniform error envelope every failed request carries.
type ErrorResponse struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

// respondError sends the error envelope with the given status.
func respondError(c *gin.Context, statusCode int, errorLabel, message string) {
	c.JSON(statusCode, ErrorResponse{
		Success:    false,
		Error:      errorLabel,
		Message:    message,
		StatusCode: statusCode,
	})
}

// respondServiceError maps service-layer sentinel errors onto the HTTP error
// taxonomy. Unexpected errors become a generic 500 without leaking internals.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		respondError(c, http.StatusBadRequest, "invalid input", err.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		respondError(c, http.StatusUnauthorized, "invalid credentials", "email or password is incorrect")
	case errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrTokenKindMismatch):
		respondError(c, http.StatusUnauthorized, "invalid token", "token is missing, expired or malformed")
	case errors.Is(err, common.ErrConflict):
		respondError(c, http.StatusConflict, "already exists", "a record with these values already exists")
	case errors.Is(err, common.ErrorNotFound):
		respondError(c, http.StatusNotFound, "not found", "the requested record does not exist")
	default:
		respondError(c, http.StatusInternalServerError, "internal server error", "an unexpected error occurred")
	}
}
