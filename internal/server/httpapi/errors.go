package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/trackmydeposits/internal/common"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/services"
)

const internalErrorMessage = "Internal server error"

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrTokenRevoked),
		errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// abortWithMessage ends the request with a {message} body.
func abortWithMessage(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}

// abortWithError writes err as {message}. Errors without a public message
// are logged and reported as a generic internal error.
func (h *handler) abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := services.MessageOf(err)

	if msg == "" || status >= http.StatusInternalServerError {
		h.log.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	}
	if msg == "" {
		msg = internalErrorMessage
		status = http.StatusInternalServerError
	}

	abortWithMessage(c, status, msg)
}
