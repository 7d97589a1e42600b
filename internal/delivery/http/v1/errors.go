package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/taskboard/internal/models"
	"github.com/adanyl0v/taskboard/internal/services"
)

var (
	errInvalidRequestBody = errors.New("invalid request body")
	errTaskNotFound       = errors.New("task not found")

	errUnsupportedValidator = errors.New("unsupported binding validator")
)

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

// newStoreError maps a task store failure to a response.
func newStoreError(err error) apiError {
	switch {
	case errors.Is(err, services.ErrBackend):
		return newStatusTextError(http.StatusBadGateway)
	case errors.Is(err, models.ErrInvalidPriority),
		errors.Is(err, models.ErrInvalidStatus),
		errors.Is(err, models.ErrInvalidDueDate):
		return newBadRequestError(err.Error())
	default:
		return newStatusTextError(http.StatusInternalServerError)
	}
}
