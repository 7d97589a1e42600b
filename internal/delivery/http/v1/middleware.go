package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDCtxKey = "request_id"
)

// HandleRequestLogger tags the request with an ID and logs it once the
// rest of the chain has run.
func (h *handlerImpl) HandleRequestLogger(c *gin.Context) {
	requestID := c.GetHeader(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set(requestIDCtxKey, requestID)
	c.Header(requestIDHeader, requestID)

	start := time.Now()
	c.Next()

	status := c.Writer.Status()
	var event *zerolog.Event
	switch {
	case status >= 500:
		event = h.logger.Error()
	case status >= 400:
		event = h.logger.Warn()
	default:
		event = h.logger.Info()
	}
	event.
		Str("request_id", requestID).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Int("status", status).
		Dur("latency", time.Since(start)).
		Msg("handled request")
}
