package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/scholars/internal/pkg/email"
)

// RequestContext records request details on the request context so failures reported
// to operators can describe the request they happened in
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		info := email.RequestInfo{
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			ClientIP:  c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		c.Request = c.Request.WithContext(email.WithRequestInfo(c.Request.Context(), info))
		c.Next()
	}
}

// RequestLogger logs one line per request
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		actor := ActorFromContext(c)
		event := log.Info()
		if c.Writer.Status() >= 500 {
			event = log.Error()
		} else if c.Writer.Status() >= 400 {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("clientIP", c.ClientIP()).
			Int64("actorID", actor.ID).
			Bool("anonymous", actor.Anonymous).
			Msg("Request handled")
	}
}
