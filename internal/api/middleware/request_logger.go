package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	CtxRequestID = "request_id"
	// CtxMatchResults holds the number of results a match handler returned.
	CtxMatchResults = "match_results"

	// DefaultSlowMatch is the latency above which a successful request is
	// logged at warn.
	DefaultSlowMatch = 2 * time.Second
)

type LoggerConfig struct {
	// SkipPaths are route patterns that are never logged, ex: "/ping".
	SkipPaths []string
	// SlowThreshold raises successful requests slower than it to warn.
	// Zero disables the check.
	SlowThreshold time.Duration
}

func RequestLogger(l logrus.FieldLogger) gin.HandlerFunc {
	return RequestLoggerWithConfig(l, LoggerConfig{SlowThreshold: DefaultSlowMatch})
}

// RequestLoggerWithConfig tags each request with an X-Request-Id and logs one
// line per request. Match requests also carry the size of the returned list
// when the handler records it under CtxMatchResults.
func RequestLoggerWithConfig(l logrus.FieldLogger, cfg LoggerConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header("X-Request-Id", reqID)
		c.Set(CtxRequestID, reqID)

		c.Next()

		path := c.FullPath()
		if _, ok := skip[path]; ok {
			return
		}

		status := c.Writer.Status()
		latency := time.Since(start)
		fields := logrus.Fields{
			"request_id": reqID,
			"method":     c.Request.Method,
			"path":       path,
			"status":     status,
			"latency_ms": latency.Milliseconds(),
			"user_id":    c.GetString(CtxUserID),
		}
		if companyID := c.GetString(CtxCompanyID); companyID != "" {
			fields["company_id"] = companyID
		}
		if n, ok := c.Get(CtxMatchResults); ok {
			fields["results"] = n
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}
		slow := cfg.SlowThreshold > 0 && latency > cfg.SlowThreshold
		if slow {
			fields["slow"] = true
		}
		entry := l.WithFields(fields)

		switch {
		case status >= 500:
			entry.Error("request")
		case status >= 400, slow:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}
