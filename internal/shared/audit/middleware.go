package audit

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"bookshelf-backend/pkg/logger"
)

// Middleware records one audit row per API call. The write happens on a
// detached context so a slow or broken audit store cannot fail or cancel the
// request being served.
func Middleware(rec Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		entry := Entry{
			Function:   handlerName(c),
			Status:     StatusSuccess,
			Duration:   time.Since(start),
			HTTPMethod: c.Request.Method,
			Path:       c.Request.URL.Path,
			UserAgent:  c.Request.UserAgent(),
		}

		if c.Writer.Status() >= 400 {
			entry.Status = StatusError
			if len(c.Errors) > 0 {
				entry.Message = c.Errors.String()
			}
		}

		recordCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := rec.Record(recordCtx, entry); err != nil {
			// Swallow: the audit channel must never affect the request.
			logger.Error("audit record failed", err)
		}
	}
}

// handlerName reduces gin's fully qualified handler path to the bare method
// name, e.g. "bookshelf-backend/internal/domains/catalog/handler.(*BookHandler).List-fm"
// becomes "List".
func handlerName(c *gin.Context) string {
	name := c.HandlerName()
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}
