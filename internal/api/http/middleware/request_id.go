package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"strings"
	"time"

	"github.com/GoSim-25-26J-441/issue-tracker/internal/logging"
	"github.com/gin-gonic/gin"
)

const requestIDHeader = "X-Request-Id"

// RequestID makes sure every request carries an ID: the incoming
// X-Request-Id header when present, a fresh one otherwise. The ID is stored
// on the gin and request contexts, echoed in the response header, and
// written to the access log line together with the project path parameter.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if rid == "" {
			rid = newRequestID()
		}

		c.Set("request_id", rid)
		c.Request = c.Request.WithContext(logging.WithRequestID(c.Request.Context(), rid))
		c.Writer.Header().Set(requestIDHeader, rid)

		start := time.Now()
		c.Next()

		log.Printf(
			"[req] id=%s method=%s path=%s project=%q status=%d latency=%s client=%s",
			rid,
			c.Request.Method,
			c.Request.URL.Path,
			c.Param("project"),
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
		)
	}
}

// GetRequestID extracts the request ID from a standard context
func GetRequestID(ctx context.Context) string {
	return logging.RequestID(ctx)
}

func newRequestID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err == nil {
		return hex.EncodeToString(b)
	}
	return time.Now().Format("20060102T150405.000000000")
}
