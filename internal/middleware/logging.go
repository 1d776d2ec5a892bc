package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"todolist-web/internal/logging"
)

// RequestLogger is a middleware that logs HTTP requests with detailed information
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		logEntry := logging.Current().WithFields(logrus.Fields{
			"client_ip": c.ClientIP(),
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"query":     c.Request.URL.RawQuery,
		})

		if userAgent := c.GetHeader("User-Agent"); userAgent != "" {
			logEntry = logEntry.WithField("user_agent", userAgent)
		}
		if isXHR(c) {
			logEntry = logEntry.WithField("xhr", true)
		}

		c.Next()

		latency := time.Since(startTime)
		statusCode := c.Writer.Status()

		logEntry = logEntry.WithFields(logrus.Fields{
			"status":        statusCode,
			"latency_ms":    latency.Milliseconds(),
			"response_size": c.Writer.Size(),
		})

		if len(c.Errors) > 0 {
			logEntry = logEntry.WithField("errors", c.Errors.String())
		}

		if statusCode == http.StatusTooManyRequests {
			logEntry = logEntry.WithField("rate_limited", true)
		}

		// Redirects are the normal answer to a form post
		if location := c.Writer.Header().Get("Location"); location != "" {
			logEntry = logEntry.WithField("location", location)
		}

		switch {
		case statusCode >= 500:
			logEntry.Error("Server error")
		case statusCode >= 400:
			logEntry.Warn("Client error")
		case statusCode >= 300:
			logEntry.Info("Redirect")
		default:
			logEntry.Info("Request completed")
		}
	}
}

func isXHR(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}
