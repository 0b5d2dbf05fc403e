package server

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestID reuses the caller's X-Request-ID or assigns a new UUID, and
// echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// LoopbackHost rejects requests addressed to a foreign host name while the
// server listens on a loopback address, which defeats DNS rebinding.
func LoopbackHost(listenAddr string) gin.HandlerFunc {
	host, _, err := net.SplitHostPort(listenAddr)
	if err != nil || !isLoopback(host) {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		requested, _, splitErr := net.SplitHostPort(c.Request.Host)
		if splitErr != nil {
			requested = c.Request.Host
		}
		if !isLoopback(requested) {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Error:   "forbidden_host",
				Message: http.StatusText(http.StatusForbidden),
				Details: "host " + c.Request.Host + " is not served",
			})
			return
		}
		c.Next()
	}
}

func isLoopback(host string) bool {
	host = strings.Trim(strings.ToLower(host), "[]")
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// Logger logs one line per request through logrus.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(logger.Fields{
			"request_id": c.GetString(requestIDKey),
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
		})
		if len(c.Errors) > 0 {
			entry.Warn(c.Errors.String())
			return
		}
		entry.Info("request completed")
	}
}
