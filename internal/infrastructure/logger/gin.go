package logger

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// gin context keys written by the request ID and auth middleware
const (
	ginRequestIDKey = "request_id"
	ginUserIDKey    = "jwt_user_id"
)

// AccessLog attaches a request logger to the request context and writes one
// line per request once the handler chain returns. Requests to skipPaths
// still get a logger but no access line.
func AccessLog(base *zap.Logger, skipPaths ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		ctx, log := WithRequestID(req.Context(),
			base.With(zap.String("method", req.Method), zap.String("path", req.URL.Path)),
			c.GetString(ginRequestIDKey))
		c.Request = req.WithContext(ctx)

		c.Next()

		if slices.Contains(skipPaths, req.URL.Path) {
			return
		}
		status := c.Writer.Status()
		if ce := log.Check(statusLevel(status), "HTTP Request"); ce != nil {
			ce.Write(accessFields(c, status, time.Since(start))...)
		}
	}
}

func statusLevel(status int) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel
	}
	return zapcore.InfoLevel
}

func accessFields(c *gin.Context, status int, latency time.Duration) []zap.Field {
	fields := []zap.Field{
		zap.Int("status", status),
		zap.Duration("latency", latency),
		zap.String("client_ip", c.ClientIP()),
		zap.String("user_agent", c.Request.UserAgent()),
		zap.Int("body_size", c.Writer.Size()),
	}
	if q := c.Request.URL.RawQuery; q != "" {
		fields = append(fields, zap.String("query", q))
	}
	if uid := c.GetInt64(ginUserIDKey); uid != 0 {
		fields = append(fields, zap.Int64("user_id", uid))
	}
	if len(c.Errors) > 0 {
		fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
	}
	return fields
}

// Recovery turns a handler panic into a logged 500 carrying the usual
// error envelope.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			requestID := c.GetString(ginRequestIDKey)
			log.Error("Panic recovered",
				zap.String("request_id", requestID),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Any("panic", rec),
				zap.Stack("stacktrace"))

			const msg = "Internal server error"
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"detail":  msg,
				"error":   gin.H{"code": "ERR_INTERNAL", "message": msg, "request_id": requestID},
			})
		}()
		c.Next()
	}
}
