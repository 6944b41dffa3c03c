package logger

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func accessRouter(log *zap.Logger, status int) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ginRequestIDKey, "req-123")
		c.Next()
	})
	router.Use(AccessLog(log, "/health"))
	handler := func(c *gin.Context) {
		FromContext(c.Request.Context()).Info("inside handler")
		c.Set(ginUserIDKey, int64(5))
		c.Status(status)
	}
	router.GET("/items", handler)
	router.GET("/health", handler)
	return router
}

func TestAccessLog(t *testing.T) {
	tests := []struct {
		status int
		level  zapcore.Level
	}{
		{http.StatusOK, zapcore.InfoLevel},
		{http.StatusConflict, zapcore.WarnLevel},
		{http.StatusServiceUnavailable, zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			core, recorded := observer.New(zapcore.DebugLevel)
			router := accessRouter(zap.New(core), tt.status)

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items?q=cable", nil))

			inner := recorded.FilterMessage("inside handler").All()
			require.Len(t, inner, 1)
			assert.Equal(t, "req-123", inner[0].ContextMap()["request_id"])

			lines := recorded.FilterMessage("HTTP Request").All()
			require.Len(t, lines, 1)
			assert.Equal(t, tt.level, lines[0].Level)
			fields := lines[0].ContextMap()
			assert.Equal(t, "/items", fields["path"])
			assert.Equal(t, "q=cable", fields["query"])
			assert.Equal(t, int64(5), fields["user_id"])
			assert.Equal(t, int64(tt.status), fields["status"])
		})
	}
}

func TestAccessLog_SkipPaths(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	router := accessRouter(zap.New(core), http.StatusOK)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, 1, recorded.FilterMessage("inside handler").Len())
	assert.Zero(t, recorded.FilterMessage("HTTP Request").Len())
}

func TestRecovery(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ginRequestIDKey, "req-9")
		c.Next()
	})
	router.Use(Recovery(zap.New(core)))
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body struct {
		Success bool   `json:"success"`
		Detail  string `json:"detail"`
		Error   struct {
			Code      string `json:"code"`
			RequestID string `json:"request_id"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Internal server error", body.Detail)
	assert.Equal(t, "ERR_INTERNAL", body.Error.Code)
	assert.Equal(t, "req-9", body.Error.RequestID)

	entries := recorded.FilterMessage("Panic recovered").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "boom", entries[0].ContextMap()["panic"])
}
