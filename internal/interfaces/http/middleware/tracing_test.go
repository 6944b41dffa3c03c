package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

func tracedRouter(t *testing.T, handler gin.HandlerFunc) (*gin.Engine, *tracetest.SpanRecorder) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	router := gin.New()
	router.Use(RequestID(), Tracing("inventory-test", otelgin.WithTracerProvider(tp)))
	router.GET("/api/v1/items/:id",
		Authenticate(fakeAuthenticator{}, zap.NewNop()),
		SpanAttributes(),
		handler,
	)
	return router, sr
}

func spanAttr(span sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracing_SpanPerRoute(t *testing.T) {
	router, sr := tracedRouter(t, func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/v1/items/7", nil)
	req.Header.Set("Authorization", "Bearer staff-token")
	req.Header.Set("X-Request-ID", "req-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /api/v1/items/:id", spans[0].Name())

	requestID, ok := spanAttr(spans[0], "request_id")
	require.True(t, ok)
	assert.Equal(t, "req-1", requestID.AsString())

	userID, ok := spanAttr(spans[0], "user_id")
	require.True(t, ok)
	assert.Equal(t, int64(2), userID.AsInt64())
}

func TestTracing_ServerErrorMarksSpan(t *testing.T) {
	router, sr := tracedRouter(t, func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	req := httptest.NewRequest(http.MethodGet, "/api/v1/items/7", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	router.ServeHTTP(httptest.NewRecorder(), req)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestTracing_UnauthenticatedHasNoUser(t *testing.T) {
	router, sr := tracedRouter(t, func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/items/7", nil))

	spans := sr.Ended()
	require.Len(t, spans, 1)
	_, ok := spanAttr(spans[0], "user_id")
	assert.False(t, ok)
}
