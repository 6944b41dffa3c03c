package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/inventory/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(ErrCodeInsufficientStock))
	assert.Equal(t, http.StatusRequestEntityTooLarge, GetHTTPStatus(ErrCodePayloadTooLarge))
	assert.Equal(t, http.StatusTooManyRequests, GetHTTPStatus(ErrCodeRateLimited))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("ERR_SOMETHING_NEW"))

	for code, status := range statusByCode {
		assert.Equal(t, status, GetHTTPStatus(code), code)
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	want := map[string]int{
		shared.CodeNotFound:           http.StatusNotFound,
		shared.CodeAlreadyExists:      http.StatusConflict,
		shared.CodeInvalidInput:       http.StatusBadRequest,
		shared.CodeConflict:           http.StatusConflict,
		shared.CodeConcurrentUpdate:   http.StatusConflict,
		shared.CodeUnauthorized:       http.StatusUnauthorized,
		shared.CodeForbidden:          http.StatusForbidden,
		shared.CodeInvalidState:       http.StatusUnprocessableEntity,
		shared.CodeInsufficientStock:  http.StatusUnprocessableEntity,
		shared.CodeServiceUnavailable: http.StatusServiceUnavailable,
	}
	for domainCode, status := range want {
		t.Run(domainCode, func(t *testing.T) {
			apiCode := NormalizeErrorCode(domainCode)
			assert.Equal(t, "ERR_"+domainCode, apiCode)
			assert.Equal(t, status, GetHTTPStatus(apiCode))
		})
	}

	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode(ErrCodeNotFound), "API codes pass through")
	assert.Equal(t, "SOMETHING_ELSE", NormalizeErrorCode("SOMETHING_ELSE"))
}

func TestNewErrorResponse_CarriesDetail(t *testing.T) {
	resp := NewErrorResponse(ErrCodeNotFound, "Item 4 not found", "req-1")

	body, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, false, decoded["success"])
	assert.Equal(t, "Item 4 not found", decoded["detail"])

	errBody := decoded["error"].(map[string]any)
	assert.Equal(t, "ERR_NOT_FOUND", errBody["code"])
	assert.Equal(t, "req-1", errBody["request_id"])
	assert.NotContains(t, errBody, "details")
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "", []ValidationDetail{
		{Field: "sku", Message: "This field is required"},
	})
	assert.Equal(t, ErrCodeInvalidInput, resp.Error.Code)
	assert.Equal(t, "Request validation failed", resp.Detail)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "sku", resp.Error.Details[0].Field)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	tests := []struct {
		total    int64
		pageSize int
		pages    int
	}{
		{0, 50, 0},
		{50, 50, 1},
		{51, 50, 2},
		{10, 0, 0},
	}
	for _, tt := range tests {
		resp := NewSuccessResponseWithMeta([]int{}, tt.total, 1, tt.pageSize)
		assert.True(t, resp.Success)
		assert.Equal(t, tt.pages, resp.Meta.TotalPages)
	}
}
