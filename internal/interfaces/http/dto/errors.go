package dto

import (
	"net/http"

	"github.com/inventory/backend/internal/domain/shared"
)

// API error codes, always ERR_ followed by the condition.
const (
	ErrCodeInternal           = "ERR_INTERNAL"
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"

	ErrCodeInvalidInput    = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON     = "ERR_INVALID_JSON"
	ErrCodePayloadTooLarge = "ERR_PAYLOAD_TOO_LARGE"

	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"

	ErrCodeNotFound         = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists    = "ERR_ALREADY_EXISTS"
	ErrCodeConflict         = "ERR_CONFLICT"
	ErrCodeConcurrentUpdate = "ERR_CONCURRENT_UPDATE"

	ErrCodeInvalidState      = "ERR_INVALID_STATE"
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"

	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

var statusByCode = map[string]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeInvalidInput:       http.StatusBadRequest,
	ErrCodeInvalidJSON:        http.StatusBadRequest,
	ErrCodePayloadTooLarge:    http.StatusRequestEntityTooLarge,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeAlreadyExists:      http.StatusConflict,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeConcurrentUpdate:   http.StatusConflict,
	ErrCodeInvalidState:       http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock:  http.StatusUnprocessableEntity,
	ErrCodeRateLimited:        http.StatusTooManyRequests,
}

// GetHTTPStatus maps an API error code to its status; unknown codes are 500.
func GetHTTPStatus(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

var apiCodeByDomainCode = map[string]string{
	shared.CodeNotFound:           ErrCodeNotFound,
	shared.CodeAlreadyExists:      ErrCodeAlreadyExists,
	shared.CodeInvalidInput:       ErrCodeInvalidInput,
	shared.CodeConflict:           ErrCodeConflict,
	shared.CodeConcurrentUpdate:   ErrCodeConcurrentUpdate,
	shared.CodeInvalidState:       ErrCodeInvalidState,
	shared.CodeUnauthorized:       ErrCodeUnauthorized,
	shared.CodeForbidden:          ErrCodeForbidden,
	shared.CodeInsufficientStock:  ErrCodeInsufficientStock,
	shared.CodeServiceUnavailable: ErrCodeServiceUnavailable,
}

// NormalizeErrorCode turns a domain error code into its API code. Codes
// without a mapping pass through unchanged.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := apiCodeByDomainCode[code]; ok {
		return apiCode
	}
	return code
}
