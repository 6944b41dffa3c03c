package handler

import "github.com/inventory/backend/internal/interfaces/http/dto"

// APIResponse represents a generic API response for OpenAPI documentation
// @Description Standard API response wrapper with typed data field
type APIResponse[T any] struct {
	Success bool      `json:"success" example:"true"`
	Data    T         `json:"data,omitempty"`
	Meta    *dto.Meta `json:"meta,omitempty"`
}

// ErrorResponse represents an error API response for OpenAPI documentation
// @Description Standard error response; detail repeats error.message
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Detail  string         `json:"detail" example:"Item not found"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// HealthData is the body of the health endpoints
// @Description Service health
type HealthData struct {
	Status       string            `json:"status" example:"ok"`
	Version      string            `json:"version,omitempty" example:"1.0.0"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}
