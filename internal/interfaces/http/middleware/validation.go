package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/inventory/backend/internal/interfaces/http/dto"
)

// SetupValidator configures the validator with custom tags
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// Use JSON tag names for field names in errors
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
	}
}

// FormatValidationErrors converts binding errors into the error body.
// Field names follow the JSON tags registered by SetupValidator.
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			details = append(details, dto.ValidationDetail{
				Field:   fieldPath(e),
				Message: validationMessage(e),
			})
		}
	}
	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleValidationError answers a failed ShouldBind call. Malformed JSON gets
// ERR_INVALID_JSON; everything else is a validation failure.
func HandleValidationError(c *gin.Context, err error) {
	requestID := GetRequestID(c)

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
			dto.NewErrorResponse(dto.ErrCodePayloadTooLarge, bodyTooLargeMessage(tooLarge.Limit), requestID))
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		c.AbortWithStatusJSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrCodeInvalidJSON, "Malformed JSON body", requestID))
	case errors.Is(err, io.EOF):
		c.AbortWithStatusJSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrCodeInvalidJSON, "Request body is required", requestID))
	case errors.As(err, &typeErr):
		resp := dto.NewValidationErrorResponse("Request validation failed", requestID, []dto.ValidationDetail{{
			Field:   typeErr.Field,
			Message: "Must be of type " + typeErr.Type.String(),
		}})
		c.AbortWithStatusJSON(http.StatusBadRequest, resp)
	default:
		resp := FormatValidationErrors(err, requestID)
		if resp.Error != nil && len(resp.Error.Details) == 0 {
			resp = dto.NewErrorResponse(dto.ErrCodeInvalidInput, err.Error(), requestID)
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, resp)
	}
}

// fieldPath drops the root struct name from the namespace: users[1].email
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

// validationMessages maps a validator tag to its message. %s is the tag
// parameter; a trailing "characters" is added for string lengths.
var validationMessages = map[string]string{
	"required": "This field is required",
	"email":    "Invalid email format",
	"url":      "Invalid URL format",
	"min":      "Must be at least %s",
	"max":      "Must be at most %s",
	"len":      "Must be exactly %s",
	"oneof":    "Must be one of: %s",
	"gte":      "Must be greater than or equal to %s",
	"lte":      "Must be less than or equal to %s",
	"gt":       "Must be greater than %s",
	"lt":       "Must be less than %s",
	"numeric":  "Must be numeric",
	"alphanum": "Must be alphanumeric",
	"dive":     "Invalid list entry",
}

func validationMessage(e validator.FieldError) string {
	format, ok := validationMessages[e.Tag()]
	if !ok {
		return "Invalid value"
	}
	if !strings.Contains(format, "%s") {
		return format
	}
	msg := fmt.Sprintf(format, e.Param())
	switch e.Tag() {
	case "min", "max", "len":
		if e.Kind() == reflect.String {
			msg += " characters"
		}
	}
	return msg
}
