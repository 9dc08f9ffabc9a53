package dto

import (
	"net/http"
	"strings"
)

// Error codes the HTTP layer emits itself
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeValidation   = "VALIDATION_ERROR"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed fall through to GetHTTPStatus's prefix rules.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,

	"NOT_FOUND":           http.StatusNotFound,
	"ALREADY_EXISTS":      http.StatusConflict,
	"EMAIL_TAKEN":         http.StatusConflict,
	"FORBIDDEN":           http.StatusForbidden,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,

	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK": http.StatusUnprocessableEntity,
	"EMPTY_CART":         http.StatusBadRequest,
	"ALREADY_DELIVERED":  http.StatusUnprocessableEntity,
	"DUPLICATE_REVIEW":   http.StatusBadRequest,
	"INVALID_SIGNATURE":  http.StatusBadRequest,
	"UPLOAD_NOT_FOUND":   http.StatusUnprocessableEntity,

	"GATEWAY_FAILURE": http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status for a domain error code.
// INVALID_* codes are caller mistakes and read as 400; anything else
// unrecognized is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
