package dto

import "net/http"

// Standard API error codes
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// Domain error codes surfaced by the posting services
const (
	ErrCodeAlreadyPosted     = "ALREADY_POSTED"
	ErrCodeEmptyInvoice      = "EMPTY_INVOICE"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeInvalidAmount     = "INVALID_AMOUNT"
	ErrCodeSameAccount       = "SAME_ACCOUNT"
	ErrCodeUnknownAccount    = "UNKNOWN_ACCOUNT"
	ErrCodeInvalidTarget     = "INVALID_TARGET"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeInternal:     http.StatusInternalServerError,

	ErrCodeAlreadyPosted:     http.StatusConflict,
	ErrCodeEmptyInvoice:      http.StatusBadRequest,
	ErrCodeInsufficientStock: http.StatusConflict,
	ErrCodeInvalidAmount:     http.StatusBadRequest,
	ErrCodeSameAccount:       http.StatusBadRequest,
	ErrCodeUnknownAccount:    http.StatusBadRequest,
	ErrCodeInvalidTarget:     http.StatusBadRequest,

	"ALREADY_EXISTS":       http.StatusConflict,
	"INVALID_INPUT":        http.StatusBadRequest,
	"INVALID_NAME":         http.StatusBadRequest,
	"INVALID_YEAR":         http.StatusBadRequest,
	"INVALID_COST_CENTER":  http.StatusBadRequest,
	"INVALID_STATE":        http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to 500
// for codes that have no mapping
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
