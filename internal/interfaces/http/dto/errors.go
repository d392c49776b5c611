package dto

import "net/http"

// Error codes surfaced by the register domain. Handlers translate them to
// HTTP status codes exactly once, at the boundary.

// Contact details error codes
const (
	// ErrCodeContactDetailsNotFound is raised when no aggregate exists for a
	// (prison, department) pair
	ErrCodeContactDetailsNotFound = "CONTACT_DETAILS_NOT_FOUND"
	// ErrCodeContactDetailsAlreadyExist is raised on create when the pair is taken
	ErrCodeContactDetailsAlreadyExist = "CONTACT_DETAILS_ALREADY_EXIST"
	// ErrCodeUnknownDepartmentType is raised for an unresolvable department token
	ErrCodeUnknownDepartmentType = "UNKNOWN_DEPARTMENT_TYPE"
	// ErrCodeValidation aggregates field-level validation failures
	ErrCodeValidation = "VALIDATION_ERROR"
)

// Register entity error codes
const (
	ErrCodePrisonNotFound      = "PRISON_NOT_FOUND"
	ErrCodePrisonAlreadyExists = "PRISON_ALREADY_EXISTS"
	ErrCodeCourtNotFound       = "COURT_NOT_FOUND"
	ErrCodeCourtAlreadyExists  = "COURT_ALREADY_EXISTS"
	ErrCodeAddressNotFound     = "ADDRESS_NOT_FOUND"
)

// General error codes
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// Contact details. Create-only conflicts and unknown tokens are client
	// errors, not 409s.
	ErrCodeContactDetailsNotFound:     http.StatusNotFound,
	ErrCodeContactDetailsAlreadyExist: http.StatusBadRequest,
	ErrCodeUnknownDepartmentType:      http.StatusBadRequest,
	ErrCodeValidation:                 http.StatusBadRequest,

	// Register entities
	ErrCodePrisonNotFound:      http.StatusNotFound,
	ErrCodePrisonAlreadyExists: http.StatusBadRequest,
	ErrCodeCourtNotFound:       http.StatusNotFound,
	ErrCodeCourtAlreadyExists:  http.StatusBadRequest,
	ErrCodeAddressNotFound:     http.StatusNotFound,

	// Field-level rejections from entity constructors
	"INVALID_PRISON_ID":   http.StatusBadRequest,
	"INVALID_PRISON_NAME": http.StatusBadRequest,
	"INVALID_PRISON_TYPE": http.StatusBadRequest,
	"INVALID_ADDRESS":     http.StatusBadRequest,
	"INVALID_COURT_ID":    http.StatusBadRequest,
	"INVALID_COURT_NAME":  http.StatusBadRequest,
	"INVALID_COURT_TYPE":  http.StatusBadRequest,
	"INVALID_BUILDING":    http.StatusBadRequest,

	// General
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeRateLimited:  http.StatusTooManyRequests,
	ErrCodeInternal:     http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
