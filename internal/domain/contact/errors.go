package contact

import (
	"fmt"

	"github.com/registers/backend/internal/domain/shared"
)

// Error codes raised by the contact details subsystem
const (
	ErrCodeContactDetailsNotFound     = "CONTACT_DETAILS_NOT_FOUND"
	ErrCodeContactDetailsAlreadyExist = "CONTACT_DETAILS_ALREADY_EXIST"
	ErrCodeUnknownDepartmentType      = "UNKNOWN_DEPARTMENT_TYPE"
	ErrCodeValidation                 = "VALIDATION_ERROR"
)

// NewContactDetailsNotFoundError reports a missing aggregate for a
// (prison, department) pair
func NewContactDetailsNotFoundError(prisonID string, department DepartmentType) *shared.DomainError {
	return shared.NewDomainError(
		ErrCodeContactDetailsNotFound,
		fmt.Sprintf("Contact details not found for %s / %s department.", prisonID, department.Description()),
	)
}

// NewContactDetailsAlreadyExistError reports a create for a
// (prison, department) pair that already has an aggregate
func NewContactDetailsAlreadyExistError(prisonID string, department DepartmentType) *shared.DomainError {
	return shared.NewDomainError(
		ErrCodeContactDetailsAlreadyExist,
		fmt.Sprintf("Contact details already exist for %s / %s department.", prisonID, department.Description()),
	)
}

// NewValidationError aggregates field-level validation messages. Messages
// must already be sorted alphabetically by the caller for determinism.
func NewValidationError(message string) *shared.DomainError {
	return shared.NewDomainError(ErrCodeValidation, message)
}
