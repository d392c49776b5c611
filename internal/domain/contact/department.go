package contact

import (
	"fmt"

	"github.com/registers/backend/internal/domain/shared"
)

// DepartmentType identifies the prison department a set of contact details
// belongs to. The set is closed: every value carries a stable external path
// token distinct from its internal name.
type DepartmentType string

const (
	DepartmentSocialVisit                 DepartmentType = "SOCIAL_VISIT"
	DepartmentVideolinkConferencingCentre DepartmentType = "VIDEOLINK_CONFERENCING_CENTRE"
	DepartmentOffenderManagementUnit      DepartmentType = "OFFENDER_MANAGEMENT_UNIT"
)

// AllDepartmentTypes lists every known department type
var AllDepartmentTypes = []DepartmentType{
	DepartmentSocialVisit,
	DepartmentVideolinkConferencingCentre,
	DepartmentOffenderManagementUnit,
}

// IsValid reports whether the department type is one of the known set
func (d DepartmentType) IsValid() bool {
	switch d {
	case DepartmentSocialVisit, DepartmentVideolinkConferencingCentre, DepartmentOffenderManagementUnit:
		return true
	}
	return false
}

// PathSegment returns the external URL token for the department type
func (d DepartmentType) PathSegment() string {
	switch d {
	case DepartmentSocialVisit:
		return "social-visit"
	case DepartmentVideolinkConferencingCentre:
		return "videolink-conferencing-centre"
	case DepartmentOffenderManagementUnit:
		return "offender-management-unit"
	}
	return ""
}

// Description returns the human readable name used in messages
func (d DepartmentType) Description() string {
	switch d {
	case DepartmentSocialVisit:
		return "social visit"
	case DepartmentVideolinkConferencingCentre:
		return "videolink conferencing centre"
	case DepartmentOffenderManagementUnit:
		return "offender management unit"
	}
	return ""
}

// ResolveDepartmentType maps an external path token to a department type.
// Matching is exact and case sensitive; no fuzzy matching, no defaulting.
func ResolveDepartmentType(token string) (DepartmentType, error) {
	for _, d := range AllDepartmentTypes {
		if d.PathSegment() == token {
			return d, nil
		}
	}
	return "", NewUnknownDepartmentTypeError(token)
}

// NewUnknownDepartmentTypeError reports an unresolvable department token
func NewUnknownDepartmentTypeError(token string) *shared.DomainError {
	return shared.NewDomainError(
		ErrCodeUnknownDepartmentType,
		fmt.Sprintf("Value for DepartmentType is not of a known type %s.", token),
	)
}
