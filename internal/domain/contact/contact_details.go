package contact

import (
	"github.com/registers/backend/internal/domain/shared"
)

// ContactDetails is the per (prison, department) aggregate tying together up
// to three shared contact value references. At most one aggregate exists per
// (prison, department) pair; this is enforced by a database uniqueness
// constraint as well as the create path.
type ContactDetails struct {
	shared.BaseAggregateRoot
	PrisonID     string
	Department   DepartmentType
	EmailAddress *ContactValue
	PhoneNumber  *ContactValue
	WebAddress   *ContactValue
}

// NewContactDetails creates an empty aggregate for a prison department
func NewContactDetails(prisonID string, department DepartmentType) (*ContactDetails, error) {
	if prisonID == "" {
		return nil, shared.NewDomainError("INVALID_PRISON_ID", "Prison id cannot be empty")
	}
	if !department.IsValid() {
		return nil, NewUnknownDepartmentTypeError(string(department))
	}
	return &ContactDetails{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PrisonID:          prisonID,
		Department:        department,
	}, nil
}

// Value returns the referenced value for a channel, or nil
func (cd *ContactDetails) Value(channel Channel) *ContactValue {
	switch channel {
	case ChannelEmail:
		return cd.EmailAddress
	case ChannelPhone:
		return cd.PhoneNumber
	case ChannelWeb:
		return cd.WebAddress
	}
	return nil
}

// SetValue rewires the reference for a channel; nil clears it
func (cd *ContactDetails) SetValue(channel Channel, value *ContactValue) {
	switch channel {
	case ChannelEmail:
		cd.EmailAddress = value
	case ChannelPhone:
		cd.PhoneNumber = value
	case ChannelWeb:
		cd.WebAddress = value
	}
}

// ValueString returns the value string for a channel, or nil when the
// channel has no reference
func (cd *ContactDetails) ValueString(channel Channel) *string {
	if v := cd.Value(channel); v != nil {
		return &v.Value
	}
	return nil
}

// References returns the non-nil value references held by the aggregate
func (cd *ContactDetails) References() []*ContactValue {
	refs := make([]*ContactValue, 0, len(AllChannels))
	for _, ch := range AllChannels {
		if v := cd.Value(ch); v != nil {
			refs = append(refs, v)
		}
	}
	return refs
}

// IsEmpty reports whether all three channel references are nil. An empty
// aggregate is a valid persistent state; an update that clears every channel
// does not delete the row.
func (cd *ContactDetails) IsEmpty() bool {
	return cd.EmailAddress == nil && cd.PhoneNumber == nil && cd.WebAddress == nil
}
