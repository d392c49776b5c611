package contact

import (
	"github.com/registers/backend/internal/domain/contact"
)

// ContactDetailsRequest carries the desired channel values for a create or
// update. A nil field means "no value supplied"; on update the channel is
// either left untouched or cleared depending on removeIfNull.
type ContactDetailsRequest struct {
	EmailAddress *string
	PhoneNumber  *string
	WebAddress   *string
}

// value returns the desired value for a channel, or nil
func (r ContactDetailsRequest) value(channel contact.Channel) *string {
	switch channel {
	case contact.ChannelEmail:
		return r.EmailAddress
	case contact.ChannelPhone:
		return r.PhoneNumber
	case contact.ChannelWeb:
		return r.WebAddress
	}
	return nil
}

// withValue returns a copy of the request with the channel value replaced
func (r ContactDetailsRequest) withValue(channel contact.Channel, v *string) ContactDetailsRequest {
	switch channel {
	case contact.ChannelEmail:
		r.EmailAddress = v
	case contact.ChannelPhone:
		r.PhoneNumber = v
	case contact.ChannelWeb:
		r.WebAddress = v
	}
	return r
}

// ContactDetailsResponse is the wire representation of an aggregate. Type
// carries the external department token.
type ContactDetailsResponse struct {
	Type         string  `json:"type"`
	EmailAddress *string `json:"emailAddress,omitempty"`
	PhoneNumber  *string `json:"phoneNumber,omitempty"`
	WebAddress   *string `json:"webAddress,omitempty"`
}

// ToContactDetailsResponse maps an aggregate to its wire representation
func ToContactDetailsResponse(cd *contact.ContactDetails) ContactDetailsResponse {
	return ContactDetailsResponse{
		Type:         cd.Department.PathSegment(),
		EmailAddress: cd.ValueString(contact.ChannelEmail),
		PhoneNumber:  cd.ValueString(contact.ChannelPhone),
		WebAddress:   cd.ValueString(contact.ChannelWeb),
	}
}

// SetOutcome distinguishes whether a single-channel set created a new
// aggregate or updated an existing one; the legacy endpoints map it to
// 201 Created vs 204 No Content.
type SetOutcome int

const (
	// OutcomeCreated means no aggregate existed for the (prison, department)
	// pair before the set
	OutcomeCreated SetOutcome = iota
	// OutcomeUpdated means an existing aggregate was updated
	OutcomeUpdated
)
