package contact

import (
	"github.com/google/uuid"
)

// Channel identifies one of the three contact channels a department can
// expose. Each channel is backed by its own value table with a global
// uniqueness constraint on the value string.
type Channel string

const (
	ChannelEmail Channel = "EMAIL_ADDRESS"
	ChannelPhone Channel = "PHONE_NUMBER"
	ChannelWeb   Channel = "WEB_ADDRESS"
)

// AllChannels lists every contact channel
var AllChannels = []Channel{ChannelEmail, ChannelPhone, ChannelWeb}

// IsValid reports whether the channel is one of the known set
func (c Channel) IsValid() bool {
	switch c {
	case ChannelEmail, ChannelPhone, ChannelWeb:
		return true
	}
	return false
}

// ContactValue is a single deduplicated contact value row. A value row is
// shared by every ContactDetails aggregate referencing it; it exists iff at
// least one aggregate references it.
type ContactValue struct {
	ID      uuid.UUID
	Channel Channel
	Value   string
}
