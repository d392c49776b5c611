package prison

import (
	"github.com/registers/backend/internal/domain/shared"
)

// Event types published by the prison register
const (
	EventTypePrisonInserted = "register.prison.inserted"
	EventTypePrisonAmended  = "register.prison.amended"
)

// AggregateTypePrison is the aggregate type recorded on prison events
const AggregateTypePrison = "Prison"

// PrisonInsertedEvent signals that a new prison has been added to the register
type PrisonInsertedEvent struct {
	shared.BaseDomainEvent
	PrisonID string `json:"prison_id"`
}

// NewPrisonInsertedEvent creates an insertion event for a prison
func NewPrisonInsertedEvent(p *Prison) *PrisonInsertedEvent {
	return &PrisonInsertedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePrisonInserted, AggregateTypePrison, p.ID),
		PrisonID:        p.PrisonID,
	}
}

// PrisonAmendedEvent signals that a prison register entry, including its
// contact details, has changed
type PrisonAmendedEvent struct {
	shared.BaseDomainEvent
	PrisonID string `json:"prison_id"`
}

// NewPrisonAmendedEvent creates an amendment event for a prison
func NewPrisonAmendedEvent(p *Prison) *PrisonAmendedEvent {
	return &PrisonAmendedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePrisonAmended, AggregateTypePrison, p.ID),
		PrisonID:        p.PrisonID,
	}
}
