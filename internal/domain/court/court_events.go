package court

import (
	"github.com/registers/backend/internal/domain/shared"
)

// Event types published by the court register
const (
	EventTypeCourtInserted = "register.court.inserted"
	EventTypeCourtAmended  = "register.court.amended"
)

// AggregateTypeCourt is the aggregate type recorded on court events
const AggregateTypeCourt = "Court"

// CourtInsertedEvent signals that a new court has been added to the register
type CourtInsertedEvent struct {
	shared.BaseDomainEvent
	CourtID string `json:"court_id"`
}

// NewCourtInsertedEvent creates an insertion event for a court
func NewCourtInsertedEvent(c *Court) *CourtInsertedEvent {
	return &CourtInsertedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCourtInserted, AggregateTypeCourt, c.ID),
		CourtID:         c.CourtID,
	}
}

// CourtAmendedEvent signals that a court register entry has changed
type CourtAmendedEvent struct {
	shared.BaseDomainEvent
	CourtID string `json:"court_id"`
}

// NewCourtAmendedEvent creates an amendment event for a court
func NewCourtAmendedEvent(c *Court) *CourtAmendedEvent {
	return &CourtAmendedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCourtAmended, AggregateTypeCourt, c.ID),
		CourtID:         c.CourtID,
	}
}
