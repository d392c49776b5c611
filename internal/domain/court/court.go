package court

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/registers/backend/internal/domain/shared"
)

// TypeCode classifies a court
type TypeCode string

const (
	TypeCrown       TypeCode = "CRN" // Crown Court
	TypeMagistrate  TypeCode = "MAG" // Magistrates Court
	TypeCounty      TypeCode = "COU" // County Court
	TypeYouth       TypeCode = "YTH" // Youth Court
	TypeImmigration TypeCode = "IMM" // Immigration Court
)

// AllTypeCodes lists every court type code
var AllTypeCodes = []TypeCode{TypeCrown, TypeMagistrate, TypeCounty, TypeYouth, TypeImmigration}

// IsValid reports whether the type code is one of the known set
func (t TypeCode) IsValid() bool {
	switch t {
	case TypeCrown, TypeMagistrate, TypeCounty, TypeYouth, TypeImmigration:
		return true
	}
	return false
}

// Description returns the human readable name of the type code
func (t TypeCode) Description() string {
	switch t {
	case TypeCrown:
		return "Crown Court"
	case TypeMagistrate:
		return "Magistrates Court"
	case TypeCounty:
		return "County Court"
	case TypeYouth:
		return "Youth Court"
	case TypeImmigration:
		return "Immigration Court"
	}
	return ""
}

// Building is a court building with its own simple contact points. Court
// contacts do not share the deduplicated value store used for prison
// departments; they are plain columns on the building.
type Building struct {
	shared.BaseEntity
	Name         string
	AddressLine1 string
	AddressLine2 string
	Town         string
	County       string
	Postcode     string
	Country      string
	Phone        string
	Email        string
}

var courtIDPattern = regexp.MustCompile(`^[A-Z0-9]{2,12}$`)

// Court is the register entry for a court
type Court struct {
	shared.BaseAggregateRoot
	CourtID     string
	Name        string
	Description string
	Type        TypeCode
	Active      bool
	Buildings   []Building
}

// NewCourt creates a new active court register entry
func NewCourt(courtID, name string, courtType TypeCode) (*Court, error) {
	if !courtIDPattern.MatchString(strings.ToUpper(courtID)) {
		return nil, shared.NewDomainError("INVALID_COURT_ID", "Court id must be 2 to 12 characters")
	}
	if len(name) < 2 || len(name) > 80 {
		return nil, shared.NewDomainError("INVALID_COURT_NAME", "Court name must be between 2 and 80 characters")
	}
	if !courtType.IsValid() {
		return nil, shared.NewDomainError("INVALID_COURT_TYPE", fmt.Sprintf("Court type %s is not recognised", courtType))
	}
	return &Court{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CourtID:           strings.ToUpper(courtID),
		Name:              name,
		Type:              courtType,
		Active:            true,
	}, nil
}

// Amend updates the court's details
func (c *Court) Amend(name, description string, courtType TypeCode, active bool) error {
	if len(name) < 2 || len(name) > 80 {
		return shared.NewDomainError("INVALID_COURT_NAME", "Court name must be between 2 and 80 characters")
	}
	if !courtType.IsValid() {
		return shared.NewDomainError("INVALID_COURT_TYPE", fmt.Sprintf("Court type %s is not recognised", courtType))
	}
	c.Name = name
	c.Description = description
	c.Type = courtType
	c.Active = active
	c.UpdatedAt = time.Now()
	c.AddDomainEvent(NewCourtAmendedEvent(c))
	return nil
}

// AddBuilding attaches a building to the court
func (c *Court) AddBuilding(b Building) error {
	if b.Name == "" {
		return shared.NewDomainError("INVALID_BUILDING", "Building name cannot be empty")
	}
	b.BaseEntity = shared.NewBaseEntity()
	c.Buildings = append(c.Buildings, b)
	c.UpdatedAt = time.Now()
	c.AddDomainEvent(NewCourtAmendedEvent(c))
	return nil
}

// NewCourtNotFoundError reports an unknown court id
func NewCourtNotFoundError(courtID string) *shared.DomainError {
	return shared.NewDomainError(
		ErrCodeCourtNotFound,
		fmt.Sprintf("Court %s not found.", courtID),
	)
}

// ErrCodeCourtNotFound is raised when a court id does not exist
const ErrCodeCourtNotFound = "COURT_NOT_FOUND"
