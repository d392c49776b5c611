package prison

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/registers/backend/internal/domain/shared"
)

// TypeCode classifies a prison establishment
type TypeCode string

const (
	TypeHMP TypeCode = "HMP" // His Majesty's Prison
	TypeYOI TypeCode = "YOI" // Young Offender Institution
	TypeIRC TypeCode = "IRC" // Immigration Removal Centre
	TypeSTC TypeCode = "STC" // Secure Training Centre
	TypeYCS TypeCode = "YCS" // Youth Custody Service
)

// AllTypeCodes lists every prison type code
var AllTypeCodes = []TypeCode{TypeHMP, TypeYOI, TypeIRC, TypeSTC, TypeYCS}

// IsValid reports whether the type code is one of the known set
func (t TypeCode) IsValid() bool {
	switch t {
	case TypeHMP, TypeYOI, TypeIRC, TypeSTC, TypeYCS:
		return true
	}
	return false
}

// Description returns the human readable name of the type code
func (t TypeCode) Description() string {
	switch t {
	case TypeHMP:
		return "His Majesty's Prison"
	case TypeYOI:
		return "Young Offender Institution"
	case TypeIRC:
		return "Immigration Removal Centre"
	case TypeSTC:
		return "Secure Training Centre"
	case TypeYCS:
		return "Youth Custody Service"
	}
	return ""
}

// Type is a classification tag attached to a prison
type Type struct {
	shared.BaseEntity
	Code TypeCode
}

// Address is a postal address owned by a prison
type Address struct {
	shared.BaseEntity
	AddressLine1 string
	AddressLine2 string
	Town         string
	County       string
	Postcode     string
	Country      string
}

var prisonIDPattern = regexp.MustCompile(`^[A-Z0-9]{2,12}$`)

// Prison is the register entry for a prison establishment. The stable
// external key is PrisonID, not the surrogate uuid.
type Prison struct {
	shared.BaseAggregateRoot
	PrisonID     string
	Name         string
	Active       bool
	Male         bool
	Female       bool
	Contracted   bool
	Lthse        bool // long-term high security estate
	InactiveDate *time.Time
	Types        []Type
	Addresses    []Address
}

// NewPrison creates a new active prison register entry
func NewPrison(prisonID, name string) (*Prison, error) {
	if err := validatePrisonID(prisonID); err != nil {
		return nil, err
	}
	if err := validatePrisonName(name); err != nil {
		return nil, err
	}
	return &Prison{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PrisonID:          strings.ToUpper(prisonID),
		Name:              name,
		Active:            true,
	}, nil
}

// Amend updates the prison's name and classification flags
func (p *Prison) Amend(name string, male, female, contracted, lthse bool) error {
	if err := validatePrisonName(name); err != nil {
		return err
	}
	p.Name = name
	p.Male = male
	p.Female = female
	p.Contracted = contracted
	p.Lthse = lthse
	p.UpdatedAt = time.Now()
	p.AddDomainEvent(NewPrisonAmendedEvent(p))
	return nil
}

// Deactivate marks the prison inactive from the given date
func (p *Prison) Deactivate(from time.Time) {
	p.Active = false
	p.InactiveDate = &from
	p.UpdatedAt = time.Now()
	p.AddDomainEvent(NewPrisonAmendedEvent(p))
}

// Reactivate marks the prison active again
func (p *Prison) Reactivate() {
	p.Active = true
	p.InactiveDate = nil
	p.UpdatedAt = time.Now()
	p.AddDomainEvent(NewPrisonAmendedEvent(p))
}

// SetTypes replaces the prison's classification tags
func (p *Prison) SetTypes(codes []TypeCode) error {
	seen := make(map[TypeCode]bool, len(codes))
	types := make([]Type, 0, len(codes))
	for _, code := range codes {
		if !code.IsValid() {
			return shared.NewDomainError("INVALID_PRISON_TYPE", fmt.Sprintf("Prison type %s is not recognised", code))
		}
		if seen[code] {
			continue
		}
		seen[code] = true
		types = append(types, Type{BaseEntity: shared.NewBaseEntity(), Code: code})
	}
	p.Types = types
	p.UpdatedAt = time.Now()
	return nil
}

// AddAddress attaches a new address to the prison
func (p *Prison) AddAddress(a Address) error {
	if err := validateAddress(a); err != nil {
		return err
	}
	a.BaseEntity = shared.NewBaseEntity()
	p.Addresses = append(p.Addresses, a)
	p.UpdatedAt = time.Now()
	p.AddDomainEvent(NewPrisonAmendedEvent(p))
	return nil
}

// AmendAddress replaces an existing address identified by its id
func (p *Prison) AmendAddress(updated Address) error {
	if err := validateAddress(updated); err != nil {
		return err
	}
	for i := range p.Addresses {
		if p.Addresses[i].ID == updated.ID {
			updated.CreatedAt = p.Addresses[i].CreatedAt
			updated.UpdatedAt = time.Now()
			p.Addresses[i] = updated
			p.UpdatedAt = time.Now()
			p.AddDomainEvent(NewPrisonAmendedEvent(p))
			return nil
		}
	}
	return shared.ErrNotFound
}

// DeleteAddress removes an address by its id
func (p *Prison) DeleteAddress(id uuid.UUID) error {
	for i := range p.Addresses {
		if p.Addresses[i].ID == id {
			p.Addresses = append(p.Addresses[:i], p.Addresses[i+1:]...)
			p.UpdatedAt = time.Now()
			p.AddDomainEvent(NewPrisonAmendedEvent(p))
			return nil
		}
	}
	return shared.ErrNotFound
}

func validatePrisonID(id string) error {
	if !prisonIDPattern.MatchString(strings.ToUpper(id)) {
		return shared.NewDomainError("INVALID_PRISON_ID", "Prison id must be 2 to 12 characters")
	}
	return nil
}

func validatePrisonName(name string) error {
	if len(name) < 3 || len(name) > 80 {
		return shared.NewDomainError("INVALID_PRISON_NAME", "Prison name must be between 3 and 80 characters")
	}
	return nil
}

func validateAddress(a Address) error {
	if a.Town == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Address town cannot be empty")
	}
	if a.Postcode == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Address postcode cannot be empty")
	}
	if a.Country == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Address country cannot be empty")
	}
	return nil
}

// NewPrisonNotFoundError reports an unknown prison id
func NewPrisonNotFoundError(prisonID string) *shared.DomainError {
	return shared.NewDomainError(
		ErrCodePrisonNotFound,
		fmt.Sprintf("Prison %s not found.", prisonID),
	)
}

// ErrCodePrisonNotFound is raised when a prison id does not exist
const ErrCodePrisonNotFound = "PRISON_NOT_FOUND"
