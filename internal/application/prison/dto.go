package prison

import (
	"time"

	"github.com/google/uuid"
	"github.com/registers/backend/internal/domain/prison"
)

// InsertPrisonRequest carries a new register entry
type InsertPrisonRequest struct {
	PrisonID    string            `json:"prisonId" binding:"required"`
	PrisonName  string            `json:"prisonName" binding:"required"`
	Active      bool              `json:"active"`
	Male        bool              `json:"male"`
	Female      bool              `json:"female"`
	Contracted  bool              `json:"contracted"`
	Lthse       bool              `json:"lthse"`
	PrisonTypes []prison.TypeCode `json:"prisonTypes"`
	Addresses   []AddressRequest  `json:"addresses"`
}

// UpdatePrisonRequest carries an amendment to an existing register entry
type UpdatePrisonRequest struct {
	PrisonName  string            `json:"prisonName" binding:"required"`
	Active      bool              `json:"active"`
	Male        bool              `json:"male"`
	Female      bool              `json:"female"`
	Contracted  bool              `json:"contracted"`
	Lthse       bool              `json:"lthse"`
	PrisonTypes []prison.TypeCode `json:"prisonTypes"`
}

// AddressRequest carries a postal address
type AddressRequest struct {
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	Town         string `json:"town" binding:"required"`
	County       string `json:"county"`
	Postcode     string `json:"postcode" binding:"required"`
	Country      string `json:"country" binding:"required"`
}

// PrisonTypeResponse is the wire representation of a classification tag
type PrisonTypeResponse struct {
	Code        prison.TypeCode `json:"code"`
	Description string          `json:"description"`
}

// AddressResponse is the wire representation of an address
type AddressResponse struct {
	ID           uuid.UUID `json:"id"`
	AddressLine1 string    `json:"addressLine1,omitempty"`
	AddressLine2 string    `json:"addressLine2,omitempty"`
	Town         string    `json:"town"`
	County       string    `json:"county,omitempty"`
	Postcode     string    `json:"postcode"`
	Country      string    `json:"country"`
}

// PrisonResponse is the wire representation of a register entry
type PrisonResponse struct {
	PrisonID     string               `json:"prisonId"`
	PrisonName   string               `json:"prisonName"`
	Active       bool                 `json:"active"`
	Male         bool                 `json:"male"`
	Female       bool                 `json:"female"`
	Contracted   bool                 `json:"contracted"`
	Lthse        bool                 `json:"lthse"`
	InactiveDate *time.Time           `json:"inactiveDate,omitempty"`
	Types        []PrisonTypeResponse `json:"types"`
	Addresses    []AddressResponse    `json:"addresses"`
}

// SearchRequest carries the prison search filter parameters
type SearchRequest struct {
	Active      *bool             `form:"active"`
	TextSearch  string            `form:"textSearch"`
	Male        *bool             `form:"genderMale"`
	Female      *bool             `form:"genderFemale"`
	PrisonTypes []prison.TypeCode `form:"prisonTypeCodes"`
	SortBy      string            `form:"sortBy"`
	SortDir     string            `form:"sortDir"`
}

// ToPrisonResponse maps a register entry to its wire representation
func ToPrisonResponse(p *prison.Prison) PrisonResponse {
	types := make([]PrisonTypeResponse, 0, len(p.Types))
	for _, t := range p.Types {
		types = append(types, PrisonTypeResponse{Code: t.Code, Description: t.Code.Description()})
	}
	addresses := make([]AddressResponse, 0, len(p.Addresses))
	for _, a := range p.Addresses {
		addresses = append(addresses, AddressResponse{
			ID:           a.ID,
			AddressLine1: a.AddressLine1,
			AddressLine2: a.AddressLine2,
			Town:         a.Town,
			County:       a.County,
			Postcode:     a.Postcode,
			Country:      a.Country,
		})
	}
	return PrisonResponse{
		PrisonID:     p.PrisonID,
		PrisonName:   p.Name,
		Active:       p.Active,
		Male:         p.Male,
		Female:       p.Female,
		Contracted:   p.Contracted,
		Lthse:        p.Lthse,
		InactiveDate: p.InactiveDate,
		Types:        types,
		Addresses:    addresses,
	}
}

func (r AddressRequest) toDomain() prison.Address {
	return prison.Address{
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		Town:         r.Town,
		County:       r.County,
		Postcode:     r.Postcode,
		Country:      r.Country,
	}
}
