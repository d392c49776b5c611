package court

import (
	"github.com/google/uuid"
	"github.com/registers/backend/internal/domain/court"
)

// InsertCourtRequest carries a new register entry
type InsertCourtRequest struct {
	CourtID     string         `json:"courtId" binding:"required"`
	CourtName   string         `json:"courtName" binding:"required"`
	Description string         `json:"courtDescription"`
	Type        court.TypeCode `json:"courtType" binding:"required"`
	Active      bool           `json:"active"`
}

// UpdateCourtRequest carries an amendment to an existing register entry
type UpdateCourtRequest struct {
	CourtName   string         `json:"courtName" binding:"required"`
	Description string         `json:"courtDescription"`
	Type        court.TypeCode `json:"courtType" binding:"required"`
	Active      bool           `json:"active"`
}

// BuildingRequest carries a court building
type BuildingRequest struct {
	Name         string `json:"buildingName" binding:"required"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	Town         string `json:"town"`
	County       string `json:"county"`
	Postcode     string `json:"postcode"`
	Country      string `json:"country"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
}

// BuildingResponse is the wire representation of a court building
type BuildingResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"buildingName"`
	AddressLine1 string    `json:"addressLine1,omitempty"`
	AddressLine2 string    `json:"addressLine2,omitempty"`
	Town         string    `json:"town,omitempty"`
	County       string    `json:"county,omitempty"`
	Postcode     string    `json:"postcode,omitempty"`
	Country      string    `json:"country,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
}

// CourtTypeResponse is the wire representation of a court classification
type CourtTypeResponse struct {
	Code        court.TypeCode `json:"courtType"`
	Description string         `json:"courtName"`
}

// CourtResponse is the wire representation of a register entry
type CourtResponse struct {
	CourtID     string             `json:"courtId"`
	CourtName   string             `json:"courtName"`
	Description string             `json:"courtDescription,omitempty"`
	Type        CourtTypeResponse  `json:"type"`
	Active      bool               `json:"active"`
	Buildings   []BuildingResponse `json:"buildings"`
}

// ToCourtResponse maps a register entry to its wire representation
func ToCourtResponse(c *court.Court) CourtResponse {
	buildings := make([]BuildingResponse, 0, len(c.Buildings))
	for _, b := range c.Buildings {
		buildings = append(buildings, BuildingResponse{
			ID:           b.ID,
			Name:         b.Name,
			AddressLine1: b.AddressLine1,
			AddressLine2: b.AddressLine2,
			Town:         b.Town,
			County:       b.County,
			Postcode:     b.Postcode,
			Country:      b.Country,
			Phone:        b.Phone,
			Email:        b.Email,
		})
	}
	return CourtResponse{
		CourtID:     c.CourtID,
		CourtName:   c.Name,
		Description: c.Description,
		Type:        CourtTypeResponse{Code: c.Type, Description: c.Type.Description()},
		Active:      c.Active,
		Buildings:   buildings,
	}
}

func (r BuildingRequest) toDomain() court.Building {
	return court.Building{
		Name:         r.Name,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		Town:         r.Town,
		County:       r.County,
		Postcode:     r.Postcode,
		Country:      r.Country,
		Phone:        r.Phone,
		Email:        r.Email,
	}
}
