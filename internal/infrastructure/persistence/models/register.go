package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/registers/backend/internal/domain/court"
	"github.com/registers/backend/internal/domain/prison"
)

// PrisonModel is the persistence model for a prison register entry
type PrisonModel struct {
	BaseModel
	PrisonID     string     `gorm:"type:varchar(12);not null;uniqueIndex:uk_prison_prison_id"`
	Name         string     `gorm:"type:varchar(80);not null"`
	Active       bool       `gorm:"not null;default:true"`
	Male         bool       `gorm:"not null;default:false"`
	Female       bool       `gorm:"not null;default:false"`
	Contracted   bool       `gorm:"not null;default:false"`
	Lthse        bool       `gorm:"not null;default:false"`
	InactiveDate *time.Time

	Types     []PrisonTypeModel    `gorm:"foreignKey:PrisonRef;constraint:OnDelete:CASCADE"`
	Addresses []PrisonAddressModel `gorm:"foreignKey:PrisonRef;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (PrisonModel) TableName() string {
	return "prisons"
}

// PrisonTypeModel is a classification tag row attached to a prison
type PrisonTypeModel struct {
	BaseModel
	PrisonRef uuid.UUID `gorm:"type:uuid;not null;index"`
	Code      string    `gorm:"type:varchar(3);not null"`
}

// TableName returns the table name for GORM
func (PrisonTypeModel) TableName() string {
	return "prison_types"
}

// PrisonAddressModel is a postal address row owned by a prison
type PrisonAddressModel struct {
	BaseModel
	PrisonRef    uuid.UUID `gorm:"type:uuid;not null;index"`
	AddressLine1 string    `gorm:"type:varchar(80)"`
	AddressLine2 string    `gorm:"type:varchar(80)"`
	Town         string    `gorm:"type:varchar(80);not null"`
	County       string    `gorm:"type:varchar(80)"`
	Postcode     string    `gorm:"type:varchar(8);not null"`
	Country      string    `gorm:"type:varchar(16);not null"`
}

// TableName returns the table name for GORM
func (PrisonAddressModel) TableName() string {
	return "prison_addresses"
}

// ToDomain converts the persistence model to a domain Prison
func (m *PrisonModel) ToDomain() *prison.Prison {
	p := &prison.Prison{
		PrisonID:     m.PrisonID,
		Name:         m.Name,
		Active:       m.Active,
		Male:         m.Male,
		Female:       m.Female,
		Contracted:   m.Contracted,
		Lthse:        m.Lthse,
		InactiveDate: m.InactiveDate,
	}
	p.BaseEntity = m.BaseModel.ToDomain()
	for _, t := range m.Types {
		p.Types = append(p.Types, prison.Type{
			BaseEntity: t.BaseModel.ToDomain(),
			Code:       prison.TypeCode(t.Code),
		})
	}
	for _, a := range m.Addresses {
		p.Addresses = append(p.Addresses, prison.Address{
			BaseEntity:   a.BaseModel.ToDomain(),
			AddressLine1: a.AddressLine1,
			AddressLine2: a.AddressLine2,
			Town:         a.Town,
			County:       a.County,
			Postcode:     a.Postcode,
			Country:      a.Country,
		})
	}
	return p
}

// FromDomain populates the persistence model from a domain Prison
func (m *PrisonModel) FromDomain(p *prison.Prison) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.PrisonID = p.PrisonID
	m.Name = p.Name
	m.Active = p.Active
	m.Male = p.Male
	m.Female = p.Female
	m.Contracted = p.Contracted
	m.Lthse = p.Lthse
	m.InactiveDate = p.InactiveDate
	m.Types = make([]PrisonTypeModel, 0, len(p.Types))
	for _, t := range p.Types {
		tm := PrisonTypeModel{PrisonRef: p.ID, Code: string(t.Code)}
		tm.FromDomainBaseEntity(t.BaseEntity)
		m.Types = append(m.Types, tm)
	}
	m.Addresses = make([]PrisonAddressModel, 0, len(p.Addresses))
	for _, a := range p.Addresses {
		am := PrisonAddressModel{
			PrisonRef:    p.ID,
			AddressLine1: a.AddressLine1,
			AddressLine2: a.AddressLine2,
			Town:         a.Town,
			County:       a.County,
			Postcode:     a.Postcode,
			Country:      a.Country,
		}
		am.FromDomainBaseEntity(a.BaseEntity)
		m.Addresses = append(m.Addresses, am)
	}
}

// CourtModel is the persistence model for a court register entry
type CourtModel struct {
	BaseModel
	CourtID     string `gorm:"type:varchar(12);not null;uniqueIndex:uk_court_court_id"`
	Name        string `gorm:"type:varchar(80);not null"`
	Description string `gorm:"type:varchar(200)"`
	Type        string `gorm:"type:varchar(3);not null"`
	Active      bool   `gorm:"not null;default:true"`

	Buildings []CourtBuildingModel `gorm:"foreignKey:CourtRef;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (CourtModel) TableName() string {
	return "courts"
}

// CourtBuildingModel is a building row owned by a court. Court contacts are
// plain columns here, not references into the shared value store.
type CourtBuildingModel struct {
	BaseModel
	CourtRef     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:varchar(80);not null"`
	AddressLine1 string    `gorm:"type:varchar(80)"`
	AddressLine2 string    `gorm:"type:varchar(80)"`
	Town         string    `gorm:"type:varchar(80)"`
	County       string    `gorm:"type:varchar(80)"`
	Postcode     string    `gorm:"type:varchar(8)"`
	Country      string    `gorm:"type:varchar(16)"`
	Phone        string    `gorm:"type:varchar(40)"`
	Email        string    `gorm:"type:varchar(320)"`
}

// TableName returns the table name for GORM
func (CourtBuildingModel) TableName() string {
	return "court_buildings"
}

// ToDomain converts the persistence model to a domain Court
func (m *CourtModel) ToDomain() *court.Court {
	c := &court.Court{
		CourtID:     m.CourtID,
		Name:        m.Name,
		Description: m.Description,
		Type:        court.TypeCode(m.Type),
		Active:      m.Active,
	}
	c.BaseEntity = m.BaseModel.ToDomain()
	for _, b := range m.Buildings {
		c.Buildings = append(c.Buildings, court.Building{
			BaseEntity:   b.BaseModel.ToDomain(),
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
	return c
}

// FromDomain populates the persistence model from a domain Court
func (m *CourtModel) FromDomain(c *court.Court) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.CourtID = c.CourtID
	m.Name = c.Name
	m.Description = c.Description
	m.Type = string(c.Type)
	m.Active = c.Active
	m.Buildings = make([]CourtBuildingModel, 0, len(c.Buildings))
	for _, b := range c.Buildings {
		bm := CourtBuildingModel{
			CourtRef:     c.ID,
			Name:         b.Name,
			AddressLine1: b.AddressLine1,
			AddressLine2: b.AddressLine2,
			Town:         b.Town,
			County:       b.County,
			Postcode:     b.Postcode,
			Country:      b.Country,
			Phone:        b.Phone,
			Email:        b.Email,
		}
		bm.FromDomainBaseEntity(b.BaseEntity)
		m.Buildings = append(m.Buildings, bm)
	}
}
