package models

import (
	"github.com/google/uuid"
	"github.com/registers/backend/internal/domain/contact"
)

// EmailAddressModel is a deduplicated email value row shared by aggregates
// across prisons and departments. The unique index on value is the race
// arbiter for concurrent get-or-create.
type EmailAddressModel struct {
	BaseModel
	Value string `gorm:"type:varchar(320);not null;uniqueIndex:uk_email_address_value"`
}

// TableName returns the table name for GORM
func (EmailAddressModel) TableName() string {
	return "email_addresses"
}

// PhoneNumberModel is a deduplicated phone value row
type PhoneNumberModel struct {
	BaseModel
	Value string `gorm:"type:varchar(40);not null;uniqueIndex:uk_phone_number_value"`
}

// TableName returns the table name for GORM
func (PhoneNumberModel) TableName() string {
	return "phone_numbers"
}

// WebAddressModel is a deduplicated web address value row
type WebAddressModel struct {
	BaseModel
	Value string `gorm:"type:varchar(500);not null;uniqueIndex:uk_web_address_value"`
}

// TableName returns the table name for GORM
func (WebAddressModel) TableName() string {
	return "web_addresses"
}

// ContactDetailsModel is the persistence model for the per
// (prison, department) aggregate. Each channel column is a nullable foreign
// key into the matching value table.
type ContactDetailsModel struct {
	BaseModel
	PrisonID       string     `gorm:"type:varchar(12);not null;uniqueIndex:uk_contact_details_prison_dept,priority:1;index"`
	DepartmentType string     `gorm:"type:varchar(40);not null;uniqueIndex:uk_contact_details_prison_dept,priority:2"`
	EmailAddressID *uuid.UUID `gorm:"type:uuid;index"`
	PhoneNumberID  *uuid.UUID `gorm:"type:uuid;index"`
	WebAddressID   *uuid.UUID `gorm:"type:uuid;index"`

	EmailAddress *EmailAddressModel `gorm:"foreignKey:EmailAddressID"`
	PhoneNumber  *PhoneNumberModel  `gorm:"foreignKey:PhoneNumberID"`
	WebAddress   *WebAddressModel   `gorm:"foreignKey:WebAddressID"`
}

// TableName returns the table name for GORM
func (ContactDetailsModel) TableName() string {
	return "contact_details"
}

// ToDomain converts the persistence model to a domain aggregate
func (m *ContactDetailsModel) ToDomain() *contact.ContactDetails {
	cd := &contact.ContactDetails{
		PrisonID:   m.PrisonID,
		Department: contact.DepartmentType(m.DepartmentType),
	}
	cd.BaseEntity = m.BaseModel.ToDomain()
	if m.EmailAddress != nil {
		cd.EmailAddress = &contact.ContactValue{ID: m.EmailAddress.ID, Channel: contact.ChannelEmail, Value: m.EmailAddress.Value}
	}
	if m.PhoneNumber != nil {
		cd.PhoneNumber = &contact.ContactValue{ID: m.PhoneNumber.ID, Channel: contact.ChannelPhone, Value: m.PhoneNumber.Value}
	}
	if m.WebAddress != nil {
		cd.WebAddress = &contact.ContactValue{ID: m.WebAddress.ID, Channel: contact.ChannelWeb, Value: m.WebAddress.Value}
	}
	return cd
}

// FromDomain populates the persistence model from a domain aggregate. Only
// the reference columns are set; value rows are managed by the value
// repository.
func (m *ContactDetailsModel) FromDomain(cd *contact.ContactDetails) {
	m.FromDomainBaseEntity(cd.BaseEntity)
	m.PrisonID = cd.PrisonID
	m.DepartmentType = string(cd.Department)
	m.EmailAddressID = valueID(cd.EmailAddress)
	m.PhoneNumberID = valueID(cd.PhoneNumber)
	m.WebAddressID = valueID(cd.WebAddress)
}

func valueID(v *contact.ContactValue) *uuid.UUID {
	if v == nil {
		return nil
	}
	id := v.ID
	return &id
}
