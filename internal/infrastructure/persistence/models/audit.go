package models

import (
	"github.com/registers/backend/internal/domain/audit"
)

// AuditRecordModel is the persistence model for register audit records
type AuditRecordModel struct {
	BaseModel
	Action    string `gorm:"type:varchar(40);not null;index"`
	SubjectID string `gorm:"type:varchar(12);not null;index"`
	Username  string `gorm:"type:varchar(80)"`
	Details   []byte `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (AuditRecordModel) TableName() string {
	return "audit_records"
}

// ToDomain converts the persistence model to a domain Record
func (m *AuditRecordModel) ToDomain() *audit.Record {
	r := &audit.Record{
		Action:    m.Action,
		SubjectID: m.SubjectID,
		Username:  m.Username,
		Details:   m.Details,
	}
	r.BaseEntity = m.BaseModel.ToDomain()
	return r
}

// FromDomain populates the persistence model from a domain Record
func (m *AuditRecordModel) FromDomain(r *audit.Record) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.Action = r.Action
	m.SubjectID = r.SubjectID
	m.Username = r.Username
	m.Details = r.Details
}
