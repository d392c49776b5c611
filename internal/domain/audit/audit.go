package audit

import (
	"context"

	"github.com/registers/backend/internal/domain/shared"
)

// Actions recorded against the register
const (
	ActionPrisonRegisterInsert   = "PRISON_REGISTER_INSERT"
	ActionPrisonRegisterAmend    = "PRISON_REGISTER_AMEND"
	ActionCourtRegisterInsert    = "COURT_REGISTER_INSERT"
	ActionCourtRegisterAmend     = "COURT_REGISTER_AMEND"
	ActionContactDetailsCreate   = "CONTACT_DETAILS_CREATE"
	ActionContactDetailsUpdate   = "CONTACT_DETAILS_UPDATE"
	ActionContactDetailsDelete   = "CONTACT_DETAILS_DELETE"
)

// Record captures who did what to which register entry. Details holds the
// action-specific payload serialized as JSON.
type Record struct {
	shared.BaseEntity
	Action    string
	SubjectID string
	Username  string
	Details   []byte
}

// Repository persists audit records
type Repository interface {
	// Save appends an audit record
	Save(ctx context.Context, record *Record) error

	// FindBySubject loads the audit trail for a register entry, newest first
	FindBySubject(ctx context.Context, subjectID string, limit int) ([]Record, error)
}
