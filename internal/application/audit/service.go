package audit

import (
	"context"
	"encoding/json"

	"github.com/registers/backend/internal/domain/audit"
	"github.com/registers/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Recorder records audit events best-effort. Implementations must never fail
// the calling request: persistence errors are logged and swallowed.
type Recorder interface {
	Record(ctx context.Context, action, subjectID, username string, details any)
}

// Service writes audit records through the audit repository
type Service struct {
	repo   audit.Repository
	logger *zap.Logger
}

// NewService creates a new audit Service
func NewService(repo audit.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Record persists an audit record. Failures are logged, never returned; the
// triggering mutation has already committed and must not be rolled back or
// failed because the audit trail is unavailable.
func (s *Service) Record(ctx context.Context, action, subjectID, username string, details any) {
	payload, err := json.Marshal(details)
	if err != nil {
		s.logger.Warn("failed to serialize audit details",
			zap.String("action", action),
			zap.String("subject_id", subjectID),
			zap.Error(err))
		payload = []byte("{}")
	}

	record := &audit.Record{
		BaseEntity: shared.NewBaseEntity(),
		Action:     action,
		SubjectID:  subjectID,
		Username:   username,
		Details:    payload,
	}

	if err := s.repo.Save(ctx, record); err != nil {
		s.logger.Warn("failed to write audit record",
			zap.String("action", action),
			zap.String("subject_id", subjectID),
			zap.Error(err))
	}
}

// NopRecorder discards audit events; used in tests
type NopRecorder struct{}

// Record does nothing
func (NopRecorder) Record(context.Context, string, string, string, any) {}
