package court

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/registers/backend/internal/application/audit"
	auditdomain "github.com/registers/backend/internal/domain/audit"
	"github.com/registers/backend/internal/domain/court"
	"github.com/registers/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service implements the court register read and maintenance operations
type Service struct {
	repo   court.Repository
	scope  TransactionScope
	audit  audit.Recorder
	logger *zap.Logger
}

// NewService creates a new court Service
func NewService(
	repo court.Repository,
	scope TransactionScope,
	auditRecorder audit.Recorder,
	logger *zap.Logger,
) *Service {
	if auditRecorder == nil {
		auditRecorder = audit.NopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, scope: scope, audit: auditRecorder, logger: logger}
}

// Get returns a single register entry by court id
func (s *Service) Get(ctx context.Context, courtID string) (*CourtResponse, error) {
	c, err := s.repo.FindByCourtID(ctx, courtID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, court.NewCourtNotFoundError(courtID)
		}
		return nil, err
	}
	response := ToCourtResponse(c)
	return &response, nil
}

// GetAll returns register entries, optionally restricted to active courts
func (s *Service) GetAll(ctx context.Context, activeOnly bool) ([]CourtResponse, error) {
	courts, err := s.repo.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	responses := make([]CourtResponse, 0, len(courts))
	for i := range courts {
		responses = append(responses, ToCourtResponse(&courts[i]))
	}
	return responses, nil
}

// Insert registers a new court
func (s *Service) Insert(ctx context.Context, req InsertCourtRequest) (*CourtResponse, error) {
	exists, err := s.repo.ExistsByCourtID(ctx, req.CourtID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("COURT_ALREADY_EXISTS", fmt.Sprintf("Court %s already exists.", req.CourtID))
	}

	c, err := court.NewCourt(req.CourtID, req.CourtName, req.Type)
	if err != nil {
		return nil, err
	}
	c.Description = req.Description
	c.Active = req.Active
	c.AddDomainEvent(court.NewCourtInsertedEvent(c))

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, auditdomain.ActionCourtRegisterInsert, c.CourtID, shared.UsernameFromContext(ctx), req)
	response := ToCourtResponse(c)
	return &response, nil
}

// Update amends an existing register entry
func (s *Service) Update(ctx context.Context, courtID string, req UpdateCourtRequest) (*CourtResponse, error) {
	c, err := s.findCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}
	if err := c.Amend(req.CourtName, req.Description, req.Type, req.Active); err != nil {
		return nil, err
	}
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, auditdomain.ActionCourtRegisterAmend, c.CourtID, shared.UsernameFromContext(ctx), req)
	response := ToCourtResponse(c)
	return &response, nil
}

// AddBuilding attaches a building to a register entry
func (s *Service) AddBuilding(ctx context.Context, courtID string, req BuildingRequest) (*CourtResponse, error) {
	c, err := s.findCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}
	if err := c.AddBuilding(req.toDomain()); err != nil {
		return nil, err
	}
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, auditdomain.ActionCourtRegisterAmend, c.CourtID, shared.UsernameFromContext(ctx), req)
	response := ToCourtResponse(c)
	return &response, nil
}

func (s *Service) findCourt(ctx context.Context, courtID string) (*court.Court, error) {
	c, err := s.repo.FindByCourtID(ctx, courtID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, court.NewCourtNotFoundError(courtID)
		}
		return nil, err
	}
	return c, nil
}

// save persists the aggregate and its pending domain events in a single
// transaction. A failed outbox write rolls the aggregate write back.
func (s *Service) save(ctx context.Context, c *court.Court) error {
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.Courts().Save(ctx, c); err != nil {
			return err
		}
		for _, event := range c.GetDomainEvents() {
			payload, err := json.Marshal(event)
			if err != nil {
				return fmt.Errorf("marshal %s event: %w", event.EventType(), err)
			}
			if err := repos.Outbox().Save(ctx, shared.NewOutboxEntry(event, payload)); err != nil {
				return fmt.Errorf("store %s event in outbox: %w", event.EventType(), err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	c.ClearDomainEvents()
	return nil
}
