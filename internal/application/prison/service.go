package prison

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/registers/backend/internal/application/audit"
	auditdomain "github.com/registers/backend/internal/domain/audit"
	"github.com/registers/backend/internal/domain/prison"
	"github.com/registers/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Cache is a read-through cache for prison responses. Failures are treated
// as misses; the cache never makes a request fail.
type Cache interface {
	Get(ctx context.Context, prisonID string) (*PrisonResponse, bool)
	Set(ctx context.Context, response PrisonResponse)
	Invalidate(ctx context.Context, prisonID string)
}

// NopCache is a Cache that caches nothing
type NopCache struct{}

func (NopCache) Get(ctx context.Context, prisonID string) (*PrisonResponse, bool) { return nil, false }
func (NopCache) Set(ctx context.Context, response PrisonResponse)                 {}
func (NopCache) Invalidate(ctx context.Context, prisonID string)                  {}

// Service implements the prison register read and maintenance operations
type Service struct {
	repo   prison.Repository
	scope  TransactionScope
	cache  Cache
	audit  audit.Recorder
	logger *zap.Logger
}

// NewService creates a new prison Service
func NewService(
	repo prison.Repository,
	scope TransactionScope,
	cache Cache,
	auditRecorder audit.Recorder,
	logger *zap.Logger,
) *Service {
	if cache == nil {
		cache = NopCache{}
	}
	if auditRecorder == nil {
		auditRecorder = audit.NopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, scope: scope, cache: cache, audit: auditRecorder, logger: logger}
}

// Get returns a single register entry by prison id
func (s *Service) Get(ctx context.Context, prisonID string) (*PrisonResponse, error) {
	if cached, ok := s.cache.Get(ctx, prisonID); ok {
		return cached, nil
	}

	p, err := s.repo.FindByPrisonID(ctx, prisonID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, prison.NewPrisonNotFoundError(prisonID)
		}
		return nil, err
	}

	response := ToPrisonResponse(p)
	s.cache.Set(ctx, response)
	return &response, nil
}

// GetAll returns every register entry
func (s *Service) GetAll(ctx context.Context) ([]PrisonResponse, error) {
	prisons, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(prisons), nil
}

// Search returns register entries matching the filter
func (s *Service) Search(ctx context.Context, req SearchRequest) ([]PrisonResponse, error) {
	codes := make([]prison.TypeCode, 0, len(req.PrisonTypes))
	for _, code := range req.PrisonTypes {
		if !code.IsValid() {
			return nil, shared.NewDomainError("INVALID_PRISON_TYPE", fmt.Sprintf("Prison type %s is not recognised", code))
		}
		codes = append(codes, code)
	}
	prisons, err := s.repo.Search(ctx, prison.SearchFilter{
		Active:     req.Active,
		TextSearch: req.TextSearch,
		Male:       req.Male,
		Female:     req.Female,
		TypeCodes:  codes,
		SortBy:     req.SortBy,
		SortDir:    req.SortDir,
	})
	if err != nil {
		return nil, err
	}
	return toResponses(prisons), nil
}

// Insert registers a new prison
func (s *Service) Insert(ctx context.Context, req InsertPrisonRequest) (*PrisonResponse, error) {
	exists, err := s.repo.ExistsByPrisonID(ctx, req.PrisonID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("PRISON_ALREADY_EXISTS", fmt.Sprintf("Prison %s already exists.", req.PrisonID))
	}

	p, err := prison.NewPrison(req.PrisonID, req.PrisonName)
	if err != nil {
		return nil, err
	}
	p.Male = req.Male
	p.Female = req.Female
	p.Contracted = req.Contracted
	p.Lthse = req.Lthse
	if !req.Active {
		p.Deactivate(time.Now())
	}
	if err := p.SetTypes(req.PrisonTypes); err != nil {
		return nil, err
	}
	for _, a := range req.Addresses {
		if err := p.AddAddress(a.toDomain()); err != nil {
			return nil, err
		}
	}
	// The setters above raise amendment events while the entry is being
	// assembled; a new registration is announced once.
	p.ClearDomainEvents()
	p.AddDomainEvent(prison.NewPrisonInsertedEvent(p))

	if err := s.save(ctx, p); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, auditdomain.ActionPrisonRegisterInsert, p.PrisonID, shared.UsernameFromContext(ctx), req)
	response := ToPrisonResponse(p)
	return &response, nil
}

// Update amends an existing register entry
func (s *Service) Update(ctx context.Context, prisonID string, req UpdatePrisonRequest) (*PrisonResponse, error) {
	p, err := s.findPrison(ctx, prisonID)
	if err != nil {
		return nil, err
	}

	if err := p.Amend(req.PrisonName, req.Male, req.Female, req.Contracted, req.Lthse); err != nil {
		return nil, err
	}
	if err := p.SetTypes(req.PrisonTypes); err != nil {
		return nil, err
	}
	switch {
	case req.Active && !p.Active:
		p.Reactivate()
	case !req.Active && p.Active:
		p.Deactivate(time.Now())
	}

	if err := s.save(ctx, p); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, auditdomain.ActionPrisonRegisterAmend, p.PrisonID, shared.UsernameFromContext(ctx), req)
	response := ToPrisonResponse(p)
	return &response, nil
}

// AddAddress attaches a new address to a register entry
func (s *Service) AddAddress(ctx context.Context, prisonID string, req AddressRequest) (*PrisonResponse, error) {
	p, err := s.findPrison(ctx, prisonID)
	if err != nil {
		return nil, err
	}
	if err := p.AddAddress(req.toDomain()); err != nil {
		return nil, err
	}
	if err := s.save(ctx, p); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, auditdomain.ActionPrisonRegisterAmend, p.PrisonID, shared.UsernameFromContext(ctx), req)
	response := ToPrisonResponse(p)
	return &response, nil
}

// AmendAddress replaces an existing address on a register entry
func (s *Service) AmendAddress(ctx context.Context, prisonID string, addressID uuid.UUID, req AddressRequest) (*PrisonResponse, error) {
	p, err := s.findPrison(ctx, prisonID)
	if err != nil {
		return nil, err
	}
	address := req.toDomain()
	address.ID = addressID
	if err := p.AmendAddress(address); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("ADDRESS_NOT_FOUND", fmt.Sprintf("Address %s not found for prison %s.", addressID, prisonID))
		}
		return nil, err
	}
	if err := s.save(ctx, p); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, auditdomain.ActionPrisonRegisterAmend, p.PrisonID, shared.UsernameFromContext(ctx), req)
	response := ToPrisonResponse(p)
	return &response, nil
}

// DeleteAddress removes an address from a register entry
func (s *Service) DeleteAddress(ctx context.Context, prisonID string, addressID uuid.UUID) error {
	p, err := s.findPrison(ctx, prisonID)
	if err != nil {
		return err
	}
	if err := p.DeleteAddress(addressID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("ADDRESS_NOT_FOUND", fmt.Sprintf("Address %s not found for prison %s.", addressID, prisonID))
		}
		return err
	}
	if err := s.save(ctx, p); err != nil {
		return err
	}

	s.audit.Record(ctx, auditdomain.ActionPrisonRegisterAmend, p.PrisonID, shared.UsernameFromContext(ctx), map[string]any{
		"addressId": addressID,
	})
	return nil
}

func (s *Service) findPrison(ctx context.Context, prisonID string) (*prison.Prison, error) {
	p, err := s.repo.FindByPrisonID(ctx, prisonID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, prison.NewPrisonNotFoundError(prisonID)
		}
		return nil, err
	}
	return p, nil
}

// save persists the aggregate and its pending domain events in a single
// transaction, then drops the stale cache entry. A failed outbox write rolls
// the aggregate write back.
func (s *Service) save(ctx context.Context, p *prison.Prison) error {
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.Prisons().Save(ctx, p); err != nil {
			return err
		}
		for _, event := range p.GetDomainEvents() {
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
	p.ClearDomainEvents()

	s.cache.Invalidate(ctx, p.PrisonID)
	return nil
}

func toResponses(prisons []prison.Prison) []PrisonResponse {
	responses := make([]PrisonResponse, 0, len(prisons))
	for i := range prisons {
		responses = append(responses, ToPrisonResponse(&prisons[i]))
	}
	return responses
}
