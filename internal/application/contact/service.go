package contact

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/registers/backend/internal/application/audit"
	auditdomain "github.com/registers/backend/internal/domain/audit"
	"github.com/registers/backend/internal/domain/contact"
	"github.com/registers/backend/internal/domain/prison"
	"github.com/registers/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Metrics receives domain counters from the reconciliation engine. A nil
// implementation is allowed.
type Metrics interface {
	// RecordMutation counts a contact details mutation by operation and department
	RecordMutation(ctx context.Context, operation string, department contact.DepartmentType)
	// RecordOrphanDeleted counts a garbage-collected value row by channel
	RecordOrphanDeleted(ctx context.Context, channel contact.Channel)
}

// Service is the reconciliation engine for department contact details. Every
// mutation runs inside one transaction: the aggregate write, the value
// get-or-create calls, the orphan deletions and the outbox entry commit
// together.
type Service struct {
	scope   TransactionScope
	prisons prison.Repository
	details contact.ContactDetailsRepository
	audit   audit.Recorder
	metrics Metrics
	logger  *zap.Logger
}

// NewService creates a new contact details Service
func NewService(
	scope TransactionScope,
	prisons prison.Repository,
	details contact.ContactDetailsRepository,
	auditRecorder audit.Recorder,
	metrics Metrics,
	logger *zap.Logger,
) *Service {
	if auditRecorder == nil {
		auditRecorder = audit.NopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		scope:   scope,
		prisons: prisons,
		details: details,
		audit:   auditRecorder,
		metrics: metrics,
		logger:  logger,
	}
}

// Get returns the contact details for a prison department
func (s *Service) Get(ctx context.Context, prisonID, departmentToken string) (*ContactDetailsResponse, error) {
	department, err := contact.ResolveDepartmentType(departmentToken)
	if err != nil {
		return nil, err
	}

	cd, err := s.details.FindByPrisonAndDepartment(ctx, prisonID, department)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, contact.NewContactDetailsNotFoundError(prisonID, department)
		}
		return nil, err
	}

	response := ToContactDetailsResponse(cd)
	return &response, nil
}

// Create creates the contact details aggregate for a prison department.
// Create is not an upsert: a second create for the same pair fails.
func (s *Service) Create(ctx context.Context, prisonID, departmentToken string, req ContactDetailsRequest) (*ContactDetailsResponse, error) {
	department, err := contact.ResolveDepartmentType(departmentToken)
	if err != nil {
		return nil, err
	}
	req, err = validateRequest(req)
	if err != nil {
		return nil, err
	}

	p, err := s.findPrison(ctx, prisonID)
	if err != nil {
		return nil, err
	}

	var cd *contact.ContactDetails
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		exists, err := repos.ContactDetails().ExistsByPrisonAndDepartment(ctx, p.PrisonID, department)
		if err != nil {
			return err
		}
		if exists {
			return contact.NewContactDetailsAlreadyExistError(p.PrisonID, department)
		}

		cd, err = contact.NewContactDetails(p.PrisonID, department)
		if err != nil {
			return err
		}
		for _, ch := range contact.AllChannels {
			desired := req.value(ch)
			if desired == nil {
				continue
			}
			value, err := repos.Values().GetOrCreate(ctx, ch, *desired)
			if err != nil {
				return err
			}
			cd.SetValue(ch, value)
		}

		if err := repos.ContactDetails().Save(ctx, cd); err != nil {
			return err
		}
		return s.saveAmendmentEvent(ctx, repos, p)
	})
	if err != nil {
		return nil, err
	}

	s.recordMutation(ctx, auditdomain.ActionContactDetailsCreate, department, cd)
	response := ToContactDetailsResponse(cd)
	return &response, nil
}

// Update reconciles the aggregate's channel references against the desired
// values. A nil desired value leaves the channel untouched unless
// removeIfNull is set, in which case the reference is cleared. Any value row
// left unreferenced by the rewiring is deleted in the same transaction.
func (s *Service) Update(ctx context.Context, prisonID, departmentToken string, req ContactDetailsRequest, removeIfNull bool) (*ContactDetailsResponse, error) {
	department, err := contact.ResolveDepartmentType(departmentToken)
	if err != nil {
		return nil, err
	}
	req, err = validateRequest(req)
	if err != nil {
		return nil, err
	}

	p, err := s.findPrison(ctx, prisonID)
	if err != nil {
		return nil, err
	}

	var cd *contact.ContactDetails
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		cd, err = repos.ContactDetails().FindByPrisonAndDepartment(ctx, p.PrisonID, department)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return contact.NewContactDetailsNotFoundError(p.PrisonID, department)
			}
			return err
		}

		released := make([]*contact.ContactValue, 0, len(contact.AllChannels))
		for _, ch := range contact.AllChannels {
			desired := req.value(ch)
			current := cd.Value(ch)
			switch {
			case desired != nil && (current == nil || current.Value != *desired):
				value, err := repos.Values().GetOrCreate(ctx, ch, *desired)
				if err != nil {
					return err
				}
				cd.SetValue(ch, value)
				if current != nil {
					released = append(released, current)
				}
			case desired == nil && removeIfNull && current != nil:
				cd.SetValue(ch, nil)
				released = append(released, current)
			}
		}

		// The aggregate is persisted before the orphan checks so the count
		// query observes the cleared/rewired references.
		if err := repos.ContactDetails().Save(ctx, cd); err != nil {
			return err
		}
		s.collectOrphans(ctx, repos, released)
		return s.saveAmendmentEvent(ctx, repos, p)
	})
	if err != nil {
		return nil, err
	}

	s.recordMutation(ctx, auditdomain.ActionContactDetailsUpdate, department, cd)
	response := ToContactDetailsResponse(cd)
	return &response, nil
}

// Delete removes the aggregate and garbage-collects every value row it
// referenced that no other aggregate still references
func (s *Service) Delete(ctx context.Context, prisonID, departmentToken string) error {
	department, err := contact.ResolveDepartmentType(departmentToken)
	if err != nil {
		return err
	}

	p, err := s.findPrison(ctx, prisonID)
	if err != nil {
		return err
	}

	var cd *contact.ContactDetails
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		cd, err = repos.ContactDetails().FindByPrisonAndDepartment(ctx, p.PrisonID, department)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return contact.NewContactDetailsNotFoundError(p.PrisonID, department)
			}
			return err
		}

		released := cd.References()
		if err := repos.ContactDetails().Delete(ctx, cd); err != nil {
			return err
		}
		s.collectOrphans(ctx, repos, released)
		return s.saveAmendmentEvent(ctx, repos, p)
	})
	if err != nil {
		return err
	}

	s.recordMutation(ctx, auditdomain.ActionContactDetailsDelete, department, cd)
	return nil
}

// GetChannelValue returns a single channel's value for a prison department;
// a missing aggregate or an unset channel both report not found
func (s *Service) GetChannelValue(ctx context.Context, prisonID, departmentToken string, channel contact.Channel) (string, error) {
	department, err := contact.ResolveDepartmentType(departmentToken)
	if err != nil {
		return "", err
	}

	cd, err := s.details.FindByPrisonAndDepartment(ctx, prisonID, department)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", contact.NewContactDetailsNotFoundError(prisonID, department)
		}
		return "", err
	}
	value := cd.Value(channel)
	if value == nil {
		return "", contact.NewContactDetailsNotFoundError(prisonID, department)
	}
	return value.Value, nil
}

// SetChannelValue sets a single channel's value, creating the aggregate when
// the (prison, department) pair has none yet. The outcome tells the caller
// whether a create or an update happened.
func (s *Service) SetChannelValue(ctx context.Context, prisonID, departmentToken string, channel contact.Channel, raw string) (SetOutcome, error) {
	department, err := contact.ResolveDepartmentType(departmentToken)
	if err != nil {
		return OutcomeUpdated, err
	}
	value, err := validateChannelValue(channel, raw)
	if err != nil {
		return OutcomeUpdated, err
	}

	p, err := s.findPrison(ctx, prisonID)
	if err != nil {
		return OutcomeUpdated, err
	}

	outcome := OutcomeUpdated
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		cd, err := repos.ContactDetails().FindByPrisonAndDepartment(ctx, p.PrisonID, department)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			cd, err = contact.NewContactDetails(p.PrisonID, department)
			if err != nil {
				return err
			}
			outcome = OutcomeCreated
		}

		current := cd.Value(channel)
		if current != nil && current.Value == value {
			return nil
		}

		newValue, err := repos.Values().GetOrCreate(ctx, channel, value)
		if err != nil {
			return err
		}
		cd.SetValue(channel, newValue)
		if err := repos.ContactDetails().Save(ctx, cd); err != nil {
			return err
		}
		if current != nil {
			s.collectOrphans(ctx, repos, []*contact.ContactValue{current})
		}
		return s.saveAmendmentEvent(ctx, repos, p)
	})
	if err != nil {
		return OutcomeUpdated, err
	}

	action := auditdomain.ActionContactDetailsUpdate
	if outcome == OutcomeCreated {
		action = auditdomain.ActionContactDetailsCreate
	}
	s.audit.Record(ctx, action, p.PrisonID, shared.UsernameFromContext(ctx), map[string]any{
		"prisonId":   p.PrisonID,
		"department": department.PathSegment(),
		"channel":    string(channel),
	})
	if s.metrics != nil {
		s.metrics.RecordMutation(ctx, action, department)
	}
	return outcome, nil
}

// RemoveChannelValue clears a single channel's reference and
// garbage-collects the old value row if orphaned. The aggregate itself is
// retained even when the removal empties it.
func (s *Service) RemoveChannelValue(ctx context.Context, prisonID, departmentToken string, channel contact.Channel) error {
	department, err := contact.ResolveDepartmentType(departmentToken)
	if err != nil {
		return err
	}

	p, err := s.findPrison(ctx, prisonID)
	if err != nil {
		return err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		cd, err := repos.ContactDetails().FindByPrisonAndDepartment(ctx, p.PrisonID, department)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return contact.NewContactDetailsNotFoundError(p.PrisonID, department)
			}
			return err
		}
		current := cd.Value(channel)
		if current == nil {
			return contact.NewContactDetailsNotFoundError(p.PrisonID, department)
		}

		cd.SetValue(channel, nil)
		if err := repos.ContactDetails().Save(ctx, cd); err != nil {
			return err
		}
		s.collectOrphans(ctx, repos, []*contact.ContactValue{current})
		return s.saveAmendmentEvent(ctx, repos, p)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, auditdomain.ActionContactDetailsUpdate, p.PrisonID, shared.UsernameFromContext(ctx), map[string]any{
		"prisonId":   p.PrisonID,
		"department": department.PathSegment(),
		"channel":    string(channel),
		"removed":    true,
	})
	if s.metrics != nil {
		s.metrics.RecordMutation(ctx, auditdomain.ActionContactDetailsUpdate, department)
	}
	return nil
}

// findPrison loads the prison or reports PrisonNotFound
func (s *Service) findPrison(ctx context.Context, prisonID string) (*prison.Prison, error) {
	p, err := s.prisons.FindByPrisonID(ctx, prisonID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, prison.NewPrisonNotFoundError(prisonID)
		}
		return nil, err
	}
	return p, nil
}

// collectOrphans deletes released value rows that no aggregate references
// anymore. Failures here are logged and swallowed: correctness is enforced
// by the uniqueness and liveness invariants, not by this cleanup succeeding
// on every mutation.
func (s *Service) collectOrphans(ctx context.Context, repos TransactionalRepositories, released []*contact.ContactValue) {
	for _, value := range released {
		deleted, err := repos.Values().DeleteIfOrphaned(ctx, value.Channel, value.ID)
		if err != nil {
			s.logger.Warn("orphan check failed for contact value",
				zap.String("channel", string(value.Channel)),
				zap.String("value_id", value.ID.String()),
				zap.Error(err))
			continue
		}
		if deleted && s.metrics != nil {
			s.metrics.RecordOrphanDeleted(ctx, value.Channel)
		}
	}
}

// saveAmendmentEvent stores a prison amendment event in the outbox within
// the current transaction
func (s *Service) saveAmendmentEvent(ctx context.Context, repos TransactionalRepositories, p *prison.Prison) error {
	event := prison.NewPrisonAmendedEvent(p)
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return repos.Outbox().Save(ctx, shared.NewOutboxEntry(event, payload))
}

// recordMutation emits the audit record and metric for a full-aggregate mutation
func (s *Service) recordMutation(ctx context.Context, action string, department contact.DepartmentType, cd *contact.ContactDetails) {
	details := map[string]any{
		"prisonId":   cd.PrisonID,
		"department": department.PathSegment(),
	}
	for _, ch := range contact.AllChannels {
		if v := cd.ValueString(ch); v != nil {
			details[channelField(ch)] = *v
		}
	}
	s.audit.Record(ctx, action, cd.PrisonID, shared.UsernameFromContext(ctx), details)
	if s.metrics != nil {
		s.metrics.RecordMutation(ctx, action, department)
	}
}

func channelField(ch contact.Channel) string {
	switch ch {
	case contact.ChannelEmail:
		return "emailAddress"
	case contact.ChannelPhone:
		return "phoneNumber"
	case contact.ChannelWeb:
		return "webAddress"
	}
	return string(ch)
}
