package contact

import (
	"context"
	"testing"
	"time"

	domainaudit "github.com/registers/backend/internal/domain/audit"
	"github.com/registers/backend/internal/domain/contact"
	"github.com/registers/backend/internal/domain/prison"
	"github.com/registers/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePrisonRepo is an in-memory prison repository for service tests
type fakePrisonRepo struct {
	prisons map[string]*prison.Prison
}

func newFakePrisonRepo(ids ...string) *fakePrisonRepo {
	r := &fakePrisonRepo{prisons: make(map[string]*prison.Prison)}
	for _, id := range ids {
		p, err := prison.NewPrison(id, "HMP "+id)
		if err != nil {
			panic(err)
		}
		r.prisons[id] = p
	}
	return r
}

func (r *fakePrisonRepo) FindByPrisonID(ctx context.Context, prisonID string) (*prison.Prison, error) {
	if p, ok := r.prisons[prisonID]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakePrisonRepo) FindAll(ctx context.Context) ([]prison.Prison, error) {
	var result []prison.Prison
	for _, p := range r.prisons {
		result = append(result, *p)
	}
	return result, nil
}

func (r *fakePrisonRepo) Search(ctx context.Context, filter prison.SearchFilter) ([]prison.Prison, error) {
	return r.FindAll(ctx)
}

func (r *fakePrisonRepo) ExistsByPrisonID(ctx context.Context, prisonID string) (bool, error) {
	_, ok := r.prisons[prisonID]
	return ok, nil
}

func (r *fakePrisonRepo) Save(ctx context.Context, p *prison.Prison) error {
	r.prisons[p.PrisonID] = p
	return nil
}

// fakeDetailsRepo stores aggregates keyed by (prison, department)
type fakeDetailsRepo struct {
	aggregates map[string]*contact.ContactDetails
}

func newFakeDetailsRepo() *fakeDetailsRepo {
	return &fakeDetailsRepo{aggregates: make(map[string]*contact.ContactDetails)}
}

func detailsKey(prisonID string, department contact.DepartmentType) string {
	return prisonID + "/" + string(department)
}

func (r *fakeDetailsRepo) FindByPrisonAndDepartment(ctx context.Context, prisonID string, department contact.DepartmentType) (*contact.ContactDetails, error) {
	if cd, ok := r.aggregates[detailsKey(prisonID, department)]; ok {
		return cd, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeDetailsRepo) FindAllForPrison(ctx context.Context, prisonID string) ([]contact.ContactDetails, error) {
	var result []contact.ContactDetails
	for _, cd := range r.aggregates {
		if cd.PrisonID == prisonID {
			result = append(result, *cd)
		}
	}
	return result, nil
}

func (r *fakeDetailsRepo) ExistsByPrisonAndDepartment(ctx context.Context, prisonID string, department contact.DepartmentType) (bool, error) {
	_, ok := r.aggregates[detailsKey(prisonID, department)]
	return ok, nil
}

func (r *fakeDetailsRepo) Save(ctx context.Context, details *contact.ContactDetails) error {
	r.aggregates[detailsKey(details.PrisonID, details.Department)] = details
	return nil
}

func (r *fakeDetailsRepo) Delete(ctx context.Context, details *contact.ContactDetails) error {
	delete(r.aggregates, detailsKey(details.PrisonID, details.Department))
	return nil
}

// fakeValueRepo keeps one table per channel and answers reference counts by
// scanning the aggregate store, matching what the SQL count does
type fakeValueRepo struct {
	details *fakeDetailsRepo
	tables  map[contact.Channel]map[string]*contact.ContactValue
}

func newFakeValueRepo(details *fakeDetailsRepo) *fakeValueRepo {
	tables := make(map[contact.Channel]map[string]*contact.ContactValue)
	for _, ch := range contact.AllChannels {
		tables[ch] = make(map[string]*contact.ContactValue)
	}
	return &fakeValueRepo{details: details, tables: tables}
}

func (r *fakeValueRepo) FindByValue(ctx context.Context, channel contact.Channel, value string) (*contact.ContactValue, error) {
	if v, ok := r.tables[channel][value]; ok {
		return v, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeValueRepo) GetOrCreate(ctx context.Context, channel contact.Channel, value string) (*contact.ContactValue, error) {
	if v, ok := r.tables[channel][value]; ok {
		return v, nil
	}
	v := &contact.ContactValue{ID: uuid.New(), Channel: channel, Value: value}
	r.tables[channel][value] = v
	return v, nil
}

func (r *fakeValueRepo) ReferenceCount(ctx context.Context, channel contact.Channel, id uuid.UUID) (int64, error) {
	var count int64
	for _, cd := range r.details.aggregates {
		if v := cd.Value(channel); v != nil && v.ID == id {
			count++
		}
	}
	return count, nil
}

func (r *fakeValueRepo) DeleteIfOrphaned(ctx context.Context, channel contact.Channel, id uuid.UUID) (bool, error) {
	count, err := r.ReferenceCount(ctx, channel, id)
	if err != nil || count > 0 {
		return false, err
	}
	for value, v := range r.tables[channel] {
		if v.ID == id {
			delete(r.tables[channel], value)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeValueRepo) rowCount(channel contact.Channel) int {
	return len(r.tables[channel])
}

// fakeOutboxRepo records saved entries
type fakeOutboxRepo struct {
	saved []*shared.OutboxEntry
}

func (r *fakeOutboxRepo) Save(ctx context.Context, entries ...*shared.OutboxEntry) error {
	r.saved = append(r.saved, entries...)
	return nil
}

func (r *fakeOutboxRepo) FindPending(ctx context.Context, limit int) ([]*shared.OutboxEntry, error) {
	return nil, nil
}

func (r *fakeOutboxRepo) FindRetryable(ctx context.Context, before time.Time, limit int) ([]*shared.OutboxEntry, error) {
	return nil, nil
}

func (r *fakeOutboxRepo) MarkProcessing(ctx context.Context, ids []uuid.UUID) ([]*shared.OutboxEntry, error) {
	return nil, nil
}

func (r *fakeOutboxRepo) Update(ctx context.Context, entry *shared.OutboxEntry) error {
	return nil
}

func (r *fakeOutboxRepo) DeleteSentBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

// recordingAuditor captures audit calls
type recordingAuditor struct {
	actions []string
}

func (a *recordingAuditor) Record(ctx context.Context, action, subjectID, username string, details any) {
	a.actions = append(a.actions, action)
}

type serviceFixture struct {
	service *Service
	prisons *fakePrisonRepo
	details *fakeDetailsRepo
	values  *fakeValueRepo
	outbox  *fakeOutboxRepo
	audit   *recordingAuditor
}

func newServiceFixture(t *testing.T, prisonIDs ...string) *serviceFixture {
	t.Helper()
	prisons := newFakePrisonRepo(prisonIDs...)
	details := newFakeDetailsRepo()
	values := newFakeValueRepo(details)
	outbox := &fakeOutboxRepo{}
	auditor := &recordingAuditor{}
	scope := &NoOpTransactionScope{
		ContactDetailsRepo: details,
		ValuesRepo:         values,
		OutboxRepo:         outbox,
	}
	return &serviceFixture{
		service: NewService(scope, prisons, details, auditor, nil, nil),
		prisons: prisons,
		details: details,
		values:  values,
		outbox:  outbox,
		audit:   auditor,
	}
}

func strPtr(s string) *string { return &s }

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates aggregate with all channels", func(t *testing.T) {
		f := newServiceFixture(t, "MDI")
		resp, err := f.service.Create(ctx, "MDI", "social-visit", ContactDetailsRequest{
			EmailAddress: strPtr("visits@example.gov.uk"),
			PhoneNumber:  strPtr("01348811540"),
			WebAddress:   strPtr("www.example.gov.uk"),
		})
		require.NoError(t, err)
		assert.Equal(t, "social-visit", resp.Type)
		assert.Equal(t, "visits@example.gov.uk", *resp.EmailAddress)
		assert.Equal(t, "01348811540", *resp.PhoneNumber)
		assert.Equal(t, "https://www.example.gov.uk", *resp.WebAddress)
		assert.Len(t, f.outbox.saved, 1)
		assert.Equal(t, []string{domainaudit.ActionContactDetailsCreate}, f.audit.actions)
	})

	t.Run("shares an existing value row instead of inserting", func(t *testing.T) {
		f := newServiceFixture(t, "MDI", "LEI")
		_, err := f.service.Create(ctx, "MDI", "social-visit", ContactDetailsRequest{
			PhoneNumber: strPtr("01348811540"),
		})
		require.NoError(t, err)
		_, err = f.service.Create(ctx, "LEI", "social-visit", ContactDetailsRequest{
			PhoneNumber: strPtr("01348811540"),
		})
		require.NoError(t, err)

		assert.Equal(t, 1, f.values.rowCount(contact.ChannelPhone))
		mdi, _ := f.details.FindByPrisonAndDepartment(ctx, "MDI", contact.DepartmentSocialVisit)
		lei, _ := f.details.FindByPrisonAndDepartment(ctx, "LEI", contact.DepartmentSocialVisit)
		assert.Equal(t, mdi.Value(contact.ChannelPhone).ID, lei.Value(contact.ChannelPhone).ID)
	})

	t.Run("rejects duplicate create for same pair", func(t *testing.T) {
		f := newServiceFixture(t, "MDI")
		_, err := f.service.Create(ctx, "MDI", "social-visit", ContactDetailsRequest{
			EmailAddress: strPtr("visits@example.gov.uk"),
		})
		require.NoError(t, err)

		_, err = f.service.Create(ctx, "MDI", "social-visit", ContactDetailsRequest{
			EmailAddress: strPtr("other@example.gov.uk"),
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, contact.ErrCodeContactDetailsAlreadyExist, domainErr.Code)
		assert.Equal(t, "Contact details already exist for MDI / social visit department.", domainErr.Message)
	})

	t.Run("allows empty aggregate", func(t *testing.T) {
		f := newServiceFixture(t, "MDI")
		resp, err := f.service.Create(ctx, "MDI", "videolink-conferencing-centre", ContactDetailsRequest{})
		require.NoError(t, err)
		assert.Nil(t, resp.EmailAddress)
		assert.Nil(t, resp.PhoneNumber)
		assert.Nil(t, resp.WebAddress)

		cd, err := f.details.FindByPrisonAndDepartment(ctx, "MDI", contact.DepartmentVideolinkConferencingCentre)
		require.NoError(t, err)
		assert.True(t, cd.IsEmpty())
	})

	t.Run("unknown prison", func(t *testing.T) {
		f := newServiceFixture(t)
		_, err := f.service.Create(ctx, "MDI", "social-visit", ContactDetailsRequest{})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, prison.ErrCodePrisonNotFound, domainErr.Code)
	})

	t.Run("unknown department token", func(t *testing.T) {
		f := newServiceFixture(t, "MDI")
		_, err := f.service.Create(ctx, "MDI", "Social-Visit", ContactDetailsRequest{})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, contact.ErrCodeUnknownDepartmentType, domainErr.Code)
		assert.Equal(t, "Value for DepartmentType is not of a known type Social-Visit.", domainErr.Message)
	})

	t.Run("invalid values create nothing", func(t *testing.T) {
		f := newServiceFixture(t, "MDI")
		_, err := f.service.Create(ctx, "MDI", "social-visit", ContactDetailsRequest{
			EmailAddress: strPtr("not-an-email"),
			PhoneNumber:  strPtr("nope"),
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, contact.ErrCodeValidation, domainErr.Code)
		assert.Equal(t, 0, f.values.rowCount(contact.ChannelEmail))
		assert.Empty(t, f.outbox.saved)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) *serviceFixture {
		f := newServiceFixture(t, "MDI", "LEI")
		_, err := f.service.Create(ctx, "MDI", "social-visit", ContactDetailsRequest{
			EmailAddress: strPtr("visits@example.gov.uk"),
			PhoneNumber:  strPtr("01348811540"),
		})
		require.NoError(t, err)
		return f
	}

	t.Run("replacing a value deletes the orphaned row", func(t *testing.T) {
		f := seed(t)
		resp, err := f.service.Update(ctx, "MDI", "social-visit", ContactDetailsRequest{
			EmailAddress: strPtr("new@example.gov.uk"),
		}, false)
		require.NoError(t, err)
		assert.Equal(t, "new@example.gov.uk", *resp.EmailAddress)
		// the untouched phone survives
		assert.Equal(t, "01348811540", *resp.PhoneNumber)
		// old email row gone, new one in its place
		assert.Equal(t, 1, f.values.rowCount(contact.ChannelEmail))
		_, err = f.values.FindByValue(ctx, contact.ChannelEmail, "visits@example.gov.uk")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("replacing a shared value keeps the row alive", func(t *testing.T) {
		f := seed(t)
		_, err := f.service.Create(ctx, "LEI", "social-visit", ContactDetailsRequest{
			EmailAddress: strPtr("visits@example.gov.uk"),
		})
		require.NoError(t, err)

		_, err = f.service.Update(ctx, "MDI", "social-visit", ContactDetailsRequest{
			EmailAddress: strPtr("new@example.gov.uk"),
		}, false)
		require.NoError(t, err)

		shared_, err := f.values.FindByValue(ctx, contact.ChannelEmail, "visits@example.gov.uk")
		require.NoError(t, err)
		lei, _ := f.details.FindByPrisonAndDepartment(ctx, "LEI", contact.DepartmentSocialVisit)
		assert.Equal(t, shared_.ID, lei.Value(contact.ChannelEmail).ID)
	})

	t.Run("nil channel left untouched without removeIfNull", func(t *testing.T) {
		f := seed(t)
		resp, err := f.service.Update(ctx, "MDI", "social-visit", ContactDetailsRequest{
			PhoneNumber: strPtr("01348811541"),
		}, false)
		require.NoError(t, err)
		assert.Equal(t, "visits@example.gov.uk", *resp.EmailAddress)
		assert.Equal(t, "01348811541", *resp.PhoneNumber)
	})

	t.Run("removeIfNull clears the channel and collects the orphan", func(t *testing.T) {
		f := seed(t)
		resp, err := f.service.Update(ctx, "MDI", "social-visit", ContactDetailsRequest{
			PhoneNumber: strPtr("01348811540"),
		}, true)
		require.NoError(t, err)
		assert.Nil(t, resp.EmailAddress)
		assert.Equal(t, "01348811540", *resp.PhoneNumber)
		assert.Equal(t, 0, f.values.rowCount(contact.ChannelEmail))
	})

	t.Run("removeIfNull can empty the aggregate without deleting it", func(t *testing.T) {
		f := seed(t)
		_, err := f.service.Update(ctx, "MDI", "social-visit", ContactDetailsRequest{}, true)
		require.NoError(t, err)

		cd, err := f.details.FindByPrisonAndDepartment(ctx, "MDI", contact.DepartmentSocialVisit)
		require.NoError(t, err)
		assert.True(t, cd.IsEmpty())
		assert.Equal(t, 0, f.values.rowCount(contact.ChannelEmail))
		assert.Equal(t, 0, f.values.rowCount(contact.ChannelPhone))
	})

	t.Run("setting the same value is a no-op for the row", func(t *testing.T) {
		f := seed(t)
		before, err := f.values.FindByValue(ctx, contact.ChannelEmail, "visits@example.gov.uk")
		require.NoError(t, err)

		_, err = f.service.Update(ctx, "MDI", "social-visit", ContactDetailsRequest{
			EmailAddress: strPtr("visits@example.gov.uk"),
		}, false)
		require.NoError(t, err)

		after, err := f.values.FindByValue(ctx, contact.ChannelEmail, "visits@example.gov.uk")
		require.NoError(t, err)
		assert.Equal(t, before.ID, after.ID)
	})

	t.Run("missing aggregate", func(t *testing.T) {
		f := newServiceFixture(t, "MDI")
		_, err := f.service.Update(ctx, "MDI", "social-visit", ContactDetailsRequest{}, false)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, contact.ErrCodeContactDetailsNotFound, domainErr.Code)
		assert.Equal(t, "Contact details not found for MDI / social visit department.", domainErr.Message)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes aggregate and orphaned rows", func(t *testing.T) {
		f := newServiceFixture(t, "MDI")
		_, err := f.service.Create(ctx, "MDI", "social-visit", ContactDetailsRequest{
			EmailAddress: strPtr("visits@example.gov.uk"),
			PhoneNumber:  strPtr("01348811540"),
		})
		require.NoError(t, err)

		require.NoError(t, f.service.Delete(ctx, "MDI", "social-visit"))
		_, err = f.details.FindByPrisonAndDepartment(ctx, "MDI", contact.DepartmentSocialVisit)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Equal(t, 0, f.values.rowCount(contact.ChannelEmail))
		assert.Equal(t, 0, f.values.rowCount(contact.ChannelPhone))
	})

	t.Run("keeps rows still referenced elsewhere", func(t *testing.T) {
		f := newServiceFixture(t, "MDI", "LEI")
		_, err := f.service.Create(ctx, "MDI", "social-visit", ContactDetailsRequest{
			PhoneNumber: strPtr("01348811540"),
		})
		require.NoError(t, err)
		_, err = f.service.Create(ctx, "LEI", "offender-management-unit", ContactDetailsRequest{
			PhoneNumber: strPtr("01348811540"),
		})
		require.NoError(t, err)

		require.NoError(t, f.service.Delete(ctx, "MDI", "social-visit"))
		assert.Equal(t, 1, f.values.rowCount(contact.ChannelPhone))
	})

	t.Run("missing aggregate", func(t *testing.T) {
		f := newServiceFixture(t, "MDI")
		err := f.service.Delete(ctx, "MDI", "social-visit")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, contact.ErrCodeContactDetailsNotFound, domainErr.Code)
	})
}

func TestService_SetChannelValue(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the aggregate on first set", func(t *testing.T) {
		f := newServiceFixture(t, "MDI")
		outcome, err := f.service.SetChannelValue(ctx, "MDI", "social-visit", contact.ChannelEmail, "visits@example.gov.uk")
		require.NoError(t, err)
		assert.Equal(t, OutcomeCreated, outcome)

		value, err := f.service.GetChannelValue(ctx, "MDI", "social-visit", contact.ChannelEmail)
		require.NoError(t, err)
		assert.Equal(t, "visits@example.gov.uk", value)
	})

	t.Run("updates an existing aggregate", func(t *testing.T) {
		f := newServiceFixture(t, "MDI")
		_, err := f.service.SetChannelValue(ctx, "MDI", "social-visit", contact.ChannelEmail, "visits@example.gov.uk")
		require.NoError(t, err)

		outcome, err := f.service.SetChannelValue(ctx, "MDI", "social-visit", contact.ChannelEmail, "new@example.gov.uk")
		require.NoError(t, err)
		assert.Equal(t, OutcomeUpdated, outcome)
		assert.Equal(t, 1, f.values.rowCount(contact.ChannelEmail))
	})

	t.Run("same value reports updated without touching rows", func(t *testing.T) {
		f := newServiceFixture(t, "MDI")
		_, err := f.service.SetChannelValue(ctx, "MDI", "social-visit", contact.ChannelPhone, "01348811540")
		require.NoError(t, err)

		outcome, err := f.service.SetChannelValue(ctx, "MDI", "social-visit", contact.ChannelPhone, "01348811540")
		require.NoError(t, err)
		assert.Equal(t, OutcomeUpdated, outcome)
		assert.Equal(t, 1, f.values.rowCount(contact.ChannelPhone))
	})

	t.Run("invalid value is rejected", func(t *testing.T) {
		f := newServiceFixture(t, "MDI")
		_, err := f.service.SetChannelValue(ctx, "MDI", "social-visit", contact.ChannelEmail, "bogus")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, contact.ErrCodeValidation, domainErr.Code)
		assert.Equal(t, "Email address bogus is invalid", domainErr.Message)
	})
}

func TestService_GetChannelValue(t *testing.T) {
	ctx := context.Background()

	t.Run("unset channel reports not found", func(t *testing.T) {
		f := newServiceFixture(t, "MDI")
		_, err := f.service.Create(ctx, "MDI", "social-visit", ContactDetailsRequest{
			EmailAddress: strPtr("visits@example.gov.uk"),
		})
		require.NoError(t, err)

		_, err = f.service.GetChannelValue(ctx, "MDI", "social-visit", contact.ChannelWeb)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, contact.ErrCodeContactDetailsNotFound, domainErr.Code)
	})
}

func TestService_RemoveChannelValue(t *testing.T) {
	ctx := context.Background()

	t.Run("clears the channel and keeps the aggregate", func(t *testing.T) {
		f := newServiceFixture(t, "MDI")
		_, err := f.service.Create(ctx, "MDI", "social-visit", ContactDetailsRequest{
			EmailAddress: strPtr("visits@example.gov.uk"),
		})
		require.NoError(t, err)

		require.NoError(t, f.service.RemoveChannelValue(ctx, "MDI", "social-visit", contact.ChannelEmail))
		assert.Equal(t, 0, f.values.rowCount(contact.ChannelEmail))

		cd, err := f.details.FindByPrisonAndDepartment(ctx, "MDI", contact.DepartmentSocialVisit)
		require.NoError(t, err)
		assert.True(t, cd.IsEmpty())
	})

	t.Run("unset channel reports not found", func(t *testing.T) {
		f := newServiceFixture(t, "MDI")
		_, err := f.service.Create(ctx, "MDI", "social-visit", ContactDetailsRequest{})
		require.NoError(t, err)

		err = f.service.RemoveChannelValue(ctx, "MDI", "social-visit", contact.ChannelPhone)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, contact.ErrCodeContactDetailsNotFound, domainErr.Code)
	})
}

func TestService_OutboxEvents(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t, "MDI")

	_, err := f.service.Create(ctx, "MDI", "social-visit", ContactDetailsRequest{
		EmailAddress: strPtr("visits@example.gov.uk"),
	})
	require.NoError(t, err)
	_, err = f.service.Update(ctx, "MDI", "social-visit", ContactDetailsRequest{
		EmailAddress: strPtr("new@example.gov.uk"),
	}, false)
	require.NoError(t, err)
	require.NoError(t, f.service.Delete(ctx, "MDI", "social-visit"))

	require.Len(t, f.outbox.saved, 3)
	for _, entry := range f.outbox.saved {
		assert.Equal(t, prison.EventTypePrisonAmended, entry.EventType)
		assert.Equal(t, shared.OutboxStatusPending, entry.Status)
		assert.NotEmpty(t, entry.Payload)
	}
}
