package event

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/registers/backend/internal/domain/prison"
	"github.com/registers/backend/internal/domain/shared"
)

type fakeOutboxRepo struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*shared.OutboxEntry
}

func newFakeOutboxRepo() *fakeOutboxRepo {
	return &fakeOutboxRepo{entries: make(map[uuid.UUID]*shared.OutboxEntry)}
}

func (r *fakeOutboxRepo) Save(ctx context.Context, entries ...*shared.OutboxEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range entries {
		r.entries[e.ID] = e
	}
	return nil
}

func (r *fakeOutboxRepo) FindPending(ctx context.Context, limit int) ([]*shared.OutboxEntry, error) {
	return r.findByStatus(shared.OutboxStatusPending, limit), nil
}

func (r *fakeOutboxRepo) FindRetryable(ctx context.Context, before time.Time, limit int) ([]*shared.OutboxEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found []*shared.OutboxEntry
	for _, e := range r.entries {
		if e.Status == shared.OutboxStatusFailed && e.NextRetryAt != nil && e.NextRetryAt.Before(before) {
			found = append(found, e)
		}
		if len(found) == limit {
			break
		}
	}
	return found, nil
}

func (r *fakeOutboxRepo) MarkProcessing(ctx context.Context, ids []uuid.UUID) ([]*shared.OutboxEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var claimed []*shared.OutboxEntry
	for _, id := range ids {
		e, ok := r.entries[id]
		if !ok {
			continue
		}
		if e.Status == shared.OutboxStatusPending || e.Status == shared.OutboxStatusFailed {
			e.Status = shared.OutboxStatusProcessing
			claimed = append(claimed, e)
		}
	}
	return claimed, nil
}

func (r *fakeOutboxRepo) Update(ctx context.Context, entry *shared.OutboxEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.ID] = entry
	return nil
}

func (r *fakeOutboxRepo) DeleteSentBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for id, e := range r.entries {
		if e.Status == shared.OutboxStatusSent && e.ProcessedAt != nil && e.ProcessedAt.Before(cutoff) {
			delete(r.entries, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeOutboxRepo) findByStatus(status shared.OutboxStatus, limit int) []*shared.OutboxEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found []*shared.OutboxEntry
	for _, e := range r.entries {
		if e.Status == status {
			found = append(found, e)
		}
		if len(found) == limit {
			break
		}
	}
	return found
}

func (r *fakeOutboxRepo) get(id uuid.UUID) *shared.OutboxEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries[id]
}

func newAmendedEntry(t *testing.T, serializer *EventSerializer) *shared.OutboxEntry {
	t.Helper()
	p, err := prison.NewPrison("MDI", "Moorland (HMP & YOI)")
	require.NoError(t, err)
	event := prison.NewPrisonAmendedEvent(p)
	payload, err := serializer.Serialize(event)
	require.NoError(t, err)
	return shared.NewOutboxEntry(event, payload)
}

func TestOutboxProcessor_ProcessBatch(t *testing.T) {
	ctx := context.Background()
	serializer := NewRegisterEventSerializer()

	t.Run("delivers pending entries and marks them sent", func(t *testing.T) {
		repo := newFakeOutboxRepo()
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := newTestHandler(prison.EventTypePrisonAmended)
		bus.Subscribe(handler)

		entry := newAmendedEntry(t, serializer)
		require.NoError(t, repo.Save(ctx, entry))

		processor := NewOutboxProcessor(repo, bus, serializer, DefaultOutboxProcessorConfig(), zap.NewNop())
		processor.ProcessBatch(ctx)

		assert.Equal(t, 1, handler.handledCount())
		stored := repo.get(entry.ID)
		assert.Equal(t, shared.OutboxStatusSent, stored.Status)
		require.NotNil(t, stored.ProcessedAt)
	})

	t.Run("handler sees the deserialized register event", func(t *testing.T) {
		repo := newFakeOutboxRepo()
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := newTestHandler(prison.EventTypePrisonAmended)
		bus.Subscribe(handler)

		entry := newAmendedEntry(t, serializer)
		require.NoError(t, repo.Save(ctx, entry))

		processor := NewOutboxProcessor(repo, bus, serializer, DefaultOutboxProcessorConfig(), zap.NewNop())
		processor.ProcessBatch(ctx)

		require.Equal(t, 1, handler.handledCount())
		amended, ok := handler.handled[0].(*prison.PrisonAmendedEvent)
		require.True(t, ok)
		assert.Equal(t, "MDI", amended.PrisonID)
	})

	t.Run("an undeserializable entry is failed with backoff", func(t *testing.T) {
		repo := newFakeOutboxRepo()
		bus := NewInMemoryEventBus(zap.NewNop())

		event := outboxBrokenEvent{}
		payload, err := json.Marshal(event)
		require.NoError(t, err)
		entry := shared.NewOutboxEntry(event, payload)
		require.NoError(t, repo.Save(ctx, entry))

		processor := NewOutboxProcessor(repo, bus, serializer, DefaultOutboxProcessorConfig(), zap.NewNop())
		processor.ProcessBatch(ctx)

		stored := repo.get(entry.ID)
		assert.Equal(t, shared.OutboxStatusFailed, stored.Status)
		assert.Equal(t, 1, stored.RetryCount)
		require.NotNil(t, stored.NextRetryAt)
		assert.Contains(t, stored.LastError, "unknown event type")
	})

	t.Run("a failed entry dies after exhausting retries", func(t *testing.T) {
		repo := newFakeOutboxRepo()
		bus := NewInMemoryEventBus(zap.NewNop())

		event := outboxBrokenEvent{}
		payload, err := json.Marshal(event)
		require.NoError(t, err)
		entry := shared.NewOutboxEntry(event, payload)
		entry.MaxRetries = 1
		require.NoError(t, repo.Save(ctx, entry))

		processor := NewOutboxProcessor(repo, bus, serializer, DefaultOutboxProcessorConfig(), zap.NewNop())
		processor.ProcessBatch(ctx)

		stored := repo.get(entry.ID)
		assert.Equal(t, shared.OutboxStatusDead, stored.Status)
	})
}

func TestOutboxProcessor_Cleanup(t *testing.T) {
	ctx := context.Background()
	serializer := NewRegisterEventSerializer()
	repo := newFakeOutboxRepo()

	old := newAmendedEntry(t, serializer)
	old.MarkSent()
	past := time.Now().Add(-30 * 24 * time.Hour)
	old.ProcessedAt = &past
	require.NoError(t, repo.Save(ctx, old))

	fresh := newAmendedEntry(t, serializer)
	require.NoError(t, repo.Save(ctx, fresh))

	processor := NewOutboxProcessor(repo, nil, serializer, DefaultOutboxProcessorConfig(), zap.NewNop())
	processor.cleanup(ctx)

	assert.Nil(t, repo.get(old.ID))
	assert.NotNil(t, repo.get(fresh.ID))
}

func TestOutboxProcessor_StartStop(t *testing.T) {
	serializer := NewRegisterEventSerializer()
	repo := newFakeOutboxRepo()
	bus := NewInMemoryEventBus(zap.NewNop())

	config := DefaultOutboxProcessorConfig()
	config.PollInterval = 10 * time.Millisecond

	processor := NewOutboxProcessor(repo, bus, serializer, config, zap.NewNop())
	ctx := context.Background()
	require.NoError(t, processor.Start(ctx))

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, processor.Stop(stopCtx))
}

// outboxBrokenEvent has an event type nothing registers.
type outboxBrokenEvent struct{}

func (outboxBrokenEvent) EventID() uuid.UUID     { return uuid.Nil }
func (outboxBrokenEvent) EventType() string      { return "register.prison.demolished" }
func (outboxBrokenEvent) OccurredAt() time.Time  { return time.Time{} }
func (outboxBrokenEvent) AggregateID() uuid.UUID { return uuid.Nil }
func (outboxBrokenEvent) AggregateType() string  { return "Prison" }
