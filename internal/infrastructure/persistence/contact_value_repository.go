package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/registers/backend/internal/domain/contact"
	"github.com/registers/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// channelTable describes the backing table and aggregate reference column
// for a contact channel
type channelTable struct {
	table  string
	column string
}

var channelTables = map[contact.Channel]channelTable{
	contact.ChannelEmail: {table: "email_addresses", column: "email_address_id"},
	contact.ChannelPhone: {table: "phone_numbers", column: "phone_number_id"},
	contact.ChannelWeb:   {table: "web_addresses", column: "web_address_id"},
}

// valueRow is the row shape shared by all three value tables
type valueRow struct {
	ID        uuid.UUID
	Value     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GormContactValueRepository implements contact.ValueRepository using GORM.
// One instance serves all three channels; the channel argument selects the
// backing table.
type GormContactValueRepository struct {
	db *gorm.DB
}

// NewGormContactValueRepository creates a new GormContactValueRepository
func NewGormContactValueRepository(db *gorm.DB) *GormContactValueRepository {
	return &GormContactValueRepository{db: db}
}

// FindByValue looks a value row up by exact string match
func (r *GormContactValueRepository) FindByValue(ctx context.Context, channel contact.Channel, value string) (*contact.ContactValue, error) {
	spec, err := tableFor(channel)
	if err != nil {
		return nil, err
	}
	var row valueRow
	if err := r.db.WithContext(ctx).Table(spec.table).Where("value = ?", value).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &contact.ContactValue{ID: row.ID, Channel: channel, Value: row.Value}, nil
}

// GetOrCreate returns the existing row for the value string or inserts a new
// one. The unique index on value arbitrates concurrent inserts. The insert
// carries ON CONFLICT DO NOTHING so a lost race never raises an error, which
// on Postgres would abort the surrounding transaction and fail every later
// statement in it with SQLSTATE 25P02. A skipped insert reports zero rows
// affected; the row the winner committed is then re-read.
func (r *GormContactValueRepository) GetOrCreate(ctx context.Context, channel contact.Channel, value string) (*contact.ContactValue, error) {
	existing, err := r.FindByValue(ctx, channel, value)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	spec, _ := tableFor(channel)
	now := time.Now()
	row := valueRow{ID: uuid.New(), Value: value, CreatedAt: now, UpdatedAt: now}
	result := r.db.WithContext(ctx).
		Table(spec.table).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "value"}},
			DoNothing: true,
		}).
		Create(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return r.FindByValue(ctx, channel, value)
	}
	return &contact.ContactValue{ID: row.ID, Channel: channel, Value: row.Value}, nil
}

// ReferenceCount counts the aggregates whose channel reference points at the
// value row
func (r *GormContactValueRepository) ReferenceCount(ctx context.Context, channel contact.Channel, id uuid.UUID) (int64, error) {
	spec, err := tableFor(channel)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Table("contact_details").
		Where(fmt.Sprintf("%s = ?", spec.column), id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteIfOrphaned deletes the value row iff no aggregate references it.
// Callers must run this in the same transaction as the reference removal so
// the count cannot be outdated by the time the delete runs.
func (r *GormContactValueRepository) DeleteIfOrphaned(ctx context.Context, channel contact.Channel, id uuid.UUID) (bool, error) {
	count, err := r.ReferenceCount(ctx, channel, id)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	spec, _ := tableFor(channel)
	result := r.db.WithContext(ctx).Table(spec.table).Where("id = ?", id).Delete(&valueRow{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func tableFor(channel contact.Channel) (channelTable, error) {
	spec, ok := channelTables[channel]
	if !ok {
		return channelTable{}, fmt.Errorf("unknown contact channel %q", channel)
	}
	return spec, nil
}

// isDuplicateKeyError reports whether the error came from a unique
// constraint violation. Postgres reports SQLSTATE 23505; the sqlite driver
// used in tests reports a plain constraint message.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
