package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/registers/backend/internal/domain/audit"
	"github.com/registers/backend/internal/infrastructure/persistence/models"
)

// GormAuditRepository implements audit.Repository using GORM.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GORM-based audit repository.
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

var _ audit.Repository = (*GormAuditRepository)(nil)

// Save appends an audit record.
func (r *GormAuditRepository) Save(ctx context.Context, record *audit.Record) error {
	row := &models.AuditRecordModel{}
	row.FromDomain(record)
	return r.db.WithContext(ctx).Create(row).Error
}

// FindBySubject loads the audit trail for a register entry, newest first.
func (r *GormAuditRepository) FindBySubject(ctx context.Context, subjectID string, limit int) ([]audit.Record, error) {
	var rows []models.AuditRecordModel
	err := r.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]audit.Record, len(rows))
	for i := range rows {
		records[i] = *rows[i].ToDomain()
	}
	return records, nil
}
