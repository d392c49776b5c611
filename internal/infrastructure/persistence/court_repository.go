package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/registers/backend/internal/domain/court"
	"github.com/registers/backend/internal/domain/shared"
	"github.com/registers/backend/internal/infrastructure/persistence/models"
)

// GormCourtRepository implements court.Repository using GORM.
type GormCourtRepository struct {
	db *gorm.DB
}

// NewGormCourtRepository creates a new GORM-based court repository.
func NewGormCourtRepository(db *gorm.DB) *GormCourtRepository {
	return &GormCourtRepository{db: db}
}

var _ court.Repository = (*GormCourtRepository)(nil)

// FindByCourtID loads a court with its buildings.
func (r *GormCourtRepository) FindByCourtID(ctx context.Context, courtID string) (*court.Court, error) {
	var row models.CourtModel
	err := r.db.WithContext(ctx).
		Preload("Buildings").
		Where("court_id = ?", courtID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// FindAll loads courts ordered by court id, optionally excluding inactive
// ones.
func (r *GormCourtRepository) FindAll(ctx context.Context, activeOnly bool) ([]court.Court, error) {
	q := r.db.WithContext(ctx).Preload("Buildings")
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var rows []models.CourtModel
	if err := q.Order("court_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	courts := make([]court.Court, len(rows))
	for i := range rows {
		courts[i] = *rows[i].ToDomain()
	}
	return courts, nil
}

// ExistsByCourtID checks whether a court id is registered.
func (r *GormCourtRepository) ExistsByCourtID(ctx context.Context, courtID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CourtModel{}).
		Where("court_id = ?", courtID).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates a court together with its buildings. Buildings are
// replaced wholesale so removals on the aggregate propagate.
func (r *GormCourtRepository) Save(ctx context.Context, c *court.Court) error {
	row := &models.CourtModel{}
	row.FromDomain(c)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("court_ref = ?", row.ID).Delete(&models.CourtBuildingModel{}).Error; err != nil {
			return err
		}
		return tx.Save(row).Error
	})
}
