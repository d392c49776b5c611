package persistence

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/registers/backend/internal/domain/prison"
	"github.com/registers/backend/internal/domain/shared"
	"github.com/registers/backend/internal/infrastructure/persistence/models"
)

// GormPrisonRepository implements prison.Repository using GORM.
type GormPrisonRepository struct {
	db *gorm.DB
}

// NewGormPrisonRepository creates a new GORM-based prison repository.
func NewGormPrisonRepository(db *gorm.DB) *GormPrisonRepository {
	return &GormPrisonRepository{db: db}
}

var _ prison.Repository = (*GormPrisonRepository)(nil)

// FindByPrisonID loads a prison with its types and addresses.
func (r *GormPrisonRepository) FindByPrisonID(ctx context.Context, prisonID string) (*prison.Prison, error) {
	var row models.PrisonModel
	err := r.db.WithContext(ctx).
		Preload("Types").
		Preload("Addresses").
		Where("prison_id = ?", prisonID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// FindAll loads every prison ordered by prison id.
func (r *GormPrisonRepository) FindAll(ctx context.Context) ([]prison.Prison, error) {
	var rows []models.PrisonModel
	err := r.db.WithContext(ctx).
		Preload("Types").
		Preload("Addresses").
		Order("prison_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainPrisons(rows), nil
}

// Search loads prisons matching the filter, ordered by prison id.
func (r *GormPrisonRepository) Search(ctx context.Context, filter prison.SearchFilter) ([]prison.Prison, error) {
	q := r.db.WithContext(ctx).
		Model(&models.PrisonModel{}).
		Preload("Types").
		Preload("Addresses")

	if filter.Active != nil {
		q = q.Where("prisons.active = ?", *filter.Active)
	}
	if filter.Male != nil {
		q = q.Where("prisons.male = ?", *filter.Male)
	}
	if filter.Female != nil {
		q = q.Where("prisons.female = ?", *filter.Female)
	}
	if filter.TextSearch != "" {
		pattern := "%" + strings.ToLower(filter.TextSearch) + "%"
		q = q.Where("LOWER(prisons.prison_id) LIKE ? OR LOWER(prisons.name) LIKE ?", pattern, pattern)
	}
	if len(filter.TypeCodes) > 0 {
		codes := make([]string, len(filter.TypeCodes))
		for i, c := range filter.TypeCodes {
			codes[i] = string(c)
		}
		q = q.Where("prisons.id IN (?)",
			r.db.Model(&models.PrisonTypeModel{}).
				Select("prison_ref").
				Where("code IN ?", codes))
	}

	order := "prisons.prison_id ASC"
	if filter.SortBy != "" {
		field := ValidateSortField(filter.SortBy, PrisonSortFields, "prison_id")
		order = "prisons." + field + " " + ValidateSortOrder(filter.SortDir)
	}

	var rows []models.PrisonModel
	if err := q.Order(order).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainPrisons(rows), nil
}

// ExistsByPrisonID checks whether a prison id is registered.
func (r *GormPrisonRepository) ExistsByPrisonID(ctx context.Context, prisonID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PrisonModel{}).
		Where("prison_id = ?", prisonID).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates a prison together with its types and addresses.
// Child rows are replaced wholesale so removals on the aggregate propagate.
func (r *GormPrisonRepository) Save(ctx context.Context, p *prison.Prison) error {
	row := &models.PrisonModel{}
	row.FromDomain(p)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("prison_ref = ?", row.ID).Delete(&models.PrisonTypeModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("prison_ref = ?", row.ID).Delete(&models.PrisonAddressModel{}).Error; err != nil {
			return err
		}
		return tx.Save(row).Error
	})
}

func toDomainPrisons(rows []models.PrisonModel) []prison.Prison {
	prisons := make([]prison.Prison, len(rows))
	for i := range rows {
		prisons[i] = *rows[i].ToDomain()
	}
	return prisons
}
