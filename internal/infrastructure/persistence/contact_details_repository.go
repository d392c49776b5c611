package persistence

import (
	"context"
	"errors"

	"github.com/registers/backend/internal/domain/contact"
	"github.com/registers/backend/internal/domain/shared"
	"github.com/registers/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormContactDetailsRepository implements contact.ContactDetailsRepository using GORM
type GormContactDetailsRepository struct {
	db *gorm.DB
}

// NewGormContactDetailsRepository creates a new GormContactDetailsRepository
func NewGormContactDetailsRepository(db *gorm.DB) *GormContactDetailsRepository {
	return &GormContactDetailsRepository{db: db}
}

// FindByPrisonAndDepartment loads the aggregate for a (prison, department) pair
func (r *GormContactDetailsRepository) FindByPrisonAndDepartment(ctx context.Context, prisonID string, department contact.DepartmentType) (*contact.ContactDetails, error) {
	var model models.ContactDetailsModel
	if err := r.db.WithContext(ctx).
		Preload("EmailAddress").
		Preload("PhoneNumber").
		Preload("WebAddress").
		Where("prison_id = ? AND department_type = ?", prisonID, string(department)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForPrison loads every aggregate belonging to a prison
func (r *GormContactDetailsRepository) FindAllForPrison(ctx context.Context, prisonID string) ([]contact.ContactDetails, error) {
	var detailModels []models.ContactDetailsModel
	if err := r.db.WithContext(ctx).
		Preload("EmailAddress").
		Preload("PhoneNumber").
		Preload("WebAddress").
		Where("prison_id = ?", prisonID).
		Order("department_type").
		Find(&detailModels).Error; err != nil {
		return nil, err
	}
	details := make([]contact.ContactDetails, len(detailModels))
	for i, model := range detailModels {
		details[i] = *model.ToDomain()
	}
	return details, nil
}

// ExistsByPrisonAndDepartment checks whether an aggregate exists for the pair
func (r *GormContactDetailsRepository) ExistsByPrisonAndDepartment(ctx context.Context, prisonID string, department contact.DepartmentType) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ContactDetailsModel{}).
		Where("prison_id = ? AND department_type = ?", prisonID, string(department)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an aggregate. Only the reference columns are
// written; the value rows themselves belong to the value repository.
func (r *GormContactDetailsRepository) Save(ctx context.Context, details *contact.ContactDetails) error {
	var model models.ContactDetailsModel
	model.FromDomain(details)
	return r.db.WithContext(ctx).
		Omit("EmailAddress", "PhoneNumber", "WebAddress").
		Save(&model).Error
}

// Delete removes an aggregate row, leaving its value rows for the caller's
// orphan collection
func (r *GormContactDetailsRepository) Delete(ctx context.Context, details *contact.ContactDetails) error {
	return r.db.WithContext(ctx).
		Where("prison_id = ? AND department_type = ?", details.PrisonID, string(details.Department)).
		Delete(&models.ContactDetailsModel{}).Error
}
