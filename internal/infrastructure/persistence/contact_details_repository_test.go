package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registers/backend/internal/domain/contact"
	"github.com/registers/backend/internal/domain/shared"
	"github.com/registers/backend/internal/infrastructure/persistence/models"
)

func TestGormContactDetailsRepository_SaveAndFind(t *testing.T) {
	db := setupContactTestDB(t)
	repo := NewGormContactDetailsRepository(db)
	values := NewGormContactValueRepository(db)
	ctx := context.Background()

	email, err := values.GetOrCreate(ctx, contact.ChannelEmail, "visits@moorland.gov.uk")
	require.NoError(t, err)
	phone, err := values.GetOrCreate(ctx, contact.ChannelPhone, "01302523000")
	require.NoError(t, err)

	cd, err := contact.NewContactDetails("MDI", contact.DepartmentSocialVisit)
	require.NoError(t, err)
	cd.SetValue(contact.ChannelEmail, email)
	cd.SetValue(contact.ChannelPhone, phone)
	require.NoError(t, repo.Save(ctx, cd))

	t.Run("round-trips references through preloads", func(t *testing.T) {
		loaded, err := repo.FindByPrisonAndDepartment(ctx, "MDI", contact.DepartmentSocialVisit)
		require.NoError(t, err)
		assert.Equal(t, "MDI", loaded.PrisonID)
		assert.Equal(t, contact.DepartmentSocialVisit, loaded.Department)
		require.NotNil(t, loaded.EmailAddress)
		assert.Equal(t, email.ID, loaded.EmailAddress.ID)
		assert.Equal(t, "visits@moorland.gov.uk", loaded.EmailAddress.Value)
		require.NotNil(t, loaded.PhoneNumber)
		assert.Equal(t, "01302523000", loaded.PhoneNumber.Value)
		assert.Nil(t, loaded.WebAddress)
	})

	t.Run("reports not found for an absent pair", func(t *testing.T) {
		_, err := repo.FindByPrisonAndDepartment(ctx, "MDI", contact.DepartmentVideolinkConferencingCentre)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("exists checks the pair, not just the prison", func(t *testing.T) {
		exists, err := repo.ExistsByPrisonAndDepartment(ctx, "MDI", contact.DepartmentSocialVisit)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByPrisonAndDepartment(ctx, "MDI", contact.DepartmentOffenderManagementUnit)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("save updates references in place", func(t *testing.T) {
		loaded, err := repo.FindByPrisonAndDepartment(ctx, "MDI", contact.DepartmentSocialVisit)
		require.NoError(t, err)
		loaded.SetValue(contact.ChannelPhone, nil)
		require.NoError(t, repo.Save(ctx, loaded))

		reloaded, err := repo.FindByPrisonAndDepartment(ctx, "MDI", contact.DepartmentSocialVisit)
		require.NoError(t, err)
		assert.Nil(t, reloaded.PhoneNumber)
		require.NotNil(t, reloaded.EmailAddress)

		// The cleared reference does not touch the value row itself.
		_, err = values.FindByValue(ctx, contact.ChannelPhone, "01302523000")
		assert.NoError(t, err)
	})
}

func TestGormContactDetailsRepository_UniquePair(t *testing.T) {
	db := setupContactTestDB(t)
	repo := NewGormContactDetailsRepository(db)
	ctx := context.Background()

	first, err := contact.NewContactDetails("LEI", contact.DepartmentSocialVisit)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))

	second, err := contact.NewContactDetails("LEI", contact.DepartmentSocialVisit)
	require.NoError(t, err)
	err = repo.Save(ctx, second)
	require.Error(t, err)
	assert.True(t, isDuplicateKeyError(err))
}

func TestGormContactDetailsRepository_FindAllForPrison(t *testing.T) {
	db := setupContactTestDB(t)
	repo := NewGormContactDetailsRepository(db)
	ctx := context.Background()

	for _, dept := range []contact.DepartmentType{
		contact.DepartmentVideolinkConferencingCentre,
		contact.DepartmentSocialVisit,
	} {
		cd, err := contact.NewContactDetails("WWI", dept)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, cd))
	}
	other, err := contact.NewContactDetails("MDI", contact.DepartmentSocialVisit)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, other))

	all, err := repo.FindAllForPrison(ctx, "WWI")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, contact.DepartmentSocialVisit, all[0].Department)
	assert.Equal(t, contact.DepartmentVideolinkConferencingCentre, all[1].Department)
}

func TestGormContactDetailsRepository_Delete(t *testing.T) {
	db := setupContactTestDB(t)
	repo := NewGormContactDetailsRepository(db)
	values := NewGormContactValueRepository(db)
	ctx := context.Background()

	web, err := values.GetOrCreate(ctx, contact.ChannelWeb, "https://www.moorland.gov.uk")
	require.NoError(t, err)

	cd, err := contact.NewContactDetails("MDI", contact.DepartmentOffenderManagementUnit)
	require.NoError(t, err)
	cd.SetValue(contact.ChannelWeb, web)
	require.NoError(t, repo.Save(ctx, cd))

	require.NoError(t, repo.Delete(ctx, cd))

	_, err = repo.FindByPrisonAndDepartment(ctx, "MDI", contact.DepartmentOffenderManagementUnit)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// Deleting the aggregate leaves the value row for orphan collection.
	var count int64
	require.NoError(t, db.Model(&models.WebAddressModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
