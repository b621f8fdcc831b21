package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DonaldEOgbame/subscription-platform/app/models"
)

func TestUserRepositoryCRUD(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	user, err := models.CreateUser("adaeze", "adaeze@example.com", "secret123", models.RoleProvider)
	require.NoError(t, err)
	require.NoError(t, repo.Create(user))

	byEmail, err := repo.GetByEmail("adaeze@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byName, err := repo.GetByUsername("adaeze")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byName.FirstName = "Adaeze"
	require.NoError(t, repo.Update(byName))

	got, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Adaeze", got.FirstName)
}

func TestUserRepositoryUniqueEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	first, err := models.CreateUser("first", "same@example.com", "secret123", models.RoleSubscriber)
	require.NoError(t, err)
	require.NoError(t, repo.Create(first))

	second, err := models.CreateUser("second", "same@example.com", "secret123", models.RoleSubscriber)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(second), gorm.ErrDuplicatedKey)
}

func TestUserRepositorySoftDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	user, err := models.CreateUser("gone", "gone@example.com", "secret123", models.RoleSubscriber)
	require.NoError(t, err)
	require.NoError(t, repo.Create(user))

	require.NoError(t, repo.Delete(user.ID))

	_, err = repo.GetByID(user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// the row survives for audit purposes
	var count int64
	require.NoError(t, db.Unscoped().Model(&models.User{}).Where("id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUserRepositoryListByRole(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	for i, role := range []string{models.RoleProvider, models.RoleSubscriber, models.RoleSubscriber} {
		user, err := models.CreateUser(
			"user"+string(rune('a'+i)),
			"user"+string(rune('a'+i))+"@example.com",
			"secret123",
			role,
		)
		require.NoError(t, err)
		require.NoError(t, repo.Create(user))
	}

	subs, err := repo.ListByRole(models.RoleSubscriber, 0, 10)
	require.NoError(t, err)
	assert.Len(t, subs, 2)

	total, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}
