package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DonaldEOgbame/subscription-platform/app/models"
)

func TestOrganizationSlugAndMembers(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrganizationRepository(db)

	org := &models.Organization{Name: "Lagos Fitness Collective"}
	require.NoError(t, repo.Create(org))
	assert.Equal(t, "lagos-fitness-collective", org.Slug)

	owner, err := models.CreateUser("owner", "owner@example.com", "secret123", models.RoleProvider)
	require.NoError(t, err)
	require.NoError(t, db.Create(owner).Error)

	member, err := models.CreateUser("member", "member@example.com", "secret123", models.RoleSubscriber)
	require.NoError(t, err)
	require.NoError(t, db.Create(member).Error)

	_, err = repo.AddMember(org.ID, owner.ID, models.OrgRoleOwner)
	require.NoError(t, err)
	_, err = repo.AddMember(org.ID, member.ID, models.OrgRoleMember)
	require.NoError(t, err)

	// one membership per user per organization
	_, err = repo.AddMember(org.ID, member.ID, models.OrgRoleMember)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	members, err := repo.ListMembers(org.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.NotZero(t, members[0].User.ID)

	require.NoError(t, repo.RemoveMember(org.ID, member.ID))

	members, err = repo.ListMembers(org.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}
