package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DonaldEOgbame/subscription-platform/app/models"
)

func TestProviderLookupByUserID(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepository(db)

	user := &models.User{
		Username: "prov-lookup",
		Email:    "prov-lookup@example.com",
		Password: "x",
		Role:     models.RoleProvider,
	}
	require.NoError(t, db.Create(user).Error)

	provider := &models.ServiceProvider{UserID: user.ID, CompanyName: "Lookup Studio"}
	require.NoError(t, repo.CreateProvider(provider))
	assert.True(t, provider.IsActive)

	got, err := repo.GetProviderByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, provider.ID, got.ID)
	assert.Equal(t, "Lookup Studio", got.CompanyName)
}

func TestListProvidersSkipsInactive(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepository(db)

	active := seedProvider(t, db, "list-active")
	inactive := seedProvider(t, db, "list-inactive")
	inactive.IsActive = false
	require.NoError(t, repo.SaveProvider(inactive))

	providers, err := repo.ListProviders(0, 10)
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, active.ID, providers[0].ID)
}

func TestSaveCalendarSyncUpserts(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepository(db)

	provider := seedProvider(t, db, "calsync")

	first := &models.CalendarSync{
		ProviderID: provider.ID,
		Service:    models.CalendarServiceGoogle,
		Token:      "tok-1",
	}
	require.NoError(t, repo.SaveCalendarSync(first))
	assert.True(t, first.IsActive)

	// same (provider, service) pair replaces the token instead of adding a row
	second := &models.CalendarSync{
		ProviderID: provider.ID,
		Service:    models.CalendarServiceGoogle,
		Token:      "tok-2",
		IsActive:   true,
	}
	require.NoError(t, repo.SaveCalendarSync(second))
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.CalendarSync{}).Where("provider_id = ?", provider.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	syncs, err := repo.ListCalendarSyncs(provider.ID)
	require.NoError(t, err)
	require.Len(t, syncs, 1)
	assert.Equal(t, "tok-2", syncs[0].Token)

	outlook := &models.CalendarSync{
		ProviderID: provider.ID,
		Service:    models.CalendarServiceOutlook,
		Token:      "tok-3",
	}
	require.NoError(t, repo.SaveCalendarSync(outlook))

	syncs, err = repo.ListCalendarSyncs(provider.ID)
	require.NoError(t, err)
	assert.Len(t, syncs, 2)
}

func TestSubscriberRoundtrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepository(db)

	user := &models.User{
		Username: "sub-roundtrip",
		Email:    "sub-roundtrip@example.com",
		Password: "x",
		Role:     models.RoleSubscriber,
	}
	require.NoError(t, db.Create(user).Error)

	sub := &models.Subscriber{UserID: user.ID}
	require.NoError(t, repo.CreateSubscriber(sub))
	assert.True(t, sub.IsActive)

	sub.LoyaltyPoints = 120
	require.NoError(t, repo.SaveSubscriber(sub))

	got, err := repo.GetSubscriberByUserID(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 120, got.LoyaltyPoints)
}
