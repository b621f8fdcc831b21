package billing

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DonaldEOgbame/subscription-platform/app/models"
)

func seedProvider(t *testing.T, db *gorm.DB, tag string) *models.ServiceProvider {
	t.Helper()
	user := &models.User{
		Username: "payee-" + tag,
		Email:    fmt.Sprintf("payee-%s@example.com", tag),
		Password: "x",
		Role:     models.RoleProvider,
	}
	require.NoError(t, db.Create(user).Error)

	provider := &models.ServiceProvider{UserID: user.ID, IsActive: true}
	require.NoError(t, db.Create(provider).Error)
	return provider
}

func schedulePayout(t *testing.T, svc *Service, providerID uint, transferID string) *models.Payout {
	t.Helper()
	p, err := svc.SchedulePayout(context.Background(), PayoutInput{
		ProviderID:         providerID,
		Amount:             decimal.NewFromInt(10000),
		PaystackTransferID: transferID,
		ScheduledFor:       time.Now(),
	})
	require.NoError(t, err)
	return p
}

func TestSchedulePayout(t *testing.T) {
	svc, db := newTestService(t)

	provider := seedProvider(t, db, "sched")
	p := schedulePayout(t, svc, provider.ID, "TRF_sched")

	assert.Equal(t, models.PayoutStatusPending, p.Status)
	assert.Equal(t, uint(0), p.Attempts)
	assert.Equal(t, models.DefaultCurrency, p.Currency)
}

func TestSchedulePayoutDuplicateTransfer(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	provider := seedProvider(t, db, "duptrf")
	schedulePayout(t, svc, provider.ID, "TRF_once")

	_, err := svc.SchedulePayout(ctx, PayoutInput{
		ProviderID:         provider.ID,
		Amount:             decimal.NewFromInt(1),
		PaystackTransferID: "TRF_once",
		ScheduledFor:       time.Now(),
	})
	assert.ErrorIs(t, err, ErrDuplicateTransfer)
}

func TestRecordPayoutAttemptSuccess(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	provider := seedProvider(t, db, "ok")
	p := schedulePayout(t, svc, provider.ID, "TRF_ok")

	admin := seedUser(t, db, "payout-admin")

	got, err := svc.RecordPayoutAttempt(ctx, p.ID, &admin.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.PayoutStatusPaid, got.Status)
	assert.Equal(t, uint(1), got.Attempts)
	assert.NotNil(t, got.ProcessedAt)
	require.NotNil(t, got.ProcessedByID)
	assert.Equal(t, admin.ID, *got.ProcessedByID)

	// settled payouts take no further attempts
	_, err = svc.RecordPayoutAttempt(ctx, p.ID, nil, nil)
	assert.ErrorIs(t, err, ErrPayoutNotPending)
}

func TestRecordPayoutAttemptRetriesThenFails(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	provider := seedProvider(t, db, "retry")
	p := schedulePayout(t, svc, provider.ID, "TRF_retry")

	dispatchErr := errors.New("gateway timeout")

	// default retry budget is 3 attempts
	for i := 1; i <= 2; i++ {
		got, err := svc.RecordPayoutAttempt(ctx, p.ID, nil, dispatchErr)
		require.NoError(t, err)
		assert.Equal(t, models.PayoutStatusPending, got.Status)
		assert.Equal(t, uint(i), got.Attempts)
		assert.Equal(t, "gateway timeout", got.LastError)
	}

	got, err := svc.RecordPayoutAttempt(ctx, p.ID, nil, dispatchErr)
	require.NoError(t, err)
	assert.Equal(t, models.PayoutStatusFailed, got.Status)
	assert.Equal(t, uint(3), got.Attempts)
	assert.NotNil(t, got.ProcessedAt)

	_, err = svc.RecordPayoutAttempt(ctx, p.ID, nil, dispatchErr)
	assert.ErrorIs(t, err, ErrRetriesExhausted)
}

func TestSettleCommissions(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	user := seedUser(t, db, "settle")
	link := seedReferralLink(t, db, "SETTLE10", "10")
	other := seedReferralLink(t, db, "OTHER10", "10")

	for i, code := range []string{"SETTLE10", "SETTLE10", "OTHER10"} {
		_, err := svc.RecordCharge(ctx, ChargeInput{
			UserID:       user.ID,
			Amount:       decimal.NewFromInt(1000),
			Reference:    fmt.Sprintf("ref-settle-%d", i),
			Status:       models.PaymentStatusSuccess,
			ReferralCode: code,
		})
		require.NoError(t, err)
	}

	n, err := svc.SettleCommissions(ctx, link.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	var settled []models.AffiliateCommission
	require.NoError(t, db.Where("referral_link_id = ?", link.ID).Find(&settled).Error)
	for _, c := range settled {
		assert.Equal(t, models.CommissionStatusPaid, c.Status)
		assert.NotNil(t, c.PaidAt)
	}

	var untouched models.AffiliateCommission
	require.NoError(t, db.Where("referral_link_id = ?", other.ID).First(&untouched).Error)
	assert.Equal(t, models.CommissionStatusPending, untouched.Status)

	// settling again is a no-op
	n, err = svc.SettleCommissions(ctx, link.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
