package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DonaldEOgbame/subscription-platform/app/models"
	"github.com/DonaldEOgbame/subscription-platform/internal/pkg/database"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := database.OpenTest()
	require.NoError(t, err)
	return NewServiceFromDB(db), db
}

func seedUser(t *testing.T, db *gorm.DB, tag string) *models.User {
	t.Helper()
	user := &models.User{
		Username: "user-" + tag,
		Email:    fmt.Sprintf("user-%s@example.com", tag),
		Password: "x",
		Role:     models.RoleSubscriber,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedReferralLink(t *testing.T, db *gorm.DB, code string, rate string) *models.ReferralLink {
	t.Helper()
	link := &models.ReferralLink{
		Code:       code,
		URL:        "https://example.com/r/" + code,
		PayoutRate: decimal.RequireFromString(rate),
		IsActive:   true,
	}
	require.NoError(t, db.Create(link).Error)
	return link
}

func TestRecordCharge(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	user := seedUser(t, db, "charge")

	txn, err := svc.RecordCharge(ctx, ChargeInput{
		UserID:    user.ID,
		Amount:    decimal.NewFromInt(5000),
		Reference: "ref-charge-1",
		Status:    models.PaymentStatusSuccess,
	})
	require.NoError(t, err)

	assert.Equal(t, models.TransactionTypeCharge, txn.Type)
	assert.Equal(t, models.DefaultCurrency, txn.Currency)

	got, err := svc.GetByReference(ctx, "ref-charge-1")
	require.NoError(t, err)
	assert.Equal(t, txn.ID, got.ID)
}

func TestRecordChargeDuplicateReference(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	user := seedUser(t, db, "dupref")

	in := ChargeInput{
		UserID:    user.ID,
		Amount:    decimal.NewFromInt(100),
		Reference: "ref-replayed",
		Status:    models.PaymentStatusSuccess,
	}
	_, err := svc.RecordCharge(ctx, in)
	require.NoError(t, err)

	_, err = svc.RecordCharge(ctx, in)
	assert.ErrorIs(t, err, ErrDuplicateReference)
}

func TestRecordChargeAmbiguousTarget(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	user := seedUser(t, db, "ambig")
	eventID := uint(1)
	subID := uint(2)

	_, err := svc.RecordCharge(ctx, ChargeInput{
		UserID:         user.ID,
		Amount:         decimal.NewFromInt(100),
		Reference:      "ref-ambiguous",
		Status:         models.PaymentStatusSuccess,
		EventID:        &eventID,
		SubscriptionID: &subID,
	})
	assert.ErrorIs(t, err, ErrAmbiguousTarget)
}

func TestRecordChargeCreatesCommission(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	user := seedUser(t, db, "affiliate")
	link := seedReferralLink(t, db, "PROMO2026", "10")

	txn, err := svc.RecordCharge(ctx, ChargeInput{
		UserID:       user.ID,
		Amount:       decimal.NewFromInt(2000),
		Reference:    "ref-affiliate",
		Status:       models.PaymentStatusSuccess,
		ReferralCode: "PROMO2026",
	})
	require.NoError(t, err)

	var commission models.AffiliateCommission
	require.NoError(t, db.Where("transaction_id = ?", txn.ID).First(&commission).Error)
	assert.Equal(t, link.ID, commission.ReferralLinkID)
	assert.Equal(t, models.CommissionStatusPending, commission.Status)
	assert.True(t, commission.Amount.Equal(decimal.NewFromInt(200)), "commission is %s", commission.Amount)
}

func TestRecordChargeUnknownReferralCode(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	user := seedUser(t, db, "badref")

	_, err := svc.RecordCharge(ctx, ChargeInput{
		UserID:       user.ID,
		Amount:       decimal.NewFromInt(100),
		Reference:    "ref-badcode",
		Status:       models.PaymentStatusSuccess,
		ReferralCode: "NO-SUCH-CODE",
	})
	assert.ErrorIs(t, err, ErrReferralNotFound)

	// the ledger row must not exist either
	_, err = svc.GetByReference(ctx, "ref-badcode")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGenerateInvoice(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	user := seedUser(t, db, "invoice")

	settings, err := models.GetOrCreatePlatformSettings(db)
	require.NoError(t, err)
	settings.DefaultTaxRate = decimal.RequireFromString("7.5")
	require.NoError(t, db.Save(settings).Error)

	inv, err := svc.GenerateInvoice(ctx, InvoiceInput{
		UserID:   user.ID,
		Subtotal: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-000001", inv.InvoiceNumber)
	assert.Equal(t, models.InvoiceStatusDraft, inv.Status)
	assert.True(t, inv.TaxAmount.Equal(decimal.NewFromInt(75)), "tax is %s", inv.TaxAmount)
	assert.True(t, inv.Balanced())
	require.NotNil(t, inv.DueDate)
}

func TestInvoiceNumbersAreMonotone(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	user := seedUser(t, db, "monotone")

	for i := 1; i <= 3; i++ {
		inv, err := svc.GenerateInvoice(ctx, InvoiceInput{
			UserID:   user.ID,
			Subtotal: decimal.NewFromInt(int64(i) * 100),
		})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("INV-%06d", i), inv.InvoiceNumber)
	}
}

func TestGenerateInvoiceUpdatesSubscription(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	user := seedUser(t, db, "subinv")
	sub := &models.Subscription{SubscriberID: 1, PlanID: 1, Status: models.SubscriptionStatusActive, IsActive: true}
	require.NoError(t, db.Create(sub).Error)

	inv, err := svc.GenerateInvoice(ctx, InvoiceInput{
		UserID:         user.ID,
		SubscriptionID: &sub.ID,
		Subtotal:       decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	var got models.Subscription
	require.NoError(t, db.First(&got, sub.ID).Error)
	assert.Equal(t, inv.InvoiceNumber, got.LatestInvoiceNumber)
}

func TestInvoiceStatusTransitions(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	user := seedUser(t, db, "invstatus")
	inv, err := svc.GenerateInvoice(ctx, InvoiceInput{UserID: user.ID, Subtotal: decimal.NewFromInt(100)})
	require.NoError(t, err)

	sent, err := svc.MarkInvoiceSent(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusSent, sent.Status)

	overdue, err := svc.MarkInvoiceOverdue(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusOverdue, overdue.Status)

	paid, err := svc.MarkInvoicePaid(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, paid.Status)

	// paid is terminal
	_, err = svc.CancelInvoice(ctx, inv.ID)
	assert.ErrorIs(t, err, ErrInvalidInvoiceStatus)
	_, err = svc.MarkInvoiceSent(ctx, inv.ID)
	assert.ErrorIs(t, err, ErrInvalidInvoiceStatus)
}

func TestSweepOverdue(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	user := seedUser(t, db, "dunning")

	past := time.Now().Add(-24 * time.Hour)
	future := time.Now().Add(24 * time.Hour)

	lateSent, err := svc.GenerateInvoice(ctx, InvoiceInput{UserID: user.ID, Subtotal: decimal.NewFromInt(100), DueDate: &past})
	require.NoError(t, err)
	_, err = svc.MarkInvoiceSent(ctx, lateSent.ID)
	require.NoError(t, err)

	// still a draft, never sent, so not dunned
	_, err = svc.GenerateInvoice(ctx, InvoiceInput{UserID: user.ID, Subtotal: decimal.NewFromInt(100), DueDate: &past})
	require.NoError(t, err)

	// sent but not yet due
	notDue, err := svc.GenerateInvoice(ctx, InvoiceInput{UserID: user.ID, Subtotal: decimal.NewFromInt(100), DueDate: &future})
	require.NoError(t, err)
	_, err = svc.MarkInvoiceSent(ctx, notDue.ID)
	require.NoError(t, err)

	flagged, err := svc.SweepOverdue(ctx, time.Now())
	require.NoError(t, err)
	require.Len(t, flagged, 1)
	assert.Equal(t, lateSent.ID, flagged[0].ID)
	assert.Equal(t, models.InvoiceStatusOverdue, flagged[0].Status)

	// the sweep is idempotent
	flagged, err = svc.SweepOverdue(ctx, time.Now())
	require.NoError(t, err)
	assert.Empty(t, flagged)
}

func TestIngestWebhookDeduplicates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	payload := json.RawMessage(`{"event":"charge.success","data":{"reference":"ref-1"}}`)

	created, first, err := svc.IngestWebhook(ctx, WebhookInput{
		Event:   "charge.success",
		EventID: "evt_123",
		Payload: payload,
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.WebhookStatusPending, first.Status)

	created, second, err := svc.IngestWebhook(ctx, WebhookInput{
		Event:   "charge.success",
		EventID: "evt_123",
		Payload: payload,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestIngestWebhookHashFallback(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	payload := json.RawMessage(`{"event":"transfer.success"}`)

	created, first, err := svc.IngestWebhook(ctx, WebhookInput{Event: "transfer.success", Payload: payload})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Contains(t, first.PaystackEventID, "hash:")

	created, _, err = svc.IngestWebhook(ctx, WebhookInput{Event: "transfer.success", Payload: payload})
	require.NoError(t, err)
	assert.False(t, created)

	// a different payload is a different event
	created, _, err = svc.IngestWebhook(ctx, WebhookInput{
		Event:   "transfer.success",
		Payload: json.RawMessage(`{"event":"transfer.success","data":1}`),
	})
	require.NoError(t, err)
	assert.True(t, created)
}

func TestMarkWebhookProcessed(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	payload := json.RawMessage(`{"event":"charge.success","data":{"amount":5000}}`)
	_, hook, err := svc.IngestWebhook(ctx, WebhookInput{Event: "charge.success", EventID: "evt_done", Payload: payload})
	require.NoError(t, err)

	done, err := svc.MarkWebhookProcessed(ctx, hook.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.WebhookStatusProcessed, done.Status)
	assert.True(t, done.Processed)
	assert.NotNil(t, done.ProcessedAt)
	assert.JSONEq(t, string(payload), string(done.Payload))
}

func TestMarkWebhookFailed(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	payload := json.RawMessage(`{"event":"charge.failed"}`)
	_, hook, err := svc.IngestWebhook(ctx, WebhookInput{Event: "charge.failed", EventID: "evt_fail", Payload: payload})
	require.NoError(t, err)

	failed, err := svc.MarkWebhookProcessed(ctx, hook.ID, errors.New("handler blew up"))
	require.NoError(t, err)
	assert.Equal(t, models.WebhookStatusFailed, failed.Status)
	assert.False(t, failed.Processed)
	assert.Equal(t, "handler blew up", failed.ProcessingError)
	assert.JSONEq(t, string(payload), string(failed.Payload))
}
