package billing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/DonaldEOgbame/subscription-platform/app/models"
)

var decimalHundred = decimal.NewFromInt(100)

// SchedulePayout queues a provider disbursement. The transfer ID is unique;
// scheduling the same transfer twice fails with ErrDuplicateTransfer.
func (s *Service) SchedulePayout(ctx context.Context, in PayoutInput) (*models.Payout, error) {
	_ = ctx
	transferID := strings.TrimSpace(in.PaystackTransferID)
	if in.ProviderID == 0 || transferID == "" {
		return nil, errors.New("provider_id and paystack_transfer_id are required")
	}

	currency := in.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}

	p := &models.Payout{
		ProviderID:         in.ProviderID,
		Amount:             in.Amount,
		Currency:           currency,
		PaystackTransferID: transferID,
		ScheduledFor:       in.ScheduledFor,
		Status:             models.PayoutStatusPending,
		Metadata:           in.Metadata,
	}
	if err := s.repo.CreatePayout(p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateTransfer
		}
		return nil, err
	}
	return p, nil
}

// RecordPayoutAttempt books the outcome of one dispatch attempt. On success
// the payout settles as paid. On failure the error is kept for the next try;
// once attempts reach the platform retry budget the payout fails terminally.
// Attempts against a settled payout are rejected.
func (s *Service) RecordPayoutAttempt(ctx context.Context, id uint, actorID *uint, dispatchErr error) (*models.Payout, error) {
	_ = ctx
	p, err := s.repo.GetPayout(id)
	if err != nil {
		return nil, err
	}
	switch p.Status {
	case models.PayoutStatusPaid:
		return nil, ErrPayoutNotPending
	case models.PayoutStatusFailed:
		return nil, ErrRetriesExhausted
	}

	settings, err := s.repo.GetSettings()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{}
	if dispatchErr == nil {
		updates["status"] = models.PayoutStatusPaid
		updates["processed_at"] = &now
		if actorID != nil {
			updates["processed_by_id"] = actorID
		}
	} else {
		updates["last_error"] = dispatchErr.Error()
		if p.Attempts+1 >= settings.RetryAttempts {
			updates["status"] = models.PayoutStatusFailed
			updates["processed_at"] = &now
		}
	}

	return s.repo.RecordPayoutAttempt(id, updates)
}

// SettleCommissions marks the pending commissions of a referral link as paid
// during a payout run, and returns how many settled.
func (s *Service) SettleCommissions(ctx context.Context, referralLinkID uint) (int64, error) {
	_ = ctx
	if referralLinkID == 0 {
		return 0, errors.New("referral_link_id is required")
	}
	return s.repo.SettlePendingCommissions(referralLinkID, time.Now())
}
