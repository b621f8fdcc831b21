package subscription

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/DonaldEOgbame/subscription-platform/app/models"
)

// Service implements the subscription lifecycle. The status column is a
// plain label in the schema; the transition guards live here and are applied
// as conditional updates so concurrent callers cannot race past them.
type Service struct {
	repo Repository
}

// NewService creates a subscription service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceFromDB creates a subscription service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// CreateInput carries the checkout parameters for a new subscription.
// AutoRenew left nil defaults to true.
type CreateInput struct {
	SubscriberID           uint
	PlanID                 uint
	Quantity               uint
	AutoRenew              *bool
	PaystackSubscriptionID *string
	Metadata               json.RawMessage
}

// Create opens a subscription after successful checkout. A subscriber holds
// at most one subscription per plan; a second create for the same pair fails
// with ErrDuplicateSubscription.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Subscription, error) {
	_ = ctx
	plan, err := s.repo.GetPlan(in.PlanID)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, ErrPlanInactive
	}

	now := time.Now()
	periodStart := now
	periodEnd := plan.PeriodEnd(periodStart)
	if plan.TrialPeriodDays > 0 {
		periodEnd = periodStart.AddDate(0, 0, int(plan.TrialPeriodDays))
	}

	quantity := in.Quantity
	if quantity == 0 {
		quantity = 1
	}

	autoRenew := true
	if in.AutoRenew != nil {
		autoRenew = *in.AutoRenew
	}

	sub := &models.Subscription{
		SubscriberID:           in.SubscriberID,
		PlanID:                 in.PlanID,
		Status:                 models.SubscriptionStatusActive,
		StartDate:              now,
		CurrentPeriodStart:     &periodStart,
		CurrentPeriodEnd:       &periodEnd,
		AutoRenew:              autoRenew,
		Quantity:               quantity,
		PaystackSubscriptionID: in.PaystackSubscriptionID,
		Metadata:               in.Metadata,
		IsActive:               true,
	}
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(sub); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSubscription
		}
		return nil, err
	}
	return sub, nil
}

// Pause suspends an active subscription.
func (s *Service) Pause(ctx context.Context, id uint) (*models.Subscription, error) {
	_ = ctx
	now := time.Now()
	ok, err := s.repo.TransitionStatus(id, []string{models.SubscriptionStatusActive}, map[string]interface{}{
		"status":    models.SubscriptionStatusPaused,
		"paused_at": &now,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.transitionFailure(id)
	}
	return s.repo.Get(id)
}

// Resume reactivates a paused subscription.
func (s *Service) Resume(ctx context.Context, id uint) (*models.Subscription, error) {
	_ = ctx
	now := time.Now()
	ok, err := s.repo.TransitionStatus(id, []string{models.SubscriptionStatusPaused}, map[string]interface{}{
		"status":     models.SubscriptionStatusActive,
		"resumed_at": &now,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.transitionFailure(id)
	}
	return s.repo.Get(id)
}

// Cancel ends a subscription. With atPeriodEnd the cancellation is deferred:
// only the flag is set and the status stays untouched until the period
// boundary. Otherwise the subscription is canceled immediately.
func (s *Service) Cancel(ctx context.Context, id uint, atPeriodEnd bool) (*models.Subscription, error) {
	_ = ctx
	alive := []string{models.SubscriptionStatusActive, models.SubscriptionStatusPaused}

	var updates map[string]interface{}
	if atPeriodEnd {
		updates = map[string]interface{}{
			"cancel_at_period_end": true,
		}
	} else {
		now := time.Now()
		updates = map[string]interface{}{
			"status":      models.SubscriptionStatusCanceled,
			"canceled_at": &now,
			"auto_renew":  false,
		}
	}

	ok, err := s.repo.TransitionStatus(id, alive, updates)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.transitionFailure(id)
	}
	return s.repo.Get(id)
}

// Expire finalizes a subscription whose billing period has lapsed. A lapsed
// period with a deferred cancel becomes canceled; a lapsed period without
// auto-renew becomes expired. Anything else is rejected.
func (s *Service) Expire(ctx context.Context, id uint) (*models.Subscription, error) {
	_ = ctx
	sub, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	switch sub.Status {
	case models.SubscriptionStatusCanceled, models.SubscriptionStatusExpired:
		return nil, ErrInvalidTransition
	}
	if !sub.PeriodLapsed(now) {
		return nil, ErrNotExpirable
	}

	alive := []string{models.SubscriptionStatusActive, models.SubscriptionStatusPaused}
	var updates map[string]interface{}
	if sub.CancelAtPeriodEnd {
		updates = map[string]interface{}{
			"status":      models.SubscriptionStatusCanceled,
			"canceled_at": &now,
			"end_date":    &now,
			"auto_renew":  false,
		}
	} else if !sub.AutoRenew {
		updates = map[string]interface{}{
			"status":   models.SubscriptionStatusExpired,
			"end_date": &now,
		}
	} else {
		return nil, ErrNotExpirable
	}

	ok, err := s.repo.TransitionStatus(id, alive, updates)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidTransition
	}
	return s.repo.Get(id)
}

// Renew advances the billing period of an auto-renewing subscription by one
// plan duration, starting from the old period end.
func (s *Service) Renew(ctx context.Context, id uint) (*models.Subscription, error) {
	_ = ctx
	sub, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}
	if !sub.IsRenewable() {
		return nil, ErrInvalidTransition
	}

	plan, err := s.repo.GetPlan(sub.PlanID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if sub.CurrentPeriodEnd != nil {
		start = *sub.CurrentPeriodEnd
	}
	end := plan.PeriodEnd(start)

	sub.CurrentPeriodStart = &start
	sub.CurrentPeriodEnd = &end
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// ExpireDue sweeps subscriptions whose period has lapsed and finalizes each.
// Callers run this from their own scheduler at the period boundary.
func (s *Service) ExpireDue(ctx context.Context, now time.Time) (int, error) {
	subs, err := s.repo.ListDueForExpiry(now)
	if err != nil {
		return 0, err
	}
	expired := 0
	for i := range subs {
		if _, err := s.Expire(ctx, subs[i].ID); err != nil {
			if errors.Is(err, ErrNotExpirable) || errors.Is(err, ErrInvalidTransition) {
				continue
			}
			return expired, err
		}
		expired++
	}
	return expired, nil
}

// transitionFailure distinguishes a missing row from a guard mismatch.
func (s *Service) transitionFailure(id uint) error {
	if _, err := s.repo.Get(id); err != nil {
		return err
	}
	return ErrInvalidTransition
}
