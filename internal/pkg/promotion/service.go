package promotion

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/DonaldEOgbame/subscription-platform/app/models"
)

// Service applies coupons and referral codes and keeps the loyalty ledger.
type Service struct {
	repo Repository
}

// NewService creates a promotion service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceFromDB creates a promotion service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// ApplyCoupon redeems a coupon against a purchase amount and returns the
// coupon and the discount to deduct. The redemption counter increment is
// guarded, so the usage limit holds under concurrent checkouts.
func (s *Service) ApplyCoupon(ctx context.Context, code string, amount decimal.Decimal) (*models.Coupon, decimal.Decimal, error) {
	_ = ctx
	coupon, err := s.repo.GetCouponByCode(strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, decimal.Zero, ErrCouponNotFound
		}
		return nil, decimal.Zero, err
	}

	if coupon.Expired(time.Now()) {
		return nil, decimal.Zero, ErrCouponExpired
	}
	if amount.LessThan(coupon.MinPurchaseAmount) {
		return nil, decimal.Zero, ErrMinPurchaseNotMet
	}
	if coupon.Exhausted() {
		return nil, decimal.Zero, ErrCouponLimitReached
	}

	ok, err := s.repo.RedeemCoupon(coupon.ID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if !ok {
		return nil, decimal.Zero, ErrCouponLimitReached
	}

	coupon.TimesRedeemed++
	return coupon, coupon.Discount(amount), nil
}

// UseReferral consumes one use of a referral code and returns the link so
// the caller can attach a commission to the payment.
func (s *Service) UseReferral(ctx context.Context, code string) (*models.ReferralLink, error) {
	_ = ctx
	link, err := s.repo.GetReferralByCode(strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReferralNotFound
		}
		return nil, err
	}

	if link.Expired(time.Now()) {
		return nil, ErrReferralExpired
	}
	if link.Exhausted() {
		return nil, ErrReferralLimitReached
	}

	ok, err := s.repo.UseReferral(link.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrReferralLimitReached
	}

	link.UsedCount++
	return link, nil
}

// EarnPoints credits loyalty points and appends the ledger entry with the
// new running balance.
func (s *Service) EarnPoints(ctx context.Context, subscriberID uint, points int64, reason, reference string) (*models.LoyaltyTransaction, error) {
	_ = ctx
	if points <= 0 {
		return nil, errors.New("points must be positive")
	}
	ok, entry, err := s.repo.AdjustPoints(subscriberID, points, models.LoyaltyTypeEarn, reason, reference)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return entry, nil
}

// RedeemPoints debits loyalty points. Redeeming more than the current
// balance fails with ErrInsufficientPoints and leaves the ledger untouched.
func (s *Service) RedeemPoints(ctx context.Context, subscriberID uint, points int64, reason, reference string) (*models.LoyaltyTransaction, error) {
	_ = ctx
	if points <= 0 {
		return nil, errors.New("points must be positive")
	}
	ok, entry, err := s.repo.AdjustPoints(subscriberID, -points, models.LoyaltyTypeRedeem, reason, reference)
	if err != nil {
		return nil, err
	}
	if !ok {
		if _, err := s.repo.GetSubscriber(subscriberID); err != nil {
			return nil, err
		}
		return nil, ErrInsufficientPoints
	}
	return entry, nil
}
