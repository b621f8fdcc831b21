package promotion

import "errors"

var (
	ErrCouponNotFound     = errors.New("coupon not found")
	ErrCouponExpired      = errors.New("coupon has expired")
	ErrCouponLimitReached = errors.New("coupon usage limit reached")
	ErrMinPurchaseNotMet  = errors.New("purchase amount below coupon minimum")

	ErrReferralNotFound     = errors.New("referral link not found")
	ErrReferralExpired      = errors.New("referral link has expired")
	ErrReferralLimitReached = errors.New("referral link usage limit reached")

	ErrInsufficientPoints = errors.New("insufficient loyalty points")
)
