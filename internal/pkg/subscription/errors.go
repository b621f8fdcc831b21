package subscription

import "errors"

var (
	// ErrDuplicateSubscription is returned when a subscriber already holds a
	// subscription for the plan.
	ErrDuplicateSubscription = errors.New("subscriber already has a subscription for this plan")

	// ErrInvalidTransition is returned when a lifecycle operation does not
	// apply to the subscription's current status.
	ErrInvalidTransition = errors.New("invalid subscription status transition")

	// ErrNotExpirable is returned when expiry is requested before the billing
	// period has lapsed or while the subscription still auto-renews.
	ErrNotExpirable = errors.New("subscription is not eligible for expiry")

	// ErrPlanInactive is returned when subscribing to a deactivated plan.
	ErrPlanInactive = errors.New("service plan is not active")
)
