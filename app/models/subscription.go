package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusPaused   = "paused"
	SubscriptionStatusCanceled = "canceled"
	SubscriptionStatusExpired  = "expired"
)

// Subscription links a subscriber to a service plan. A subscriber holds at
// most one subscription per plan; rows are soft-deleted, never removed.
type Subscription struct {
	ID                     uint            `gorm:"primaryKey" json:"id"`
	SubscriberID           uint            `gorm:"not null;uniqueIndex:ux_subscriptions_subscriber_plan,priority:1;index:idx_subscriptions_subscriber_status,priority:1" json:"subscriber_id"`
	Subscriber             Subscriber      `gorm:"foreignKey:SubscriberID;constraint:OnDelete:RESTRICT" json:"subscriber,omitempty" validate:"-"`
	PlanID                 uint            `gorm:"not null;uniqueIndex:ux_subscriptions_subscriber_plan,priority:2;index:idx_subscriptions_plan_status,priority:1" json:"plan_id"`
	Plan                   ServicePlan     `gorm:"foreignKey:PlanID;constraint:OnDelete:RESTRICT" json:"plan,omitempty" validate:"-"`
	Status                 string          `gorm:"type:varchar(20);not null;default:'active';index:idx_subscriptions_subscriber_status,priority:2;index:idx_subscriptions_plan_status,priority:2" json:"status"`
	StartDate              time.Time       `gorm:"type:date;not null;index" json:"start_date"`
	CurrentPeriodStart     *time.Time      `gorm:"type:timestamp;default:null" json:"current_period_start,omitempty"`
	CurrentPeriodEnd       *time.Time      `gorm:"type:timestamp;default:null" json:"current_period_end,omitempty"`
	EndDate                *time.Time      `gorm:"type:date;default:null" json:"end_date,omitempty"`
	// No column default on auto_renew: a default would make GORM omit the
	// zero value on insert, silently turning auto_renew=false into true.
	AutoRenew              bool            `gorm:"not null" json:"auto_renew"`
	PaystackSubscriptionID *string         `gorm:"uniqueIndex;type:varchar(100);default:null" json:"paystack_subscription_id,omitempty"`
	Quantity               uint            `gorm:"default:1" json:"quantity"`
	CancelAtPeriodEnd      bool            `gorm:"default:false" json:"cancel_at_period_end"`
	CanceledAt             *time.Time      `gorm:"type:timestamp;default:null" json:"canceled_at,omitempty"`
	PausedAt               *time.Time      `gorm:"type:timestamp;default:null" json:"paused_at,omitempty"`
	ResumedAt              *time.Time      `gorm:"type:timestamp;default:null" json:"resumed_at,omitempty"`
	LatestInvoiceNumber    string          `gorm:"type:varchar(100)" json:"latest_invoice_number"`
	Metadata               json.RawMessage `gorm:"type:json" json:"metadata,omitempty"`
	IsActive               bool            `gorm:"default:true;index" json:"is_active"`
	CreatedAt              time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt              gorm.DeletedAt  `gorm:"index" json:"-"`
}

// Validate checks the billing period invariant. Both bounds are optional but
// when present the start must not come after the end.
func (s *Subscription) Validate() error {
	if s.CurrentPeriodStart != nil && s.CurrentPeriodEnd != nil &&
		s.CurrentPeriodStart.After(*s.CurrentPeriodEnd) {
		return ErrInvalidPeriod
	}
	return nil
}

// IsRenewable reports whether the subscription still auto-renews.
func (s *Subscription) IsRenewable() bool {
	return s.Status == SubscriptionStatusActive && s.AutoRenew && !s.CancelAtPeriodEnd
}

// PeriodLapsed reports whether the current billing period has passed.
func (s *Subscription) PeriodLapsed(now time.Time) bool {
	return s.CurrentPeriodEnd != nil && s.CurrentPeriodEnd.Before(now)
}
