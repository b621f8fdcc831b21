package models

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// Coupon is a discount code applicable to plans or events. The redemption
// counter never exceeds the usage limit; the guarded increment lives in the
// promotion service.
type Coupon struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	Code              string          `gorm:"uniqueIndex;type:varchar(50);not null" json:"code" validate:"required,max=50"`
	Name              string          `gorm:"type:varchar(255)" json:"name" validate:"max=255"`
	Description       string          `gorm:"type:text" json:"description"`
	DiscountType      string          `gorm:"type:varchar(10);not null" json:"discount_type" validate:"required,oneof=percentage fixed"`
	Value             decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"value"`
	MinPurchaseAmount decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"min_purchase_amount"`
	UsageLimit        *uint           `gorm:"default:null" json:"usage_limit,omitempty"`
	TimesRedeemed     uint            `gorm:"default:0" json:"times_redeemed"`
	ExpiresAt         *time.Time      `gorm:"type:timestamp;default:null;index:idx_coupons_expires_active,priority:1" json:"expires_at,omitempty"`
	ApplicablePlans   []ServicePlan   `gorm:"many2many:coupon_service_plans" json:"applicable_plans,omitempty" validate:"-"`
	ApplicableEvents  []Event         `gorm:"many2many:coupon_events" json:"applicable_events,omitempty" validate:"-"`
	Metadata          json.RawMessage `gorm:"type:json" json:"metadata,omitempty"`
	IsActive          bool            `gorm:"default:true;index:idx_coupons_expires_active,priority:2" json:"is_active"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (c *Coupon) Validate() error {
	if c.DiscountType == DiscountTypePercentage &&
		(c.Value.IsNegative() || c.Value.GreaterThan(decimal.NewFromInt(100))) {
		return ErrPercentageOutOf100
	}
	v := validator.New()
	return v.Struct(c)
}

// Expired reports whether the coupon can no longer be applied.
func (c *Coupon) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

// Exhausted reports whether the usage limit has been reached.
func (c *Coupon) Exhausted() bool {
	return c.UsageLimit != nil && c.TimesRedeemed >= *c.UsageLimit
}

// Discount computes the amount deducted from a purchase. Percentage coupons
// take a share of the amount; fixed coupons never exceed it.
func (c *Coupon) Discount(amount decimal.Decimal) decimal.Decimal {
	if c.DiscountType == DiscountTypePercentage {
		return amount.Mul(c.Value).DivRound(decimal.NewFromInt(100), 2)
	}
	if c.Value.GreaterThan(amount) {
		return amount
	}
	return c.Value
}
