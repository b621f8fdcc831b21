package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	BillingIntervalMonthly = "monthly"
	BillingIntervalAnnual  = "annual"
)

// DefaultCurrency is the platform-wide settlement currency.
const DefaultCurrency = "NGN"

// ServicePlan is a recurring subscription plan offered by a provider.
// Plans referenced by subscriptions or payments are protected from deletion.
type ServicePlan struct {
	ID                      uint            `gorm:"primaryKey" json:"id"`
	ProviderID              uint            `gorm:"not null;index:idx_service_plans_provider_active,priority:1" json:"provider_id"`
	Provider                ServiceProvider `gorm:"foreignKey:ProviderID;constraint:OnDelete:RESTRICT" json:"provider,omitempty" validate:"-"`
	Name                    string          `gorm:"type:varchar(255);not null" json:"name" validate:"required,max=255"`
	Slug                    string          `gorm:"uniqueIndex;type:varchar(255)" json:"slug"`
	Description             string          `gorm:"type:text" json:"description" validate:"required"`
	Price                   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Currency                string          `gorm:"type:varchar(10);default:'NGN'" json:"currency" validate:"max=10"`
	BillingInterval         string          `gorm:"type:varchar(20);not null" json:"billing_interval" validate:"required,oneof=monthly annual"`
	DurationDays            uint            `gorm:"not null" json:"duration_days" validate:"required"`
	TrialPeriodDays         uint            `gorm:"default:0" json:"trial_period_days"`
	Featured                bool            `gorm:"default:false" json:"featured"`
	Category                string          `gorm:"type:varchar(100)" json:"category" validate:"max=100"`
	MaxSeats                *uint           `gorm:"default:null" json:"max_seats,omitempty"`
	MinSubscriptionMonths   *uint           `gorm:"default:null" json:"min_subscription_months,omitempty"`
	PaystackPlanID          string          `gorm:"uniqueIndex;type:varchar(100);not null" json:"paystack_plan_id" validate:"required,max=100"`
	IsActive                bool            `gorm:"default:true;index:idx_service_plans_provider_active,priority:2" json:"is_active"`
	CreatedAt               time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt               gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (p *ServicePlan) Validate() error {
	v := validator.New()
	return v.Struct(p)
}

// BeforeCreate derives the slug from the plan name when not set explicitly.
func (p *ServicePlan) BeforeCreate(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}
	return nil
}

// PeriodEnd returns the end of a billing period starting at the given time.
func (p *ServicePlan) PeriodEnd(start time.Time) time.Time {
	return start.AddDate(0, 0, int(p.DurationDays))
}
