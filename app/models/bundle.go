package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bundle combines plans and events at a special price.
type Bundle struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Name           string          `gorm:"type:varchar(255);not null" json:"name" validate:"required,max=255"`
	Slug           string          `gorm:"uniqueIndex;type:varchar(255)" json:"slug"`
	Description    string          `gorm:"type:text" json:"description"`
	Plans          []ServicePlan   `gorm:"many2many:bundle_service_plans" json:"plans,omitempty" validate:"-"`
	Events         []Event         `gorm:"many2many:bundle_events" json:"events,omitempty" validate:"-"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Currency       string          `gorm:"type:varchar(10);default:'NGN'" json:"currency"`
	MaxRedemptions *uint           `gorm:"default:null" json:"max_redemptions,omitempty"`
	TimesRedeemed  uint            `gorm:"default:0" json:"times_redeemed"`
	IsActive       bool            `gorm:"default:true;index" json:"is_active"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate derives the slug from the bundle name when not set explicitly.
func (b *Bundle) BeforeCreate(tx *gorm.DB) error {
	if b.Slug == "" {
		b.Slug = Slugify(b.Name)
	}
	return nil
}
