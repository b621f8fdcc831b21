package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReferralLink is an affiliate tracking code owned by a provider or an
// individual promoter. The use counter is guarded by max_uses.
type ReferralLink struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	Code           string           `gorm:"uniqueIndex;type:varchar(100);not null" json:"code" validate:"required,max=100"`
	URL            string           `gorm:"type:varchar(255);not null" json:"url" validate:"required,url"`
	ProviderID     *uint            `gorm:"default:null;index" json:"provider_id,omitempty"`
	Provider       *ServiceProvider `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	PromoterID     *uint            `gorm:"default:null;index" json:"promoter_id,omitempty"`
	Promoter       *User            `gorm:"foreignKey:PromoterID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	Description    string           `gorm:"type:text" json:"description"`
	PayoutRate     decimal.Decimal  `gorm:"type:decimal(5,2);default:0" json:"payout_rate"`
	ExpirationDate *time.Time       `gorm:"type:timestamp;default:null;index" json:"expiration_date,omitempty"`
	MaxUses        *uint            `gorm:"default:null" json:"max_uses,omitempty"`
	UsedCount      uint             `gorm:"default:0" json:"used_count"`
	Metadata       json.RawMessage  `gorm:"type:json" json:"metadata,omitempty"`
	IsActive       bool             `gorm:"default:true;index" json:"is_active"`
	CreatedAt      time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`
}

// Expired reports whether the link can no longer be used.
func (r *ReferralLink) Expired(now time.Time) bool {
	return r.ExpirationDate != nil && r.ExpirationDate.Before(now)
}

// Exhausted reports whether the use limit has been reached.
func (r *ReferralLink) Exhausted() bool {
	return r.MaxUses != nil && r.UsedCount >= *r.MaxUses
}

// Commission computes the affiliate cut of a charge at the link's payout rate.
func (r *ReferralLink) Commission(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(r.PayoutRate).DivRound(decimal.NewFromInt(100), 2)
}
