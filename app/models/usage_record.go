package models

import (
	"encoding/json"
	"time"
)

// UsageRecord tracks per-day consumption counters for a subscription.
type UsageRecord struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	SubscriptionID uint            `gorm:"not null;index:idx_usage_records_subscription_date,priority:1" json:"subscription_id"`
	Subscription   Subscription    `gorm:"foreignKey:SubscriptionID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	Date           time.Time       `gorm:"type:date;not null;index:idx_usage_records_subscription_date,priority:2" json:"date"`
	SessionsUsed   int             `gorm:"default:0" json:"sessions_used"`
	Downloads      int             `gorm:"default:0" json:"downloads"`
	APICalls       int             `gorm:"default:0" json:"api_calls"`
	Metadata       json.RawMessage `gorm:"type:json" json:"metadata,omitempty"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
