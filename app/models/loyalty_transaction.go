package models

import (
	"encoding/json"
	"time"
)

const (
	LoyaltyTypeEarn   = "earn"
	LoyaltyTypeRedeem = "redeem"
)

// LoyaltyTransaction records a change to a subscriber's loyalty points along
// with the running balance after the change.
type LoyaltyTransaction struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	SubscriberID uint            `gorm:"not null;index:idx_loyalty_transactions_subscriber_type,priority:1" json:"subscriber_id"`
	Subscriber   Subscriber      `gorm:"foreignKey:SubscriberID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	Points       int64           `gorm:"not null" json:"points"`
	Balance      int64           `gorm:"not null" json:"balance"`
	Type         string          `gorm:"type:varchar(10);not null;index:idx_loyalty_transactions_subscriber_type,priority:2" json:"type"`
	Reason       string          `gorm:"type:varchar(255)" json:"reason"`
	Reference    string          `gorm:"type:varchar(100)" json:"reference"`
	Metadata     json.RawMessage `gorm:"type:json" json:"metadata,omitempty"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
