package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	CommissionStatusPending = "pending"
	CommissionStatusPaid    = "paid"
)

// AffiliateCommission is the amount owed to a referral link owner for a
// payment made with their code. It settles pending -> paid on a payout run.
type AffiliateCommission struct {
	ID             uint               `gorm:"primaryKey" json:"id"`
	ReferralLinkID uint               `gorm:"not null;index:idx_affiliate_commissions_link_status,priority:1" json:"referral_link_id"`
	ReferralLink   ReferralLink       `gorm:"foreignKey:ReferralLinkID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	TransactionID  uint               `gorm:"not null;index" json:"transaction_id"`
	Transaction    PaymentTransaction `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	Amount         decimal.Decimal    `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status         string             `gorm:"type:varchar(20);not null;default:'pending';index:idx_affiliate_commissions_link_status,priority:2" json:"status"`
	PaidAt         *time.Time         `gorm:"type:timestamp;default:null" json:"paid_at,omitempty"`
	Metadata       json.RawMessage    `gorm:"type:json" json:"metadata,omitempty"`
	CreatedAt      time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}
