package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	PayoutStatusPending = "pending"
	PayoutStatusPaid    = "paid"
	PayoutStatusFailed  = "failed"
)

// Payout is a scheduled disbursement to a provider. Dispatch attempts are
// counted; once the platform retry budget is exhausted the payout goes to
// failed terminally.
type Payout struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	ProviderID         uint            `gorm:"not null;index:idx_payouts_provider_status,priority:1" json:"provider_id"`
	Provider           ServiceProvider `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	Amount             decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency           string          `gorm:"type:varchar(10);default:'NGN'" json:"currency"`
	PaystackTransferID string          `gorm:"uniqueIndex;type:varchar(100);not null" json:"paystack_transfer_id"`
	ScheduledFor       time.Time       `gorm:"not null;index" json:"scheduled_for"`
	ProcessedAt        *time.Time      `gorm:"type:timestamp;default:null;index" json:"processed_at,omitempty"`
	Status             string          `gorm:"type:varchar(20);not null;default:'pending';index:idx_payouts_provider_status,priority:2" json:"status"`
	Attempts           uint            `gorm:"default:0" json:"attempts"`
	LastError          string          `gorm:"type:text" json:"last_error"`
	ProcessedByID      *uint           `gorm:"default:null" json:"processed_by_id,omitempty"`
	ProcessedBy        *User           `gorm:"foreignKey:ProcessedByID;constraint:OnDelete:SET NULL" json:"-" validate:"-"`
	Metadata           json.RawMessage `gorm:"type:json" json:"metadata,omitempty"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// Dispatchable reports whether another dispatch attempt is allowed under the
// given retry budget.
func (p *Payout) Dispatchable(retryBudget uint) bool {
	return p.Status == PayoutStatusPending && p.Attempts < retryBudget
}
