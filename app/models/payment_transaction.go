package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionTypeCharge   = "charge"
	TransactionTypeTransfer = "transfer"
	TransactionTypeRefund   = "refund"
)

const (
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
	PaymentStatusPending = "pending"
)

// PaymentTransaction is an immutable ledger row for every gateway charge,
// transfer or refund. The reference doubles as the idempotency key for
// gateway callbacks, so replays of the same reference are rejected by the
// unique index. At most one of EventID/SubscriptionID/TicketID may be set.
type PaymentTransaction struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	UserID         uint            `gorm:"not null;index" json:"user_id"`
	User           User            `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-" validate:"-"`
	EventID        *uint           `gorm:"default:null;index" json:"event_id,omitempty"`
	Event          *Event          `gorm:"foreignKey:EventID;constraint:OnDelete:RESTRICT" json:"-" validate:"-"`
	SubscriptionID *uint           `gorm:"default:null;index" json:"subscription_id,omitempty"`
	Subscription   *Subscription   `gorm:"foreignKey:SubscriptionID;constraint:OnDelete:RESTRICT" json:"-" validate:"-"`
	TicketID       *uint           `gorm:"default:null;index" json:"ticket_id,omitempty"`
	Ticket         *Ticket         `gorm:"foreignKey:TicketID;constraint:OnDelete:RESTRICT" json:"-" validate:"-"`
	Amount         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency       string          `gorm:"type:varchar(10);default:'NGN'" json:"currency"`
	Reference      string          `gorm:"uniqueIndex;type:varchar(100);not null" json:"reference"`
	Status         string          `gorm:"type:varchar(20);not null;index" json:"status"`
	Type           string          `gorm:"column:transaction_type;type:varchar(20);not null" json:"transaction_type"`
	Metadata       json.RawMessage `gorm:"type:json" json:"metadata,omitempty"`
	IPAddress      string          `gorm:"type:varchar(45)" json:"-"`
	UserAgent      string          `gorm:"type:varchar(255)" json:"-"`
	RawResponse    json.RawMessage `gorm:"type:json" json:"raw_response,omitempty"`
	CreatedAt      time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// TargetCount returns how many of the optional purchase targets are set.
func (t *PaymentTransaction) TargetCount() int {
	n := 0
	if t.EventID != nil {
		n++
	}
	if t.SubscriptionID != nil {
		n++
	}
	if t.TicketID != nil {
		n++
	}
	return n
}
