package models

import (
	"encoding/json"
	"time"
)

const (
	WebhookStatusPending   = "pending"
	WebhookStatusProcessed = "processed"
	WebhookStatusFailed    = "failed"
)

// PaystackWebhook is the append-only log of inbound gateway events. The raw
// payload is stored verbatim before any interpretation so deliveries can be
// replayed and audited. PaystackEventID carries the gateway's event ID (or a
// payload hash when the gateway omits one) and dedupes retried deliveries.
type PaystackWebhook struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Event           string          `gorm:"type:varchar(100);not null;index:idx_paystack_webhooks_event_status,priority:1" json:"event"`
	PaystackEventID string          `gorm:"uniqueIndex;type:varchar(191);not null" json:"paystack_event_id"`
	Payload         json.RawMessage `gorm:"type:json;not null" json:"payload"`
	Status          string          `gorm:"type:varchar(20);not null;default:'pending';index:idx_paystack_webhooks_event_status,priority:2" json:"status"`
	Processed       bool            `gorm:"default:false" json:"processed"`
	ProcessedAt     *time.Time      `gorm:"type:timestamp;default:null" json:"processed_at,omitempty"`
	ProcessingError string          `gorm:"type:text" json:"processing_error"`
	CreatedAt       time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
