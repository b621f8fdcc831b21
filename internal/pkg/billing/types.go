package billing

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ChargeInput is the normalized shape for recording a gateway transaction.
type ChargeInput struct {
	UserID         uint
	Amount         decimal.Decimal
	Currency       string
	Reference      string
	Status         string
	Type           string
	EventID        *uint
	SubscriptionID *uint
	TicketID       *uint
	ReferralCode   string
	Metadata       json.RawMessage
	IPAddress      string
	UserAgent      string
	RawResponse    json.RawMessage
}

// InvoiceInput carries the parameters for invoice generation. Tax is computed
// from the platform default tax rate, never passed in.
type InvoiceInput struct {
	UserID         uint
	SubscriptionID *uint
	PaymentID      *uint
	Subtotal       decimal.Decimal
	DueDate        *time.Time
	Metadata       json.RawMessage
}

// WebhookInput is the normalized input for webhook persistence. EventID is
// the gateway's own event identifier; when the gateway omits one the payload
// hash is used for deduplication instead.
type WebhookInput struct {
	Event   string
	EventID string
	Payload json.RawMessage
}

// PayoutInput carries the parameters for scheduling a provider disbursement.
type PayoutInput struct {
	ProviderID         uint
	Amount             decimal.Decimal
	Currency           string
	PaystackTransferID string
	ScheduledFor       time.Time
	Metadata           json.RawMessage
}
