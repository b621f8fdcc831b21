package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	InvoiceStatusDraft    = "draft"
	InvoiceStatusSent     = "sent"
	InvoiceStatusPaid     = "paid"
	InvoiceStatusOverdue  = "overdue"
	InvoiceStatusCanceled = "canceled"
)

// Invoice is the billing document for a payment or renewal. Invoice numbers
// are assigned monotonically from InvoiceSequence and the amount columns
// always satisfy total = subtotal + tax.
type Invoice struct {
	ID             uint                `gorm:"primaryKey" json:"id"`
	InvoiceNumber  string              `gorm:"uniqueIndex;type:varchar(100);not null" json:"invoice_number"`
	UserID         uint                `gorm:"not null;index" json:"user_id"`
	User           User                `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-" validate:"-"`
	SubscriptionID *uint               `gorm:"default:null;index" json:"subscription_id,omitempty"`
	Subscription   *Subscription       `gorm:"foreignKey:SubscriptionID;constraint:OnDelete:SET NULL" json:"-" validate:"-"`
	PaymentID      *uint               `gorm:"uniqueIndex;default:null" json:"payment_id,omitempty"`
	Payment        *PaymentTransaction `gorm:"foreignKey:PaymentID;constraint:OnDelete:SET NULL" json:"-" validate:"-"`
	IssueDate      time.Time           `gorm:"type:date;not null;index:idx_invoices_status_issue_date,priority:2" json:"issue_date"`
	DueDate        *time.Time          `gorm:"type:date;default:null" json:"due_date,omitempty"`
	Status         string              `gorm:"type:varchar(20);not null;default:'draft';index:idx_invoices_status_issue_date,priority:1" json:"status"`
	Subtotal       decimal.Decimal     `gorm:"type:decimal(10,2);default:0" json:"subtotal"`
	TaxAmount      decimal.Decimal     `gorm:"type:decimal(10,2);default:0" json:"tax_amount"`
	TotalAmount    decimal.Decimal     `gorm:"type:decimal(10,2);default:0" json:"total_amount"`
	PDFPath        string              `gorm:"type:varchar(255)" json:"pdf_path"`
	Metadata       json.RawMessage     `gorm:"type:json" json:"metadata,omitempty"`
	CreatedAt      time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

// Balanced reports whether the amount columns satisfy the ledger invariant.
func (i *Invoice) Balanced() bool {
	return i.TotalAmount.Equal(i.Subtotal.Add(i.TaxAmount))
}

// IsOpen reports whether the invoice still awaits payment.
func (i *Invoice) IsOpen() bool {
	return i.Status == InvoiceStatusDraft || i.Status == InvoiceStatusSent || i.Status == InvoiceStatusOverdue
}

// InvoiceSequence is the row-locked counter behind monotone invoice numbers.
type InvoiceSequence struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LastValue uint64    `gorm:"not null;default:0" json:"last_value"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
