package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DonaldEOgbame/subscription-platform/internal/pkg/shortener"
)

const (
	TicketStatusIssued    = "issued"
	TicketStatusCheckedIn = "checkedin"
	TicketStatusCanceled  = "canceled"
	TicketStatusRefunded  = "refunded"
)

// Ticket is a digital admission record with a QR code and check-in state.
type Ticket struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	TierID       uint            `gorm:"not null;index" json:"tier_id"`
	Tier         TicketTier      `gorm:"foreignKey:TierID;constraint:OnDelete:RESTRICT" json:"tier,omitempty" validate:"-"`
	SubscriberID uint            `gorm:"not null;index" json:"subscriber_id"`
	Subscriber   Subscriber      `gorm:"foreignKey:SubscriberID;constraint:OnDelete:RESTRICT" json:"subscriber,omitempty" validate:"-"`
	TicketUUID   string          `gorm:"uniqueIndex;type:varchar(36);not null" json:"ticket_uuid"`
	QRCode       string          `gorm:"uniqueIndex;type:varchar(255);not null" json:"qr_code"`
	SeatNumber   string          `gorm:"type:varchar(20)" json:"seat_number"`
	Status       string          `gorm:"type:varchar(20);not null;default:'issued';index" json:"status"`
	CheckInTime  *time.Time      `gorm:"type:timestamp;default:null" json:"check_in_time,omitempty"`
	Metadata     json.RawMessage `gorm:"type:json" json:"metadata,omitempty"`
	IsActive     bool            `gorm:"default:true;index" json:"is_active"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate assigns the ticket UUID when not set explicitly.
func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.TicketUUID == "" {
		t.TicketUUID = uuid.NewString()
	}
	return nil
}

// Serial returns the compact base62 serial printed on the ticket next to
// the QR code. Only assigned after the row is persisted.
func (t *Ticket) Serial() string {
	return shortener.EncodeID(t.ID)
}

// CheckIn marks the ticket as used. Only issued tickets can check in.
func (t *Ticket) CheckIn(at time.Time) bool {
	if t.Status != TicketStatusIssued {
		return false
	}
	t.Status = TicketStatusCheckedIn
	t.CheckInTime = &at
	return true
}
