package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TicketTier is a price level for an event (early bird, regular, VIP, ...).
type TicketTier struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	EventID         uint            `gorm:"not null;index:idx_ticket_tiers_event_name,priority:1" json:"event_id"`
	Event           Event           `gorm:"foreignKey:EventID;constraint:OnDelete:RESTRICT" json:"event,omitempty" validate:"-"`
	Name            string          `gorm:"type:varchar(100);not null;index:idx_ticket_tiers_event_name,priority:2" json:"name" validate:"required,max=100"`
	Description     string          `gorm:"type:text" json:"description"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Currency        string          `gorm:"type:varchar(10);default:'NGN'" json:"currency"`
	Capacity        uint            `gorm:"not null" json:"capacity"`
	SalesStart      *time.Time      `gorm:"type:timestamp;default:null;index:idx_ticket_tiers_sales_window,priority:1" json:"sales_start,omitempty"`
	SalesEnd        *time.Time      `gorm:"type:timestamp;default:null;index:idx_ticket_tiers_sales_window,priority:2" json:"sales_end,omitempty"`
	IsRefundable    bool            `gorm:"default:true" json:"is_refundable"`
	PaystackPriceID *string         `gorm:"type:varchar(100);default:null" json:"paystack_price_id,omitempty"`
	IsActive        bool            `gorm:"default:true;index" json:"is_active"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

// OnSale reports whether the tier can currently be purchased.
func (t *TicketTier) OnSale(now time.Time) bool {
	if t.SalesStart != nil && now.Before(*t.SalesStart) {
		return false
	}
	if t.SalesEnd != nil && now.After(*t.SalesEnd) {
		return false
	}
	return true
}
