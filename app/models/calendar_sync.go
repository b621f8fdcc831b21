package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

const (
	CalendarServiceGoogle  = "google"
	CalendarServiceOutlook = "outlook"
)

// CalendarSync stores external calendar OAuth tokens for a provider. Token
// exchange itself happens outside this module; only the credentials and the
// last sync time are persisted here.
type CalendarSync struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	ProviderID   uint            `gorm:"not null;index:idx_calendar_syncs_provider_service,priority:1" json:"provider_id"`
	Provider     ServiceProvider `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	Service      string          `gorm:"type:varchar(50);not null;index:idx_calendar_syncs_provider_service,priority:2" json:"service"`
	Token        string          `gorm:"type:varchar(255);not null" json:"-"`
	RefreshToken string          `gorm:"type:varchar(255)" json:"-"`
	ExpiresAt    *time.Time      `gorm:"type:timestamp;default:null" json:"expires_at,omitempty"`
	SyncedAt     time.Time       `gorm:"autoUpdateTime" json:"synced_at"`
	Metadata     json.RawMessage `gorm:"type:json" json:"metadata,omitempty"`
	IsActive     bool            `gorm:"default:true;index" json:"is_active"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TokenExpired reports whether the access token needs refreshing.
func (c *CalendarSync) TokenExpired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}
