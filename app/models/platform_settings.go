package models

import (
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PlatformSettings is the single-row table holding global billing defaults:
// tax rate, payout retry budget, dunning grace period and mail templates.
type PlatformSettings struct {
	ID                    uint            `gorm:"primaryKey" json:"id"`
	DefaultTaxRate        decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"default_tax_rate" validate:"omitempty"`
	RetryAttempts         uint            `gorm:"default:3" json:"retry_attempts"`
	GracePeriodDays       uint            `gorm:"default:7" json:"grace_period_days"`
	InvoiceTemplate       string          `gorm:"type:text" json:"invoice_template"`
	EmailReminderTemplate string          `gorm:"type:text" json:"email_reminder_template"`
	CreatedAt             time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *PlatformSettings) Validate() error {
	if s.DefaultTaxRate.IsNegative() {
		return ErrNegativeTaxRate
	}
	v := validator.New()
	return v.Struct(s)
}

var (
	platformSettings *PlatformSettings
	settingsMu       sync.RWMutex
)

// GetPlatformSettings returns the in-memory settings snapshot loaded at boot.
// Callers must have run LoadPlatformSettings first.
func GetPlatformSettings() *PlatformSettings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return platformSettings
}

// LoadPlatformSettings reads (or creates) the settings row and caches it in memory.
func LoadPlatformSettings(db *gorm.DB) (*PlatformSettings, error) {
	settings, err := GetOrCreatePlatformSettings(db)
	if err != nil {
		return nil, err
	}

	settingsMu.Lock()
	platformSettings = settings
	settingsMu.Unlock()

	return settings, nil
}

// GetOrCreatePlatformSettings fetches the singleton row, creating it with
// defaults on first boot.
func GetOrCreatePlatformSettings(db *gorm.DB) (*PlatformSettings, error) {
	var settings PlatformSettings
	err := db.First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	settings = PlatformSettings{
		DefaultTaxRate:  decimal.Zero,
		RetryAttempts:   3,
		GracePeriodDays: 7,
	}
	if err := db.Create(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// SavePlatformSettings validates, persists and refreshes the cached snapshot.
func SavePlatformSettings(db *gorm.DB, settings *PlatformSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := db.Save(settings).Error; err != nil {
		return err
	}

	settingsMu.Lock()
	platformSettings = settings
	settingsMu.Unlock()

	return nil
}
