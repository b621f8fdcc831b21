package repository

import (
	"context"
	"encoding/json"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/DonaldEOgbame/subscription-platform/app/models"
	"github.com/DonaldEOgbame/subscription-platform/internal/pkg/cache"
)

const (
	settingsCacheKey = "platform:settings"
	settingsCacheTTL = 5 * time.Minute
)

// settingRepository implements the SettingRepository interface. Reads go
// through the Redis cache when one is connected; the repository works the
// same without it.
type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new setting repository instance
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) Get() (*models.PlatformSettings, error) {
	ctx := context.Background()

	if raw, err := cache.Get(ctx, settingsCacheKey); err == nil {
		var settings models.PlatformSettings
		if err := json.Unmarshal([]byte(raw), &settings); err == nil {
			return &settings, nil
		}
		// stale or corrupt entry, fall through to the database
		_ = cache.Delete(ctx, settingsCacheKey)
	} else if !cache.IsMiss(err) {
		log.Warnf("settings cache read failed: %v", err)
	}

	settings, err := models.GetOrCreatePlatformSettings(r.db)
	if err != nil {
		return nil, err
	}
	r.fill(ctx, settings)
	return settings, nil
}

// Save persists the settings row, refreshes the in-memory snapshot and
// rewrites the cache entry.
func (r *settingRepository) Save(settings *models.PlatformSettings) error {
	if err := models.SavePlatformSettings(r.db, settings); err != nil {
		return err
	}
	r.fill(context.Background(), settings)
	return nil
}

func (r *settingRepository) fill(ctx context.Context, settings *models.PlatformSettings) {
	if !cache.Enabled() {
		return
	}
	raw, err := json.Marshal(settings)
	if err != nil {
		return
	}
	if err := cache.Set(ctx, settingsCacheKey, string(raw), settingsCacheTTL); err != nil {
		log.Warnf("settings cache write failed: %v", err)
	}
}
