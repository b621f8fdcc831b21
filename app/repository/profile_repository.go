package repository

import (
	"gorm.io/gorm"

	"github.com/DonaldEOgbame/subscription-platform/app/models"
)

// profileRepository implements the ProfileRepository interface
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository instance
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) CreateProvider(p *models.ServiceProvider) error {
	p.IsActive = true
	return r.db.Create(p).Error
}

func (r *profileRepository) GetProvider(id uint) (*models.ServiceProvider, error) {
	var p models.ServiceProvider
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) GetProviderByUserID(userID uint) (*models.ServiceProvider, error) {
	var p models.ServiceProvider
	if err := r.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) SaveProvider(p *models.ServiceProvider) error {
	return r.db.Save(p).Error
}

// ListProviders returns active providers only; deactivated profiles are
// excluded from default listings.
func (r *profileRepository) ListProviders(offset, limit int) ([]models.ServiceProvider, error) {
	var providers []models.ServiceProvider
	err := r.db.Where("is_active = ?", true).
		Offset(offset).Limit(limit).Order("created_at DESC").Find(&providers).Error
	return providers, err
}

func (r *profileRepository) CreateSubscriber(s *models.Subscriber) error {
	s.IsActive = true
	return r.db.Create(s).Error
}

func (r *profileRepository) GetSubscriber(id uint) (*models.Subscriber, error) {
	var s models.Subscriber
	if err := r.db.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *profileRepository) GetSubscriberByUserID(userID uint) (*models.Subscriber, error) {
	var s models.Subscriber
	if err := r.db.Where("user_id = ?", userID).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *profileRepository) SaveSubscriber(s *models.Subscriber) error {
	return r.db.Save(s).Error
}

// SaveCalendarSync upserts the token record per (provider, service).
func (r *profileRepository) SaveCalendarSync(cs *models.CalendarSync) error {
	var existing models.CalendarSync
	err := r.db.Where("provider_id = ? AND service = ?", cs.ProviderID, cs.Service).First(&existing).Error
	if err == nil {
		cs.ID = existing.ID
		cs.CreatedAt = existing.CreatedAt
		return r.db.Save(cs).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	cs.IsActive = true
	return r.db.Create(cs).Error
}

func (r *profileRepository) ListCalendarSyncs(providerID uint) ([]models.CalendarSync, error) {
	var syncs []models.CalendarSync
	err := r.db.Where("provider_id = ? AND is_active = ?", providerID, true).Find(&syncs).Error
	return syncs, err
}
