package subscription

import (
	"time"

	"gorm.io/gorm"

	"github.com/DonaldEOgbame/subscription-platform/app/models"
)

// Repository provides DB operations used by the subscription service.
type Repository interface {
	GetPlan(id uint) (*models.ServicePlan, error)
	Get(id uint) (*models.Subscription, error)
	Create(sub *models.Subscription) error
	Save(sub *models.Subscription) error
	// TransitionStatus applies updates to the subscription only while its
	// status is one of the given values. Returns false when the row exists
	// but the guard did not match.
	TransitionStatus(id uint, from []string, updates map[string]interface{}) (bool, error)
	ListDueForExpiry(now time.Time) ([]models.Subscription, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a subscription repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetPlan(id uint) (*models.ServicePlan, error) {
	var plan models.ServicePlan
	if err := r.db.First(&plan, id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *gormRepository) Get(id uint) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.First(&sub, id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *gormRepository) Create(sub *models.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *gormRepository) Save(sub *models.Subscription) error {
	return r.db.Save(sub).Error
}

func (r *gormRepository) TransitionStatus(id uint, from []string, updates map[string]interface{}) (bool, error) {
	tx := r.db.Model(&models.Subscription{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *gormRepository) ListDueForExpiry(now time.Time) ([]models.Subscription, error) {
	// paused rows are swept too: a lapsed period with a deferred cancel or
	// auto-renew off is finalized regardless of the pause
	alive := []string{models.SubscriptionStatusActive, models.SubscriptionStatusPaused}
	var subs []models.Subscription
	err := r.db.
		Where("status IN ? AND current_period_end IS NOT NULL AND current_period_end < ?", alive, now).
		Where("auto_renew = ? OR cancel_at_period_end = ?", false, true).
		Find(&subs).Error
	return subs, err
}
