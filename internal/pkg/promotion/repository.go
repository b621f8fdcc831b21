package promotion

import (
	"gorm.io/gorm"

	"github.com/DonaldEOgbame/subscription-platform/app/models"
)

// Repository provides DB operations used by the promotion service. The
// counter increments are guarded single statements, so concurrent
// redemptions can never push a counter past its cap.
type Repository interface {
	GetCouponByCode(code string) (*models.Coupon, error)
	// RedeemCoupon bumps times_redeemed while it is below the usage limit.
	// Returns false when the limit guard did not match.
	RedeemCoupon(id uint) (bool, error)

	GetReferralByCode(code string) (*models.ReferralLink, error)
	// UseReferral bumps used_count while it is below max_uses.
	UseReferral(id uint) (bool, error)

	GetSubscriber(id uint) (*models.Subscriber, error)
	// AdjustPoints applies a signed delta to the subscriber balance and
	// appends the matching loyalty transaction atomically. Negative deltas
	// are guarded against overdrawing. Returns false on guard mismatch.
	AdjustPoints(subscriberID uint, delta int64, txnType, reason, reference string) (bool, *models.LoyaltyTransaction, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a promotion repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetCouponByCode(code string) (*models.Coupon, error) {
	var c models.Coupon
	err := r.db.Where("code = ? AND is_active = ?", code, true).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *gormRepository) RedeemCoupon(id uint) (bool, error) {
	tx := r.db.Model(&models.Coupon{}).
		Where("id = ? AND (usage_limit IS NULL OR times_redeemed < usage_limit)", id).
		UpdateColumn("times_redeemed", gorm.Expr("times_redeemed + 1"))
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *gormRepository) GetReferralByCode(code string) (*models.ReferralLink, error) {
	var link models.ReferralLink
	err := r.db.Where("code = ? AND is_active = ?", code, true).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *gormRepository) UseReferral(id uint) (bool, error) {
	tx := r.db.Model(&models.ReferralLink{}).
		Where("id = ? AND (max_uses IS NULL OR used_count < max_uses)", id).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *gormRepository) GetSubscriber(id uint) (*models.Subscriber, error) {
	var sub models.Subscriber
	if err := r.db.First(&sub, id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *gormRepository) AdjustPoints(subscriberID uint, delta int64, txnType, reason, reference string) (bool, *models.LoyaltyTransaction, error) {
	var entry *models.LoyaltyTransaction
	guarded := false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&models.Subscriber{}).Where("id = ?", subscriberID)
		if delta < 0 {
			q = q.Where("loyalty_points >= ?", -delta)
		}
		res := q.UpdateColumn("loyalty_points", gorm.Expr("loyalty_points + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		guarded = true

		var sub models.Subscriber
		if err := tx.First(&sub, subscriberID).Error; err != nil {
			return err
		}

		entry = &models.LoyaltyTransaction{
			SubscriberID: subscriberID,
			Points:       delta,
			Balance:      sub.LoyaltyPoints,
			Type:         txnType,
			Reason:       reason,
			Reference:    reference,
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return false, nil, err
	}
	return guarded, entry, nil
}
