package billing

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/DonaldEOgbame/subscription-platform/app/models"
)

// Repository provides DB operations used by the billing service. Financial
// writes run inside transactions so a failure never leaves a partial ledger
// row behind.
type Repository interface {
	GetSettings() (*models.PlatformSettings, error)

	CreateTransaction(txn *models.PaymentTransaction, referralLinkID *uint, commission *models.AffiliateCommission) error
	GetTransactionByReference(reference string) (*models.PaymentTransaction, error)
	GetReferralLinkByCode(code string) (*models.ReferralLink, error)

	CreateInvoice(inv *models.Invoice) error
	GetInvoice(id uint) (*models.Invoice, error)
	TransitionInvoiceStatus(id uint, from []string, updates map[string]interface{}) (bool, error)
	ListInvoicesPastDue(now time.Time) ([]models.Invoice, error)

	CreateWebhookIfNotExists(hook *models.PaystackWebhook) (bool, *models.PaystackWebhook, error)
	GetWebhook(id uint) (*models.PaystackWebhook, error)
	FinishWebhook(id uint, status string, processingError string) error

	CreatePayout(p *models.Payout) error
	GetPayout(id uint) (*models.Payout, error)
	RecordPayoutAttempt(id uint, updates map[string]interface{}) (*models.Payout, error)
	SettlePendingCommissions(referralLinkID uint, paidAt time.Time) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a billing repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetSettings() (*models.PlatformSettings, error) {
	return models.GetOrCreatePlatformSettings(r.db)
}

// CreateTransaction inserts the ledger row and, when a referral link was
// used, the matching commission in one transaction.
func (r *gormRepository) CreateTransaction(txn *models.PaymentTransaction, referralLinkID *uint, commission *models.AffiliateCommission) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(txn).Error; err != nil {
			return err
		}
		if referralLinkID != nil && commission != nil {
			commission.ReferralLinkID = *referralLinkID
			commission.TransactionID = txn.ID
			if err := tx.Create(commission).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *gormRepository) GetTransactionByReference(reference string) (*models.PaymentTransaction, error) {
	var txn models.PaymentTransaction
	if err := r.db.Where("reference = ?", reference).First(&txn).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *gormRepository) GetReferralLinkByCode(code string) (*models.ReferralLink, error) {
	var link models.ReferralLink
	err := r.db.Where("code = ? AND is_active = ?", code, true).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// CreateInvoice assigns the next monotone invoice number from the sequence
// row and persists the invoice in the same transaction, so numbers are never
// skipped onto two invoices.
func (r *gormRepository) CreateInvoice(inv *models.Invoice) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var seq models.InvoiceSequence
		if err := tx.FirstOrCreate(&seq, models.InvoiceSequence{ID: 1}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.InvoiceSequence{}).
			Where("id = ?", seq.ID).
			UpdateColumn("last_value", gorm.Expr("last_value + 1")).Error; err != nil {
			return err
		}
		if err := tx.First(&seq, seq.ID).Error; err != nil {
			return err
		}

		inv.InvoiceNumber = fmt.Sprintf("INV-%06d", seq.LastValue)
		if err := tx.Create(inv).Error; err != nil {
			return err
		}

		if inv.SubscriptionID != nil {
			if err := tx.Model(&models.Subscription{}).
				Where("id = ?", *inv.SubscriptionID).
				UpdateColumn("latest_invoice_number", inv.InvoiceNumber).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *gormRepository) GetInvoice(id uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := r.db.First(&inv, id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *gormRepository) TransitionInvoiceStatus(id uint, from []string, updates map[string]interface{}) (bool, error) {
	tx := r.db.Model(&models.Invoice{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// ListInvoicesPastDue returns sent invoices whose due date has passed.
func (r *gormRepository) ListInvoicesPastDue(now time.Time) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.
		Where("status = ? AND due_date IS NOT NULL AND due_date < ?", models.InvoiceStatusSent, now).
		Find(&invoices).Error
	return invoices, err
}

// CreateWebhookIfNotExists inserts the webhook unless its event ID was seen
// before, and returns the stored row either way.
func (r *gormRepository) CreateWebhookIfNotExists(hook *models.PaystackWebhook) (bool, *models.PaystackWebhook, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "paystack_event_id"}},
		DoNothing: true,
	}).Create(hook)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.PaystackWebhook
	if err := r.db.Where("paystack_event_id = ?", hook.PaystackEventID).
		First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

func (r *gormRepository) GetWebhook(id uint) (*models.PaystackWebhook, error) {
	var hook models.PaystackWebhook
	if err := r.db.First(&hook, id).Error; err != nil {
		return nil, err
	}
	return &hook, nil
}

// FinishWebhook updates processing bookkeeping only; the stored payload is
// never touched.
func (r *gormRepository) FinishWebhook(id uint, status string, processingError string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"status":           status,
		"processed":        status == models.WebhookStatusProcessed,
		"processed_at":     &now,
		"processing_error": processingError,
	}
	return r.db.Model(&models.PaystackWebhook{}).Where("id = ?", id).Updates(updates).Error
}

func (r *gormRepository) CreatePayout(p *models.Payout) error {
	return r.db.Create(p).Error
}

func (r *gormRepository) GetPayout(id uint) (*models.Payout, error) {
	var p models.Payout
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// RecordPayoutAttempt bumps the attempt counter atomically together with the
// outcome columns, guarded on pending status, and returns the updated row.
func (r *gormRepository) RecordPayoutAttempt(id uint, updates map[string]interface{}) (*models.Payout, error) {
	updates["attempts"] = gorm.Expr("attempts + 1")
	tx := r.db.Model(&models.Payout{}).
		Where("id = ? AND status = ?", id, models.PayoutStatusPending).
		Updates(updates)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrPayoutNotPending
	}
	return r.GetPayout(id)
}

func (r *gormRepository) SettlePendingCommissions(referralLinkID uint, paidAt time.Time) (int64, error) {
	tx := r.db.Model(&models.AffiliateCommission{}).
		Where("referral_link_id = ? AND status = ?", referralLinkID, models.CommissionStatusPending).
		Updates(map[string]interface{}{
			"status":  models.CommissionStatusPaid,
			"paid_at": &paidAt,
		})
	return tx.RowsAffected, tx.Error
}
