package billing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/DonaldEOgbame/subscription-platform/app/models"
)

// Service is the financial ledger: payment transactions, invoices, webhook
// ingestion, payouts and affiliate commissions. Every write either fully
// lands or fully aborts.
type Service struct {
	repo Repository
}

// NewService creates a billing service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceFromDB creates a billing service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// RecordCharge writes a charge to the ledger. The reference is the
// idempotency key: a replayed reference fails with ErrDuplicateReference.
// When a referral code rode along with the checkout, the affiliate
// commission is created in the same transaction.
func (s *Service) RecordCharge(ctx context.Context, in ChargeInput) (*models.PaymentTransaction, error) {
	in.Type = models.TransactionTypeCharge
	return s.record(ctx, in)
}

// RecordRefund writes a refund to the ledger.
func (s *Service) RecordRefund(ctx context.Context, in ChargeInput) (*models.PaymentTransaction, error) {
	in.Type = models.TransactionTypeRefund
	in.ReferralCode = ""
	return s.record(ctx, in)
}

// RecordTransfer writes an outbound transfer to the ledger.
func (s *Service) RecordTransfer(ctx context.Context, in ChargeInput) (*models.PaymentTransaction, error) {
	in.Type = models.TransactionTypeTransfer
	in.ReferralCode = ""
	return s.record(ctx, in)
}

func (s *Service) record(ctx context.Context, in ChargeInput) (*models.PaymentTransaction, error) {
	_ = ctx
	reference := strings.TrimSpace(in.Reference)
	if in.UserID == 0 || reference == "" {
		return nil, errors.New("user_id and reference are required")
	}

	currency := in.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}

	txn := &models.PaymentTransaction{
		UserID:         in.UserID,
		EventID:        in.EventID,
		SubscriptionID: in.SubscriptionID,
		TicketID:       in.TicketID,
		Amount:         in.Amount,
		Currency:       currency,
		Reference:      reference,
		Status:         in.Status,
		Type:           in.Type,
		Metadata:       in.Metadata,
		IPAddress:      in.IPAddress,
		UserAgent:      in.UserAgent,
		RawResponse:    in.RawResponse,
	}
	if txn.TargetCount() > 1 {
		return nil, ErrAmbiguousTarget
	}

	var linkID *uint
	var commission *models.AffiliateCommission
	if code := strings.TrimSpace(in.ReferralCode); code != "" {
		link, err := s.repo.GetReferralLinkByCode(code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrReferralNotFound
			}
			return nil, err
		}
		linkID = &link.ID
		commission = &models.AffiliateCommission{
			Amount: link.Commission(txn.Amount),
			Status: models.CommissionStatusPending,
		}
	}

	if err := s.repo.CreateTransaction(txn, linkID, commission); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateReference
		}
		return nil, err
	}
	return txn, nil
}

// GetByReference looks up a ledger row by its gateway reference.
func (s *Service) GetByReference(ctx context.Context, reference string) (*models.PaymentTransaction, error) {
	_ = ctx
	return s.repo.GetTransactionByReference(strings.TrimSpace(reference))
}

// GenerateInvoice creates an invoice for a subscription renewal or payment.
// Tax is derived from the platform default tax rate and the amount columns
// always satisfy total = subtotal + tax. The invoice number comes from the
// monotone platform sequence.
func (s *Service) GenerateInvoice(ctx context.Context, in InvoiceInput) (*models.Invoice, error) {
	_ = ctx
	if in.UserID == 0 {
		return nil, errors.New("user_id is required")
	}
	if in.Subtotal.IsNegative() {
		return nil, errors.New("subtotal must not be negative")
	}

	settings, err := s.repo.GetSettings()
	if err != nil {
		return nil, err
	}

	tax := in.Subtotal.Mul(settings.DefaultTaxRate).DivRound(decimalHundred, 2)
	now := time.Now()
	dueDate := in.DueDate
	if dueDate == nil && settings.GracePeriodDays > 0 {
		due := now.AddDate(0, 0, int(settings.GracePeriodDays))
		dueDate = &due
	}

	inv := &models.Invoice{
		UserID:         in.UserID,
		SubscriptionID: in.SubscriptionID,
		PaymentID:      in.PaymentID,
		IssueDate:      now,
		DueDate:        dueDate,
		Status:         models.InvoiceStatusDraft,
		Subtotal:       in.Subtotal,
		TaxAmount:      tax,
		TotalAmount:    in.Subtotal.Add(tax),
		Metadata:       in.Metadata,
	}

	if err := s.repo.CreateInvoice(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// MarkInvoiceSent moves a draft invoice to sent.
func (s *Service) MarkInvoiceSent(ctx context.Context, id uint) (*models.Invoice, error) {
	return s.transitionInvoice(ctx, id,
		[]string{models.InvoiceStatusDraft},
		map[string]interface{}{"status": models.InvoiceStatusSent})
}

// MarkInvoicePaid settles an open invoice.
func (s *Service) MarkInvoicePaid(ctx context.Context, id uint) (*models.Invoice, error) {
	return s.transitionInvoice(ctx, id,
		[]string{models.InvoiceStatusDraft, models.InvoiceStatusSent, models.InvoiceStatusOverdue},
		map[string]interface{}{"status": models.InvoiceStatusPaid})
}

// MarkInvoiceOverdue flags a sent invoice past its due date.
func (s *Service) MarkInvoiceOverdue(ctx context.Context, id uint) (*models.Invoice, error) {
	return s.transitionInvoice(ctx, id,
		[]string{models.InvoiceStatusSent},
		map[string]interface{}{"status": models.InvoiceStatusOverdue})
}

// CancelInvoice voids an invoice that has not been paid.
func (s *Service) CancelInvoice(ctx context.Context, id uint) (*models.Invoice, error) {
	return s.transitionInvoice(ctx, id,
		[]string{models.InvoiceStatusDraft, models.InvoiceStatusSent, models.InvoiceStatusOverdue},
		map[string]interface{}{"status": models.InvoiceStatusCanceled})
}

// SweepOverdue flags all sent invoices past their due date as overdue and
// returns the flagged invoices for downstream reminder delivery. Callers run
// this from their own scheduler.
func (s *Service) SweepOverdue(ctx context.Context, now time.Time) ([]models.Invoice, error) {
	due, err := s.repo.ListInvoicesPastDue(now)
	if err != nil {
		return nil, err
	}

	flagged := make([]models.Invoice, 0, len(due))
	for i := range due {
		inv, err := s.MarkInvoiceOverdue(ctx, due[i].ID)
		if err != nil {
			// another worker got there first
			if errors.Is(err, ErrInvalidInvoiceStatus) {
				continue
			}
			return flagged, err
		}
		flagged = append(flagged, *inv)
	}
	return flagged, nil
}

func (s *Service) transitionInvoice(ctx context.Context, id uint, from []string, updates map[string]interface{}) (*models.Invoice, error) {
	_ = ctx
	ok, err := s.repo.TransitionInvoiceStatus(id, from, updates)
	if err != nil {
		return nil, err
	}
	if !ok {
		if _, err := s.repo.GetInvoice(id); err != nil {
			return nil, err
		}
		return nil, ErrInvalidInvoiceStatus
	}
	return s.repo.GetInvoice(id)
}

// IngestWebhook stores an inbound gateway event verbatim before any
// interpretation. Retried deliveries of the same gateway event ID (or, when
// the gateway omits one, the same payload) collapse onto the existing row.
// The boolean reports whether a new row was created.
func (s *Service) IngestWebhook(ctx context.Context, in WebhookInput) (bool, *models.PaystackWebhook, error) {
	_ = ctx
	if in.Event == "" {
		return false, nil, errors.New("event type is required")
	}

	eventID := strings.TrimSpace(in.EventID)
	if eventID == "" {
		sum := sha256.Sum256(in.Payload)
		eventID = "hash:" + hex.EncodeToString(sum[:])
	}

	hook := &models.PaystackWebhook{
		Event:           in.Event,
		PaystackEventID: eventID,
		Payload:         in.Payload,
		Status:          models.WebhookStatusPending,
	}
	created, stored, err := s.repo.CreateWebhookIfNotExists(hook)
	if err != nil {
		return false, nil, err
	}
	if !created {
		log.WithField("paystack_event_id", eventID).Debug("duplicate webhook delivery ignored")
	}
	return created, stored, nil
}

// MarkWebhookProcessed finishes a webhook. A nil processing error marks the
// row processed; otherwise it goes to failed and stays retryable. The stored
// payload is never modified.
func (s *Service) MarkWebhookProcessed(ctx context.Context, id uint, processingErr error) (*models.PaystackWebhook, error) {
	_ = ctx
	status := models.WebhookStatusProcessed
	errMsg := ""
	if processingErr != nil {
		status = models.WebhookStatusFailed
		errMsg = processingErr.Error()
	}
	if err := s.repo.FinishWebhook(id, status, errMsg); err != nil {
		return nil, err
	}
	return s.repo.GetWebhook(id)
}
