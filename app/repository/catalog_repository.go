package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/DonaldEOgbame/subscription-platform/app/models"
	"github.com/DonaldEOgbame/subscription-platform/internal/pkg/shortener"
)

// Length of generated ticket QR code slugs.
const qrCodeLength = 24

// catalogRepository implements the CatalogRepository interface
type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository instance
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// -- Service plans --

func (r *catalogRepository) CreatePlan(plan *models.ServicePlan) error {
	if err := plan.Validate(); err != nil {
		return err
	}
	plan.IsActive = true
	return r.db.Create(plan).Error
}

func (r *catalogRepository) GetPlan(id uint) (*models.ServicePlan, error) {
	var plan models.ServicePlan
	if err := r.db.First(&plan, id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *catalogRepository) GetPlanBySlug(slug string) (*models.ServicePlan, error) {
	var plan models.ServicePlan
	if err := r.db.Where("slug = ?", slug).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListPlansByProvider returns active plans only
func (r *catalogRepository) ListPlansByProvider(providerID uint) ([]models.ServicePlan, error) {
	var plans []models.ServicePlan
	err := r.db.Where("provider_id = ? AND is_active = ?", providerID, true).Find(&plans).Error
	return plans, err
}

func (r *catalogRepository) SavePlan(plan *models.ServicePlan) error {
	return r.db.Save(plan).Error
}

// DeletePlan soft-deletes a plan unless subscriptions still reference it.
// Plans with subscription history are protected for audit integrity.
func (r *catalogRepository) DeletePlan(id uint) error {
	var count int64
	if err := r.db.Model(&models.Subscription{}).Where("plan_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrProtectedRecord
	}
	return r.db.Delete(&models.ServicePlan{}, id).Error
}

// -- Availability slots --

func (r *catalogRepository) CreateSlot(slot *models.AvailabilitySlot) error {
	slot.IsActive = true
	return r.db.Create(slot).Error
}

func (r *catalogRepository) ListSlots(providerID uint, from, to time.Time) ([]models.AvailabilitySlot, error) {
	var slots []models.AvailabilitySlot
	err := r.db.
		Where("provider_id = ? AND is_active = ? AND start_time >= ? AND start_time < ?", providerID, true, from, to).
		Order("start_time").Find(&slots).Error
	return slots, err
}

// -- Bundles --

func (r *catalogRepository) CreateBundle(bundle *models.Bundle) error {
	bundle.IsActive = true
	return r.db.Create(bundle).Error
}

func (r *catalogRepository) GetBundleBySlug(slug string) (*models.Bundle, error) {
	var bundle models.Bundle
	err := r.db.Preload("Plans").Preload("Events").Where("slug = ?", slug).First(&bundle).Error
	if err != nil {
		return nil, err
	}
	return &bundle, nil
}

func (r *catalogRepository) ListBundles(offset, limit int) ([]models.Bundle, error) {
	var bundles []models.Bundle
	err := r.db.Where("is_active = ?", true).
		Offset(offset).Limit(limit).Order("created_at DESC").Find(&bundles).Error
	return bundles, err
}

// -- Events & tiers --

func (r *catalogRepository) CreateEvent(event *models.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}
	event.IsActive = true
	return r.db.Create(event).Error
}

func (r *catalogRepository) GetEvent(id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *catalogRepository) GetEventBySlug(slug string) (*models.Event, error) {
	var event models.Event
	if err := r.db.Where("slug = ?", slug).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *catalogRepository) ListEventsByProvider(providerID uint) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Where("provider_id = ? AND is_active = ?", providerID, true).Find(&events).Error
	return events, err
}

func (r *catalogRepository) ListUpcomingEvents(after time.Time, limit int) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Where("is_active = ? AND start_time > ?", true, after).
		Order("start_time").Limit(limit).Find(&events).Error
	return events, err
}

// DeleteEvent soft-deletes an event unless payments still reference it.
func (r *catalogRepository) DeleteEvent(id uint) error {
	var count int64
	if err := r.db.Model(&models.PaymentTransaction{}).Where("event_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrProtectedRecord
	}
	return r.db.Delete(&models.Event{}, id).Error
}

func (r *catalogRepository) CreateTier(tier *models.TicketTier) error {
	tier.IsActive = true
	return r.db.Create(tier).Error
}

func (r *catalogRepository) GetTier(id uint) (*models.TicketTier, error) {
	var tier models.TicketTier
	if err := r.db.First(&tier, id).Error; err != nil {
		return nil, err
	}
	return &tier, nil
}

func (r *catalogRepository) ListTiers(eventID uint) ([]models.TicketTier, error) {
	var tiers []models.TicketTier
	err := r.db.Where("event_id = ? AND is_active = ?", eventID, true).Find(&tiers).Error
	return tiers, err
}

// -- Tickets --

// IssueTicket persists a ticket, generating the QR code slug when unset.
// The ticket UUID is assigned by the model hook.
func (r *catalogRepository) IssueTicket(ticket *models.Ticket) error {
	if ticket.QRCode == "" {
		qr, err := shortener.GenerateSecureSlug(qrCodeLength)
		if err != nil {
			return err
		}
		ticket.QRCode = qr
	}
	if ticket.Status == "" {
		ticket.Status = models.TicketStatusIssued
	}
	ticket.IsActive = true
	return r.db.Create(ticket).Error
}

func (r *catalogRepository) GetTicketByUUID(ticketUUID string) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.db.Where("ticket_uuid = ?", ticketUUID).First(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// GetTicketBySerial resolves the compact serial printed on the ticket.
func (r *catalogRepository) GetTicketBySerial(serial string) (*models.Ticket, error) {
	id, err := shortener.DecodeID(serial)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	var ticket models.Ticket
	if err := r.db.First(&ticket, id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *catalogRepository) SaveTicket(ticket *models.Ticket) error {
	return r.db.Save(ticket).Error
}

func (r *catalogRepository) CountTicketsByTier(tierID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Ticket{}).
		Where("tier_id = ? AND status IN ?", tierID, []string{models.TicketStatusIssued, models.TicketStatusCheckedIn}).
		Count(&count).Error
	return count, err
}

// -- Waitlist --

// JoinWaitlist appends a subscriber at the tail of an event's waitlist.
// The position is derived inside the transaction so concurrent joins get
// distinct positions; a repeated join hits the unique pair index.
func (r *catalogRepository) JoinWaitlist(eventID, subscriberID uint) (*models.WaitlistEntry, error) {
	var entry *models.WaitlistEntry
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var maxPos int64
		row := tx.Model(&models.WaitlistEntry{}).
			Where("event_id = ?", eventID).
			Select("COALESCE(MAX(position), 0)").Row()
		if err := row.Scan(&maxPos); err != nil {
			return err
		}

		entry = &models.WaitlistEntry{
			EventID:      eventID,
			SubscriberID: subscriberID,
			Position:     uint(maxPos) + 1,
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *catalogRepository) NextOnWaitlist(eventID uint) (*models.WaitlistEntry, error) {
	var entry models.WaitlistEntry
	err := r.db.Where("event_id = ? AND notified = ?", eventID, false).
		Order("position").First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *catalogRepository) MarkWaitlistNotified(id uint) error {
	return r.db.Model(&models.WaitlistEntry{}).Where("id = ?", id).
		UpdateColumn("notified", true).Error
}
