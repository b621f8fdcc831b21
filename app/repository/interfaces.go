package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/DonaldEOgbame/subscription-platform/app/models"
)

// ErrProtectedRecord is returned when deleting a row that financial or
// historical records still reference.
var ErrProtectedRecord = errors.New("record is referenced by dependent rows")

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	ListByRole(role string, offset, limit int) ([]models.User, error)
	Count() (int64, error)
}

// ProfileRepository defines operations for provider/subscriber profiles and
// their calendar integrations.
type ProfileRepository interface {
	CreateProvider(p *models.ServiceProvider) error
	GetProvider(id uint) (*models.ServiceProvider, error)
	GetProviderByUserID(userID uint) (*models.ServiceProvider, error)
	SaveProvider(p *models.ServiceProvider) error
	ListProviders(offset, limit int) ([]models.ServiceProvider, error)

	CreateSubscriber(s *models.Subscriber) error
	GetSubscriber(id uint) (*models.Subscriber, error)
	GetSubscriberByUserID(userID uint) (*models.Subscriber, error)
	SaveSubscriber(s *models.Subscriber) error

	SaveCalendarSync(cs *models.CalendarSync) error
	ListCalendarSyncs(providerID uint) ([]models.CalendarSync, error)
}

// OrganizationRepository defines operations for organizations and memberships.
type OrganizationRepository interface {
	Create(org *models.Organization) error
	GetByID(id uint) (*models.Organization, error)
	GetBySlug(slug string) (*models.Organization, error)
	Update(org *models.Organization) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Organization, error)
	AddMember(orgID, userID uint, role string) (*models.OrganizationMembership, error)
	RemoveMember(orgID, userID uint) error
	ListMembers(orgID uint) ([]models.OrganizationMembership, error)
}

// CatalogRepository defines operations for the sellable offerings: plans,
// availability slots, bundles, events, ticket tiers, tickets and waitlists.
type CatalogRepository interface {
	CreatePlan(plan *models.ServicePlan) error
	GetPlan(id uint) (*models.ServicePlan, error)
	GetPlanBySlug(slug string) (*models.ServicePlan, error)
	ListPlansByProvider(providerID uint) ([]models.ServicePlan, error)
	SavePlan(plan *models.ServicePlan) error
	DeletePlan(id uint) error

	CreateSlot(slot *models.AvailabilitySlot) error
	ListSlots(providerID uint, from, to time.Time) ([]models.AvailabilitySlot, error)

	CreateBundle(bundle *models.Bundle) error
	GetBundleBySlug(slug string) (*models.Bundle, error)
	ListBundles(offset, limit int) ([]models.Bundle, error)

	CreateEvent(event *models.Event) error
	GetEvent(id uint) (*models.Event, error)
	GetEventBySlug(slug string) (*models.Event, error)
	ListEventsByProvider(providerID uint) ([]models.Event, error)
	ListUpcomingEvents(after time.Time, limit int) ([]models.Event, error)
	DeleteEvent(id uint) error

	CreateTier(tier *models.TicketTier) error
	GetTier(id uint) (*models.TicketTier, error)
	ListTiers(eventID uint) ([]models.TicketTier, error)

	IssueTicket(ticket *models.Ticket) error
	GetTicketByUUID(ticketUUID string) (*models.Ticket, error)
	GetTicketBySerial(serial string) (*models.Ticket, error)
	SaveTicket(ticket *models.Ticket) error
	CountTicketsByTier(tierID uint) (int64, error)

	JoinWaitlist(eventID, subscriberID uint) (*models.WaitlistEntry, error)
	NextOnWaitlist(eventID uint) (*models.WaitlistEntry, error)
	MarkWaitlistNotified(id uint) error
}

// SettingRepository defines the interface for the platform settings row.
type SettingRepository interface {
	Get() (*models.PlatformSettings, error)
	Save(settings *models.PlatformSettings) error
}

// MetricRepository defines operations for analytics snapshots and usage
// tracking.
type MetricRepository interface {
	UpsertDailyMetric(m *models.DailyMetric) error
	GetDailyMetric(date time.Time) (*models.DailyMetric, error)
	RangeDailyMetrics(start, end time.Time) ([]models.DailyMetric, error)
	RecordUsage(subscriptionID uint, date time.Time, sessions, downloads, apiCalls int) error
	GetUsage(subscriptionID uint, date time.Time) (*models.UsageRecord, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	Profile      ProfileRepository
	Organization OrganizationRepository
	Catalog      CatalogRepository
	Setting      SettingRepository
	Metric       MetricRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Profile:      NewProfileRepository(db),
		Organization: NewOrganizationRepository(db),
		Catalog:      NewCatalogRepository(db),
		Setting:      NewSettingRepository(db),
		Metric:       NewMetricRepository(db),
	}
}
