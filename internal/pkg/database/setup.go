package database

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/DonaldEOgbame/subscription-platform/app/models"
	"github.com/DonaldEOgbame/subscription-platform/internal/pkg/env"
)

const maxRetries = 5
const retryDelay = 5 * time.Second

var DB *gorm.DB

// SetupDatabase connects to MySQL using env configuration and migrates the
// schema. When DB_HOST is unset it falls back to an on-disk SQLite database
// for local development. Panics when no connection can be established.
func SetupDatabase() {
	var err error

	if env.GetEnv("DB_HOST", "") == "" {
		log.Info("DB_HOST not set, using SQLite for development")
		DB, err = gorm.Open(sqlite.Open("platform.db"), gormConfig())
		if err != nil {
			panic(err)
		}
		if err := AutoMigrate(DB); err != nil {
			panic(err)
		}
		return
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		env.GetEnv("DB_USER", ""),
		env.GetEnv("DB_PASSWORD", ""),
		env.GetEnv("DB_HOST", "127.0.0.1"),
		env.GetEnv("DB_PORT", "3306"),
		env.GetEnv("DB_NAME", ""),
	)

	for i := 0; i < maxRetries; i++ {
		DB, err = gorm.Open(mysql.New(mysql.Config{
			DSN:                      dsn,
			DefaultStringSize:        256,
			DisableDatetimePrecision: true,
		}), gormConfig())
		if err == nil {
			if err := AutoMigrate(DB); err != nil {
				panic(err)
			}
			return
		}

		log.Warnf("Failed to connect to database (try %d/%d): %v", i+1, maxRetries, err)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	if err != nil {
		panic(err)
	}
}

// gormConfig enables error translation so unique-key and foreign-key
// violations surface as gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated
// regardless of driver.
func gormConfig() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}

// AutoMigrate creates or updates the tables for every platform entity.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.OrganizationMembership{},
		&models.PlatformSettings{},
		&models.ServiceProvider{},
		&models.Subscriber{},
		&models.ServicePlan{},
		&models.AvailabilitySlot{},
		&models.Subscription{},
		&models.UsageRecord{},
		&models.Event{},
		&models.TicketTier{},
		&models.Ticket{},
		&models.WaitlistEntry{},
		&models.PaymentTransaction{},
		&models.Invoice{},
		&models.InvoiceSequence{},
		&models.PaystackWebhook{},
		&models.Coupon{},
		&models.Bundle{},
		&models.LoyaltyTransaction{},
		&models.ReferralLink{},
		&models.AffiliateCommission{},
		&models.Payout{},
		&models.CalendarSync{},
		&models.DailyMetric{},
	)
}

// GetDB returns the global database handle.
func GetDB() *gorm.DB {
	return DB
}
