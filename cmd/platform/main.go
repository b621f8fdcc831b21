package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/DonaldEOgbame/subscription-platform/app/models"
	"github.com/DonaldEOgbame/subscription-platform/app/repository"
	"github.com/DonaldEOgbame/subscription-platform/internal/pkg/billing"
	"github.com/DonaldEOgbame/subscription-platform/internal/pkg/cache"
	"github.com/DonaldEOgbame/subscription-platform/internal/pkg/database"
	"github.com/DonaldEOgbame/subscription-platform/internal/pkg/env"
	"github.com/DonaldEOgbame/subscription-platform/internal/pkg/mail"
	"github.com/DonaldEOgbame/subscription-platform/internal/pkg/subscription"
)

// sweepInterval controls how often lapsed subscriptions and overdue invoices
// are swept.
const sweepInterval = 15 * time.Minute

func main() {
	env.SetupEnvFile()

	if env.IsDev() {
		log.SetLevel(log.DebugLevel)
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	database.SetupDatabase()
	cache.SetupCache()

	db := database.GetDB()

	if _, err := models.LoadPlatformSettings(db); err != nil {
		log.Fatalf("failed to load platform settings: %v", err)
	}

	repository.InitializeFactory(db)

	subs := subscription.NewServiceFromDB(db)
	ledger := billing.NewServiceFromDB(db)
	mailer := mail.NewFromEnv()
	users := repository.GetGlobalFactory().GetUserRepository()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	log.Info("platform started")

	for {
		select {
		case <-ticker.C:
			runSweeps(subs, ledger, mailer, users)
		case sig := <-stop:
			log.Infof("received %s, shutting down", sig)
			if err := cache.Close(); err != nil {
				log.Warnf("cache close: %v", err)
			}
			return
		}
	}
}

func runSweeps(subs *subscription.Service, ledger *billing.Service, mailer *mail.Mailer, users repository.UserRepository) {
	ctx := context.Background()
	now := time.Now()

	n, err := subs.ExpireDue(ctx, now)
	if err != nil {
		log.Errorf("expiry sweep failed: %v", err)
	} else if n > 0 {
		log.Infof("expiry sweep closed %d subscriptions", n)
	}

	overdue, err := ledger.SweepOverdue(ctx, now)
	if err != nil {
		log.Errorf("overdue sweep failed: %v", err)
		return
	}

	settings := models.GetPlatformSettings()
	for i := range overdue {
		inv := &overdue[i]
		log.WithField("invoice_number", inv.InvoiceNumber).Info("invoice flagged overdue")

		if settings.EmailReminderTemplate == "" {
			continue
		}
		user, err := users.GetByID(inv.UserID)
		if err != nil {
			log.Errorf("reminder lookup for invoice %s failed: %v", inv.InvoiceNumber, err)
			continue
		}
		if err := mailer.SendReminder(user.Email, "Payment reminder: "+inv.InvoiceNumber,
			settings.EmailReminderTemplate, inv); err != nil {
			log.Errorf("reminder mail for invoice %s failed: %v", inv.InvoiceNumber, err)
		}
	}
}
