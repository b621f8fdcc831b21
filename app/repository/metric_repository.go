package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/DonaldEOgbame/subscription-platform/app/models"
)

// metricRepository implements the MetricRepository interface
type metricRepository struct {
	db *gorm.DB
}

// NewMetricRepository creates a new metric repository instance
func NewMetricRepository(db *gorm.DB) MetricRepository {
	return &metricRepository{db: db}
}

// UpsertDailyMetric writes the snapshot for its date, replacing an existing
// row so reruns of the analytics job stay idempotent.
func (r *metricRepository) UpsertDailyMetric(m *models.DailyMetric) error {
	m.Date = truncateToDay(m.Date)
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_mrr", "churn_count", "new_signups", "mrr_delta",
			"new_revenue", "churned_revenue", "active_subscribers",
			"snapshot_data", "updated_at",
		}),
	}).Create(m).Error
}

func (r *metricRepository) GetDailyMetric(date time.Time) (*models.DailyMetric, error) {
	var m models.DailyMetric
	if err := r.db.Where("date = ?", truncateToDay(date)).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *metricRepository) RangeDailyMetrics(start, end time.Time) ([]models.DailyMetric, error) {
	var metrics []models.DailyMetric
	err := r.db.Where("date >= ? AND date <= ?", truncateToDay(start), truncateToDay(end)).
		Order("date").Find(&metrics).Error
	return metrics, err
}

// RecordUsage increments the day's counters for a subscription, creating the
// row on first use. The increments run as a single guarded update so
// concurrent recorders never lose counts.
func (r *metricRepository) RecordUsage(subscriptionID uint, date time.Time, sessions, downloads, apiCalls int) error {
	day := truncateToDay(date)
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.UsageRecord{}).
			Where("subscription_id = ? AND date = ?", subscriptionID, day).
			UpdateColumns(map[string]interface{}{
				"sessions_used": gorm.Expr("sessions_used + ?", sessions),
				"downloads":     gorm.Expr("downloads + ?", downloads),
				"api_calls":     gorm.Expr("api_calls + ?", apiCalls),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		return tx.Create(&models.UsageRecord{
			SubscriptionID: subscriptionID,
			Date:           day,
			SessionsUsed:   sessions,
			Downloads:      downloads,
			APICalls:       apiCalls,
		}).Error
	})
}

func (r *metricRepository) GetUsage(subscriptionID uint, date time.Time) (*models.UsageRecord, error) {
	var record models.UsageRecord
	err := r.db.Where("subscription_id = ? AND date = ?", subscriptionID, truncateToDay(date)).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
