package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// DailyMetric is a per-day financial and engagement snapshot, one row per date.
type DailyMetric struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	Date              time.Time       `gorm:"type:date;uniqueIndex;not null" json:"date"`
	TotalMRR          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_mrr"`
	ChurnCount        uint            `gorm:"not null" json:"churn_count"`
	NewSignups        uint            `gorm:"not null" json:"new_signups"`
	MRRDelta          decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"mrr_delta"`
	NewRevenue        decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"new_revenue"`
	ChurnedRevenue    decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"churned_revenue"`
	ActiveSubscribers uint            `gorm:"default:0" json:"active_subscribers"`
	SnapshotData      json.RawMessage `gorm:"type:json" json:"snapshot_data,omitempty"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
