package models

import (
	"time"

	"gorm.io/gorm"
)

// AvailabilitySlot is a window of time during which a provider can be booked.
type AvailabilitySlot struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	ProviderID     uint            `gorm:"not null;index:idx_availability_slots_provider_start,priority:1" json:"provider_id"`
	Provider       ServiceProvider `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	StartTime      time.Time       `gorm:"not null;index:idx_availability_slots_provider_start,priority:2" json:"start_time"`
	EndTime        time.Time       `gorm:"not null" json:"end_time"`
	Capacity       uint            `gorm:"default:1" json:"capacity"`
	Deliverables   string          `gorm:"type:text" json:"deliverables"`
	RecurrenceRule string          `gorm:"type:varchar(255)" json:"recurrence_rule"`
	Timezone       string          `gorm:"type:varchar(50)" json:"timezone"`
	IsActive       bool            `gorm:"default:true;index" json:"is_active"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}
