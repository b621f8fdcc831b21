package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Event is a one-off or recurring offering sold through ticket tiers.
// Events referenced by tiers or payments are protected from deletion.
type Event struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	ProviderID     uint             `gorm:"not null;index:idx_events_provider_start,priority:1" json:"provider_id"`
	Provider       ServiceProvider  `gorm:"foreignKey:ProviderID;constraint:OnDelete:RESTRICT" json:"provider,omitempty" validate:"-"`
	Name           string           `gorm:"type:varchar(255);not null" json:"name" validate:"required,max=255"`
	Slug           string           `gorm:"uniqueIndex;type:varchar(255)" json:"slug"`
	Description    string           `gorm:"type:text" json:"description" validate:"required"`
	ImageURL       string           `gorm:"type:varchar(255)" json:"image_url" validate:"max=255"`
	LocationName   string           `gorm:"type:varchar(255)" json:"location_name" validate:"max=255"`
	Address        string           `gorm:"type:text" json:"address"`
	City           string           `gorm:"type:varchar(100)" json:"city" validate:"max=100"`
	State          string           `gorm:"type:varchar(100)" json:"state" validate:"max=100"`
	Country        string           `gorm:"type:varchar(100)" json:"country" validate:"max=100"`
	Latitude       *decimal.Decimal `gorm:"type:decimal(9,6);default:null" json:"latitude,omitempty"`
	Longitude      *decimal.Decimal `gorm:"type:decimal(9,6);default:null" json:"longitude,omitempty"`
	IsOnline       bool             `gorm:"default:false" json:"is_online"`
	OnlineURL      string           `gorm:"type:varchar(255)" json:"online_url" validate:"omitempty,url"`
	StartTime      time.Time        `gorm:"not null;index:idx_events_provider_start,priority:2" json:"start_time"`
	EndTime        time.Time        `gorm:"not null" json:"end_time"`
	IsRecurring    bool             `gorm:"default:false" json:"is_recurring"`
	RecurrenceRule string           `gorm:"type:varchar(255)" json:"recurrence_rule"`
	Capacity       uint             `gorm:"not null" json:"capacity" validate:"required"`
	MinAge         *uint            `gorm:"default:null" json:"min_age,omitempty"`
	MaxAge         *uint            `gorm:"default:null" json:"max_age,omitempty"`
	IsActive       bool             `gorm:"default:true;index" json:"is_active"`
	CreatedAt      time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (e *Event) Validate() error {
	v := validator.New()
	return v.Struct(e)
}

// BeforeCreate derives the slug from the event name when not set explicitly.
func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.Slug == "" {
		e.Slug = Slugify(e.Name)
	}
	return nil
}
