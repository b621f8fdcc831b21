package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscriber is the consumer-side profile attached one-to-one to a User.
type Subscriber struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"not null;uniqueIndex" json:"user_id"`
	User          User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty" validate:"-"`
	LoyaltyPoints int64          `gorm:"default:0" json:"loyalty_points"`
	DateOfBirth   *time.Time     `gorm:"type:date;default:null" json:"date_of_birth,omitempty"`
	Gender        string         `gorm:"type:varchar(20)" json:"gender"`
	Address       string         `gorm:"type:text" json:"address"`
	PhoneNumber   string         `gorm:"type:varchar(20)" json:"phone_number"`
	IsActive      bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
