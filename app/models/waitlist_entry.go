package models

import "time"

// WaitlistEntry queues a subscriber for a fully-booked event. A subscriber
// appears on an event's waitlist at most once.
type WaitlistEntry struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	EventID      uint       `gorm:"not null;uniqueIndex:ux_waitlist_entries_event_subscriber,priority:1;index:idx_waitlist_entries_event_position,priority:1" json:"event_id"`
	Event        Event      `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	SubscriberID uint       `gorm:"not null;uniqueIndex:ux_waitlist_entries_event_subscriber,priority:2" json:"subscriber_id"`
	Subscriber   Subscriber `gorm:"foreignKey:SubscriberID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	Position     uint       `gorm:"not null;index:idx_waitlist_entries_event_position,priority:2" json:"position"`
	Notified     bool       `gorm:"default:false" json:"notified"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
