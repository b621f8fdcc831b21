package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	OrgRoleOwner  = "owner"
	OrgRoleMember = "member"
)

// Organization is a corporate or team account grouping multiple users.
type Organization struct {
	ID           uint                     `gorm:"primaryKey" json:"id"`
	Name         string                   `gorm:"type:varchar(255);not null" json:"name" validate:"required,max=255"`
	Slug         string                   `gorm:"uniqueIndex;type:varchar(255)" json:"slug"`
	Description  string                   `gorm:"type:text" json:"description"`
	ContactEmail string                   `gorm:"type:varchar(200)" json:"contact_email" validate:"omitempty,email"`
	ContactPhone string                   `gorm:"type:varchar(20)" json:"contact_phone" validate:"max=20"`
	IsActive     bool                     `gorm:"default:true;index" json:"is_active"`
	Memberships  []OrganizationMembership `gorm:"foreignKey:OrganizationID" json:"memberships,omitempty" validate:"-"`
	CreatedAt    time.Time                `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt    time.Time                `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt           `gorm:"index" json:"-"`
}

// BeforeCreate derives the slug from the name when not set explicitly.
func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.Slug == "" {
		o.Slug = Slugify(o.Name)
	}
	return nil
}

// OrganizationMembership records the role of a user within an organization.
// A user can belong to an organization at most once.
type OrganizationMembership struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	UserID         uint         `gorm:"not null;uniqueIndex:ux_org_memberships_user_org,priority:1" json:"user_id"`
	OrganizationID uint         `gorm:"not null;uniqueIndex:ux_org_memberships_user_org,priority:2;index:idx_org_memberships_org_role,priority:1" json:"organization_id"`
	Role           string       `gorm:"type:varchar(10);not null;index:idx_org_memberships_org_role,priority:2" json:"role" validate:"oneof=owner member"`
	User           User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty" validate:"-"`
	Organization   Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	CreatedAt      time.Time    `gorm:"autoCreateTime" json:"date_joined"`
	UpdatedAt      time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}
