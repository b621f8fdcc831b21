package repository

import (
	"gorm.io/gorm"

	"github.com/DonaldEOgbame/subscription-platform/app/models"
)

// organizationRepository implements the OrganizationRepository interface
type organizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new organization repository instance
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) Create(org *models.Organization) error {
	org.IsActive = true
	return r.db.Create(org).Error
}

func (r *organizationRepository) GetByID(id uint) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) GetBySlug(slug string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.Where("slug = ?", slug).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) Update(org *models.Organization) error {
	return r.db.Save(org).Error
}

// Delete soft-deletes an organization
func (r *organizationRepository) Delete(id uint) error {
	return r.db.Delete(&models.Organization{}, id).Error
}

// List returns active organizations only
func (r *organizationRepository) List(offset, limit int) ([]models.Organization, error) {
	var orgs []models.Organization
	err := r.db.Where("is_active = ?", true).
		Offset(offset).Limit(limit).Order("created_at DESC").Find(&orgs).Error
	return orgs, err
}

// AddMember joins a user to an organization. The (user, organization) pair
// is unique; joining twice surfaces gorm.ErrDuplicatedKey.
func (r *organizationRepository) AddMember(orgID, userID uint, role string) (*models.OrganizationMembership, error) {
	m := &models.OrganizationMembership{
		OrganizationID: orgID,
		UserID:         userID,
		Role:           role,
	}
	if err := r.db.Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (r *organizationRepository) RemoveMember(orgID, userID uint) error {
	return r.db.Where("organization_id = ? AND user_id = ?", orgID, userID).
		Delete(&models.OrganizationMembership{}).Error
}

func (r *organizationRepository) ListMembers(orgID uint) ([]models.OrganizationMembership, error) {
	var members []models.OrganizationMembership
	err := r.db.Where("organization_id = ?", orgID).Preload("User").Find(&members).Error
	return members, err
}
