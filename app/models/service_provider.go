package models

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ServiceProvider is the provider-side profile attached one-to-one to a User.
type ServiceProvider struct {
	ID                    uint            `gorm:"primaryKey" json:"id"`
	UserID                uint            `gorm:"not null;uniqueIndex" json:"user_id"`
	User                  User            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty" validate:"-"`
	CompanyName           string          `gorm:"type:varchar(255)" json:"company_name" validate:"max=255"`
	Description           string          `gorm:"type:text" json:"description"`
	Rating                decimal.Decimal `gorm:"type:decimal(3,2);default:0" json:"rating"`
	RatingCount           uint            `gorm:"default:0" json:"rating_count"`
	VerificationStatus    bool            `gorm:"default:false" json:"verification_status"`
	VerificationDocuments json.RawMessage `gorm:"type:json" json:"verification_documents,omitempty"`
	Website               string          `gorm:"type:varchar(255)" json:"website" validate:"omitempty,url"`
	Address               string          `gorm:"type:text" json:"address"`
	SocialLinks           json.RawMessage `gorm:"type:json" json:"social_links,omitempty"`
	IsActive              bool            `gorm:"default:true;index" json:"is_active"`
	CreatedAt             time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt             gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (p *ServiceProvider) Validate() error {
	if p.Rating.IsNegative() || p.Rating.GreaterThan(decimal.NewFromInt(5)) {
		return ErrRatingOutOfRange
	}
	v := validator.New()
	return v.Struct(p)
}

// AddRating folds a new rating value into the running average.
func (p *ServiceProvider) AddRating(value decimal.Decimal) error {
	if value.IsNegative() || value.GreaterThan(decimal.NewFromInt(5)) {
		return ErrRatingOutOfRange
	}
	total := p.Rating.Mul(decimal.NewFromInt(int64(p.RatingCount))).Add(value)
	p.RatingCount++
	p.Rating = total.DivRound(decimal.NewFromInt(int64(p.RatingCount)), 2)
	return nil
}
