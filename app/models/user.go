package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	RoleProvider   = "provider"
	RoleSubscriber = "subscriber"
	RoleAdmin      = "admin"
)

// User is the platform account shared by providers, subscribers and admins.
// Role-specific attributes live on ServiceProvider and Subscriber profiles.
type User struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Username        string         `gorm:"uniqueIndex;type:varchar(150)" json:"username" validate:"required,min=3,max=150"`
	Email           string         `gorm:"uniqueIndex;type:varchar(200)" json:"email" validate:"required,email,min=5,max=200"`
	Password        string         `gorm:"type:text" json:"-" validate:"required,min=6"`
	FirstName       string         `gorm:"type:varchar(150)" json:"first_name" validate:"max=150"`
	LastName        string         `gorm:"type:varchar(150)" json:"last_name" validate:"max=150"`
	Role            string         `gorm:"type:varchar(20);index" json:"role" validate:"required,oneof=provider subscriber admin"`
	PhoneNumber     string         `gorm:"type:varchar(20)" json:"phone_number" validate:"max=20"`
	ProfileImageURL string         `gorm:"type:varchar(255)" json:"profile_image_url" validate:"max=255"`
	IsVerified      bool           `gorm:"default:false" json:"is_verified"`
	LastLoginIP     string         `gorm:"type:varchar(45)" json:"-"`
	LastLoginAt     *time.Time     `gorm:"type:timestamp;default:null" json:"last_login_at"`
	CreatedAt       time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

// CreateUser builds a validated user with a hashed password. Validation runs
// against the raw password; the stored hash would always satisfy the length
// rule.
func CreateUser(username, email, password, role string) (*User, error) {
	u := &User{
		Username: username,
		Email:    email,
		Password: password,
		Role:     role,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}

	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// CheckPassword verifies if the provided password matches the user's stored password
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.Password)
}

// SetPassword hashes and sets a new password for the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hashedPassword
	return nil
}

// IsProvider reports whether the user holds the provider role.
func (u *User) IsProvider() bool {
	return u.Role == RoleProvider
}

// IsSubscriber reports whether the user holds the subscriber role.
func (u *User) IsSubscriber() bool {
	return u.Role == RoleSubscriber
}

// RecordLogin stores the last login time and source IP.
func (u *User) RecordLogin(ip string) {
	now := time.Now()
	u.LastLoginAt = &now
	u.LastLoginIP = ip
}
