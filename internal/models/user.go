package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleBusinessPerson  UserRole = "business_person"
	RoleInvestor        UserRole = "investor"
	RoleBanker          UserRole = "banker"
	RoleBusinessAdvisor UserRole = "business_advisor"
	RoleAdmin           UserRole = "admin"
)

// ValidRole reports whether role is one of the signup-selectable roles.
func ValidRole(role UserRole) bool {
	switch role {
	case RoleBusinessPerson, RoleInvestor, RoleBanker, RoleBusinessAdvisor:
		return true
	}
	return false
}

type User struct {
	ID             uint     `gorm:"primarykey" json:"id"`
	FullName       string   `gorm:"not null" json:"full_name"`
	Email          string   `gorm:"uniqueIndex;not null" json:"email"`
	Phone          string   `gorm:"not null" json:"phone"`
	Password       string   `gorm:"not null" json:"-"`
	Role           UserRole `gorm:"type:varchar(20);not null;index" json:"role"`
	Avatar         string   `gorm:"type:text" json:"avatar,omitempty"`
	AvatarPublicID string   `gorm:"type:text" json:"avatar_public_id,omitempty"`

	// Profile holds the role-specific profile document as JSON. Its shape
	// is dispatched by Role.
	Profile    string `gorm:"type:json" json:"profile,omitempty"`
	IsComplete bool   `gorm:"default:false" json:"is_complete"`

	// FCMToken is the device token push notifications are delivered to.
	// Empty means the user never registered a device.
	FCMToken string `gorm:"type:text" json:"-"`

	IsEmailVerified bool `gorm:"default:false" json:"is_email_verified"`

	OTP       string         `gorm:"index" json:"-"`
	OTPExpiry *time.Time     `json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin checks if user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type PendingUser struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	FullName  string    `gorm:"not null" json:"full_name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string    `gorm:"not null" json:"phone"`
	Password  string    `gorm:"not null" json:"-"`
	Role      UserRole  `gorm:"type:varchar(20);not null" json:"role"`
	OTP       string    `gorm:"not null" json:"-"`
	OTPExpiry time.Time `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (PendingUser) TableName() string {
	return "pending_users"
}
