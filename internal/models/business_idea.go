package models

import (
	"time"

	"gorm.io/gorm"
)

type BusinessIdeaStatus string

const (
	IdeaActive BusinessIdeaStatus = "active"
	IdeaClosed BusinessIdeaStatus = "closed"
)

type BusinessIdea struct {
	ID            uint               `gorm:"primarykey" json:"id"`
	UserID        uint               `gorm:"not null;index" json:"user_id"`
	Title         string             `gorm:"type:varchar(255);not null" json:"title"`
	Description   string             `gorm:"type:text;not null" json:"description"`
	Category      string             `gorm:"type:varchar(100)" json:"category"`
	FundingNeeded float64            `json:"funding_needed"`
	ImageURL      string             `gorm:"type:text" json:"image_url,omitempty"`
	ImagePublicID string             `gorm:"type:text" json:"image_public_id,omitempty"`
	Status        BusinessIdeaStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relations
	Owner User `gorm:"foreignKey:UserID" json:"owner,omitempty"`
}

func (BusinessIdea) TableName() string {
	return "business_ideas"
}
