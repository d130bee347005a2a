package models

import (
	"time"

	"gorm.io/gorm"
)

type InvestmentStatus string

const (
	InvestmentActive    InvestmentStatus = "active"
	InvestmentCompleted InvestmentStatus = "completed"
	InvestmentWithdrawn InvestmentStatus = "withdrawn"
)

// Investment is the materialized outcome of an accepted proposal. It is
// created exactly once, seeded from the proposal, and diverges from it
// afterwards: CurrentValue and ROI are maintained by portfolio tooling
// outside the acceptance flow.
type Investment struct {
	ID                   uint   `gorm:"primarykey" json:"id"`
	BusinessIdeaID       uint   `gorm:"not null;index" json:"business_idea_id"`
	BusinessIdeaTitle    string `gorm:"type:varchar(255);not null" json:"business_idea_title"`
	BusinessIdeaCategory string `gorm:"type:varchar(100);not null;default:'General'" json:"business_idea_category"`

	BusinessPersonID uint   `gorm:"not null;index" json:"business_person_id"`
	InvestorID       uint   `gorm:"not null;index" json:"investor_id"`
	InvestorName     string `gorm:"type:varchar(255);not null" json:"investor_name"`

	Amount       float64 `gorm:"not null" json:"amount"`
	Equity       float64 `gorm:"not null" json:"equity"`
	CurrentValue float64 `gorm:"not null" json:"current_value"`
	ROI          float64 `gorm:"not null;default:0" json:"roi"`

	InvestmentDate time.Time        `gorm:"not null;index" json:"investment_date"`
	Status         InvestmentStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`

	Milestones []Milestone `gorm:"foreignKey:InvestmentID" json:"milestones"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Investment) TableName() string {
	return "investments"
}

type Milestone struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	InvestmentID uint       `gorm:"not null;index" json:"investment_id"`
	Title        string     `gorm:"type:varchar(255);not null" json:"title"`
	Completed    bool       `gorm:"default:false" json:"completed"`
	Date         *time.Time `json:"date,omitempty"`
	Position     int        `gorm:"not null;default:0" json:"position"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Milestone) TableName() string {
	return "milestones"
}
