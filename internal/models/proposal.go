package models

import (
	"time"

	"gorm.io/gorm"
)

type ProposalStatus string

const (
	ProposalPending  ProposalStatus = "pending"
	ProposalAccepted ProposalStatus = "accepted"
)

// InvestmentProposal is a pending offer from an investor to fund a business
// idea at a given amount/equity split. The idea title, owner and investor
// contact info are denormalized at creation time; they are snapshots, not
// live references.
type InvestmentProposal struct {
	ID                 uint   `gorm:"primarykey" json:"id"`
	BusinessIdeaID     uint   `gorm:"not null;index" json:"business_idea_id"`
	BusinessIdeaTitle  string `gorm:"type:varchar(255);not null" json:"business_idea_title"`
	BusinessIdeaUserID uint   `gorm:"not null;index" json:"business_idea_user_id"`

	InvestorID   uint   `gorm:"not null;index" json:"investor_id"`
	InvestorName string `gorm:"type:varchar(255);not null" json:"investor_name"`

	// Contact snapshot, copied only when the investor's profile was
	// complete at creation time. Incomplete profiles never leak contact
	// fields into the proposal.
	InvestorEmail   string `gorm:"type:varchar(255)" json:"investor_email,omitempty"`
	InvestorProfile string `gorm:"type:json" json:"investor_profile,omitempty"`

	Amount  float64        `gorm:"not null" json:"amount"`
	Equity  float64        `gorm:"not null" json:"equity"`
	Message string         `gorm:"type:text" json:"message,omitempty"`
	Status  ProposalStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	AcceptedAt *time.Time     `json:"accepted_at,omitempty"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	BusinessIdea BusinessIdea `gorm:"foreignKey:BusinessIdeaID" json:"business_idea,omitempty"`
	Investor     User         `gorm:"foreignKey:InvestorID" json:"investor,omitempty"`
}

func (InvestmentProposal) TableName() string {
	return "investment_proposals"
}
