package models

import (
	"time"

	"gorm.io/gorm"
)

// LoanProposal is the banker analog of an InvestmentProposal: an offer to
// lend against a business idea at a given rate and tenure. Same lifecycle,
// same denormalization rules.
type LoanProposal struct {
	ID                 uint   `gorm:"primarykey" json:"id"`
	BusinessIdeaID     uint   `gorm:"not null;index" json:"business_idea_id"`
	BusinessIdeaTitle  string `gorm:"type:varchar(255);not null" json:"business_idea_title"`
	BusinessIdeaUserID uint   `gorm:"not null;index" json:"business_idea_user_id"`

	BankerID   uint   `gorm:"not null;index" json:"banker_id"`
	BankerName string `gorm:"type:varchar(255);not null" json:"banker_name"`
	BankName   string `gorm:"type:varchar(255)" json:"bank_name,omitempty"`

	Amount       float64        `gorm:"not null" json:"amount"`
	InterestRate float64        `gorm:"not null" json:"interest_rate"`
	TenureMonths int            `gorm:"not null" json:"tenure_months"`
	Message      string         `gorm:"type:text" json:"message,omitempty"`
	Status       ProposalStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	AcceptedAt *time.Time     `json:"accepted_at,omitempty"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	BusinessIdea BusinessIdea `gorm:"foreignKey:BusinessIdeaID" json:"business_idea,omitempty"`
	Banker       User         `gorm:"foreignKey:BankerID" json:"banker,omitempty"`
}

func (LoanProposal) TableName() string {
	return "loan_proposals"
}

type LoanStatus string

const (
	LoanActive LoanStatus = "active"
	LoanClosed LoanStatus = "closed"
)

// Loan is the materialized outcome of an accepted loan proposal.
type Loan struct {
	ID                uint   `gorm:"primarykey" json:"id"`
	BusinessIdeaID    uint   `gorm:"not null;index" json:"business_idea_id"`
	BusinessIdeaTitle string `gorm:"type:varchar(255);not null" json:"business_idea_title"`

	BusinessPersonID uint   `gorm:"not null;index" json:"business_person_id"`
	BankerID         uint   `gorm:"not null;index" json:"banker_id"`
	BankName         string `gorm:"type:varchar(255)" json:"bank_name,omitempty"`

	Amount            float64    `gorm:"not null" json:"amount"`
	InterestRate      float64    `gorm:"not null" json:"interest_rate"`
	TenureMonths      int        `gorm:"not null" json:"tenure_months"`
	OutstandingAmount float64    `gorm:"not null" json:"outstanding_amount"`
	Status            LoanStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	StartDate         time.Time  `gorm:"not null" json:"start_date"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string {
	return "loans"
}
