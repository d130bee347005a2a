package models

import (
	"time"
)

type AuditAction string

const (
	AuditProposalCreated      AuditAction = "proposal.created"
	AuditProposalAccepted     AuditAction = "proposal.accepted"
	AuditLoanProposalCreated  AuditAction = "loan_proposal.created"
	AuditLoanProposalAccepted AuditAction = "loan_proposal.accepted"
	AuditIdeaCreated          AuditAction = "idea.created"
	AuditIdeaUpdated          AuditAction = "idea.updated"
	AuditProfileUpdated       AuditAction = "profile.updated"
)

// AuditLog is append-only. Rows are written once per action and never
// updated or deleted, so there is no UpdatedAt or soft delete here.
type AuditLog struct {
	ID         uint        `gorm:"primarykey" json:"id"`
	ActorID    uint        `gorm:"not null;index" json:"actor_id"`
	Action     AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityType string      `gorm:"type:varchar(50);not null" json:"entity_type"`
	EntityID   uint        `gorm:"not null" json:"entity_id"`
	Reference  string      `gorm:"type:varchar(64);uniqueIndex;not null" json:"reference"`
	Details    string      `gorm:"type:json" json:"details,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
