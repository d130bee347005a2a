package services

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"VentureLink/internal/models"
)

type AuditService struct{}

func NewAuditService() *AuditService {
	return &AuditService{}
}

// Record appends one audit entry through db, which may be a transaction
// handle so the entry commits together with the action it describes.
func (s *AuditService) Record(db *gorm.DB, actorID uint, action models.AuditAction, entityType string, entityID uint, details map[string]interface{}) error {
	var detailsJSON string
	if details != nil {
		jsonBytes, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("failed to marshal audit details: %w", err)
		}
		detailsJSON = string(jsonBytes)
	}

	entry := models.AuditLog{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Reference:  uuid.NewString(),
		Details:    detailsJSON,
	}

	if err := db.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}

	return nil
}
