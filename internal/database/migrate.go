package database

import (
	"fmt"
	"log"

	"VentureLink/internal/models"
)

func Migrate() error {
	log.Println("Running database migrations...")

	err := DB.AutoMigrate(
		&models.User{},
		&models.PendingUser{},
		&models.BusinessIdea{},
		&models.InvestmentProposal{},
		&models.Investment{},
		&models.Milestone{},
		&models.LoanProposal{},
		&models.Loan{},
		&models.Notification{},
		&models.AuditLog{},
	)

	if err != nil {
		log.Printf("Error migrating database: %v", err)
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("Database migration completed successfully")
	return nil
}
