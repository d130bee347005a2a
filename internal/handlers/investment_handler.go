package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"VentureLink/internal/database"
	"VentureLink/internal/models"
)

// GetMyInvestments lists the caller's investments as an investor, newest
// first by investment date.
func GetMyInvestments(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var investments []models.Investment
	if err := database.DB.
		Preload("Milestones", func(db *gorm.DB) *gorm.DB {
			return db.Order("milestones.position ASC")
		}).
		Where("investor_id = ?", userID).
		Order("investment_date DESC").
		Find(&investments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve investments",
		})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"investments": investments,
		"count":       len(investments),
	})
}

// GetReceivedInvestments lists investments made into the caller's ideas.
func GetReceivedInvestments(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var investments []models.Investment
	if err := database.DB.
		Preload("Milestones", func(db *gorm.DB) *gorm.DB {
			return db.Order("milestones.position ASC")
		}).
		Where("business_person_id = ?", userID).
		Order("investment_date DESC").
		Find(&investments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve investments",
		})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"investments": investments,
		"count":       len(investments),
	})
}

// GetInvestmentByID retrieves a single investment visible to either party.
func GetInvestmentByID(c *fiber.Ctx) error {
	investmentID, ok := idParam(c, "investment")
	if !ok {
		return nil
	}
	userID := c.Locals("user_id").(uint)

	var investment models.Investment
	if err := database.DB.
		Preload("Milestones").
		First(&investment, investmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Investment not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	if investment.InvestorID != userID && investment.BusinessPersonID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have access to this investment",
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"investment": investment,
	})
}
