package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"VentureLink/internal/database"
	"VentureLink/internal/models"
)

type CreateIdeaRequest struct {
	Title         string  `json:"title" validate:"required"`
	Description   string  `json:"description" validate:"required"`
	Category      string  `json:"category"`
	FundingNeeded float64 `json:"funding_needed" validate:"gte=0"`
}

type UpdateIdeaRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	FundingNeeded float64 `json:"funding_needed"`
}

// CreateIdea publishes a business idea. Only business persons may list
// ideas.
func CreateIdea(c *fiber.Ctx) error {
	req := new(CreateIdeaRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if !validateRequest(c, req) {
		return nil
	}

	userID := c.Locals("user_id").(uint)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	if user.Role != models.RoleBusinessPerson {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only business owners can publish business ideas",
		})
	}

	idea := models.BusinessIdea{
		UserID:        userID,
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		FundingNeeded: req.FundingNeeded,
		Status:        models.IdeaActive,
	}

	if err := database.DB.Create(&idea).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create business idea",
		})
	}

	if err := auditService.Record(database.DB, userID, models.AuditIdeaCreated,
		"business_idea", idea.ID, map[string]interface{}{"title": idea.Title}); err != nil {
		log.Printf("audit write failed for idea %d: %v", idea.ID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Business idea published",
		"idea":    idea,
	})
}

// ListIdeas returns active ideas, optionally filtered by category.
func ListIdeas(c *fiber.Ctx) error {
	category := c.Query("category")

	query := database.DB.Where("status = ?", models.IdeaActive)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var ideas []models.BusinessIdea
	if err := query.Order("created_at DESC").Find(&ideas).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve business ideas",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"ideas":   ideas,
		"count":   len(ideas),
	})
}

// GetMyIdeas returns the caller's own ideas, any status.
func GetMyIdeas(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var ideas []models.BusinessIdea
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ideas).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve business ideas",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"ideas":   ideas,
		"count":   len(ideas),
	})
}

// GetIdeaByID retrieves a single idea.
func GetIdeaByID(c *fiber.Ctx) error {
	ideaID, ok := idParam(c, "business idea")
	if !ok {
		return nil
	}

	var idea models.BusinessIdea
	if err := database.DB.First(&idea, ideaID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Business idea not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"idea":    idea,
	})
}

// UpdateIdea edits an idea. Owner only. Denormalized proposal snapshots are
// deliberately left untouched; they are point-in-time copies.
func UpdateIdea(c *fiber.Ctx) error {
	ideaID, ok := idParam(c, "business idea")
	if !ok {
		return nil
	}
	userID := c.Locals("user_id").(uint)

	req := new(UpdateIdeaRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	var idea models.BusinessIdea
	if err := database.DB.First(&idea, ideaID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Business idea not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	if idea.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only the owner can edit this business idea",
		})
	}

	if req.Title != "" {
		idea.Title = req.Title
	}
	if req.Description != "" {
		idea.Description = req.Description
	}
	if req.Category != "" {
		idea.Category = req.Category
	}
	if req.FundingNeeded > 0 {
		idea.FundingNeeded = req.FundingNeeded
	}

	if err := database.DB.Save(&idea).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update business idea",
		})
	}

	if err := auditService.Record(database.DB, userID, models.AuditIdeaUpdated,
		"business_idea", idea.ID, nil); err != nil {
		log.Printf("audit write failed for idea %d: %v", idea.ID, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Business idea updated",
		"idea":    idea,
	})
}

// UploadIdeaImage attaches a cover image to an idea via Cloudinary.
func UploadIdeaImage(c *fiber.Ctx) error {
	ideaID, ok := idParam(c, "business idea")
	if !ok {
		return nil
	}
	userID := c.Locals("user_id").(uint)

	if cloudinaryService == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "File uploads are not available",
		})
	}

	var idea models.BusinessIdea
	if err := database.DB.First(&idea, ideaID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Business idea not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	if idea.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only the owner can upload an image for this idea",
		})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Image file is required",
		})
	}

	result, err := cloudinaryService.UploadImage(file, "ideas")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload image",
		})
	}

	oldPublicID := idea.ImagePublicID
	idea.ImageURL = result.SecureURL
	idea.ImagePublicID = result.PublicID

	if err := database.DB.Save(&idea).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save image",
		})
	}

	if oldPublicID != "" {
		if err := cloudinaryService.DeleteImage(oldPublicID); err != nil {
			log.Printf("failed to delete old idea image %s: %v", oldPublicID, err)
		}
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Image uploaded successfully",
		"image_url": idea.ImageURL,
	})
}
