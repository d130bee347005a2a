package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"VentureLink/internal/database"
	"VentureLink/internal/models"
	"VentureLink/internal/services"
)

var auditService *services.AuditService

// InitAuditService wires the audit log writer.
func InitAuditService() {
	auditService = services.NewAuditService()
}

// requireAdmin loads the caller and rejects non-admins.
func requireAdmin(c *fiber.Ctx) (*models.User, bool) {
	userID := c.Locals("user_id").(uint)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
		return nil, false
	}

	if !user.IsAdmin() {
		c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Admin access required",
		})
		return nil, false
	}

	return &user, true
}

// GetAuditLogs returns a page of the append-only audit trail, newest first.
func GetAuditLogs(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return nil
	}

	limit, _ := strconv.Atoi(c.Query("limit", "100"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	query := database.DB.Model(&models.AuditLog{})
	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}
	if actor := c.Query("actor_id"); actor != "" {
		query = query.Where("actor_id = ?", actor)
	}

	var total int64
	query.Count(&total)

	var entries []models.AuditLog
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve audit logs",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"logs":    entries,
		"count":   len(entries),
		"total":   total,
	})
}

// GetUsers returns a page of user accounts for the admin dashboard.
func GetUsers(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return nil
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := database.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve users",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"users":   users,
		"count":   len(users),
	})
}
