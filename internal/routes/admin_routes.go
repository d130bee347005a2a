package routes

import (
	"github.com/gofiber/fiber/v2"

	"VentureLink/internal/handlers"
	"VentureLink/internal/middleware"
)

func SetupAdminRoutes(app *fiber.App) {
	admin := app.Group("/api/admin", middleware.Protected())

	admin.Get("/audit-logs", handlers.GetAuditLogs)
	admin.Get("/users", handlers.GetUsers)
}
