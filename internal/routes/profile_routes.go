package routes

import (
	"github.com/gofiber/fiber/v2"

	"VentureLink/internal/handlers"
	"VentureLink/internal/middleware"
)

func SetupProfileRoutes(app *fiber.App) {
	profile := app.Group("/api/profile", middleware.Protected())

	profile.Get("/me", handlers.GetMyProfile)
	profile.Put("/update", handlers.UpdateProfile)
	profile.Put("/fcm-token", handlers.UpdateFCMToken)
	profile.Post("/avatar", handlers.UploadAvatar)
}
