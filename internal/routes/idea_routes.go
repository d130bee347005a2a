package routes

import (
	"github.com/gofiber/fiber/v2"

	"VentureLink/internal/handlers"
	"VentureLink/internal/middleware"
)

func SetupIdeaRoutes(app *fiber.App) {
	ideas := app.Group("/api/ideas", middleware.Protected())

	// Publish a new idea (business person)
	ideas.Post("/create", handlers.CreateIdea)

	// Browse active ideas
	ideas.Get("/", handlers.ListIdeas)

	// My own ideas
	ideas.Get("/my-ideas", handlers.GetMyIdeas)

	// Get specific idea
	ideas.Get("/:id", handlers.GetIdeaByID)

	// Edit idea (owner)
	ideas.Put("/:id", handlers.UpdateIdea)

	// Upload idea cover image (owner)
	ideas.Post("/:id/image", handlers.UploadIdeaImage)
}
