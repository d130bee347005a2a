package routes

import (
	"github.com/gofiber/fiber/v2"

	"VentureLink/internal/handlers"
	"VentureLink/internal/middleware"
)

func SetupLoanRoutes(app *fiber.App) {
	loans := app.Group("/api/loans", middleware.Protected())

	// Create new loan proposal (banker)
	loans.Post("/create", handlers.CreateLoanProposal)

	// Accept loan proposal (idea owner)
	loans.Post("/:id/accept", handlers.AcceptLoanProposal)

	// Loan offers received on my ideas
	loans.Get("/my-loans", handlers.GetMyLoanProposals)

	// Loan offers I sent as a banker
	loans.Get("/sent", handlers.GetSentLoanProposals)
}
