package routes

import (
	"github.com/gofiber/fiber/v2"

	"VentureLink/internal/handlers"
	"VentureLink/internal/middleware"
)

func SetupProposalRoutes(app *fiber.App) {
	proposals := app.Group("/api/proposals", middleware.Protected())

	// Create new proposal (investor)
	proposals.Post("/create", handlers.CreateProposal)

	// Accept proposal (idea owner)
	proposals.Post("/:id/accept", handlers.AcceptProposal)

	// Proposals received on my ideas
	proposals.Get("/my-proposals", handlers.GetMyProposals)

	// Proposals I sent as an investor
	proposals.Get("/sent", handlers.GetSentProposals)

	// Get specific proposal
	proposals.Get("/:id", handlers.GetProposalByID)

	investments := app.Group("/api/investments", middleware.Protected())

	// My investments as an investor
	investments.Get("/my-investments", handlers.GetMyInvestments)

	// Investments received into my ideas
	investments.Get("/received", handlers.GetReceivedInvestments)

	// Get specific investment
	investments.Get("/:id", handlers.GetInvestmentByID)
}
