package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"VentureLink/internal/database"
	"VentureLink/internal/models"
)

type CreateProposalRequest struct {
	BusinessIdeaID uint    `json:"business_idea_id"`
	Amount         float64 `json:"amount"`
	Equity         float64 `json:"equity"`
	Message        string  `json:"message"`
}

var errAlreadyAccepted = errors.New("proposal already accepted")

// CreateProposal submits an investment proposal on a business idea.
//
// Validation runs in a fixed order: idea reference, amount, equity, caller
// role, idea existence, duplicate guard. The proposal row, the owner's
// notification and the audit entry commit in one transaction; the push
// delivery happens after commit, best effort.
func CreateProposal(c *fiber.Ctx) error {
	req := new(CreateProposalRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	investorID := c.Locals("user_id").(uint)

	if req.BusinessIdeaID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Business idea ID is required",
		})
	}

	if req.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Amount must be greater than zero",
		})
	}

	if req.Equity <= 0 || req.Equity > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Equity must be between 0 and 100",
		})
	}

	var investor models.User
	if err := database.DB.First(&investor, investorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Investor profile not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	if investor.Role != models.RoleInvestor {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only investors can create investment proposals",
		})
	}

	var idea models.BusinessIdea
	if err := database.DB.First(&idea, req.BusinessIdeaID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Business idea not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	// One live proposal per (idea, investor) pair
	var existing models.InvestmentProposal
	err := database.DB.
		Where("business_idea_id = ? AND investor_id = ?", idea.ID, investorID).
		First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "You already have a proposal for this business idea",
		})
	}
	if err != gorm.ErrRecordNotFound {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	proposal := models.InvestmentProposal{
		BusinessIdeaID:     idea.ID,
		BusinessIdeaTitle:  idea.Title,
		BusinessIdeaUserID: idea.UserID,
		InvestorID:         investor.ID,
		InvestorName:       investor.FullName,
		Amount:             req.Amount,
		Equity:             req.Equity,
		Message:            req.Message,
		Status:             models.ProposalPending,
	}

	// Contact snapshot only when the investor's profile is complete.
	// Incomplete profiles never leak contact fields into the proposal.
	if investor.IsComplete {
		proposal.InvestorEmail = investor.Email
		proposal.InvestorProfile = investor.Profile
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&proposal).Error; err != nil {
			return err
		}

		if err := notificationService.NotifyProposalReceived(
			tx, idea.UserID, investor.FullName, idea.Title,
			req.Amount, req.Equity, proposal.ID,
		); err != nil {
			return err
		}

		return auditService.Record(
			tx, investor.ID, models.AuditProposalCreated,
			"investment_proposal", proposal.ID,
			map[string]interface{}{
				"business_idea_id": idea.ID,
				"amount":           req.Amount,
				"equity":           req.Equity,
			},
		)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create proposal",
		})
	}

	var owner models.User
	if err := database.DB.First(&owner, idea.UserID).Error; err == nil {
		notificationService.PushToUser(&owner,
			"New Investment Proposal",
			fmt.Sprintf("%s has proposed ₹%.2f for \"%s\"", investor.FullName, req.Amount, idea.Title),
			map[string]string{
				"type":        string(models.NotificationProposalReceived),
				"proposal_id": strconv.FormatUint(uint64(proposal.ID), 10),
			},
		)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"proposal_id": proposal.ID,
		"message":     "Proposal submitted. The idea owner has been notified.",
	})
}

// AcceptProposal transitions a pending proposal to accepted and materializes
// the Investment record.
//
// Only the idea owner may accept. The status flip is a conditional update
// guarded on status = pending, so a second acceptance of the same proposal
// fails instead of creating a duplicate Investment. Status update,
// Investment creation, investor notification and audit entry commit in one
// transaction.
func AcceptProposal(c *fiber.Ctx) error {
	proposalID, ok := idParam(c, "proposal")
	if !ok {
		return nil
	}
	userID := c.Locals("user_id").(uint)

	var proposal models.InvestmentProposal
	if err := database.DB.First(&proposal, proposalID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Proposal not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	if proposal.BusinessIdeaUserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only the idea owner can accept this proposal",
		})
	}

	// Category comes from the idea; defaults to General when the idea is
	// gone or was saved without one.
	category := "General"
	var idea models.BusinessIdea
	if err := database.DB.First(&idea, proposal.BusinessIdeaID).Error; err == nil && idea.Category != "" {
		category = idea.Category
	}

	var owner models.User
	if err := database.DB.First(&owner, userID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	now := time.Now()
	investment := models.Investment{
		BusinessIdeaID:       proposal.BusinessIdeaID,
		BusinessIdeaTitle:    proposal.BusinessIdeaTitle,
		BusinessIdeaCategory: category,
		BusinessPersonID:     proposal.BusinessIdeaUserID,
		InvestorID:           proposal.InvestorID,
		InvestorName:         proposal.InvestorName,
		Amount:               proposal.Amount,
		Equity:               proposal.Equity,
		CurrentValue:         proposal.Amount,
		ROI:                  0,
		InvestmentDate:       now,
		Status:               models.InvestmentActive,
		Milestones:           []models.Milestone{},
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// Guarded status flip: zero rows affected means a concurrent or
		// earlier acceptance already won.
		res := tx.Model(&models.InvestmentProposal{}).
			Where("id = ? AND status = ?", proposal.ID, models.ProposalPending).
			Updates(map[string]interface{}{
				"status":      models.ProposalAccepted,
				"accepted_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAlreadyAccepted
		}

		if err := tx.Create(&investment).Error; err != nil {
			return err
		}

		if err := notificationService.NotifyProposalAccepted(
			tx, proposal.InvestorID, owner.FullName,
			proposal.BusinessIdeaTitle, proposal.Amount, investment.ID,
		); err != nil {
			return err
		}

		return auditService.Record(
			tx, userID, models.AuditProposalAccepted,
			"investment_proposal", proposal.ID,
			map[string]interface{}{
				"investment_id": investment.ID,
				"amount":        proposal.Amount,
				"equity":        proposal.Equity,
			},
		)
	})
	if err != nil {
		if errors.Is(err, errAlreadyAccepted) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Proposal has already been accepted",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to accept proposal",
		})
	}

	var investorUser models.User
	if err := database.DB.First(&investorUser, proposal.InvestorID).Error; err == nil {
		notificationService.PushToUser(&investorUser,
			"Proposal Accepted",
			fmt.Sprintf("%s accepted your proposal for \"%s\"", owner.FullName, proposal.BusinessIdeaTitle),
			map[string]string{
				"type":          string(models.NotificationProposalAccepted),
				"investment_id": strconv.FormatUint(uint64(investment.ID), 10),
			},
		)
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"investment_id": investment.ID,
		"message":       "Proposal accepted. The investment has been recorded.",
	})
}

// GetMyProposals lists proposals received on the caller's business ideas.
func GetMyProposals(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var proposals []models.InvestmentProposal
	if err := database.DB.
		Where("business_idea_user_id = ?", userID).
		Order("created_at DESC").
		Find(&proposals).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve proposals",
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"proposals": proposals,
		"count":     len(proposals),
	})
}

// GetSentProposals lists proposals the caller submitted as an investor.
func GetSentProposals(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var proposals []models.InvestmentProposal
	if err := database.DB.
		Where("investor_id = ?", userID).
		Order("created_at DESC").
		Find(&proposals).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve proposals",
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"proposals": proposals,
		"count":     len(proposals),
	})
}

// GetProposalByID retrieves a single proposal visible to either party.
func GetProposalByID(c *fiber.Ctx) error {
	proposalID, ok := idParam(c, "proposal")
	if !ok {
		return nil
	}
	userID := c.Locals("user_id").(uint)

	var proposal models.InvestmentProposal
	if err := database.DB.First(&proposal, proposalID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Proposal not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	if proposal.BusinessIdeaUserID != userID && proposal.InvestorID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have access to this proposal",
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"proposal": proposal,
	})
}
