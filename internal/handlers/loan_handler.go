package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"VentureLink/internal/database"
	"VentureLink/internal/models"
)

type CreateLoanProposalRequest struct {
	BusinessIdeaID uint    `json:"business_idea_id"`
	Amount         float64 `json:"amount"`
	InterestRate   float64 `json:"interest_rate"`
	TenureMonths   int     `json:"tenure_months"`
	Message        string  `json:"message"`
}

// CreateLoanProposal submits a loan offer on a business idea. Banker analog
// of CreateProposal, with the same validation order and the same
// transactional write of proposal, owner notification and audit entry.
func CreateLoanProposal(c *fiber.Ctx) error {
	req := new(CreateLoanProposalRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	bankerID := c.Locals("user_id").(uint)

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

	if req.InterestRate <= 0 || req.InterestRate > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Interest rate must be between 0 and 100",
		})
	}

	if req.TenureMonths <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Tenure must be at least one month",
		})
	}

	var banker models.User
	if err := database.DB.First(&banker, bankerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Banker profile not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	if banker.Role != models.RoleBanker {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only bankers can create loan proposals",
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

	var existing models.LoanProposal
	err := database.DB.
		Where("business_idea_id = ? AND banker_id = ?", idea.ID, bankerID).
		First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "You already have a loan proposal for this business idea",
		})
	}
	if err != gorm.ErrRecordNotFound {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	proposal := models.LoanProposal{
		BusinessIdeaID:     idea.ID,
		BusinessIdeaTitle:  idea.Title,
		BusinessIdeaUserID: idea.UserID,
		BankerID:           banker.ID,
		BankerName:         banker.FullName,
		BankName:           bankNameFromProfile(&banker),
		Amount:             req.Amount,
		InterestRate:       req.InterestRate,
		TenureMonths:       req.TenureMonths,
		Message:            req.Message,
		Status:             models.ProposalPending,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&proposal).Error; err != nil {
			return err
		}

		if err := notificationService.NotifyLoanOfferReceived(
			tx, idea.UserID, banker.FullName, idea.Title,
			req.Amount, req.InterestRate, proposal.ID,
		); err != nil {
			return err
		}

		return auditService.Record(
			tx, banker.ID, models.AuditLoanProposalCreated,
			"loan_proposal", proposal.ID,
			map[string]interface{}{
				"business_idea_id": idea.ID,
				"amount":           req.Amount,
				"interest_rate":    req.InterestRate,
				"tenure_months":    req.TenureMonths,
			},
		)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create loan proposal",
		})
	}

	var owner models.User
	if err := database.DB.First(&owner, idea.UserID).Error; err == nil {
		notificationService.PushToUser(&owner,
			"New Loan Offer",
			fmt.Sprintf("%s offered a loan of ₹%.2f for \"%s\"", banker.FullName, req.Amount, idea.Title),
			map[string]string{
				"type":             string(models.NotificationLoanOfferReceived),
				"loan_proposal_id": strconv.FormatUint(uint64(proposal.ID), 10),
			},
		)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":          true,
		"loan_proposal_id": proposal.ID,
		"message":          "Loan proposal submitted. The idea owner has been notified.",
	})
}

// AcceptLoanProposal transitions a pending loan proposal to accepted and
// materializes the Loan record. Same conditional-update guard as
// AcceptProposal.
func AcceptLoanProposal(c *fiber.Ctx) error {
	proposalID, ok := idParam(c, "loan proposal")
	if !ok {
		return nil
	}
	userID := c.Locals("user_id").(uint)

	var proposal models.LoanProposal
	if err := database.DB.First(&proposal, proposalID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Loan proposal not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	if proposal.BusinessIdeaUserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only the idea owner can accept this loan proposal",
		})
	}

	var owner models.User
	if err := database.DB.First(&owner, userID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	now := time.Now()
	loan := models.Loan{
		BusinessIdeaID:    proposal.BusinessIdeaID,
		BusinessIdeaTitle: proposal.BusinessIdeaTitle,
		BusinessPersonID:  proposal.BusinessIdeaUserID,
		BankerID:          proposal.BankerID,
		BankName:          proposal.BankName,
		Amount:            proposal.Amount,
		InterestRate:      proposal.InterestRate,
		TenureMonths:      proposal.TenureMonths,
		OutstandingAmount: proposal.Amount,
		Status:            models.LoanActive,
		StartDate:         now,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.LoanProposal{}).
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

		if err := tx.Create(&loan).Error; err != nil {
			return err
		}

		if err := notificationService.NotifyLoanOfferAccepted(
			tx, proposal.BankerID, owner.FullName,
			proposal.BusinessIdeaTitle, proposal.Amount, loan.ID,
		); err != nil {
			return err
		}

		return auditService.Record(
			tx, userID, models.AuditLoanProposalAccepted,
			"loan_proposal", proposal.ID,
			map[string]interface{}{
				"loan_id": loan.ID,
				"amount":  proposal.Amount,
			},
		)
	})
	if err != nil {
		if errors.Is(err, errAlreadyAccepted) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Loan proposal has already been accepted",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to accept loan proposal",
		})
	}

	var bankerUser models.User
	if err := database.DB.First(&bankerUser, proposal.BankerID).Error; err == nil {
		notificationService.PushToUser(&bankerUser,
			"Loan Offer Accepted",
			fmt.Sprintf("%s accepted your loan offer for \"%s\"", owner.FullName, proposal.BusinessIdeaTitle),
			map[string]string{
				"type":    string(models.NotificationLoanOfferAccepted),
				"loan_id": strconv.FormatUint(uint64(loan.ID), 10),
			},
		)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"loan_id": loan.ID,
		"message": "Loan proposal accepted. The loan has been recorded.",
	})
}

// GetMyLoanProposals lists loan offers received on the caller's ideas.
func GetMyLoanProposals(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var proposals []models.LoanProposal
	if err := database.DB.
		Where("business_idea_user_id = ?", userID).
		Order("created_at DESC").
		Find(&proposals).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve loan proposals",
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"proposals": proposals,
		"count":     len(proposals),
	})
}

// GetSentLoanProposals lists loan offers the caller submitted as a banker.
func GetSentLoanProposals(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var proposals []models.LoanProposal
	if err := database.DB.
		Where("banker_id = ?", userID).
		Order("created_at DESC").
		Find(&proposals).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve loan proposals",
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"proposals": proposals,
		"count":     len(proposals),
	})
}

// bankNameFromProfile pulls the bank name out of a banker's profile
// document, if present.
func bankNameFromProfile(u *models.User) string {
	if u.Profile == "" {
		return ""
	}
	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(u.Profile), &doc); err != nil {
		return ""
	}
	if name, ok := doc["bank_name"].(string); ok {
		return name
	}
	return ""
}
