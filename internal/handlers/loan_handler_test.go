package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"VentureLink/internal/database"
	"VentureLink/internal/models"
)

func loanPayload(ideaID uint, amount, rate float64, tenure int) map[string]interface{} {
	return map[string]interface{}{
		"business_idea_id": ideaID,
		"amount":           amount,
		"interest_rate":    rate,
		"tenure_months":    tenure,
		"message":          "Loan offer",
	}
}

func TestCreateLoanProposalHappyPath(t *testing.T) {
	app := setupTestApp(t)

	owner := createUser(t, "Bella Owner", models.RoleBusinessPerson, true)
	banker := createUser(t, "Bank Person", models.RoleBanker, true)
	idea := createIdea(t, owner, "Solar Microgrids", "Energy")

	status, body := doJSON(t, app, http.MethodPost, "/api/loans/create",
		authToken(t, banker), loanPayload(idea.ID, 200000, 9.5, 24))
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%v)", status, body)
	}

	var proposal models.LoanProposal
	if err := database.DB.First(&proposal).Error; err != nil {
		t.Fatalf("load loan proposal: %v", err)
	}
	if proposal.Status != models.ProposalPending {
		t.Fatalf("expected pending status, got %s", proposal.Status)
	}
	if proposal.BusinessIdeaUserID != owner.ID {
		t.Fatalf("owner not denormalized")
	}
	if proposal.InterestRate != 9.5 || proposal.TenureMonths != 24 {
		t.Fatalf("rate/tenure mismatch: %v/%v", proposal.InterestRate, proposal.TenureMonths)
	}

	var notifications []models.Notification
	database.DB.Where("type = ?", models.NotificationLoanOfferReceived).Find(&notifications)
	if len(notifications) != 1 || notifications[0].UserID != owner.ID {
		t.Fatalf("expected 1 loan notification to the owner, got %v", notifications)
	}
}

func TestCreateLoanProposalValidation(t *testing.T) {
	app := setupTestApp(t)

	owner := createUser(t, "Bella Owner", models.RoleBusinessPerson, true)
	banker := createUser(t, "Bank Person", models.RoleBanker, true)
	investor := createUser(t, "Arun Investor", models.RoleInvestor, true)
	idea := createIdea(t, owner, "Solar Microgrids", "Energy")
	token := authToken(t, banker)

	cases := []struct {
		name    string
		payload map[string]interface{}
		token   string
		want    int
	}{
		{"zero amount", loanPayload(idea.ID, 0, 10, 12), token, http.StatusBadRequest},
		{"zero rate", loanPayload(idea.ID, 1000, 0, 12), token, http.StatusBadRequest},
		{"rate above 100", loanPayload(idea.ID, 1000, 100.5, 12), token, http.StatusBadRequest},
		{"zero tenure", loanPayload(idea.ID, 1000, 10, 0), token, http.StatusBadRequest},
		{"missing idea", loanPayload(0, 1000, 10, 12), token, http.StatusBadRequest},
		{"unknown idea", loanPayload(999, 1000, 10, 12), token, http.StatusNotFound},
		{"wrong role", loanPayload(idea.ID, 1000, 10, 12), authToken(t, investor), http.StatusForbidden},
	}
	for _, tc := range cases {
		status, _ := doJSON(t, app, http.MethodPost, "/api/loans/create", tc.token, tc.payload)
		if status != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, status)
		}
	}

	var count int64
	database.DB.Model(&models.LoanProposal{}).Count(&count)
	if count != 0 {
		t.Fatalf("no loan proposal must be created, found %d", count)
	}
}

func TestCreateLoanProposalDuplicateRejected(t *testing.T) {
	app := setupTestApp(t)

	owner := createUser(t, "Bella Owner", models.RoleBusinessPerson, true)
	banker := createUser(t, "Bank Person", models.RoleBanker, true)
	idea := createIdea(t, owner, "Solar Microgrids", "Energy")
	token := authToken(t, banker)

	status, _ := doJSON(t, app, http.MethodPost, "/api/loans/create",
		token, loanPayload(idea.ID, 200000, 9.5, 24))
	if status != http.StatusCreated {
		t.Fatalf("first offer: expected 201, got %d", status)
	}

	status, _ = doJSON(t, app, http.MethodPost, "/api/loans/create",
		token, loanPayload(idea.ID, 300000, 8, 36))
	if status != http.StatusConflict {
		t.Fatalf("duplicate offer: expected 409, got %d", status)
	}
}

func TestAcceptLoanProposalHappyPath(t *testing.T) {
	app := setupTestApp(t)

	owner := createUser(t, "Bella Owner", models.RoleBusinessPerson, true)
	banker := createUser(t, "Bank Person", models.RoleBanker, true)
	idea := createIdea(t, owner, "Solar Microgrids", "Energy")

	status, body := doJSON(t, app, http.MethodPost, "/api/loans/create",
		authToken(t, banker), loanPayload(idea.ID, 200000, 9.5, 24))
	if status != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", status)
	}
	proposalID := uint(body["loan_proposal_id"].(float64))

	status, body = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/loans/%d/accept", proposalID), authToken(t, owner), nil)
	if status != http.StatusOK {
		t.Fatalf("accept: expected 200, got %d (%v)", status, body)
	}

	var loan models.Loan
	if err := database.DB.First(&loan).Error; err != nil {
		t.Fatalf("load loan: %v", err)
	}
	if loan.Amount != 200000 || loan.OutstandingAmount != 200000 {
		t.Fatalf("outstanding must equal amount at start: %v/%v", loan.Amount, loan.OutstandingAmount)
	}
	if loan.Status != models.LoanActive {
		t.Fatalf("expected active loan, got %s", loan.Status)
	}
	if loan.BankerID != banker.ID || loan.BusinessPersonID != owner.ID {
		t.Fatalf("loan parties mismatch")
	}

	var accepted []models.Notification
	database.DB.Where("type = ?", models.NotificationLoanOfferAccepted).Find(&accepted)
	if len(accepted) != 1 || accepted[0].UserID != banker.ID {
		t.Fatalf("expected 1 acceptance notification to the banker")
	}
}

func TestAcceptLoanProposalOnlyOwnerAndOnce(t *testing.T) {
	app := setupTestApp(t)

	owner := createUser(t, "Bella Owner", models.RoleBusinessPerson, true)
	banker := createUser(t, "Bank Person", models.RoleBanker, true)
	outsider := createUser(t, "Random Caller", models.RoleBusinessPerson, true)
	idea := createIdea(t, owner, "Solar Microgrids", "Energy")

	status, body := doJSON(t, app, http.MethodPost, "/api/loans/create",
		authToken(t, banker), loanPayload(idea.ID, 200000, 9.5, 24))
	if status != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", status)
	}
	proposalID := uint(body["loan_proposal_id"].(float64))

	status, _ = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/loans/%d/accept", proposalID), authToken(t, outsider), nil)
	if status != http.StatusForbidden {
		t.Fatalf("outsider accept: expected 403, got %d", status)
	}

	ownerToken := authToken(t, owner)
	status, _ = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/loans/%d/accept", proposalID), ownerToken, nil)
	if status != http.StatusOK {
		t.Fatalf("owner accept: expected 200, got %d", status)
	}

	status, _ = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/loans/%d/accept", proposalID), ownerToken, nil)
	if status != http.StatusConflict {
		t.Fatalf("second accept: expected 409, got %d", status)
	}

	var count int64
	database.DB.Model(&models.Loan{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly 1 loan, got %d", count)
	}
}
