package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"VentureLink/internal/database"
	"VentureLink/internal/models"
)

func TestUpdateProfileMarksComplete(t *testing.T) {
	app := setupTestApp(t)

	investor := createUser(t, "Arun Investor", models.RoleInvestor, false)
	token := authToken(t, investor)

	// Partial document: not complete yet
	status, body := doJSON(t, app, http.MethodPut, "/api/profile/update", token,
		map[string]interface{}{
			"profile": map[string]interface{}{"investment_range": "1M-5M"},
		})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", status, body)
	}

	var user models.User
	database.DB.First(&user, investor.ID)
	if user.IsComplete {
		t.Fatalf("profile missing required fields must not be complete")
	}

	// All required investor fields present
	status, _ = doJSON(t, app, http.MethodPut, "/api/profile/update", token,
		map[string]interface{}{
			"profile": map[string]interface{}{
				"investment_range":  "1M-5M",
				"preferred_sectors": "fintech, energy",
			},
		})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	database.DB.First(&user, investor.ID)
	if !user.IsComplete {
		t.Fatalf("profile with all required fields must be complete")
	}

	// Emptying a required field flips it back
	status, _ = doJSON(t, app, http.MethodPut, "/api/profile/update", token,
		map[string]interface{}{
			"profile": map[string]interface{}{
				"investment_range":  "",
				"preferred_sectors": "fintech",
			},
		})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	database.DB.First(&user, investor.ID)
	if user.IsComplete {
		t.Fatalf("emptied required field must clear completeness")
	}
}

func TestUpdateProfileRoleDispatch(t *testing.T) {
	app := setupTestApp(t)

	banker := createUser(t, "Bank Person", models.RoleBanker, false)

	// Investor fields do not complete a banker profile
	status, _ := doJSON(t, app, http.MethodPut, "/api/profile/update",
		authToken(t, banker), map[string]interface{}{
			"profile": map[string]interface{}{
				"investment_range":  "1M-5M",
				"preferred_sectors": "fintech",
			},
		})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	var user models.User
	database.DB.First(&user, banker.ID)
	if user.IsComplete {
		t.Fatalf("banker profile must require banker fields")
	}

	status, _ = doJSON(t, app, http.MethodPut, "/api/profile/update",
		authToken(t, banker), map[string]interface{}{
			"profile": map[string]interface{}{
				"bank_name":   "State Bank",
				"branch":      "MG Road",
				"designation": "Branch Manager",
			},
		})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	database.DB.First(&user, banker.ID)
	if !user.IsComplete {
		t.Fatalf("banker profile with required fields must be complete")
	}
}

func TestUpdateFCMToken(t *testing.T) {
	app := setupTestApp(t)

	investor := createUser(t, "Arun Investor", models.RoleInvestor, true)

	status, _ := doJSON(t, app, http.MethodPut, "/api/profile/fcm-token",
		authToken(t, investor), map[string]interface{}{"token": "device-token-123"})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	var user models.User
	database.DB.First(&user, investor.ID)
	if user.FCMToken != "device-token-123" {
		t.Fatalf("token not stored, got %q", user.FCMToken)
	}

	// Missing token is a validation error
	status, _ = doJSON(t, app, http.MethodPut, "/api/profile/fcm-token",
		authToken(t, investor), map[string]interface{}{})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty token, got %d", status)
	}
}

func TestGetMyProfileReturnsDocument(t *testing.T) {
	app := setupTestApp(t)

	investor := createUser(t, "Arun Investor", models.RoleInvestor, true)

	status, body := doJSON(t, app, http.MethodGet, "/api/profile/me",
		authToken(t, investor), nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	user := body["user"].(map[string]interface{})
	if user["email"] != investor.Email {
		t.Fatalf("unexpected email %v", user["email"])
	}
	if user["is_complete"] != true {
		t.Fatalf("expected complete profile flag")
	}
	profile := user["profile"].(map[string]interface{})
	if profile["investment_range"] == nil {
		t.Fatalf("profile document missing fields: %v", profile)
	}
}

func TestProposalNotificationLifecycle(t *testing.T) {
	app := setupTestApp(t)

	owner := createUser(t, "Bella Owner", models.RoleBusinessPerson, true)
	investor := createUser(t, "Arun Investor", models.RoleInvestor, true)
	idea := createIdea(t, owner, "Solar Microgrids", "Energy")

	status, _ := doJSON(t, app, http.MethodPost, "/api/proposals/create",
		authToken(t, investor), proposalPayload(idea.ID, 1000, 10))
	if status != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", status)
	}

	ownerToken := authToken(t, owner)
	status, body := doJSON(t, app, http.MethodGet, "/api/notifications/unread-count",
		ownerToken, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["success"] != true {
		t.Fatalf("expected success=true on unread-count, got %v", body["success"])
	}
	if body["unread_count"].(float64) != 1 {
		t.Fatalf("expected 1 unread notification, got %v", body["unread_count"])
	}

	status, body = doJSON(t, app, http.MethodGet, "/api/notifications/", ownerToken, nil)
	if status != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", status)
	}
	if body["success"] != true {
		t.Fatalf("expected success=true on listing, got %v", body["success"])
	}

	var notification models.Notification
	database.DB.Where("user_id = ?", owner.ID).First(&notification)

	status, body = doJSON(t, app, http.MethodPut,
		fmt.Sprintf("/api/notifications/%d/read", notification.ID), ownerToken, nil)
	if status != http.StatusOK {
		t.Fatalf("mark read: expected 200, got %d", status)
	}
	if body["success"] != true {
		t.Fatalf("expected success=true on mark read, got %v", body["success"])
	}

	status, body = doJSON(t, app, http.MethodGet, "/api/notifications/unread-count",
		ownerToken, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["unread_count"].(float64) != 0 {
		t.Fatalf("expected 0 unread after read, got %v", body["unread_count"])
	}

	// Another user cannot read someone else's notification
	status, _ = doJSON(t, app, http.MethodPut,
		fmt.Sprintf("/api/notifications/%d/read", notification.ID),
		authToken(t, investor), nil)
	if status != http.StatusNotFound {
		t.Fatalf("foreign notification read: expected 404, got %d", status)
	}
}
