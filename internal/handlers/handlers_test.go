package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"VentureLink/internal/database"
	"VentureLink/internal/middleware"
	"VentureLink/internal/models"
	"VentureLink/internal/services"
)

// setupTestApp wires a fresh in-memory database and a Fiber app with the
// protected route groups used by the tests. Each test gets its own schema.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.PendingUser{},
		&models.BusinessIdea{},
		&models.InvestmentProposal{},
		&models.Investment{},
		&models.Milestone{},
		&models.LoanProposal{},
		&models.Loan{},
		&models.Notification{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	database.DB = db
	notificationService = services.NewNotificationService(nil)
	auditService = services.NewAuditService()

	app := fiber.New()

	proposals := app.Group("/api/proposals", middleware.Protected())
	proposals.Post("/create", CreateProposal)
	proposals.Post("/:id/accept", AcceptProposal)
	proposals.Get("/my-proposals", GetMyProposals)
	proposals.Get("/sent", GetSentProposals)
	proposals.Get("/:id", GetProposalByID)

	investments := app.Group("/api/investments", middleware.Protected())
	investments.Get("/my-investments", GetMyInvestments)
	investments.Get("/received", GetReceivedInvestments)
	investments.Get("/:id", GetInvestmentByID)

	loans := app.Group("/api/loans", middleware.Protected())
	loans.Post("/create", CreateLoanProposal)
	loans.Post("/:id/accept", AcceptLoanProposal)
	loans.Get("/my-loans", GetMyLoanProposals)
	loans.Get("/sent", GetSentLoanProposals)

	profile := app.Group("/api/profile", middleware.Protected())
	profile.Get("/me", GetMyProfile)
	profile.Put("/update", UpdateProfile)
	profile.Put("/fcm-token", UpdateFCMToken)

	notifications := app.Group("/api/notifications", middleware.Protected())
	notifications.Get("/", GetNotifications)
	notifications.Get("/unread-count", GetUnreadCount)
	notifications.Put("/:id/read", MarkAsRead)

	return app
}

// createUser inserts a user directly. Passwords are stored unhashed here;
// nothing in these tests exercises login.
func createUser(t *testing.T, name string, role models.UserRole, complete bool) *models.User {
	t.Helper()
	user := models.User{
		FullName:        name,
		Email:           strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		Phone:           "9990001111",
		Password:        "not-a-real-hash",
		Role:            role,
		IsComplete:      complete,
		IsEmailVerified: true,
	}
	if complete {
		user.Profile = `{"investment_range":"1M-10M","preferred_sectors":"fintech"}`
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return &user
}

func createIdea(t *testing.T, owner *models.User, title, category string) *models.BusinessIdea {
	t.Helper()
	idea := models.BusinessIdea{
		UserID:        owner.ID,
		Title:         title,
		Description:   "test idea",
		Category:      category,
		FundingNeeded: 1000000,
		Status:        models.IdeaActive,
	}
	if err := database.DB.Create(&idea).Error; err != nil {
		t.Fatalf("create idea %s: %v", title, err)
	}
	return &idea
}

func authToken(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := generateToken(user)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

// doJSON performs a request with an optional bearer token and JSON body,
// returning the status code and decoded response body.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}

	decoded := map[string]interface{}{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode response %q: %v", raw, err)
		}
	}
	return resp.StatusCode, decoded
}

// jsonListLen measures a decoded JSON array, treating null as empty.
func jsonListLen(v interface{}) int {
	if v == nil {
		return 0
	}
	return len(v.([]interface{}))
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	app := setupTestApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/api/proposals/my-proposals", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}
	if body["error"] == nil {
		t.Fatalf("expected error message in body")
	}
}

func TestProtectedRoutesRejectGarbageToken(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/proposals/my-proposals", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", resp.StatusCode)
	}
}
