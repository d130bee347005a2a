package services

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"VentureLink/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
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

	if err := db.AutoMigrate(&models.Notification{}, &models.AuditLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestAuditRecordWritesEntry(t *testing.T) {
	db := testDB(t)
	svc := NewAuditService()

	err := svc.Record(db, 7, models.AuditProposalCreated, "investment_proposal", 42,
		map[string]interface{}{"amount": 1000.0})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	var entry models.AuditLog
	if err := db.First(&entry).Error; err != nil {
		t.Fatalf("load entry: %v", err)
	}
	if entry.ActorID != 7 || entry.EntityID != 42 {
		t.Fatalf("actor/entity mismatch: %d/%d", entry.ActorID, entry.EntityID)
	}
	if entry.Action != models.AuditProposalCreated {
		t.Fatalf("unexpected action %s", entry.Action)
	}
	if entry.Reference == "" {
		t.Fatalf("reference must be generated")
	}
	if !strings.Contains(entry.Details, "1000") {
		t.Fatalf("details not serialized: %q", entry.Details)
	}
}

func TestAuditReferencesAreUnique(t *testing.T) {
	db := testDB(t)
	svc := NewAuditService()

	for i := 0; i < 5; i++ {
		if err := svc.Record(db, 1, models.AuditIdeaCreated, "business_idea", uint(i+1), nil); err != nil {
			t.Fatalf("Record %d: %v", i, err)
		}
	}

	var refs []string
	db.Model(&models.AuditLog{}).Pluck("reference", &refs)
	seen := map[string]bool{}
	for _, r := range refs {
		if seen[r] {
			t.Fatalf("duplicate audit reference %s", r)
		}
		seen[r] = true
	}
}

func TestCreateNotificationSerializesData(t *testing.T) {
	db := testDB(t)
	svc := NewNotificationService(nil)

	err := svc.NotifyProposalReceived(db, 3, "Arun Investor", "Solar Microgrids", 500000, 15, 9)
	if err != nil {
		t.Fatalf("NotifyProposalReceived: %v", err)
	}

	var n models.Notification
	if err := db.First(&n).Error; err != nil {
		t.Fatalf("load notification: %v", err)
	}
	if n.UserID != 3 {
		t.Fatalf("recipient mismatch: %d", n.UserID)
	}
	if n.IsRead {
		t.Fatalf("new notification must be unread")
	}
	if !strings.Contains(n.Message, "Solar Microgrids") || !strings.Contains(n.Message, "500000.00") {
		t.Fatalf("message missing idea title or amount: %q", n.Message)
	}
	if !strings.Contains(n.Data, "proposal_id") {
		t.Fatalf("data payload missing proposal id: %q", n.Data)
	}
}

func TestPushToUserWithoutClientIsNoop(t *testing.T) {
	svc := NewNotificationService(nil)

	// Must not panic with no push client or token
	svc.PushToUser(nil, "t", "b", nil)
	svc.PushToUser(&models.User{FCMToken: ""}, "t", "b", nil)
}
