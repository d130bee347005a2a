package services

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"VentureLink/internal/models"
)

type NotificationService struct {
	push *PushService
}

func NewNotificationService(push *PushService) *NotificationService {
	return &NotificationService{push: push}
}

// CreateNotification writes a notification row through db, which may be a
// transaction handle. Callers that need the notification to commit or roll
// back together with the primary write pass their tx here.
func (s *NotificationService) CreateNotification(db *gorm.DB, userID uint, notifType models.NotificationType, title, message string, data map[string]interface{}) error {
	var dataJSON string
	if data != nil {
		jsonBytes, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to marshal notification data: %w", err)
		}
		dataJSON = string(jsonBytes)
	}

	notification := models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    dataJSON,
		IsRead:  false,
	}

	if err := db.Create(&notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// NotifyProposalReceived notifies the idea owner when an investor submits
// a proposal.
func (s *NotificationService) NotifyProposalReceived(db *gorm.DB, ownerID uint, investorName, ideaTitle string, amount, equity float64, proposalID uint) error {
	return s.CreateNotification(
		db,
		ownerID,
		models.NotificationProposalReceived,
		"New Investment Proposal",
		fmt.Sprintf("%s has proposed to invest ₹%.2f for %.1f%% equity in \"%s\"", investorName, amount, equity, ideaTitle),
		map[string]interface{}{
			"proposal_id":   proposalID,
			"investor_name": investorName,
			"idea_title":    ideaTitle,
			"amount":        amount,
			"equity":        equity,
		},
	)
}

// NotifyProposalAccepted notifies the investor when the idea owner accepts.
func (s *NotificationService) NotifyProposalAccepted(db *gorm.DB, investorID uint, ownerName, ideaTitle string, amount float64, investmentID uint) error {
	return s.CreateNotification(
		db,
		investorID,
		models.NotificationProposalAccepted,
		"Proposal Accepted",
		fmt.Sprintf("%s has accepted your investment proposal of ₹%.2f for \"%s\"", ownerName, amount, ideaTitle),
		map[string]interface{}{
			"investment_id": investmentID,
			"owner_name":    ownerName,
			"idea_title":    ideaTitle,
			"amount":        amount,
		},
	)
}

// NotifyLoanOfferReceived notifies the idea owner when a banker submits a
// loan proposal.
func (s *NotificationService) NotifyLoanOfferReceived(db *gorm.DB, ownerID uint, bankerName, ideaTitle string, amount, rate float64, proposalID uint) error {
	return s.CreateNotification(
		db,
		ownerID,
		models.NotificationLoanOfferReceived,
		"New Loan Offer",
		fmt.Sprintf("%s has offered a loan of ₹%.2f at %.2f%% interest for \"%s\"", bankerName, amount, rate, ideaTitle),
		map[string]interface{}{
			"loan_proposal_id": proposalID,
			"banker_name":      bankerName,
			"idea_title":       ideaTitle,
			"amount":           amount,
			"interest_rate":    rate,
		},
	)
}

// NotifyLoanOfferAccepted notifies the banker when the idea owner accepts.
func (s *NotificationService) NotifyLoanOfferAccepted(db *gorm.DB, bankerID uint, ownerName, ideaTitle string, amount float64, loanID uint) error {
	return s.CreateNotification(
		db,
		bankerID,
		models.NotificationLoanOfferAccepted,
		"Loan Offer Accepted",
		fmt.Sprintf("%s has accepted your loan offer of ₹%.2f for \"%s\"", ownerName, amount, ideaTitle),
		map[string]interface{}{
			"loan_id":    loanID,
			"owner_name": ownerName,
			"idea_title": ideaTitle,
			"amount":     amount,
		},
	)
}

// PushToUser delivers a push notification to the user's registered device,
// best effort. Errors are logged inside the push service and never
// propagated; a missing token or disabled push client is a no-op.
func (s *NotificationService) PushToUser(user *models.User, title, body string, data map[string]string) {
	if s.push == nil || user == nil || user.FCMToken == "" {
		return
	}
	s.push.Send(user.FCMToken, title, body, data)
}
