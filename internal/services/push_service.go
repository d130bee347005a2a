package services

import (
	"context"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"google.golang.org/api/option"
)

// PushService sends notifications through Firebase Cloud Messaging. All
// delivery is best effort: a failed send is logged and swallowed, never
// surfaced to the caller.
type PushService struct {
	client *messaging.Client
}

// NewPushService initializes the FCM client from the service account file
// named by FIREBASE_CREDENTIALS_FILE. Returns an error when the credentials
// are missing or invalid; callers may run without push entirely.
func NewPushService() (*PushService, error) {
	credFile := os.Getenv("FIREBASE_CREDENTIALS_FILE")
	if credFile == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_FILE not set")
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize messaging client: %w", err)
	}

	return &PushService{client: client}, nil
}

// Send pushes a notification to a single device token.
func (s *PushService) Send(token, title, body string, data map[string]string) {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority": "10",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: title,
						Body:  body,
					},
					Sound: "default",
				},
			},
		},
	}

	if _, err := s.client.Send(context.Background(), message); err != nil {
		log.Printf("push delivery failed for token %s...: %v", truncateToken(token), err)
	}
}

func truncateToken(token string) string {
	if len(token) <= 12 {
		return token
	}
	return token[:12]
}
