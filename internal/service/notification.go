package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
	"github.com/skipjar/skipjar/internal/model"
)

// Celebration describes the milestones one skip-log reached.
type Celebration struct {
	User         *model.User
	Goal         *model.Goal
	GoalUnlocked bool
	LeveledUp    bool
}

type NotificationService struct {
	client    *resend.Client
	fromEmail string
	isDev     bool
	appURL    string
	appName   string
}

func NewNotificationService(apiKey, fromEmail, appURL, appName string, isDev bool) *NotificationService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &NotificationService{
		client:    client,
		fromEmail: fromEmail,
		isDev:     isDev,
		appURL:    appURL,
		appName:   appName,
	}
}

func (s *NotificationService) NotifyCelebration(ctx context.Context, c Celebration) error {
	if c.User == nil || c.User.Email == nil || *c.User.Email == "" {
		slog.Debug("celebration not sent, user has no email", "goal_unlocked", c.GoalUnlocked, "leveled_up", c.LeveledUp)
		return nil
	}
	to := *c.User.Email

	subject, body := celebrationTemplate(c, s.appURL, s.appName)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "celebration", "to", to, "subject", subject)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err == nil {
		slog.Info("email sent", "type", "celebration", "to", to)
	}
	return err
}
