package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hjalloh/campsite/internal/config"
	"github.com/hjalloh/campsite/internal/events"
)

// NotificationService delivers visitor notifications for booking events.
// Delivery is driven by the notification worker, not by the dispatcher
// directly, so slow channels never block the request path.
type NotificationService struct {
	logger *zap.Logger
	cfg    config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{logger: logger, cfg: cfg}
}

// Notify delivers the notifications configured for the given event type.
func (n *NotificationService) Notify(ctx context.Context, event events.Event) error {
	switch event.Type {
	case events.EventBookingCreated, events.EventBookingCancelled:
		n.sendEmail(ctx, event)
		n.sendWebhook(ctx, event)
	case events.EventBookingModified:
		n.sendWebhook(ctx, event)
	default:
		return fmt.Errorf("unhandled event type %q", event.Type)
	}
	return nil
}

func (n *NotificationService) sendEmail(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	// SMTP delivery is stubbed to a log line until an email provider is wired.
	n.logger.Info("email notification",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("reference_key", event.ReferenceKey),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhook(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Info("webhook notification",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("reference_key", event.ReferenceKey),
		zap.String("event_type", string(event.Type)))
}
