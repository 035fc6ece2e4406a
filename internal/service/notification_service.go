package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/jobboard/internal/config"
	"github.com/spec-kit/jobboard/internal/events"
)

// NotificationService turns domain events into outbound notifications. Email
// and webhook delivery are stubs that only log what would be sent.
type NotificationService struct {
	logger *zap.Logger
	cfg    config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{logger: logger, cfg: cfg}
}

// EventTypes lists the events the service reacts to.
func (n *NotificationService) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventJobCreated,
		events.EventJobUpdated,
		events.EventJobDeleted,
		events.EventApplicationSubmitted,
	}
}

// Handle processes one event. Unknown event types are ignored.
func (n *NotificationService) Handle(ctx context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("job_id", event.JobID),
		zap.String("actor_id", event.Actor.ID),
		zap.String("actor_role", string(event.Actor.Role)),
	}

	switch event.Type {
	case events.EventJobCreated, events.EventJobUpdated, events.EventJobDeleted:
		n.logger.Info("job changed", fields...)
		n.sendWebhook(ctx, event)
	case events.EventApplicationSubmitted:
		if payload, ok := event.Payload.(events.ApplicationSubmittedPayload); ok {
			fields = append(fields, zap.String("application_id", payload.ApplicationID))
		}
		n.logger.Info("application submitted", fields...)
		n.sendEmail(ctx, event)
		n.sendWebhook(ctx, event)
	}
	return nil
}

func (n *NotificationService) sendEmail(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("email notification",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("job_id", event.JobID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhook(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("webhook notification",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("job_id", event.JobID),
		zap.String("event_type", string(event.Type)))
}
