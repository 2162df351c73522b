package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/doutly/doutly-service/internal/config"
	"github.com/doutly/doutly-service/internal/domain"
	"github.com/doutly/doutly-service/internal/events"
	"github.com/doutly/doutly-service/internal/repository"
	apperrors "github.com/doutly/doutly-service/pkg/util"
)

// NotificationService turns workflow events into persisted dashboard
// notifications. Delivery is best effort: a failed insert is logged
// and the triggering operation is unaffected.
type NotificationService struct {
	dispatcher    events.Dispatcher
	notifications repository.NotificationRepository
	logger        *zap.Logger
	cfg           config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, notifications repository.NotificationRepository, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher:    dispatcher,
		notifications: notifications,
		logger:        logger,
		cfg:           cfg,
	}
}

// RegisterHandlers subscribes to workflow events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventDoubtSubmitted, n.handleDoubtSubmitted)
	n.dispatcher.Subscribe(events.EventDoubtAssigned, n.handleDoubtAssigned)
	n.dispatcher.Subscribe(events.EventDoubtResolved, n.handleDoubtResolved)
	n.dispatcher.Subscribe(events.EventLeadAssigned, n.handleLeadAssigned)
	n.dispatcher.Subscribe(events.EventLeadStatusChanged, n.handleLeadStatusChanged)
}

// ListForRecipient returns stored notifications for an email.
func (n *NotificationService) ListForRecipient(ctx context.Context, recipient string) ([]domain.Notification, error) {
	list, err := n.notifications.ListByRecipient(ctx, recipient, 0)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// MarkRead flags one of the recipient's notifications as read. Ids
// belonging to other recipients are indistinguishable from missing
// ones.
func (n *NotificationService) MarkRead(ctx context.Context, recipient, id string) error {
	if err := n.notifications.MarkRead(ctx, id, recipient); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (n *NotificationService) handleDoubtSubmitted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.DoubtSubmittedPayload)
	if !ok {
		return nil
	}
	n.store(ctx, payload.OwnerEmail, domain.NotificationDoubtSubmitted,
		fmt.Sprintf("Ticket %s submitted for %s", payload.TicketNumber, payload.Subject))
	n.sendEmailStub(event)
	return nil
}

func (n *NotificationService) handleDoubtAssigned(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.DoubtAssignedPayload)
	if !ok {
		return nil
	}
	n.store(ctx, payload.AssignedTo, domain.NotificationDoubtAssigned,
		fmt.Sprintf("Ticket %s assigned to you", payload.TicketNumber))
	n.store(ctx, payload.OwnerEmail, domain.NotificationDoubtAssigned,
		fmt.Sprintf("Ticket %s was picked up by a tutor", payload.TicketNumber))
	n.sendWebhookStub(event)
	return nil
}

func (n *NotificationService) handleDoubtResolved(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.DoubtResolvedPayload)
	if !ok {
		return nil
	}
	n.store(ctx, payload.OwnerEmail, domain.NotificationDoubtResolved,
		fmt.Sprintf("Ticket %s resolved", payload.TicketNumber))
	n.sendEmailStub(event)
	return nil
}

func (n *NotificationService) handleLeadAssigned(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.LeadAssignedPayload)
	if !ok {
		return nil
	}
	n.store(ctx, payload.AssignedTo, domain.NotificationLeadAssigned,
		fmt.Sprintf("Lead %s assigned to you at level %s", payload.LeadNumber, payload.AssignedLevel))
	n.sendWebhookStub(event)
	return nil
}

func (n *NotificationService) handleLeadStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.LeadStatusChangedPayload)
	if !ok {
		return nil
	}
	if payload.AssignedTo != nil {
		n.store(ctx, *payload.AssignedTo, domain.NotificationLeadStatusChanged,
			fmt.Sprintf("Lead %s moved to %s", payload.LeadNumber, payload.NewStatus))
	}
	n.sendWebhookStub(event)
	return nil
}

func (n *NotificationService) store(ctx context.Context, recipient string, kind domain.NotificationType, message string) {
	if strings.TrimSpace(recipient) == "" {
		return
	}
	record := &domain.Notification{
		Recipient: recipient,
		Type:      kind,
		Message:   message,
	}
	if err := n.notifications.Create(ctx, record); err != nil {
		n.logger.Warn("notification insert failed",
			zap.String("recipient", recipient),
			zap.String("type", string(kind)),
			zap.Error(err))
	}
}

func (n *NotificationService) sendEmailStub(event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookStub(event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}
