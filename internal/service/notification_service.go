package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/event-planner-api/internal/models"
	appErrors "github.com/noah-isme/event-planner-api/pkg/errors"
)

const (
	latestNotificationsLimit = 20
	maxNotificationMessage   = 1000
	defaultRejectionReason   = "No reason provided"
)

type notificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByRecipient(ctx context.Context, recipientID string, limit int) ([]models.Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int, error)
	MarkRead(ctx context.Context, id, recipientID string) error
}

type notificationDispatcher interface {
	Dispatch(n *models.Notification)
}

// NotificationService writes and reads the staff notification outbox.
type NotificationService struct {
	repo       notificationRepository
	dispatcher notificationDispatcher
	metrics    *MetricsService
	logger     *zap.Logger
}

// NewNotificationService constructs the service. dispatcher may be nil when realtime push is off.
func NewNotificationService(repo notificationRepository, dispatcher notificationDispatcher, metrics *MetricsService, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{repo: repo, dispatcher: dispatcher, metrics: metrics, logger: logger}
}

// NotifyApproved tells the owning planner their event was published.
func (s *NotificationService) NotifyApproved(ctx context.Context, event *models.Event, notes string) error {
	message := fmt.Sprintf("Event '%s' was approved", event.Title)
	if notes = strings.TrimSpace(notes); notes != "" {
		message += ": " + notes
	}
	return s.send(ctx, event, "Event Approved", message, models.NotificationApproved)
}

// NotifyRejected tells the owning planner their event was rejected and why.
func (s *NotificationService) NotifyRejected(ctx context.Context, event *models.Event, reason string) error {
	if reason = strings.TrimSpace(reason); reason == "" {
		reason = defaultRejectionReason
	}
	message := fmt.Sprintf("Event '%s' was rejected: %s", event.Title, reason)
	return s.send(ctx, event, "Event Rejected", message, models.NotificationRejected)
}

func (s *NotificationService) send(ctx context.Context, event *models.Event, title, message string, kind models.NotificationType) error {
	eventID := event.ID
	n := &models.Notification{
		RecipientID: event.PlannerID,
		EventID:     &eventID,
		Title:       title,
		Message:     truncateRunes(message, maxNotificationMessage),
		Type:        kind,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.metrics.RecordNotification(string(kind), false)
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create notification")
	}
	s.metrics.RecordNotification(string(kind), true)
	if s.dispatcher != nil {
		s.dispatcher.Dispatch(n)
	}
	return nil
}

// UnreadCount returns the number of unread notifications for recipient.
func (s *NotificationService) UnreadCount(ctx context.Context, recipient *models.Staff) (int, error) {
	if recipient == nil || recipient.Transient {
		return 0, nil
	}
	total, err := s.repo.CountUnread(ctx, recipient.ID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count notifications")
	}
	return total, nil
}

// Latest returns the newest notifications for recipient.
func (s *NotificationService) Latest(ctx context.Context, recipient *models.Staff) ([]models.Notification, error) {
	if recipient == nil || recipient.Transient {
		return []models.Notification{}, nil
	}
	items, err := s.repo.ListByRecipient(ctx, recipient.ID, latestNotificationsLimit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notifications")
	}
	return items, nil
}

// MarkRead flags one of recipient's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, recipient *models.Staff, id string) error {
	if recipient == nil || recipient.Transient {
		return appErrors.Clone(appErrors.ErrNotFound, "notification not found")
	}
	if err := s.repo.MarkRead(ctx, id, recipient.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "notification not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark notification read")
	}
	return nil
}

func truncateRunes(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}
