package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/event-planner-api/internal/models"
	"github.com/noah-isme/event-planner-api/pkg/config"
	"github.com/noah-isme/event-planner-api/pkg/jobs"
	"github.com/noah-isme/event-planner-api/pkg/push"
)

const pushJobType = "notification.push"

// NotificationPusher fans persisted notifications out to realtime channels on a worker pool.
type NotificationPusher struct {
	publisher push.Publisher
	queue     *jobs.Queue
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewNotificationPusher builds the pusher. A nil publisher disables delivery.
func NewNotificationPusher(publisher push.Publisher, cfg config.PushConfig, metrics *MetricsService, logger *zap.Logger) *NotificationPusher {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &NotificationPusher{publisher: publisher, metrics: metrics, logger: logger}
	if publisher != nil {
		p.queue = jobs.NewQueue("notification-push", p.handle, jobs.QueueConfig{
			Workers:    cfg.Workers,
			MaxRetries: cfg.Retries,
			RetryDelay: 500 * time.Millisecond,
			Logger:     logger,
		})
	}
	return p
}

// Enabled reports whether notifications will be pushed.
func (p *NotificationPusher) Enabled() bool {
	return p != nil && p.queue != nil
}

// Start launches the worker pool.
func (p *NotificationPusher) Start(ctx context.Context) {
	if p.Enabled() {
		p.queue.Start(ctx)
	}
}

// Stop drains the worker pool.
func (p *NotificationPusher) Stop() {
	if p.Enabled() {
		p.queue.Stop()
	}
}

// Dispatch enqueues n for delivery. Failures are logged only.
func (p *NotificationPusher) Dispatch(n *models.Notification) {
	if !p.Enabled() || n == nil {
		return
	}
	copied := *n
	if err := p.queue.Enqueue(jobs.Job{ID: n.ID, Type: pushJobType, Payload: &copied}); err != nil {
		p.metrics.RecordPush(false)
		p.logger.Warn("notification push not queued", zap.String("notification_id", n.ID), zap.Error(err))
	}
}

func (p *NotificationPusher) handle(ctx context.Context, job jobs.Job) error {
	n, ok := job.Payload.(*models.Notification)
	if !ok {
		return fmt.Errorf("unexpected payload %T for job %s", job.Payload, job.ID)
	}
	msg := push.Message{
		Type:  string(n.Type),
		Title: n.Title,
		Body:  n.Message,
		Data:  map[string]interface{}{"notification_id": n.ID},
	}
	if n.EventID != nil {
		msg.Data["event_id"] = *n.EventID
	}
	if err := p.publisher.Publish(ctx, n.RecipientID, msg); err != nil {
		p.metrics.RecordPush(false)
		return err
	}
	p.metrics.RecordPush(true)
	return nil
}
