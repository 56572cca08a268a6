package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/event-planner-api/internal/dto"
	"github.com/noah-isme/event-planner-api/internal/models"
	appErrors "github.com/noah-isme/event-planner-api/pkg/errors"
)

const (
	msgEventNotYours     = "event not found or not yours"
	msgEventNotFound     = "event not found"
	msgRegisteredStaff   = "a registered staff account is required"
	maxRejectionReason   = 1000
	maxApprovalNotes     = 500
	metricsActionCreate  = "create"
	metricsStatusDeleted = "DELETED"
)

type eventRepository interface {
	FindByID(ctx context.Context, id string, scope models.EventScope) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Mutate(ctx context.Context, id string, scope models.EventScope, fn func(*models.Event) error) (*models.Event, error)
	Remove(ctx context.Context, id string, scope models.EventScope, check func(*models.Event) error) (*models.Event, error)
}

type eventNotifier interface {
	NotifyApproved(ctx context.Context, event *models.Event, notes string) error
	NotifyRejected(ctx context.Context, event *models.Event, reason string) error
}

var auditActions = map[LifecycleAction]string{
	ActionSubmit:   models.AuditActionEventSubmit,
	ActionApprove:  models.AuditActionEventApprove,
	ActionReject:   models.AuditActionEventReject,
	ActionCancel:   models.AuditActionEventCancel,
	ActionComplete: models.AuditActionEventComplete,
	ActionUpdate:   models.AuditActionEventUpdate,
	ActionDelete:   models.AuditActionEventDelete,
}

// EventService drives events through their lifecycle.
type EventService struct {
	repo      eventRepository
	lifecycle *Lifecycle
	notifier  eventNotifier
	cache     *CacheService
	audit     auditRecorder
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// EventServiceDeps bundles the optional collaborators of EventService.
type EventServiceDeps struct {
	Notifier eventNotifier
	Cache    *CacheService
	Audit    auditRecorder
	Metrics  *MetricsService
}

// NewEventService constructs the lifecycle orchestrator. A nil lifecycle is permissive.
func NewEventService(repo eventRepository, lifecycle *Lifecycle, deps EventServiceDeps, validate *validator.Validate, logger *zap.Logger) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if lifecycle == nil {
		lifecycle = NewLifecycle("")
	}
	registerValidations(validate)
	return &EventService{
		repo:      repo,
		lifecycle: lifecycle,
		notifier:  deps.Notifier,
		cache:     deps.Cache,
		audit:     deps.Audit,
		metrics:   deps.Metrics,
		validator: validate,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateAsDraft stores a new DRAFT event owned by planner.
func (s *EventService) CreateAsDraft(ctx context.Context, planner *models.Staff, form dto.EventForm) (*models.Event, error) {
	date, category, err := s.validateForm(form)
	if err != nil {
		return nil, err
	}
	if err := requireRegistered(planner); err != nil {
		return nil, err
	}

	event := &models.Event{
		PlannerID:   planner.ID,
		PlannerName: planner.Name,
		Title:       strings.TrimSpace(form.Title),
		EventDate:   date,
		Venue:       strings.TrimSpace(form.Venue),
		Category:    category,
		Description: strings.TrimSpace(form.Description),
		Status:      models.EventStatusDraft,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create event")
	}

	s.invalidateStats(ctx, event.PlannerID)
	s.metrics.RecordTransition(metricsActionCreate, string(event.Status))
	s.record(ctx, planner, models.AuditActionEventCreate, event.ID, nil, event)
	return event, nil
}

// CreateAndSubmit stores a new event and immediately submits it for approval.
func (s *EventService) CreateAndSubmit(ctx context.Context, planner *models.Staff, form dto.EventForm) (*models.Event, error) {
	event, err := s.CreateAsDraft(ctx, planner, form)
	if err != nil {
		return nil, err
	}
	return s.SubmitForApproval(ctx, planner, event.ID)
}

// SubmitForApproval moves one of planner's events to PENDING.
func (s *EventService) SubmitForApproval(ctx context.Context, planner *models.Staff, id string) (*models.Event, error) {
	if err := requireRegistered(planner); err != nil {
		return nil, err
	}
	return s.transition(ctx, planner, id, plannerScope(planner), ActionSubmit, func(e *models.Event, now time.Time) {
		e.SubmittedAt = &now
	})
}

// UpdateEvent overwrites the editable fields of one of planner's events. The status is unchanged.
func (s *EventService) UpdateEvent(ctx context.Context, planner *models.Staff, id string, form dto.EventForm) (*models.Event, error) {
	date, category, err := s.validateForm(form)
	if err != nil {
		return nil, err
	}
	if err := requireRegistered(planner); err != nil {
		return nil, err
	}
	return s.transition(ctx, planner, id, plannerScope(planner), ActionUpdate, func(e *models.Event, _ time.Time) {
		e.Title = strings.TrimSpace(form.Title)
		e.EventDate = date
		e.Venue = strings.TrimSpace(form.Venue)
		e.Category = category
		e.Description = strings.TrimSpace(form.Description)
	})
}

// Cancel moves one of planner's events to CANCELLED.
func (s *EventService) Cancel(ctx context.Context, planner *models.Staff, id string) (*models.Event, error) {
	if err := requireRegistered(planner); err != nil {
		return nil, err
	}
	return s.transition(ctx, planner, id, plannerScope(planner), ActionCancel, nil)
}

// DeleteEvent permanently removes one of planner's events.
func (s *EventService) DeleteEvent(ctx context.Context, planner *models.Staff, id string) error {
	if err := requireRegistered(planner); err != nil {
		return err
	}
	event, err := s.repo.Remove(ctx, id, plannerScope(planner), func(e *models.Event) error {
		return s.lifecycle.Check(ActionDelete, e.Status)
	})
	if err != nil {
		return s.translate(err, msgEventNotYours, "failed to delete event")
	}

	s.invalidateStats(ctx, event.PlannerID)
	s.metrics.RecordTransition(string(ActionDelete), metricsStatusDeleted)
	s.record(ctx, planner, auditActions[ActionDelete], event.ID, event, nil)
	return nil
}

// Approve publishes a pending event and notifies its planner.
func (s *EventService) Approve(ctx context.Context, admin *models.Staff, id, notes string) (*models.Event, error) {
	if len([]rune(notes)) > maxApprovalNotes {
		return nil, appErrors.Clone(appErrors.ErrValidation, "approval notes are too long")
	}
	if err := requireAdmin(admin); err != nil {
		return nil, err
	}
	event, err := s.transition(ctx, admin, id, models.Unscoped, ActionApprove, func(e *models.Event, now time.Time) {
		e.PublishedAt = &now
	})
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyApproved(ctx, event, notes); err != nil {
			s.logger.Warn("failed to notify planner of approval", zap.String("event_id", event.ID), zap.Error(err))
		}
	}
	return event, nil
}

// Reject marks an event REJECTED with a mandatory reason and notifies its planner.
func (s *EventService) Reject(ctx context.Context, admin *models.Staff, id, reason string) (*models.Event, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "rejection reason is required")
	}
	if len([]rune(reason)) > maxRejectionReason {
		return nil, appErrors.Clone(appErrors.ErrValidation, "rejection reason is too long")
	}
	if err := requireAdmin(admin); err != nil {
		return nil, err
	}
	event, err := s.transition(ctx, admin, id, models.Unscoped, ActionReject, func(e *models.Event, _ time.Time) {
		e.RejectionReason = &reason
	})
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyRejected(ctx, event, reason); err != nil {
			s.logger.Warn("failed to notify planner of rejection", zap.String("event_id", event.ID), zap.Error(err))
		}
	}
	return event, nil
}

// Complete marks an event COMPLETED.
func (s *EventService) Complete(ctx context.Context, admin *models.Staff, id string) (*models.Event, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, err
	}
	return s.transition(ctx, admin, id, models.Unscoped, ActionComplete, nil)
}

// GetForPlanner returns an event only when planner owns it. Missing and foreign events look the same.
func (s *EventService) GetForPlanner(ctx context.Context, planner *models.Staff, id string) (*models.Event, error) {
	if planner == nil || planner.Transient {
		return nil, appErrors.Clone(appErrors.ErrNotFound, msgEventNotYours)
	}
	event, err := s.repo.FindByID(ctx, id, plannerScope(planner))
	if err != nil {
		return nil, s.translate(err, msgEventNotYours, "failed to load event")
	}
	return event, nil
}

// GetByID returns any event regardless of owner.
func (s *EventService) GetByID(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id, models.Unscoped)
	if err != nil {
		return nil, s.translate(err, msgEventNotFound, "failed to load event")
	}
	return event, nil
}

func (s *EventService) transition(ctx context.Context, actor *models.Staff, id string, scope models.EventScope, action LifecycleAction, apply func(*models.Event, time.Time)) (*models.Event, error) {
	var before models.Event
	event, err := s.repo.Mutate(ctx, id, scope, func(e *models.Event) error {
		if err := s.lifecycle.Check(action, e.Status); err != nil {
			return err
		}
		before = *e
		if target, ok := s.lifecycle.Target(action); ok {
			e.Status = target
			if action != ActionReject {
				e.RejectionReason = nil
			}
		}
		if apply != nil {
			apply(e, s.now())
		}
		return nil
	})
	if err != nil {
		notFound := msgEventNotFound
		if scope.PlannerID != "" {
			notFound = msgEventNotYours
		}
		return nil, s.translate(err, notFound, "failed to "+string(action)+" event")
	}

	s.invalidateStats(ctx, event.PlannerID)
	s.metrics.RecordTransition(string(action), string(event.Status))
	s.record(ctx, actor, auditActions[action], event.ID, &before, event)
	return event, nil
}

func (s *EventService) validateForm(form dto.EventForm) (time.Time, models.EventCategory, error) {
	if err := s.validator.Struct(form); err != nil {
		return time.Time{}, "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	date, err := time.Parse(dto.DateLayout, form.EventDate)
	if err != nil {
		return time.Time{}, "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event date")
	}
	category := models.EventCategory(strings.ToUpper(strings.TrimSpace(form.Category)))
	return date, category, nil
}

func (s *EventService) translate(err error, notFound, internal string) error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, internal)
}

func (s *EventService) invalidateStats(ctx context.Context, plannerID string) {
	_ = s.cache.Invalidate(ctx, PlannerStatsKey(plannerID))
}

func (s *EventService) record(ctx context.Context, actor *models.Staff, action, eventID string, before, after *models.Event) {
	if s.audit == nil {
		return
	}
	entry := &models.AuditLog{
		Action:     action,
		Resource:   models.AuditResourceEvent,
		ResourceID: &eventID,
		OldValues:  auditSnapshot(before),
		NewValues:  auditSnapshot(after),
	}
	if actor != nil && !actor.Transient {
		entry.ActorID = &actor.ID
	}
	if err := s.audit.CreateAuditLog(ctx, entry); err != nil {
		s.logger.Warn("failed to record event audit log", zap.String("action", action), zap.String("event_id", eventID), zap.Error(err))
	}
}

func auditSnapshot(event *models.Event) []byte {
	if event == nil {
		return nil
	}
	payload, err := json.Marshal(map[string]interface{}{
		"status":     event.Status,
		"title":      event.Title,
		"event_date": event.EventDate.Format(dto.DateLayout),
		"category":   event.Category,
	})
	if err != nil {
		return nil
	}
	return payload
}

func plannerScope(planner *models.Staff) models.EventScope {
	return models.EventScope{PlannerID: planner.ID}
}

func requireRegistered(staff *models.Staff) error {
	if staff == nil || staff.Transient || staff.ID == "" {
		return appErrors.Clone(appErrors.ErrForbidden, msgRegisteredStaff)
	}
	return nil
}

func requireAdmin(staff *models.Staff) error {
	if err := requireRegistered(staff); err != nil {
		return err
	}
	if !staff.IsAdmin() {
		return appErrors.Clone(appErrors.ErrForbidden, "admin role required")
	}
	return nil
}
