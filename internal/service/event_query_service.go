package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/event-planner-api/internal/models"
	appErrors "github.com/noah-isme/event-planner-api/pkg/errors"
)

const defaultRecentLimit = 10

type eventQueryRepository interface {
	Filter(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
	Count(ctx context.Context, filter models.EventFilter) (int, error)
	CountByStatus(ctx context.Context, plannerID string) (map[models.EventStatus]int, error)
}

// EventQueryService answers listing and counting questions, always scoped to the caller.
type EventQueryService struct {
	repo   eventQueryRepository
	logger *zap.Logger
}

// NewEventQueryService constructs the query layer.
func NewEventQueryService(repo eventQueryRepository, logger *zap.Logger) *EventQueryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventQueryService{repo: repo, logger: logger}
}

// ListForPlanner returns every event owned by planner, newest first.
func (s *EventQueryService) ListForPlanner(ctx context.Context, planner *models.Staff) ([]models.Event, error) {
	return s.FilterForPlanner(ctx, planner, models.EventFilter{})
}

// RecentForPlanner returns planner's newest events.
func (s *EventQueryService) RecentForPlanner(ctx context.Context, planner *models.Staff, limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return s.FilterForPlanner(ctx, planner, models.EventFilter{Limit: limit})
}

// FilterForPlanner applies filter to planner's own events. The planner criterion always
// comes from the caller, never from the filter.
func (s *EventQueryService) FilterForPlanner(ctx context.Context, planner *models.Staff, filter models.EventFilter) ([]models.Event, error) {
	if planner == nil || planner.Transient {
		return []models.Event{}, nil
	}
	filter.PlannerID = planner.ID
	return s.filter(ctx, filter)
}

// CountByPlanner returns the number of events planner owns.
func (s *EventQueryService) CountByPlanner(ctx context.Context, planner *models.Staff) (int, error) {
	if planner == nil || planner.Transient {
		return 0, nil
	}
	return s.count(ctx, models.EventFilter{PlannerID: planner.ID})
}

// CountByPlannerAndStatus returns the number of planner's events in status.
func (s *EventQueryService) CountByPlannerAndStatus(ctx context.Context, planner *models.Staff, status models.EventStatus) (int, error) {
	if planner == nil || planner.Transient {
		return 0, nil
	}
	return s.count(ctx, models.EventFilter{PlannerID: planner.ID, Status: &status})
}

// CountsByStatus returns planner's event counts grouped by status in one query.
func (s *EventQueryService) CountsByStatus(ctx context.Context, planner *models.Staff) (map[models.EventStatus]int, error) {
	if planner == nil || planner.Transient {
		return map[models.EventStatus]int{}, nil
	}
	counts, err := s.repo.CountByStatus(ctx, planner.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count events")
	}
	return counts, nil
}

// FilterAll applies filter across every planner.
func (s *EventQueryService) FilterAll(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	return s.filter(ctx, filter)
}

// Pending returns the admin review queue.
func (s *EventQueryService) Pending(ctx context.Context) ([]models.Event, error) {
	status := models.EventStatusPending
	return s.filter(ctx, models.EventFilter{Status: &status})
}

// CountAssigned returns the number of events owned by staffID.
func (s *EventQueryService) CountAssigned(ctx context.Context, staffID string) (int, error) {
	if staffID == "" {
		return 0, nil
	}
	return s.count(ctx, models.EventFilter{PlannerID: staffID})
}

func (s *EventQueryService) filter(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	events, err := s.repo.Filter(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	return events, nil
}

func (s *EventQueryService) count(ctx context.Context, filter models.EventFilter) (int, error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count events")
	}
	return total, nil
}
