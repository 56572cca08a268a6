package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/event-planner-api/internal/dto"
	"github.com/noah-isme/event-planner-api/internal/models"
)

type dashboardEventReader interface {
	RecentForPlanner(ctx context.Context, planner *models.Staff, limit int) ([]models.Event, error)
	ListForPlanner(ctx context.Context, planner *models.Staff) ([]models.Event, error)
	CountsByStatus(ctx context.Context, planner *models.Staff) (map[models.EventStatus]int, error)
	Pending(ctx context.Context) ([]models.Event, error)
	FilterAll(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
}

type unreadCounter interface {
	UnreadCount(ctx context.Context, recipient *models.Staff) (int, error)
}

type staffLister interface {
	List(ctx context.Context) ([]models.Staff, error)
	ListByRole(ctx context.Context, role models.StaffRole) ([]models.Staff, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL    time.Duration
	RecentLimit int
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Events        dashboardEventReader
	Notifications unreadCounter
	Staff         staffLister
	Cache         *CacheService
	Logger        *zap.Logger
	Config        DashboardServiceConfig
}

// DashboardService composes the planner and admin landing payloads.
type DashboardService struct {
	events        dashboardEventReader
	notifications unreadCounter
	staff         staffLister
	cache         *CacheService
	logger        *zap.Logger
	cfg           DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = defaultRecentLimit
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		events:        params.Events,
		notifications: params.Notifications,
		staff:         params.Staff,
		cache:         params.Cache,
		logger:        logger,
		cfg:           cfg,
	}
}

// Planner returns the planner dashboard and whether the statistics came from cache.
func (s *DashboardService) Planner(ctx context.Context, planner *models.Staff) (*dto.PlannerDashboard, bool, error) {
	stats, hit, err := s.plannerStats(ctx, planner)
	if err != nil {
		return nil, false, err
	}
	unread, err := s.notifications.UnreadCount(ctx, planner)
	if err != nil {
		return nil, false, err
	}
	recent, err := s.events.RecentForPlanner(ctx, planner, s.cfg.RecentLimit)
	if err != nil {
		return nil, false, err
	}
	all, err := s.events.ListForPlanner(ctx, planner)
	if err != nil {
		return nil, false, err
	}

	return &dto.PlannerDashboard{
		Staff: models.StaffInfo{
			ID:    planner.ID,
			Email: planner.Email,
			Name:  planner.Name,
			Role:  planner.Role,
		},
		Stats:        *stats,
		UnreadCount:  unread,
		RecentEvents: recent,
		AllEvents:    all,
	}, hit, nil
}

// Admin returns the admin dashboard with the all-events list narrowed by filter.
func (s *DashboardService) Admin(ctx context.Context, filter models.EventFilter) (*dto.AdminDashboard, error) {
	pending, err := s.events.Pending(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.events.FilterAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	staff, err := s.staff.List(ctx)
	if err != nil {
		return nil, err
	}
	planners, err := s.staff.ListByRole(ctx, models.RolePlanner)
	if err != nil {
		return nil, err
	}

	return &dto.AdminDashboard{
		PendingEvents: pending,
		PendingCount:  len(pending),
		AllEvents:     all,
		Staff:         staff,
		Planners:      planners,
		Statuses:      models.EventStatuses,
		Categories:    models.EventCategories,
	}, nil
}

func (s *DashboardService) plannerStats(ctx context.Context, planner *models.Staff) (*dto.PlannerStats, bool, error) {
	cacheable := planner != nil && !planner.Transient
	key := ""
	if cacheable {
		key = PlannerStatsKey(planner.ID)
		var cached dto.PlannerStats
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	counts, err := s.events.CountsByStatus(ctx, planner)
	if err != nil {
		return nil, false, err
	}
	stats := &dto.PlannerStats{
		DraftEvents:     counts[models.EventStatusDraft],
		PendingEvents:   counts[models.EventStatusPending],
		PublishedEvents: counts[models.EventStatusPublished],
	}
	for _, total := range counts {
		stats.TotalEvents += total
	}

	if cacheable {
		if err := s.cache.Set(ctx, key, stats, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return stats, false, nil
}
