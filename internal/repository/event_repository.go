package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/event-planner-api/internal/models"
)

const eventSelect = `SELECT e.id, e.planner_id, s.name AS planner_name, e.title, e.event_date, e.venue, e.category, e.description, e.status, e.rejection_reason, e.created_at, e.submitted_at, e.published_at, e.updated_at FROM events e JOIN staff s ON s.id = e.planner_id`

// EventRepository provides database access for events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository creates a new instance of EventRepository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// FindByID returns the event with id visible under scope. Events outside the scope are reported as sql.ErrNoRows.
func (r *EventRepository) FindByID(ctx context.Context, id string, scope models.EventScope) (*models.Event, error) {
	query, args := scopedLookup(id, scope)
	var event models.Event
	if err := r.db.GetContext(ctx, &event, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find event by id: %w", err)
	}
	return &event, nil
}

// Create inserts a new event.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = event.CreatedAt

	const query = `INSERT INTO events (id, planner_id, title, event_date, venue, category, description, status, rejection_reason, created_at, submitted_at, published_at, updated_at) VALUES (:id, :planner_id, :title, :event_date, :venue, :category, :description, :status, :rejection_reason, :created_at, :submitted_at, :published_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// Mutate locks the event, applies fn and persists the result in one transaction.
// An error from fn aborts the transaction and is returned unchanged.
func (r *EventRepository) Mutate(ctx context.Context, id string, scope models.EventScope, fn func(*models.Event) error) (_ *models.Event, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin event transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	event, err := lockEvent(ctx, tx, id, scope)
	if err != nil {
		return nil, err
	}
	if err = fn(event); err != nil {
		return nil, err
	}
	event.UpdatedAt = time.Now().UTC()

	const update = `UPDATE events SET title = :title, event_date = :event_date, venue = :venue, category = :category, description = :description, status = :status, rejection_reason = :rejection_reason, submitted_at = :submitted_at, published_at = :published_at, updated_at = :updated_at WHERE id = :id`
	if _, err = tx.NamedExecContext(ctx, update, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit event transaction: %w", err)
	}
	return event, nil
}

// Remove locks the event, lets check veto the deletion and hard deletes it.
func (r *EventRepository) Remove(ctx context.Context, id string, scope models.EventScope, check func(*models.Event) error) (_ *models.Event, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin event transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	event, err := lockEvent(ctx, tx, id, scope)
	if err != nil {
		return nil, err
	}
	if check != nil {
		if err = check(event); err != nil {
			return nil, err
		}
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, event.ID); err != nil {
		return nil, fmt.Errorf("delete event: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit event transaction: %w", err)
	}
	return event, nil
}

// Filter returns events matching every populated field of filter, newest first.
func (r *EventRepository) Filter(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	where, args := filterConditions(filter)
	query := eventSelect + where + ` ORDER BY e.created_at DESC, e.id DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	events := make([]models.Event, 0)
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("filter events: %w", err)
	}
	return events, nil
}

// Count returns the number of events matching filter. Limit is ignored.
func (r *EventRepository) Count(ctx context.Context, filter models.EventFilter) (int, error) {
	where, args := filterConditions(filter)
	query := `SELECT COUNT(*) FROM events e` + where
	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return total, nil
}

// CountByStatus groups a planner's events by status.
func (r *EventRepository) CountByStatus(ctx context.Context, plannerID string) (map[models.EventStatus]int, error) {
	const query = `SELECT status, COUNT(*) AS total FROM events WHERE planner_id = $1 GROUP BY status`
	var rows []struct {
		Status models.EventStatus `db:"status"`
		Total  int                `db:"total"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, plannerID); err != nil {
		return nil, fmt.Errorf("count events by status: %w", err)
	}
	counts := make(map[models.EventStatus]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func scopedLookup(id string, scope models.EventScope) (string, []interface{}) {
	query := eventSelect + ` WHERE e.id = $1`
	args := []interface{}{id}
	if scope.PlannerID != "" {
		query += ` AND e.planner_id = $2`
		args = append(args, scope.PlannerID)
	}
	return query, args
}

func lockEvent(ctx context.Context, tx *sqlx.Tx, id string, scope models.EventScope) (*models.Event, error) {
	query, args := scopedLookup(id, scope)
	var event models.Event
	if err := tx.GetContext(ctx, &event, query+` FOR UPDATE OF e`, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("lock event: %w", err)
	}
	return &event, nil
}

func filterConditions(filter models.EventFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.PlannerID != "" {
		conditions = append(conditions, fmt.Sprintf("e.planner_id = $%d", len(args)+1))
		args = append(args, filter.PlannerID)
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("e.status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}
	if filter.Category != nil {
		conditions = append(conditions, fmt.Sprintf("e.category = $%d", len(args)+1))
		args = append(args, *filter.Category)
	}
	if filter.FromDate != nil {
		conditions = append(conditions, fmt.Sprintf("e.event_date >= $%d", len(args)+1))
		args = append(args, *filter.FromDate)
	}
	if filter.ToDate != nil {
		conditions = append(conditions, fmt.Sprintf("e.event_date <= $%d", len(args)+1))
		args = append(args, *filter.ToDate)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}
