package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/event-planner-api/internal/models"
)

var eventCols = []string{"id", "planner_id", "planner_name", "title", "event_date", "venue", "category", "description", "status", "rejection_reason", "created_at", "submitted_at", "published_at", "updated_at"}

func eventRow(id, plannerID string, status models.EventStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(eventCols).
		AddRow(id, plannerID, "Event Planner", "Launch", now, "Hall A", "CONFERENCE", "Product launch", string(status), nil, now, nil, nil, now)
}

func TestEventFindByIDScopedToPlanner(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("JOIN staff s ON s.id = e.planner_id WHERE e.id = $1 AND e.planner_id = $2")).
		WithArgs("e1", "p1").
		WillReturnRows(eventRow("e1", "p1", models.EventStatusDraft))

	event, err := repo.FindByID(context.Background(), "e1", models.EventScope{PlannerID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "Event Planner", event.PlannerName)
	assert.Equal(t, models.CategoryConference, event.Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventFindByIDUnscoped(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE e.id = $1") + "$").
		WithArgs("e1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "e1", models.Unscoped)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventMutateCommits(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE e.id = $1 AND e.planner_id = $2 FOR UPDATE OF e")).
		WithArgs("e1", "p1").
		WillReturnRows(eventRow("e1", "p1", models.EventStatusDraft))
	mock.ExpectExec("UPDATE events SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	event, err := repo.Mutate(context.Background(), "e1", models.EventScope{PlannerID: "p1"}, func(e *models.Event) error {
		e.Status = models.EventStatusPending
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusPending, event.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventMutateRollsBackWhenTransitionFails(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF e")).
		WithArgs("e1").
		WillReturnRows(eventRow("e1", "p1", models.EventStatusCompleted))
	mock.ExpectRollback()

	denied := errors.New("denied")
	_, err := repo.Mutate(context.Background(), "e1", models.Unscoped, func(e *models.Event) error { return denied })
	assert.ErrorIs(t, err, denied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventMutateMissingRowRollsBack(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF e")).
		WithArgs("e1", "intruder").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	called := false
	_, err := repo.Mutate(context.Background(), "e1", models.EventScope{PlannerID: "intruder"}, func(e *models.Event) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRemove(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF e")).
		WithArgs("e1", "p1").
		WillReturnRows(eventRow("e1", "p1", models.EventStatusDraft))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM events WHERE id = $1")).
		WithArgs("e1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	event, err := repo.Remove(context.Background(), "e1", models.EventScope{PlannerID: "p1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "e1", event.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventFilterBuildsConjunctiveQuery(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	status := models.EventStatusPending
	category := models.CategoryWorkshop
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE e.planner_id = $1 AND e.status = $2 AND e.category = $3 AND e.event_date >= $4 AND e.event_date <= $5 ORDER BY e.created_at DESC, e.id DESC LIMIT 10")).
		WithArgs("p1", status, category, from, to).
		WillReturnRows(eventRow("e1", "p1", status))

	events, err := repo.Filter(context.Background(), models.EventFilter{
		PlannerID: "p1",
		Status:    &status,
		Category:  &category,
		FromDate:  &from,
		ToDate:    &to,
		Limit:     10,
	})
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventFilterWithoutCriteria(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("JOIN staff s ON s.id = e.planner_id ORDER BY e.created_at DESC, e.id DESC") + "$").
		WillReturnRows(sqlmock.NewRows(eventCols))

	events, err := repo.Filter(context.Background(), models.EventFilter{})
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventCountAndGroupedCounts(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM events e WHERE e.planner_id = $1")).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, COUNT(*) AS total FROM events WHERE planner_id = $1 GROUP BY status")).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"status", "total"}).AddRow("DRAFT", 3).AddRow("PENDING", 1))

	total, err := repo.Count(context.Background(), models.EventFilter{PlannerID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, 4, total)

	counts, err := repo.CountByStatus(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 3, counts[models.EventStatusDraft])
	assert.Equal(t, 1, counts[models.EventStatusPending])
	assert.Zero(t, counts[models.EventStatusPublished])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectExec("INSERT INTO events").WillReturnResult(sqlmock.NewResult(1, 1))

	event := &models.Event{PlannerID: "p1", Title: "Launch", Status: models.EventStatusDraft}
	require.NoError(t, repo.Create(context.Background(), event))
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, event.CreatedAt, event.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
