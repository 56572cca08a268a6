package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/event-planner-api/internal/dto"
	"github.com/noah-isme/event-planner-api/internal/models"
	appErrors "github.com/noah-isme/event-planner-api/pkg/errors"
)

type fakePlannerEvents struct {
	calls      []string
	lastForm   dto.EventForm
	lastID     string
	lastFilter models.EventFilter
	err        error
}

func (f *fakePlannerEvents) result(call string, status models.EventStatus) (*models.Event, error) {
	f.calls = append(f.calls, call)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Event{ID: "e1", Title: f.lastForm.Title, Status: status}, nil
}

func (f *fakePlannerEvents) CreateAsDraft(_ context.Context, _ *models.Staff, form dto.EventForm) (*models.Event, error) {
	f.lastForm = form
	return f.result("draft", models.EventStatusDraft)
}

func (f *fakePlannerEvents) CreateAndSubmit(_ context.Context, _ *models.Staff, form dto.EventForm) (*models.Event, error) {
	f.lastForm = form
	return f.result("submit", models.EventStatusPending)
}

func (f *fakePlannerEvents) SubmitForApproval(_ context.Context, _ *models.Staff, id string) (*models.Event, error) {
	f.lastID = id
	return f.result("submitExisting", models.EventStatusPending)
}

func (f *fakePlannerEvents) UpdateEvent(_ context.Context, _ *models.Staff, id string, form dto.EventForm) (*models.Event, error) {
	f.lastID, f.lastForm = id, form
	return f.result("update", models.EventStatusDraft)
}

func (f *fakePlannerEvents) Cancel(_ context.Context, _ *models.Staff, id string) (*models.Event, error) {
	f.lastID = id
	return f.result("cancel", models.EventStatusCancelled)
}

func (f *fakePlannerEvents) DeleteEvent(_ context.Context, _ *models.Staff, id string) error {
	f.lastID = id
	_, err := f.result("delete", "")
	return err
}

func (f *fakePlannerEvents) GetForPlanner(_ context.Context, _ *models.Staff, id string) (*models.Event, error) {
	f.lastID = id
	return f.result("get", models.EventStatusDraft)
}

func (f *fakePlannerEvents) FilterForPlanner(_ context.Context, _ *models.Staff, filter models.EventFilter) ([]models.Event, error) {
	f.lastFilter = filter
	return []models.Event{{ID: "e1"}}, nil
}

func TestPlannerCreateHonoursAction(t *testing.T) {
	fake := &fakePlannerEvents{}
	handler := NewPlannerEventHandler(fake, fake)
	form := dto.EventForm{Title: "Gala", EventDate: "2026-12-01", Venue: "Hall", Category: "SOCIAL", Description: "Party"}

	c, rec := newContext(http.MethodPost, "/planner/events", dto.CreateEventRequest{EventForm: form, Action: "Submit"}, testPlanner)
	handler.Create(c)
	require.Equal(t, http.StatusCreated, rec.Code)
	envelope := decode(t, rec)
	assert.Equal(t, "PENDING", envelope.Data["status"])
	assert.Equal(t, models.NextPlannerEvents, envelope.Meta["next"])

	c, rec = newContext(http.MethodPost, "/planner/events", dto.CreateEventRequest{EventForm: form}, testPlanner)
	handler.Create(c)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []string{"submit", "draft"}, fake.calls)
	assert.Equal(t, "Gala", fake.lastForm.Title)
}

func TestPlannerTransitionsCarryNavigation(t *testing.T) {
	fake := &fakePlannerEvents{}
	handler := NewPlannerEventHandler(fake, fake)

	c, rec := newContext(http.MethodPost, "/planner/events/"+testEventID+"/cancel", nil, testPlanner)
	c.Params = gin.Params{{Key: "id", Value: testEventID}}
	handler.Cancel(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.NextPlannerEvents, decode(t, rec).Meta["next"])
	assert.Equal(t, testEventID, fake.lastID)

	c, rec = newContext(http.MethodPut, "/planner/events/"+testEventID, dto.EventForm{Title: "New"}, testPlanner)
	c.Params = gin.Params{{Key: "id", Value: testEventID}}
	handler.Update(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.NextEventDetail, decode(t, rec).Meta["next"])

	c, rec = newContext(http.MethodDelete, "/planner/events/"+testEventID, nil, testPlanner)
	c.Params = gin.Params{{Key: "id", Value: testEventID}}
	handler.Delete(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec).Data["deleted"])
}

func TestPlannerGetMapsNotFound(t *testing.T) {
	fake := &fakePlannerEvents{err: appErrors.Clone(appErrors.ErrNotFound, "event not found or not yours")}
	handler := NewPlannerEventHandler(fake, fake)

	c, rec := newContext(http.MethodGet, "/planner/events/"+testEventID, nil, testPlanner)
	c.Params = gin.Params{{Key: "id", Value: testEventID}}
	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	envelope := decode(t, rec)
	assert.Equal(t, "NOT_FOUND", envelope.Error.Code)
	assert.Equal(t, "event not found or not yours", envelope.Error.Message)
}

func TestPlannerListIgnoresPlannerFilter(t *testing.T) {
	fake := &fakePlannerEvents{}
	handler := NewPlannerEventHandler(fake, fake)

	c, rec := newContext(http.MethodGet, "/planner/events?status=DRAFT&planner_id=someone-else", nil, testPlanner)
	handler.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, fake.lastFilter.PlannerID)
	require.NotNil(t, fake.lastFilter.Status)
	assert.Equal(t, models.EventStatusDraft, *fake.lastFilter.Status)
	assert.Len(t, decode(t, rec).Data["statuses"], len(models.EventStatuses))
}

func TestPlannerCreateRejectsMalformedJSON(t *testing.T) {
	fake := &fakePlannerEvents{}
	handler := NewPlannerEventHandler(fake, fake)

	c, rec := newContext(http.MethodPost, "/planner/events", "not-an-object", testPlanner)
	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, fake.calls)
}

func TestPlannerMalformedIDIsNotFound(t *testing.T) {
	fake := &fakePlannerEvents{}
	handler := NewPlannerEventHandler(fake, fake)

	for name, call := range map[string]gin.HandlerFunc{
		"get":    handler.Get,
		"update": handler.Update,
		"submit": handler.Submit,
		"cancel": handler.Cancel,
		"delete": handler.Delete,
	} {
		c, rec := newContext(http.MethodPost, "/planner/events/"+malformedID, dto.EventForm{Title: "New"}, testPlanner)
		c.Params = gin.Params{{Key: "id", Value: malformedID}}
		call(c)

		assert.Equal(t, http.StatusNotFound, rec.Code, name)
		envelope := decode(t, rec)
		assert.Equal(t, "NOT_FOUND", envelope.Error.Code, name)
		assert.Equal(t, "event not found or not yours", envelope.Error.Message, name)
	}
	assert.Empty(t, fake.calls)
}

func TestPlannerIDIsCanonicalised(t *testing.T) {
	fake := &fakePlannerEvents{}
	handler := NewPlannerEventHandler(fake, fake)

	c, rec := newContext(http.MethodGet, "/planner/events/x", nil, testPlanner)
	c.Params = gin.Params{{Key: "id", Value: " " + strings.ToUpper(testEventID) + " "}}
	handler.Get(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testEventID, fake.lastID)
}
