package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/event-planner-api/internal/dto"
	"github.com/noah-isme/event-planner-api/internal/models"
	appErrors "github.com/noah-isme/event-planner-api/pkg/errors"
	"github.com/noah-isme/event-planner-api/pkg/response"
)

type plannerEventService interface {
	CreateAsDraft(ctx context.Context, planner *models.Staff, form dto.EventForm) (*models.Event, error)
	CreateAndSubmit(ctx context.Context, planner *models.Staff, form dto.EventForm) (*models.Event, error)
	SubmitForApproval(ctx context.Context, planner *models.Staff, id string) (*models.Event, error)
	UpdateEvent(ctx context.Context, planner *models.Staff, id string, form dto.EventForm) (*models.Event, error)
	Cancel(ctx context.Context, planner *models.Staff, id string) (*models.Event, error)
	DeleteEvent(ctx context.Context, planner *models.Staff, id string) error
	GetForPlanner(ctx context.Context, planner *models.Staff, id string) (*models.Event, error)
}

type plannerEventQuery interface {
	FilterForPlanner(ctx context.Context, planner *models.Staff, filter models.EventFilter) ([]models.Event, error)
}

// PlannerEventHandler exposes a planner's own events.
type PlannerEventHandler struct {
	events  plannerEventService
	queries plannerEventQuery
}

// NewPlannerEventHandler constructs the handler.
func NewPlannerEventHandler(events plannerEventService, queries plannerEventQuery) *PlannerEventHandler {
	return &PlannerEventHandler{events: events, queries: queries}
}

// List godoc
// @Summary List own events
// @Tags Planner Events
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status"
// @Param category query string false "Category"
// @Param from_date query string false "Earliest event date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /planner/events [get]
func (h *PlannerEventHandler) List(c *gin.Context) {
	planner, ok := staffFromContext(c)
	if !ok {
		return
	}
	filter, err := eventFilterFromQuery(c, false)
	if err != nil {
		response.Error(c, err)
		return
	}
	events, err := h.queries.FilterForPlanner(c.Request.Context(), planner, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.EventList{
		Events:     events,
		Statuses:   models.EventStatuses,
		Categories: models.EventCategories,
	})
}

// Create godoc
// @Summary Create an event
// @Description Saves a draft, or submits immediately when action is "submit"
// @Tags Planner Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateEventRequest true "Event payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /planner/events [post]
func (h *PlannerEventHandler) Create(c *gin.Context) {
	planner, ok := staffFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload"))
		return
	}

	var event *models.Event
	var err error
	if strings.EqualFold(strings.TrimSpace(req.Action), dto.ActionSubmit) {
		event, err = h.events.CreateAndSubmit(c.Request.Context(), planner, req.EventForm)
	} else {
		event, err = h.events.CreateAsDraft(c.Request.Context(), planner, req.EventForm)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, event, models.NextPlannerEvents)
}

// Get godoc
// @Summary Get own event
// @Tags Planner Events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /planner/events/{id} [get]
func (h *PlannerEventHandler) Get(c *gin.Context) {
	planner, ok := staffFromContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, msgEventNotYours)
	if !ok {
		return
	}
	event, err := h.events.GetForPlanner(c.Request.Context(), planner, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event)
}

// Update godoc
// @Summary Update own event
// @Tags Planner Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param payload body dto.EventForm true "Event payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /planner/events/{id} [put]
func (h *PlannerEventHandler) Update(c *gin.Context) {
	planner, ok := staffFromContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, msgEventNotYours)
	if !ok {
		return
	}
	var form dto.EventForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload"))
		return
	}
	event, err := h.events.UpdateEvent(c.Request.Context(), planner, id, form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.WithNext(c, http.StatusOK, event, models.NextEventDetail)
}

// Submit godoc
// @Summary Submit own event for approval
// @Tags Planner Events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /planner/events/{id}/submit [post]
func (h *PlannerEventHandler) Submit(c *gin.Context) {
	h.transition(c, h.events.SubmitForApproval)
}

// Cancel godoc
// @Summary Cancel own event
// @Tags Planner Events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /planner/events/{id}/cancel [post]
func (h *PlannerEventHandler) Cancel(c *gin.Context) {
	h.transition(c, h.events.Cancel)
}

// Delete godoc
// @Summary Delete own event
// @Tags Planner Events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /planner/events/{id} [delete]
func (h *PlannerEventHandler) Delete(c *gin.Context) {
	planner, ok := staffFromContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, msgEventNotYours)
	if !ok {
		return
	}
	if err := h.events.DeleteEvent(c.Request.Context(), planner, id); err != nil {
		response.Error(c, err)
		return
	}
	response.WithNext(c, http.StatusOK, gin.H{"id": id, "deleted": true}, models.NextPlannerEvents)
}

func (h *PlannerEventHandler) transition(c *gin.Context, fn func(context.Context, *models.Staff, string) (*models.Event, error)) {
	planner, ok := staffFromContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, msgEventNotYours)
	if !ok {
		return
	}
	event, err := fn(c.Request.Context(), planner, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.WithNext(c, http.StatusOK, event, models.NextPlannerEvents)
}
