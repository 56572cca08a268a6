package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/event-planner-api/internal/dto"
	"github.com/noah-isme/event-planner-api/internal/models"
	"github.com/noah-isme/event-planner-api/internal/service"
	appErrors "github.com/noah-isme/event-planner-api/pkg/errors"
	"github.com/noah-isme/event-planner-api/pkg/response"
)

type adminEventService interface {
	Approve(ctx context.Context, admin *models.Staff, id, notes string) (*models.Event, error)
	Reject(ctx context.Context, admin *models.Staff, id, reason string) (*models.Event, error)
	Complete(ctx context.Context, admin *models.Staff, id string) (*models.Event, error)
	GetByID(ctx context.Context, id string) (*models.Event, error)
}

type adminEventQuery interface {
	FilterAll(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
}

type eventExporter interface {
	Events(ctx context.Context, filter models.EventFilter, format string) (*service.ExportResult, error)
}

// AdminEventHandler exposes the review queue and organisation-wide event listings.
type AdminEventHandler struct {
	events   adminEventService
	queries  adminEventQuery
	exporter eventExporter
}

// NewAdminEventHandler constructs the handler.
func NewAdminEventHandler(events adminEventService, queries adminEventQuery, exporter eventExporter) *AdminEventHandler {
	return &AdminEventHandler{events: events, queries: queries, exporter: exporter}
}

// List godoc
// @Summary Filter all events
// @Tags Admin Events
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status"
// @Param category query string false "Category"
// @Param planner_id query string false "Planner ID"
// @Param from_date query string false "From date (YYYY-MM-DD)"
// @Param to_date query string false "To date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /admin/events [get]
func (h *AdminEventHandler) List(c *gin.Context) {
	filter, err := eventFilterFromQuery(c, true)
	if err != nil {
		response.Error(c, err)
		return
	}
	events, err := h.queries.FilterAll(c.Request.Context(), filter)
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

// Get godoc
// @Summary Get any event
// @Tags Admin Events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/events/{id} [get]
func (h *AdminEventHandler) Get(c *gin.Context) {
	id, ok := pathID(c, msgEventNotFound)
	if !ok {
		return
	}
	event, err := h.events.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event)
}

// Approve godoc
// @Summary Approve an event
// @Tags Admin Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param payload body dto.ApproveRequest false "Reviewer notes"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/events/{id}/approve [post]
func (h *AdminEventHandler) Approve(c *gin.Context) {
	admin, ok := staffFromContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, msgEventNotFound)
	if !ok {
		return
	}
	var req dto.ApproveRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	event, err := h.events.Approve(c.Request.Context(), admin, id, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.WithNext(c, http.StatusOK, event, models.NextAdminDashboard)
}

// Reject godoc
// @Summary Reject an event
// @Tags Admin Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param payload body dto.RejectRequest true "Rejection reason"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/events/{id}/reject [post]
func (h *AdminEventHandler) Reject(c *gin.Context) {
	admin, ok := staffFromContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, msgEventNotFound)
	if !ok {
		return
	}
	var req dto.RejectRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	event, err := h.events.Reject(c.Request.Context(), admin, id, req.RejectionReason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.WithNext(c, http.StatusOK, event, models.NextAdminDashboard)
}

// Complete godoc
// @Summary Mark an event completed
// @Tags Admin Events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /admin/events/{id}/complete [post]
func (h *AdminEventHandler) Complete(c *gin.Context) {
	admin, ok := staffFromContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, msgEventNotFound)
	if !ok {
		return
	}
	event, err := h.events.Complete(c.Request.Context(), admin, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.WithNext(c, http.StatusOK, event, models.NextAdminDashboard)
}

// Export godoc
// @Summary Export filtered events
// @Tags Admin Events
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Router /admin/events/export [get]
func (h *AdminEventHandler) Export(c *gin.Context) {
	filter, err := eventFilterFromQuery(c, true)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.exporter.Events(c.Request.Context(), filter, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

func bindOptionalJSON(c *gin.Context, dest interface{}) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(dest); err != nil && !errors.Is(err, io.EOF) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	return nil
}
