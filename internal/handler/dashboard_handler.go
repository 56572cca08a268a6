package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/event-planner-api/internal/dto"
	"github.com/noah-isme/event-planner-api/internal/middleware"
	"github.com/noah-isme/event-planner-api/internal/models"
	appErrors "github.com/noah-isme/event-planner-api/pkg/errors"
	"github.com/noah-isme/event-planner-api/pkg/response"
)

type dashboardService interface {
	Planner(ctx context.Context, planner *models.Staff) (*dto.PlannerDashboard, bool, error)
	Admin(ctx context.Context, filter models.EventFilter) (*dto.AdminDashboard, error)
}

// DashboardHandler wires dashboard service to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Planner godoc
// @Summary Planner dashboard
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /planner/dashboard [get]
func (h *DashboardHandler) Planner(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	planner, ok := staffFromContext(c)
	if !ok {
		return
	}
	summary, cacheHit, err := h.service.Planner(c.Request.Context(), planner)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, summary, middleware.ExtractMeta(c))
}

// Admin godoc
// @Summary Admin dashboard
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status"
// @Param category query string false "Category"
// @Param planner_id query string false "Planner ID"
// @Param from_date query string false "From date (YYYY-MM-DD)"
// @Param to_date query string false "To date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /admin/dashboard [get]
func (h *DashboardHandler) Admin(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	filter, err := eventFilterFromQuery(c, true)
	if err != nil {
		response.Error(c, err)
		return
	}
	summary, err := h.service.Admin(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}
