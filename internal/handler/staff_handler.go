package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/event-planner-api/internal/dto"
	"github.com/noah-isme/event-planner-api/internal/models"
	appErrors "github.com/noah-isme/event-planner-api/pkg/errors"
	"github.com/noah-isme/event-planner-api/pkg/response"
)

type staffService interface {
	List(ctx context.Context) ([]models.Staff, error)
	Create(ctx context.Context, actor *models.Staff, req dto.CreateStaffRequest) (*models.Staff, error)
	Details(ctx context.Context, id string) (*dto.StaffDetails, error)
	ToggleActive(ctx context.Context, actor *models.Staff, id string) (*models.Staff, error)
}

// StaffHandler manages the staff directory.
type StaffHandler struct {
	service staffService
}

// NewStaffHandler constructs the handler.
func NewStaffHandler(svc staffService) *StaffHandler {
	return &StaffHandler{service: svc}
}

// List godoc
// @Summary List staff
// @Tags Staff
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/staff [get]
func (h *StaffHandler) List(c *gin.Context) {
	staff, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, staff)
}

// Create godoc
// @Summary Add a staff member
// @Tags Staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateStaffRequest true "Staff payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/staff [post]
func (h *StaffHandler) Create(c *gin.Context) {
	actor, ok := staffFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid staff payload"))
		return
	}
	staff, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, staff, models.NextAdminDashboard)
}

// Details godoc
// @Summary Staff details
// @Tags Staff
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/staff/{id} [get]
func (h *StaffHandler) Details(c *gin.Context) {
	id, ok := pathID(c, msgStaffNotFound)
	if !ok {
		return
	}
	details, err := h.service.Details(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details)
}

// Toggle godoc
// @Summary Activate or deactivate a staff member
// @Tags Staff
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ID"
// @Success 200 {object} response.Envelope
// @Router /admin/staff/{id}/toggle [post]
func (h *StaffHandler) Toggle(c *gin.Context) {
	actor, ok := staffFromContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, msgStaffNotFound)
	if !ok {
		return
	}
	staff, err := h.service.ToggleActive(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.WithNext(c, http.StatusOK, staff, models.NextAdminDashboard)
}
