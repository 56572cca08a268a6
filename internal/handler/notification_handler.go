package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/event-planner-api/internal/dto"
	"github.com/noah-isme/event-planner-api/internal/models"
	"github.com/noah-isme/event-planner-api/pkg/response"
)

type notificationService interface {
	Latest(ctx context.Context, recipient *models.Staff) ([]models.Notification, error)
	UnreadCount(ctx context.Context, recipient *models.Staff) (int, error)
	MarkRead(ctx context.Context, recipient *models.Staff, id string) error
}

// NotificationHandler serves the planner notification panel.
type NotificationHandler struct {
	service notificationService
}

// NewNotificationHandler constructs the handler.
func NewNotificationHandler(svc notificationService) *NotificationHandler {
	return &NotificationHandler{service: svc}
}

// List godoc
// @Summary Latest notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /planner/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	staff, ok := staffFromContext(c)
	if !ok {
		return
	}
	items, err := h.service.Latest(c.Request.Context(), staff)
	if err != nil {
		response.Error(c, err)
		return
	}
	unread, err := h.service.UnreadCount(c.Request.Context(), staff)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NotificationFeed{Notifications: items, UnreadCount: unread})
}

// MarkRead godoc
// @Summary Mark a notification read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /planner/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	staff, ok := staffFromContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, msgNotificationNotFound)
	if !ok {
		return
	}
	if err := h.service.MarkRead(c.Request.Context(), staff, id); err != nil {
		response.Error(c, err)
		return
	}
	response.WithNext(c, http.StatusOK, gin.H{"id": id, "read": true}, models.NextPlannerDashboard)
}
