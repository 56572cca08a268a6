package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/event-planner-api/internal/models"
	appErrors "github.com/noah-isme/event-planner-api/pkg/errors"
)

type fakeNotifications struct{}

func (fakeNotifications) Latest(_ context.Context, recipient *models.Staff) ([]models.Notification, error) {
	return []models.Notification{{ID: "n1", RecipientID: recipient.ID, Title: "Event Approved"}}, nil
}

func (fakeNotifications) UnreadCount(context.Context, *models.Staff) (int, error) {
	return 1, nil
}

func (fakeNotifications) MarkRead(_ context.Context, _ *models.Staff, id string) error {
	if id != testNotificationID {
		return appErrors.Clone(appErrors.ErrNotFound, "notification not found")
	}
	return nil
}

func TestNotificationFeed(t *testing.T) {
	handler := NewNotificationHandler(fakeNotifications{})

	c, rec := newContext(http.MethodGet, "/planner/notifications", nil, testPlanner)
	handler.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decode(t, rec)
	assert.Equal(t, float64(1), envelope.Data["unreadCount"])
	assert.Len(t, envelope.Data["notifications"], 1)
}

func TestNotificationMarkRead(t *testing.T) {
	handler := NewNotificationHandler(fakeNotifications{})

	c, rec := newContext(http.MethodPost, "/planner/notifications/"+testNotificationID+"/read", nil, testPlanner)
	c.Params = gin.Params{{Key: "id", Value: testNotificationID}}
	handler.MarkRead(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.NextPlannerDashboard, decode(t, rec).Meta["next"])

	c, rec = newContext(http.MethodPost, "/planner/notifications/"+testEventID+"/read", nil, testPlanner)
	c.Params = gin.Params{{Key: "id", Value: testEventID}}
	handler.MarkRead(c)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = newContext(http.MethodPost, "/planner/notifications/"+malformedID+"/read", nil, testPlanner)
	c.Params = gin.Params{{Key: "id", Value: malformedID}}
	handler.MarkRead(c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "notification not found", decode(t, rec).Error.Message)
}
