package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/event-planner-api/internal/dto"
	"github.com/noah-isme/event-planner-api/internal/models"
	appErrors "github.com/noah-isme/event-planner-api/pkg/errors"
)

type fakeStaffSrv struct {
	actor *models.Staff
}

func (f *fakeStaffSrv) List(context.Context) ([]models.Staff, error) {
	return []models.Staff{*testAdmin, *testPlanner}, nil
}

func (f *fakeStaffSrv) Create(_ context.Context, actor *models.Staff, req dto.CreateStaffRequest) (*models.Staff, error) {
	f.actor = actor
	if req.Email == "taken@example.com" {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
	}
	return &models.Staff{ID: "new", Email: req.Email, Role: models.StaffRole(req.Role)}, nil
}

func (f *fakeStaffSrv) Details(_ context.Context, id string) (*dto.StaffDetails, error) {
	return &dto.StaffDetails{Staff: models.Staff{ID: id}, AssignedEvents: 5}, nil
}

func (f *fakeStaffSrv) ToggleActive(_ context.Context, actor *models.Staff, id string) (*models.Staff, error) {
	f.actor = actor
	return &models.Staff{ID: id, Active: false}, nil
}

func TestStaffCreate(t *testing.T) {
	fake := &fakeStaffSrv{}
	handler := NewStaffHandler(fake)

	c, rec := newContext(http.MethodPost, "/admin/staff", map[string]string{"name": "Sam", "email": "sam@example.com", "role": "PLANNER", "password": "secret1"}, testAdmin)
	handler.Create(c)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, models.NextAdminDashboard, decode(t, rec).Meta["next"])
	assert.Same(t, testAdmin, fake.actor)

	c, rec = newContext(http.MethodPost, "/admin/staff", map[string]string{"email": "taken@example.com"}, testAdmin)
	handler.Create(c)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestStaffDetailsAndToggle(t *testing.T) {
	handler := NewStaffHandler(&fakeStaffSrv{})

	c, rec := newContext(http.MethodGet, "/admin/staff/"+testStaffID, nil, testAdmin)
	c.Params = gin.Params{{Key: "id", Value: testStaffID}}
	handler.Details(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(5), decode(t, rec).Data["assignedEvents"])

	c, rec = newContext(http.MethodPost, "/admin/staff/"+testStaffID+"/toggle", nil, testAdmin)
	c.Params = gin.Params{{Key: "id", Value: testStaffID}}
	handler.Toggle(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec).Data["active"])
}

func TestStaffMalformedIDIsNotFound(t *testing.T) {
	fake := &fakeStaffSrv{}
	handler := NewStaffHandler(fake)

	for name, call := range map[string]gin.HandlerFunc{"details": handler.Details, "toggle": handler.Toggle} {
		c, rec := newContext(http.MethodPost, "/admin/staff/"+malformedID, nil, testAdmin)
		c.Params = gin.Params{{Key: "id", Value: malformedID}}
		call(c)

		assert.Equal(t, http.StatusNotFound, rec.Code, name)
		assert.Equal(t, "staff not found", decode(t, rec).Error.Message, name)
	}
	assert.Nil(t, fake.actor)
}
