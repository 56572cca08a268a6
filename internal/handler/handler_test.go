package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/event-planner-api/internal/middleware"
	"github.com/noah-isme/event-planner-api/internal/models"
)

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Meta  map[string]interface{} `json:"meta"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newContext(method, target string, body interface{}, staff *models.Staff) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	if body != nil {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	if staff != nil {
		c.Set(middleware.ContextStaffKey, staff)
	}
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

const (
	testEventID        = "5b1f0c2e-8d4a-4f3b-9a61-2c7e0d9b4a10"
	testNotificationID = "a3d9e7c1-0b2f-4e65-8c14-7f2a9b6d3e58"
	testStaffID        = "c8e2b4a6-1d3f-4a97-b5e0-6f9d2c1a7b34"
	testPlannerUUID    = "0e7b9d42-6c1a-4f85-93d2-b4a8e1f6c057"
	malformedID        = "not-a-uuid"
)

var (
	testPlanner = &models.Staff{ID: "p1", Email: "planner@example.com", Name: "Pat", Role: models.RolePlanner, Active: true}
	testAdmin   = &models.Staff{ID: "a1", Email: "admin@example.com", Name: "Ada", Role: models.RoleAdmin, Active: true}
)
