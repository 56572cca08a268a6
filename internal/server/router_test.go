package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/event-planner-api/internal/dto"
	"github.com/noah-isme/event-planner-api/internal/handler"
	"github.com/noah-isme/event-planner-api/internal/models"
	"github.com/noah-isme/event-planner-api/internal/service"
	"github.com/noah-isme/event-planner-api/pkg/config"
	appErrors "github.com/noah-isme/event-planner-api/pkg/errors"
)

var (
	routerPlanner = &models.Staff{ID: "p1", Email: "planner@example.com", Name: "Pat", Role: models.RolePlanner, Active: true}
	routerAdmin   = &models.Staff{ID: "a1", Email: "admin@example.com", Name: "Ada", Role: models.RoleAdmin, Active: true}
)

type tokenTable map[string]string

func (t tokenTable) ValidateToken(token string) (*models.JWTClaims, error) {
	email, ok := t[token]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return &models.JWTClaims{Email: email}, nil
}

type staffTable map[string]*models.Staff

func (s staffTable) Resolve(ctx context.Context, principal string) (*models.Staff, error) {
	staff, ok := s[principal]
	if !ok {
		return nil, appErrors.ErrUnauthorized
	}
	return staff, nil
}

type auditSink struct {
	logs []*models.AuditLog
}

func (a *auditSink) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	a.logs = append(a.logs, log)
	return nil
}

type noopAuth struct{}

func (noopAuth) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	return nil, appErrors.ErrInvalidCredentials
}

type fakeStaffService struct{}

func (fakeStaffService) List(ctx context.Context) ([]models.Staff, error) {
	return []models.Staff{*routerAdmin, *routerPlanner}, nil
}

func (fakeStaffService) Create(ctx context.Context, actor *models.Staff, req dto.CreateStaffRequest) (*models.Staff, error) {
	return nil, appErrors.ErrForbidden
}

func (fakeStaffService) Details(ctx context.Context, id string) (*dto.StaffDetails, error) {
	return nil, appErrors.ErrNotFound
}

func (fakeStaffService) ToggleActive(ctx context.Context, actor *models.Staff, id string) (*models.Staff, error) {
	return nil, appErrors.ErrNotFound
}

type fakeExporter struct{}

func (fakeExporter) Events(ctx context.Context, filter models.EventFilter, format string) (*service.ExportResult, error) {
	return &service.ExportResult{Filename: "events.csv", ContentType: "text/csv", Data: []byte("Title\n")}, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *auditSink) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	audit := &auditSink{}
	cfg := &config.Config{Env: "test", APIPrefix: "/api/v1"}
	r := NewRouter(Deps{
		Config:   cfg,
		Logger:   zap.NewNop(),
		Metrics:  service.NewMetricsService(),
		Tokens:   tokenTable{"planner-token": routerPlanner.Email, "admin-token": routerAdmin.Email},
		Identity: staffTable{routerPlanner.Email: routerPlanner, routerAdmin.Email: routerAdmin},
		Audit:    audit,
		Handlers: Handlers{
			Auth:        handler.NewAuthHandler(noopAuth{}),
			AdminEvents: handler.NewAdminEventHandler(nil, nil, fakeExporter{}),
			Staff:       handler.NewStaffHandler(fakeStaffService{}),
			Metrics:     handler.NewMetricsHandler(service.NewMetricsService(), nil),
		},
	})
	return r, audit
}

func doRequest(r http.Handler, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouterHealth(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouterRegistersRouteTable(t *testing.T) {
	r, _ := newTestRouter(t)

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}
	for _, want := range []string{
		"POST /api/v1/auth/login",
		"GET /api/v1/auth/me",
		"GET /api/v1/planner/dashboard",
		"POST /api/v1/planner/events",
		"PUT /api/v1/planner/events/:id",
		"DELETE /api/v1/planner/events/:id",
		"POST /api/v1/planner/events/:id/submit",
		"POST /api/v1/planner/events/:id/cancel",
		"POST /api/v1/planner/notifications/:id/read",
		"GET /api/v1/admin/events/export",
		"POST /api/v1/admin/events/:id/approve",
		"POST /api/v1/admin/events/:id/reject",
		"POST /api/v1/admin/events/:id/complete",
		"POST /api/v1/admin/staff/:id/toggle",
		"GET /metrics",
		"GET /ready",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}

func TestRouterRequiresToken(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(r, http.MethodGet, "/api/v1/admin/staff", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(r, http.MethodGet, "/api/v1/admin/staff", "forged")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouterAdminRealm(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(r, http.MethodGet, "/api/v1/admin/staff", "planner-token")
	require.Equal(t, http.StatusForbidden, rec.Code)
	var denied struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &denied))
	assert.Equal(t, appErrors.ErrForbidden.Code, denied.Error.Code)

	rec = doRequest(r, http.MethodGet, "/api/v1/admin/staff", "admin-token")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed struct {
		Data []models.Staff `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed.Data, 2)
}

func TestRouterExportIsAudited(t *testing.T) {
	r, audit := newTestRouter(t)

	rec := doRequest(r, http.MethodGet, "/api/v1/admin/events/export?format=csv", "admin-token")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionEventExport, audit.logs[0].Action)
	require.NotNil(t, audit.logs[0].ActorID)
	assert.Equal(t, routerAdmin.ID, *audit.logs[0].ActorID)
}

func TestRouterLoginIsPublic(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(r, http.MethodPost, "/api/v1/auth/login", "")
	assert.NotEqual(t, http.StatusNotFound, rec.Code)
	assert.NotEqual(t, http.StatusUnauthorized, rec.Code)
}
