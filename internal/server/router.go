package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/event-planner-api/internal/handler"
	"github.com/noah-isme/event-planner-api/internal/middleware"
	"github.com/noah-isme/event-planner-api/internal/models"
	"github.com/noah-isme/event-planner-api/internal/service"
	"github.com/noah-isme/event-planner-api/pkg/config"
	"github.com/noah-isme/event-planner-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/event-planner-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/event-planner-api/pkg/middleware/requestid"
)

// Handlers bundles every HTTP handler mounted by the router.
type Handlers struct {
	Auth          *handler.AuthHandler
	PlannerEvents *handler.PlannerEventHandler
	AdminEvents   *handler.AdminEventHandler
	Staff         *handler.StaffHandler
	Notifications *handler.NotificationHandler
	Dashboard     *handler.DashboardHandler
	Metrics       *handler.MetricsHandler
}

// Deps groups what NewRouter needs besides handlers.
type Deps struct {
	Config   *config.Config
	Logger   *zap.Logger
	Metrics  *service.MetricsService
	Tokens   middleware.TokenValidator
	Identity middleware.IdentityResolver
	Audit    middleware.AuditRecorder
	Handlers Handlers
}

// NewRouter builds the gin engine with the full route table.
func NewRouter(deps Deps) *gin.Engine {
	cfg := deps.Config
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	h := deps.Handlers
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", h.Auth.Login)

	secured := api.Group("")
	secured.Use(middleware.JWT(deps.Tokens), middleware.Identity(deps.Identity))
	secured.GET("/auth/me", h.Auth.Me)

	planner := secured.Group("/planner")
	planner.Use(middleware.RequireRealm(middleware.RealmPlanner))
	planner.GET("/dashboard", h.Dashboard.Planner)
	planner.GET("/events", h.PlannerEvents.List)
	planner.POST("/events", h.PlannerEvents.Create)
	planner.GET("/events/:id", h.PlannerEvents.Get)
	planner.PUT("/events/:id", h.PlannerEvents.Update)
	planner.DELETE("/events/:id", h.PlannerEvents.Delete)
	planner.POST("/events/:id/submit", h.PlannerEvents.Submit)
	planner.POST("/events/:id/cancel", h.PlannerEvents.Cancel)
	planner.GET("/notifications", h.Notifications.List)
	planner.POST("/notifications/:id/read", h.Notifications.MarkRead)

	admin := secured.Group("/admin")
	admin.Use(middleware.RequireRealm(middleware.RealmAdmin))
	admin.GET("/dashboard", h.Dashboard.Admin)
	admin.GET("/events", h.AdminEvents.List)
	admin.GET("/events/export",
		middleware.Audit(deps.Audit, deps.Logger, models.AuditActionEventExport, "events"),
		h.AdminEvents.Export,
	)
	admin.GET("/events/:id", h.AdminEvents.Get)
	admin.POST("/events/:id/approve", h.AdminEvents.Approve)
	admin.POST("/events/:id/reject", h.AdminEvents.Reject)
	admin.POST("/events/:id/complete", h.AdminEvents.Complete)
	admin.GET("/staff", h.Staff.List)
	admin.POST("/staff", h.Staff.Create)
	admin.GET("/staff/:id", h.Staff.Details)
	admin.POST("/staff/:id/toggle", h.Staff.Toggle)

	return r
}
