package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/noah-isme/event-planner-api/internal/dto"
	"github.com/noah-isme/event-planner-api/internal/middleware"
	"github.com/noah-isme/event-planner-api/internal/models"
	appErrors "github.com/noah-isme/event-planner-api/pkg/errors"
	"github.com/noah-isme/event-planner-api/pkg/response"
)

// staffFromContext returns the resolved staff member or writes 401 and reports false.
func staffFromContext(c *gin.Context) (*models.Staff, bool) {
	staff, ok := middleware.CurrentStaff(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return nil, false
	}
	return staff, true
}

// Not-found messages returned for ids that cannot name a row.
const (
	msgEventNotYours        = "event not found or not yours"
	msgEventNotFound        = "event not found"
	msgStaffNotFound        = "staff not found"
	msgNotificationNotFound = "notification not found"
)

// pathID returns the canonical :id parameter. A value that is not a UUID cannot
// match any row, so it writes 404 with notFound and reports false.
func pathID(c *gin.Context, notFound string) (string, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, notFound))
		return "", false
	}
	return id.String(), true
}

// eventFilterFromQuery parses listing filters. planner_id is honoured only when allowPlanner is set.
func eventFilterFromQuery(c *gin.Context, allowPlanner bool) (models.EventFilter, error) {
	var query dto.EventQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		return models.EventFilter{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid filter")
	}

	var filter models.EventFilter
	if raw := strings.ToUpper(strings.TrimSpace(query.Status)); raw != "" {
		status := models.EventStatus(raw)
		if !status.Valid() {
			return filter, appErrors.Clone(appErrors.ErrValidation, "unknown status "+raw)
		}
		filter.Status = &status
	}
	if raw := strings.ToUpper(strings.TrimSpace(query.Category)); raw != "" {
		category := models.EventCategory(raw)
		if !category.Valid() {
			return filter, appErrors.Clone(appErrors.ErrValidation, "unknown category "+raw)
		}
		filter.Category = &category
	}
	from, err := parseDateParam(query.FromDate, "from_date")
	if err != nil {
		return filter, err
	}
	filter.FromDate = from
	to, err := parseDateParam(query.ToDate, "to_date")
	if err != nil {
		return filter, err
	}
	filter.ToDate = to
	if raw := strings.TrimSpace(query.PlannerID); allowPlanner && raw != "" {
		plannerID, err := uuid.Parse(raw)
		if err != nil {
			return filter, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "planner_id must be a UUID")
		}
		filter.PlannerID = plannerID.String()
	}
	return filter, nil
}

func parseDateParam(raw, name string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dto.DateLayout, raw)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, name+" must be YYYY-MM-DD")
	}
	return &parsed, nil
}
