package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/event-planner-api/internal/models"
	appErrors "github.com/noah-isme/event-planner-api/pkg/errors"
	"github.com/noah-isme/event-planner-api/pkg/logger"
	"github.com/noah-isme/event-planner-api/pkg/response"
)

// ContextStaffKey is the gin context key storing the resolved staff member.
const ContextStaffKey = "currentStaff"

// IdentityResolver maps a token principal onto a staff member.
type IdentityResolver interface {
	Resolve(ctx context.Context, principal string) (*models.Staff, error)
}

// Identity resolves the staff member behind the verified token once per request.
// It must run after JWT.
func Identity(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		staff, err := resolver.Resolve(c.Request.Context(), claims.Email)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextStaffKey, staff)
		c.Set(logger.StaffIDKey, staff.ID)
		c.Request = c.Request.WithContext(models.WithStaff(c.Request.Context(), staff))
		c.Next()
	}
}

// CurrentStaff returns the staff member resolved for the request.
func CurrentStaff(c *gin.Context) (*models.Staff, bool) {
	value, ok := c.Get(ContextStaffKey)
	if !ok {
		return nil, false
	}
	staff, ok := value.(*models.Staff)
	return staff, ok && staff != nil
}
