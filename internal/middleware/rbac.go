package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/event-planner-api/internal/models"
	appErrors "github.com/noah-isme/event-planner-api/pkg/errors"
	"github.com/noah-isme/event-planner-api/pkg/response"
)

// Realm is a named area of the API guarded by a set of roles.
type Realm string

const (
	RealmAdmin   Realm = "admin"
	RealmPlanner Realm = "planner"
)

var realmRoles = map[Realm]map[models.StaffRole]struct{}{
	RealmAdmin:   {models.RoleAdmin: {}},
	RealmPlanner: {models.RolePlanner: {}, models.RoleAdmin: {}},
}

// Allows reports whether role may enter the realm.
func (r Realm) Allows(role models.StaffRole) bool {
	_, ok := realmRoles[r][role]
	return ok
}

// RequireRealm admits only staff whose role belongs to realm. It must run after Identity.
func RequireRealm(realm Realm) gin.HandlerFunc {
	return func(c *gin.Context) {
		staff, ok := CurrentStaff(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if !realm.Allows(staff.Role) {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "insufficient role for "+string(realm)+" area"))
			c.Abort()
			return
		}
		c.Next()
	}
}
