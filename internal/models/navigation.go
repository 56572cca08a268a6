package models

// Navigation tokens tell clients which view to show after an operation.
const (
	NextAdminDashboard   = "admin.dashboard"
	NextPlannerDashboard = "planner.dashboard"
	NextPlannerEvents    = "planner.events"
	NextEventDetail      = "planner.event_detail"
)

// HomeFor returns the landing view for a role.
func HomeFor(role StaffRole) string {
	if role == RoleAdmin {
		return NextAdminDashboard
	}
	return NextPlannerDashboard
}
