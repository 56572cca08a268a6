package service

import (
	"fmt"

	"github.com/noah-isme/event-planner-api/internal/models"
	"github.com/noah-isme/event-planner-api/pkg/config"
	appErrors "github.com/noah-isme/event-planner-api/pkg/errors"
)

// LifecycleAction names an operation that changes or removes an event.
type LifecycleAction string

const (
	ActionSubmit   LifecycleAction = "submit"
	ActionApprove  LifecycleAction = "approve"
	ActionReject   LifecycleAction = "reject"
	ActionCancel   LifecycleAction = "cancel"
	ActionComplete LifecycleAction = "complete"
	ActionUpdate   LifecycleAction = "update"
	ActionDelete   LifecycleAction = "delete"
)

var actionTargets = map[LifecycleAction]models.EventStatus{
	ActionSubmit:   models.EventStatusPending,
	ActionApprove:  models.EventStatusPublished,
	ActionReject:   models.EventStatusRejected,
	ActionCancel:   models.EventStatusCancelled,
	ActionComplete: models.EventStatusCompleted,
}

var strictTransitions = map[LifecycleAction][]models.EventStatus{
	ActionSubmit:   {models.EventStatusDraft},
	ActionApprove:  {models.EventStatusPending},
	ActionReject:   {models.EventStatusPending},
	ActionCancel:   {models.EventStatusDraft, models.EventStatusPending, models.EventStatusPublished},
	ActionComplete: {models.EventStatusPublished},
	ActionUpdate:   {models.EventStatusDraft},
	ActionDelete:   {models.EventStatusDraft, models.EventStatusRejected, models.EventStatusCancelled},
}

// Lifecycle is the event state machine. The permissive policy allows every action from every
// status; the strict policy enforces the transition table above.
type Lifecycle struct {
	policy  string
	allowed map[LifecycleAction]map[models.EventStatus]struct{}
}

// NewLifecycle builds the state machine for a policy name. Unknown names fall back to permissive.
func NewLifecycle(policy string) *Lifecycle {
	if policy != config.LifecycleStrict {
		return &Lifecycle{policy: config.LifecyclePermissive}
	}
	allowed := make(map[LifecycleAction]map[models.EventStatus]struct{}, len(strictTransitions))
	for action, from := range strictTransitions {
		set := make(map[models.EventStatus]struct{}, len(from))
		for _, status := range from {
			set[status] = struct{}{}
		}
		allowed[action] = set
	}
	return &Lifecycle{policy: config.LifecycleStrict, allowed: allowed}
}

// Policy returns the active policy name.
func (l *Lifecycle) Policy() string {
	return l.policy
}

// Check returns INVALID_TRANSITION when action may not run against an event in status from.
func (l *Lifecycle) Check(action LifecycleAction, from models.EventStatus) error {
	if l == nil || l.allowed == nil {
		return nil
	}
	if _, ok := l.allowed[action][from]; ok {
		return nil
	}
	return appErrors.Clone(appErrors.ErrInvalidTransition, fmt.Sprintf("cannot %s an event in status %s", action, from))
}

// Target returns the status an action moves an event into. Update and delete have none.
func (l *Lifecycle) Target(action LifecycleAction) (models.EventStatus, bool) {
	status, ok := actionTargets[action]
	return status, ok
}
