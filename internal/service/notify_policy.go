package service

import (
	"plate-service/internal/client"
	"plate-service/internal/model"
)

// NotifyPolicy lists the outcome statuses that are reported to the actuator.
type NotifyPolicy map[model.OutcomeStatus]bool

func NewNotifyPolicy(statuses ...model.OutcomeStatus) NotifyPolicy {
	policy := make(NotifyPolicy, len(statuses))
	for _, status := range statuses {
		policy[status] = true
	}
	return policy
}

// DefaultNotifyPolicy reports accepted plates and missing frames only.
func DefaultNotifyPolicy() NotifyPolicy {
	return NewNotifyPolicy(model.OutcomeNoInput, model.OutcomeValid)
}

func (p NotifyPolicy) Allows(status model.OutcomeStatus) bool {
	return p[status]
}

// NotificationFor maps an outcome to the query sent to the actuator.
func NotificationFor(outcome model.Outcome) client.Notification {
	switch outcome.Status {
	case model.OutcomeValid:
		return client.Notification{Plate: outcome.Plate, Status: client.NotifyStatusOK}
	case model.OutcomeInvalid:
		return client.Notification{Plate: outcome.Plate, Status: client.NotifyStatusInvalid}
	default:
		return client.Notification{Plate: client.NoPlate, Status: client.NotifyStatusInvalid}
	}
}
