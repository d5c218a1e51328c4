package audit

import (
	"time"

	"github.com/fieldpoint/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Action classifies a recorded state transition
type Action string

const (
	ActionCreate    Action = "CREATE"
	ActionUpdate    Action = "UPDATE"
	ActionDelete    Action = "DELETE"
	ActionComplete  Action = "COMPLETE"
	ActionPost      Action = "POST"
	ActionEmailSent Action = "EMAIL_SENT"
)

// IsValid checks if the action is valid
func (a Action) IsValid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionComplete, ActionPost, ActionEmailSent:
		return true
	}
	return false
}

// ActivityLog is one append-only audit record. UserID is nil for system
// actions. The target reference is polymorphic: a type name plus id.
type ActivityLog struct {
	shared.BaseEntity
	UserID      *uuid.UUID `json:"user_id"`
	Action      Action     `json:"action"`
	TargetType  string     `json:"target_type"`
	TargetID    uuid.UUID  `json:"target_id"`
	Description string     `json:"description"`
	OccurredAt  time.Time  `json:"occurred_at"`
}

// NewActivityLog creates an audit record for a state transition
func NewActivityLog(userID *uuid.UUID, action Action, targetType string, targetID uuid.UUID, description string) (*ActivityLog, error) {
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTION", "Audit action is not valid")
	}
	if targetType == "" {
		return nil, shared.NewDomainError("INVALID_TARGET", "Audit target type cannot be empty")
	}
	return &ActivityLog{
		BaseEntity:  shared.NewBaseEntity(),
		UserID:      userID,
		Action:      action,
		TargetType:  targetType,
		TargetID:    targetID,
		Description: description,
		OccurredAt:  time.Now(),
	}, nil
}
