package models

import (
	"time"

	"github.com/fieldpoint/backend/internal/domain/audit"
	"github.com/google/uuid"
)

// ActivityLogModel is the persistence model for append-only audit records
type ActivityLogModel struct {
	BaseModel
	UserID      *uuid.UUID `gorm:"type:uuid;index"`
	Action      string     `gorm:"type:varchar(20);not null"`
	TargetType  string     `gorm:"type:varchar(50);not null;index:idx_activity_logs_target"`
	TargetID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_activity_logs_target"`
	Description string     `gorm:"type:varchar(1000)"`
	OccurredAt  time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ActivityLogModel) TableName() string {
	return "activity_logs"
}

// ToDomain converts the persistence model to a domain ActivityLog
func (m *ActivityLogModel) ToDomain() *audit.ActivityLog {
	return &audit.ActivityLog{
		BaseEntity:  m.BaseModel.ToDomain(),
		UserID:      m.UserID,
		Action:      audit.Action(m.Action),
		TargetType:  m.TargetType,
		TargetID:    m.TargetID,
		Description: m.Description,
		OccurredAt:  m.OccurredAt,
	}
}

// FromDomain populates the persistence model from a domain ActivityLog
func (m *ActivityLogModel) FromDomain(l *audit.ActivityLog) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.UserID = l.UserID
	m.Action = string(l.Action)
	m.TargetType = l.TargetType
	m.TargetID = l.TargetID
	m.Description = l.Description
	m.OccurredAt = l.OccurredAt
}

// ActivityLogModelFromDomain creates a new persistence model from a domain
// ActivityLog
func ActivityLogModelFromDomain(l *audit.ActivityLog) *ActivityLogModel {
	m := &ActivityLogModel{}
	m.FromDomain(l)
	return m
}
