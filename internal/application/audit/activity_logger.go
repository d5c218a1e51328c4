package audit

import (
	"context"

	"github.com/fieldpoint/backend/internal/domain/audit"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ActivityLogger appends audit records for state transitions. Writes are
// best-effort: a failed append is logged and swallowed so it can never abort
// the caller's main flow. Callers record activity after their transaction
// has committed.
type ActivityLogger struct {
	repo audit.Repository
	log  *zap.Logger
}

// NewActivityLogger creates an ActivityLogger
func NewActivityLogger(repo audit.Repository, log *zap.Logger) *ActivityLogger {
	return &ActivityLogger{repo: repo, log: log}
}

// Record appends one activity record. Request cancellation does not stop the
// write; the record describes a transition that has already committed.
func (l *ActivityLogger) Record(ctx context.Context, userID *uuid.UUID, action audit.Action, targetType string, targetID uuid.UUID, description string) {
	entry, err := audit.NewActivityLog(userID, action, targetType, targetID, description)
	if err != nil {
		l.log.Warn("dropping invalid activity record",
			zap.String("action", string(action)),
			zap.String("target_type", targetType),
			zap.Error(err))
		return
	}
	if err := l.repo.Create(context.WithoutCancel(ctx), entry); err != nil {
		l.log.Warn("failed to append activity record",
			zap.String("action", string(action)),
			zap.String("target_type", targetType),
			zap.String("target_id", targetID.String()),
			zap.Error(err))
	}
}
