package persistence

import (
	"context"

	"github.com/fieldpoint/backend/internal/domain/audit"
	"github.com/fieldpoint/backend/internal/domain/shared"
	"github.com/fieldpoint/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormActivityLogRepository implements audit.Repository using GORM. The
// table is append-only.
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewGormActivityLogRepository creates a new GormActivityLogRepository
func NewGormActivityLogRepository(db *gorm.DB) *GormActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// Create appends an activity record
func (r *GormActivityLogRepository) Create(ctx context.Context, log *audit.ActivityLog) error {
	model := models.ActivityLogModelFromDomain(log)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// FindByTarget lists activity records for a target, newest first unless the
// filter says otherwise
func (r *GormActivityLogRepository) FindByTarget(ctx context.Context, targetType string, targetID uuid.UUID, filter shared.Filter) ([]audit.ActivityLog, error) {
	var logModels []models.ActivityLogModel
	query := r.db.WithContext(ctx).
		Model(&models.ActivityLogModel{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID)
	if filter.OrderBy == "" {
		filter.OrderBy = "occurred_at"
		filter.OrderDir = "desc"
	}
	query = applyFilter(query, filter)

	if err := query.Find(&logModels).Error; err != nil {
		return nil, err
	}
	logs := make([]audit.ActivityLog, len(logModels))
	for i, model := range logModels {
		logs[i] = *model.ToDomain()
	}
	return logs, nil
}

var _ audit.Repository = (*GormActivityLogRepository)(nil)
