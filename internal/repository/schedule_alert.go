package repository

import (
	"qualityflow-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduleAlertRepository handles database operations for schedule alerts
type ScheduleAlertRepository struct {
	db *gorm.DB
}

// NewScheduleAlertRepository creates a new schedule alert repository
func NewScheduleAlertRepository(db *gorm.DB) *ScheduleAlertRepository {
	return &ScheduleAlertRepository{db: db}
}

// Create creates a new schedule alert
func (r *ScheduleAlertRepository) Create(alert *models.ScheduleAlert) error {
	return r.db.Create(alert).Error
}

// GetByProjectID retrieves a project's alerts, newest first
func (r *ScheduleAlertRepository) GetByProjectID(projectID uuid.UUID, limit, offset int) ([]models.ScheduleAlert, int64, error) {
	var alerts []models.ScheduleAlert
	var total int64

	if err := r.db.Model(&models.ScheduleAlert{}).Where("project_id = ?", projectID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("project_id = ?", projectID).Order("created_at DESC").Limit(limit).Offset(offset).Find(&alerts).Error
	return alerts, total, err
}

// GetBySeverity retrieves alerts of a given severity across all projects
func (r *ScheduleAlertRepository) GetBySeverity(severity models.AlertSeverity, limit, offset int) ([]models.ScheduleAlert, int64, error) {
	var alerts []models.ScheduleAlert
	var total int64

	if err := r.db.Model(&models.ScheduleAlert{}).Where("severity = ?", severity).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("severity = ?", severity).Order("created_at DESC").Limit(limit).Offset(offset).Find(&alerts).Error
	return alerts, total, err
}
