package repository

import (
	"qualityflow-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduleChangeLogRepository handles database operations for the schedule
// audit trail. Entries are append-only: there are no update or delete methods.
type ScheduleChangeLogRepository struct {
	db *gorm.DB
}

// NewScheduleChangeLogRepository creates a new schedule change log repository
func NewScheduleChangeLogRepository(db *gorm.DB) *ScheduleChangeLogRepository {
	return &ScheduleChangeLogRepository{db: db}
}

// Create appends a new change log entry
func (r *ScheduleChangeLogRepository) Create(entry *models.ScheduleChangeLog) error {
	return r.db.Create(entry).Error
}

// GetByProjectID retrieves a project's change history, newest first
func (r *ScheduleChangeLogRepository) GetByProjectID(projectID uuid.UUID, limit, offset int) ([]models.ScheduleChangeLog, int64, error) {
	var entries []models.ScheduleChangeLog
	var total int64

	if err := r.db.Model(&models.ScheduleChangeLog{}).Where("project_id = ?", projectID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("project_id = ?", projectID).Order("created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error
	return entries, total, err
}

// GetByPhase retrieves the change history of one phase, newest first
func (r *ScheduleChangeLogRepository) GetByPhase(projectID uuid.UUID, phaseKey string) ([]models.ScheduleChangeLog, error) {
	var entries []models.ScheduleChangeLog
	err := r.db.Where("project_id = ? AND phase_key = ?", projectID, phaseKey).Order("created_at DESC").Find(&entries).Error
	return entries, err
}

// CountByProjectID returns the number of audit entries for a project
func (r *ScheduleChangeLogRepository) CountByProjectID(projectID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.Model(&models.ScheduleChangeLog{}).Where("project_id = ?", projectID).Count(&total).Error
	return total, err
}
