package repository

import (
	"time"

	"qualityflow-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchedulePhaseRepository handles database operations for schedule phases
type SchedulePhaseRepository struct {
	db *gorm.DB
}

// NewSchedulePhaseRepository creates a new schedule phase repository
func NewSchedulePhaseRepository(db *gorm.DB) *SchedulePhaseRepository {
	return &SchedulePhaseRepository{db: db}
}

// Create creates a new schedule phase
func (r *SchedulePhaseRepository) Create(phase *models.SchedulePhase) error {
	return r.db.Create(phase).Error
}

// GetByID retrieves a schedule phase by ID
func (r *SchedulePhaseRepository) GetByID(id uuid.UUID) (*models.SchedulePhase, error) {
	var phase models.SchedulePhase
	err := r.db.First(&phase, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &phase, nil
}

// GetByProjectID retrieves all phases of a project ordered by sort order
func (r *SchedulePhaseRepository) GetByProjectID(projectID uuid.UUID) ([]models.SchedulePhase, error) {
	var phases []models.SchedulePhase
	err := r.db.Where("project_id = ?", projectID).Order("sort_order ASC").Find(&phases).Error
	return phases, err
}

// GetByProjectAndKey retrieves one phase by its key within a project
func (r *SchedulePhaseRepository) GetByProjectAndKey(projectID uuid.UUID, phaseKey string) (*models.SchedulePhase, error) {
	var phase models.SchedulePhase
	err := r.db.First(&phase, "project_id = ? AND phase_key = ?", projectID, phaseKey).Error
	if err != nil {
		return nil, err
	}
	return &phase, nil
}

// UpdateEndDate moves a phase's end date, leaving its start untouched
func (r *SchedulePhaseRepository) UpdateEndDate(id uuid.UUID, endDate time.Time) error {
	return r.db.Model(&models.SchedulePhase{}).Where("id = ?", id).Update("end_date", endDate).Error
}

// UpdateDates moves both dates of a cascaded phase
func (r *SchedulePhaseRepository) UpdateDates(id uuid.UUID, startDate, endDate time.Time) error {
	return r.db.Model(&models.SchedulePhase{}).Where("id = ?", id).Updates(map[string]interface{}{
		"start_date": startDate,
		"end_date":   endDate,
	}).Error
}

// UpdateStatus updates a phase's display status
func (r *SchedulePhaseRepository) UpdateStatus(id uuid.UUID, status models.PhaseStatus) error {
	return r.db.Model(&models.SchedulePhase{}).Where("id = ?", id).Update("status", status).Error
}

// DeleteByProjectID removes every phase of a project (re-initialization)
func (r *SchedulePhaseRepository) DeleteByProjectID(projectID uuid.UUID) error {
	return r.db.Delete(&models.SchedulePhase{}, "project_id = ?", projectID).Error
}
