package repository

import (
	"qualityflow-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduleTemplateRepository handles database operations for schedule templates
type ScheduleTemplateRepository struct {
	db *gorm.DB
}

// NewScheduleTemplateRepository creates a new schedule template repository
func NewScheduleTemplateRepository(db *gorm.DB) *ScheduleTemplateRepository {
	return &ScheduleTemplateRepository{db: db}
}

// Create creates a new schedule template
func (r *ScheduleTemplateRepository) Create(template *models.ScheduleTemplate) error {
	return r.db.Create(template).Error
}

// GetByID retrieves a schedule template by ID
func (r *ScheduleTemplateRepository) GetByID(id uuid.UUID) (*models.ScheduleTemplate, error) {
	var template models.ScheduleTemplate
	err := r.db.First(&template, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// GetActiveByProjectType retrieves the first active template for a project type
func (r *ScheduleTemplateRepository) GetActiveByProjectType(projectType models.ProjectType) (*models.ScheduleTemplate, error) {
	var template models.ScheduleTemplate
	err := r.db.Where("project_type = ? AND is_active = ?", projectType, true).
		Order("created_at ASC").First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// GetAll retrieves all schedule templates with pagination
func (r *ScheduleTemplateRepository) GetAll(limit, offset int) ([]models.ScheduleTemplate, int64, error) {
	var templates []models.ScheduleTemplate
	var total int64

	if err := r.db.Model(&models.ScheduleTemplate{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&templates).Error
	return templates, total, err
}

// Update updates a schedule template
func (r *ScheduleTemplateRepository) Update(template *models.ScheduleTemplate) error {
	return r.db.Save(template).Error
}

// Delete deletes a schedule template
func (r *ScheduleTemplateRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.ScheduleTemplate{}, "id = ?", id).Error
}
