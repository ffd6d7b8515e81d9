package service

import (
	"errors"
	"fmt"

	"qualityflow-backend/internal/database/models"
	apperrors "qualityflow-backend/internal/errors"
	"qualityflow-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TemplateService handles business logic for schedule templates
type TemplateService struct {
	repo      repository.ScheduleTemplateRepositoryInterface
	validator *validator.Validate
}

// NewTemplateService creates a new template service
func NewTemplateService(repo repository.ScheduleTemplateRepositoryInterface, validator *validator.Validate) *TemplateService {
	return &TemplateService{repo: repo, validator: validator}
}

// CreateTemplateRequest represents the request to create a schedule template
type CreateTemplateRequest struct {
	Name        string                `json:"name" validate:"required,min=1,max=200"`
	Description string                `json:"description,omitempty"`
	ProjectType models.ProjectType    `json:"project_type,omitempty"`
	IsActive    *bool                 `json:"is_active,omitempty"`
	Phases      models.TemplatePhases `json:"phases" validate:"required,min=1,dive"`
}

// UpdateTemplateRequest represents the request to update a schedule template
type UpdateTemplateRequest struct {
	Name        *string               `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string               `json:"description,omitempty"`
	ProjectType *models.ProjectType   `json:"project_type,omitempty"`
	IsActive    *bool                 `json:"is_active,omitempty"`
	Phases      models.TemplatePhases `json:"phases,omitempty" validate:"omitempty,min=1,dive"`
}

// TemplateListResponse represents a paginated list of schedule templates
type TemplateListResponse struct {
	Templates []models.ScheduleTemplate `json:"templates"`
	Total     int64                     `json:"total"`
	Page      int                       `json:"page"`
	PageSize  int                       `json:"page_size"`
}

// Create creates a new schedule template
func (s *TemplateService) Create(req *CreateTemplateRequest, createdBy string) (*models.ScheduleTemplate, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	template := &models.ScheduleTemplate{
		Name:        req.Name,
		Description: req.Description,
		ProjectType: req.ProjectType,
		IsActive:    isActive,
		Phases:      req.Phases,
	}
	template.CreatedBy = createdBy

	if err := s.repo.Create(template); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	return template, nil
}

// GetByID retrieves a schedule template by ID
func (s *TemplateService) GetByID(id uuid.UUID) (*models.ScheduleTemplate, error) {
	template, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return template, nil
}

// GetAll retrieves schedule templates with pagination
func (s *TemplateService) GetAll(page, pageSize int) (*TemplateListResponse, error) {
	page, pageSize = normalizePagination(page, pageSize)
	templates, total, err := s.repo.GetAll(pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to get templates: %w", err)
	}

	return &TemplateListResponse{
		Templates: templates,
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	}, nil
}

// Update updates a schedule template. Only the provided fields are changed.
func (s *TemplateService) Update(id uuid.UUID, req *UpdateTemplateRequest, updatedBy string) (*models.ScheduleTemplate, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	template, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	if req.Name != nil {
		template.Name = *req.Name
	}
	if req.Description != nil {
		template.Description = *req.Description
	}
	if req.ProjectType != nil {
		template.ProjectType = *req.ProjectType
	}
	if req.IsActive != nil {
		template.IsActive = *req.IsActive
	}
	if req.Phases != nil {
		template.Phases = req.Phases
	}
	template.UpdatedBy = updatedBy

	if err := s.repo.Update(template); err != nil {
		return nil, fmt.Errorf("failed to update template: %w", err)
	}

	return template, nil
}

// Delete deletes a schedule template
func (s *TemplateService) Delete(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTemplateNotFound
		}
		return fmt.Errorf("failed to get template: %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}
