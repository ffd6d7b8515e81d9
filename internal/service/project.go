package service

import (
	"errors"
	"fmt"

	"qualityflow-backend/internal/database/models"
	apperrors "qualityflow-backend/internal/errors"
	"qualityflow-backend/internal/repository"
	"qualityflow-backend/internal/schedule"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectService handles business logic for projects
type ProjectService struct {
	repo      repository.ProjectRepositoryInterface
	validator *validator.Validate
}

// NewProjectService creates a new project service
func NewProjectService(repo repository.ProjectRepositoryInterface, validator *validator.Validate) *ProjectService {
	return &ProjectService{repo: repo, validator: validator}
}

// CreateProjectRequest represents the request to create a project
type CreateProjectRequest struct {
	Name              string               `json:"name" validate:"required,min=1,max=200"`
	ClientName        string               `json:"client_name,omitempty" validate:"max=200"`
	Description       string               `json:"description,omitempty"`
	ProjectType       models.ProjectType   `json:"project_type,omitempty"`
	Status            models.ProjectStatus `json:"status,omitempty"`
	RiskLevel         string               `json:"risk_level,omitempty" validate:"omitempty,oneof=low medium high"`
	StartDate         string               `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	LeaderEmail       string               `json:"leader_email,omitempty" validate:"omitempty,email"`
	ProductOwnerEmail string               `json:"product_owner_email,omitempty" validate:"omitempty,email"`
	AreaResponsibles  map[string]string    `json:"area_responsibles,omitempty"`
}

// UpdateProjectRequest represents the request to update a project
type UpdateProjectRequest struct {
	ClientName        *string               `json:"client_name,omitempty" validate:"omitempty,max=200"`
	Description       *string               `json:"description,omitempty"`
	ProjectType       *models.ProjectType   `json:"project_type,omitempty"`
	Status            *models.ProjectStatus `json:"status,omitempty"`
	RiskLevel         *string               `json:"risk_level,omitempty" validate:"omitempty,oneof=low medium high"`
	StartDate         *string               `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	LeaderEmail       *string               `json:"leader_email,omitempty" validate:"omitempty,email"`
	ProductOwnerEmail *string               `json:"product_owner_email,omitempty" validate:"omitempty,email"`
	AreaResponsibles  map[string]string     `json:"area_responsibles,omitempty"`
}

// ProjectListResponse represents a paginated list of projects
type ProjectListResponse struct {
	Projects []models.Project `json:"projects"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// Create creates a new project
func (s *ProjectService) Create(req *CreateProjectRequest, createdBy string) (*models.Project, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	existing, err := s.repo.GetByName(req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing project: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrProjectExists
	}

	projectType := req.ProjectType
	if projectType == "" {
		projectType = models.ProjectTypeWebsite
	}
	status := req.Status
	if status == "" {
		status = models.ProjectStatusActive
	}
	riskLevel := req.RiskLevel
	if riskLevel == "" {
		riskLevel = "medium"
	}

	project := &models.Project{
		Name:              req.Name,
		ClientName:        req.ClientName,
		Description:       req.Description,
		ProjectType:       projectType,
		Status:            status,
		RiskLevel:         riskLevel,
		LeaderEmail:       req.LeaderEmail,
		ProductOwnerEmail: req.ProductOwnerEmail,
		AreaResponsibles:  models.StringMap(req.AreaResponsibles),
	}
	project.CreatedBy = createdBy

	if req.StartDate != "" {
		start, err := schedule.ParseDate(req.StartDate)
		if err != nil {
			return nil, apperrors.ErrInvalidDateFormat
		}
		project.StartDate = &start
	}

	if err := s.repo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// GetByID retrieves a project by ID
func (s *ProjectService) GetByID(id uuid.UUID) (*models.Project, error) {
	project, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// GetWithPhases retrieves a project together with its phases in schedule order
func (s *ProjectService) GetWithPhases(id uuid.UUID) (*models.Project, error) {
	project, err := s.repo.GetWithPhases(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// GetAll retrieves projects with pagination, optionally filtered by status
func (s *ProjectService) GetAll(status models.ProjectStatus, page, pageSize int) (*ProjectListResponse, error) {
	page, pageSize = normalizePagination(page, pageSize)
	offset := (page - 1) * pageSize

	var projects []models.Project
	var total int64
	var err error
	if status != "" {
		projects, total, err = s.repo.GetByStatus(status, pageSize, offset)
	} else {
		projects, total, err = s.repo.GetAll(pageSize, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get projects: %w", err)
	}

	return &ProjectListResponse{
		Projects: projects,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Update updates a project. Only the provided fields are changed.
func (s *ProjectService) Update(id uuid.UUID, req *UpdateProjectRequest, updatedBy string) (*models.Project, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	project, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if req.ClientName != nil {
		project.ClientName = *req.ClientName
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.ProjectType != nil {
		project.ProjectType = *req.ProjectType
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if req.RiskLevel != nil {
		project.RiskLevel = *req.RiskLevel
	}
	if req.LeaderEmail != nil {
		project.LeaderEmail = *req.LeaderEmail
	}
	if req.ProductOwnerEmail != nil {
		project.ProductOwnerEmail = *req.ProductOwnerEmail
	}
	if req.AreaResponsibles != nil {
		project.AreaResponsibles = models.StringMap(req.AreaResponsibles)
	}
	if req.StartDate != nil {
		start, err := schedule.ParseDate(*req.StartDate)
		if err != nil {
			return nil, apperrors.ErrInvalidDateFormat
		}
		project.StartDate = &start
	}
	project.UpdatedBy = updatedBy

	if err := s.repo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// Delete deletes a project and, through the FK constraint, its phases
func (s *ProjectService) Delete(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProjectNotFound
		}
		return fmt.Errorf("failed to get project: %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
