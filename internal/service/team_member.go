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

// TeamMemberService handles business logic for team members
type TeamMemberService struct {
	repo      repository.TeamMemberRepositoryInterface
	validator *validator.Validate
}

// NewTeamMemberService creates a new team member service
func NewTeamMemberService(repo repository.TeamMemberRepositoryInterface, validator *validator.Validate) *TeamMemberService {
	return &TeamMemberService{repo: repo, validator: validator}
}

// CreateTeamMemberRequest represents the request to create a team member
type CreateTeamMemberRequest struct {
	Email    string            `json:"email" validate:"required,email"`
	FullName string            `json:"full_name" validate:"required,min=1,max=200"`
	Role     models.MemberRole `json:"role,omitempty"`
	Area     string            `json:"area,omitempty" validate:"max=100"`
}

// UpdateTeamMemberRequest represents the request to update a team member
type UpdateTeamMemberRequest struct {
	FullName *string            `json:"full_name,omitempty" validate:"omitempty,min=1,max=200"`
	Role     *models.MemberRole `json:"role,omitempty"`
	Area     *string            `json:"area,omitempty" validate:"omitempty,max=100"`
	IsActive *bool              `json:"is_active,omitempty"`
}

// TeamMemberListResponse represents a paginated list of team members
type TeamMemberListResponse struct {
	Members  []models.TeamMember `json:"members"`
	Total    int64               `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}

// Create creates a new team member
func (s *TeamMemberService) Create(req *CreateTeamMemberRequest, createdBy string) (*models.TeamMember, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	existing, err := s.repo.GetByEmail(req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing member: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrTeamMemberExists
	}

	role := req.Role
	if role == "" {
		role = models.MemberRoleMember
	}
	if !role.IsValid() {
		return nil, apperrors.NewValidationError("role", "must be one of admin, leader, member")
	}

	member := &models.TeamMember{
		Email:    req.Email,
		FullName: req.FullName,
		Role:     role,
		Area:     req.Area,
		IsActive: true,
	}
	member.CreatedBy = createdBy

	if err := s.repo.Create(member); err != nil {
		return nil, fmt.Errorf("failed to create team member: %w", err)
	}

	return member, nil
}

// GetByID retrieves a team member by ID
func (s *TeamMemberService) GetByID(id uuid.UUID) (*models.TeamMember, error) {
	member, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamMemberNotFound
		}
		return nil, fmt.Errorf("failed to get team member: %w", err)
	}
	return member, nil
}

// GetAll retrieves team members with pagination, optionally filtered by area
func (s *TeamMemberService) GetAll(area string, page, pageSize int) (*TeamMemberListResponse, error) {
	page, pageSize = normalizePagination(page, pageSize)

	if area != "" {
		members, err := s.repo.GetByArea(area)
		if err != nil {
			return nil, fmt.Errorf("failed to get team members: %w", err)
		}
		return &TeamMemberListResponse{
			Members:  members,
			Total:    int64(len(members)),
			Page:     1,
			PageSize: len(members),
		}, nil
	}

	members, total, err := s.repo.GetAll(pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to get team members: %w", err)
	}

	return &TeamMemberListResponse{
		Members:  members,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Update updates a team member. Only the provided fields are changed.
func (s *TeamMemberService) Update(id uuid.UUID, req *UpdateTeamMemberRequest, updatedBy string) (*models.TeamMember, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	member, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamMemberNotFound
		}
		return nil, fmt.Errorf("failed to get team member: %w", err)
	}

	if req.FullName != nil {
		member.FullName = *req.FullName
	}
	if req.Role != nil {
		if !req.Role.IsValid() {
			return nil, apperrors.NewValidationError("role", "must be one of admin, leader, member")
		}
		member.Role = *req.Role
	}
	if req.Area != nil {
		member.Area = *req.Area
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}
	member.UpdatedBy = updatedBy

	if err := s.repo.Update(member); err != nil {
		return nil, fmt.Errorf("failed to update team member: %w", err)
	}

	return member, nil
}

// Delete deletes a team member
func (s *TeamMemberService) Delete(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTeamMemberNotFound
		}
		return fmt.Errorf("failed to get team member: %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete team member: %w", err)
	}
	return nil
}
