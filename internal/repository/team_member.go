package repository

import (
	"qualityflow-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeamMemberRepository handles database operations for team members
type TeamMemberRepository struct {
	db *gorm.DB
}

// NewTeamMemberRepository creates a new team member repository
func NewTeamMemberRepository(db *gorm.DB) *TeamMemberRepository {
	return &TeamMemberRepository{db: db}
}

// Create creates a new team member
func (r *TeamMemberRepository) Create(member *models.TeamMember) error {
	return r.db.Create(member).Error
}

// GetByID retrieves a team member by ID
func (r *TeamMemberRepository) GetByID(id uuid.UUID) (*models.TeamMember, error) {
	var member models.TeamMember
	err := r.db.First(&member, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// GetByEmail retrieves a team member by email
func (r *TeamMemberRepository) GetByEmail(email string) (*models.TeamMember, error) {
	var member models.TeamMember
	err := r.db.First(&member, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// GetAll retrieves all team members with pagination
func (r *TeamMemberRepository) GetAll(limit, offset int) ([]models.TeamMember, int64, error) {
	var members []models.TeamMember
	var total int64

	if err := r.db.Model(&models.TeamMember{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("full_name ASC").Limit(limit).Offset(offset).Find(&members).Error
	return members, total, err
}

// GetByArea retrieves active team members of a delivery area
func (r *TeamMemberRepository) GetByArea(area string) ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := r.db.Where("area = ? AND is_active = ?", area, true).Order("full_name ASC").Find(&members).Error
	return members, err
}

// Update updates a team member
func (r *TeamMemberRepository) Update(member *models.TeamMember) error {
	return r.db.Save(member).Error
}

// Delete deletes a team member
func (r *TeamMemberRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.TeamMember{}, "id = ?", id).Error
}
