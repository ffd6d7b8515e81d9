package repository

import (
	"time"

	"qualityflow-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// ProjectRepositoryInterface defines the interface for project repository operations
type ProjectRepositoryInterface interface {
	Create(project *models.Project) error
	GetByID(id uuid.UUID) (*models.Project, error)
	GetByName(name string) (*models.Project, error)
	GetAll(limit, offset int) ([]models.Project, int64, error)
	GetByStatus(status models.ProjectStatus, limit, offset int) ([]models.Project, int64, error)
	Update(project *models.Project) error
	UpdateTargetDate(id uuid.UUID, targetDate time.Time) error
	Delete(id uuid.UUID) error
	GetWithPhases(id uuid.UUID) (*models.Project, error)
}

// SchedulePhaseRepositoryInterface defines the interface for phase repository operations
type SchedulePhaseRepositoryInterface interface {
	Create(phase *models.SchedulePhase) error
	GetByID(id uuid.UUID) (*models.SchedulePhase, error)
	GetByProjectID(projectID uuid.UUID) ([]models.SchedulePhase, error)
	GetByProjectAndKey(projectID uuid.UUID, phaseKey string) (*models.SchedulePhase, error)
	UpdateEndDate(id uuid.UUID, endDate time.Time) error
	UpdateDates(id uuid.UUID, startDate, endDate time.Time) error
	UpdateStatus(id uuid.UUID, status models.PhaseStatus) error
	DeleteByProjectID(projectID uuid.UUID) error
}

// ScheduleTemplateRepositoryInterface defines the interface for template repository operations
type ScheduleTemplateRepositoryInterface interface {
	Create(template *models.ScheduleTemplate) error
	GetByID(id uuid.UUID) (*models.ScheduleTemplate, error)
	GetActiveByProjectType(projectType models.ProjectType) (*models.ScheduleTemplate, error)
	GetAll(limit, offset int) ([]models.ScheduleTemplate, int64, error)
	Update(template *models.ScheduleTemplate) error
	Delete(id uuid.UUID) error
}

// ScheduleChangeLogRepositoryInterface defines the interface for audit log operations
type ScheduleChangeLogRepositoryInterface interface {
	Create(entry *models.ScheduleChangeLog) error
	GetByProjectID(projectID uuid.UUID, limit, offset int) ([]models.ScheduleChangeLog, int64, error)
	GetByPhase(projectID uuid.UUID, phaseKey string) ([]models.ScheduleChangeLog, error)
	CountByProjectID(projectID uuid.UUID) (int64, error)
}

// ScheduleAlertRepositoryInterface defines the interface for alert repository operations
type ScheduleAlertRepositoryInterface interface {
	Create(alert *models.ScheduleAlert) error
	GetByProjectID(projectID uuid.UUID, limit, offset int) ([]models.ScheduleAlert, int64, error)
	GetBySeverity(severity models.AlertSeverity, limit, offset int) ([]models.ScheduleAlert, int64, error)
}

// TeamMemberRepositoryInterface defines the interface for team member repository operations
type TeamMemberRepositoryInterface interface {
	Create(member *models.TeamMember) error
	GetByID(id uuid.UUID) (*models.TeamMember, error)
	GetByEmail(email string) (*models.TeamMember, error)
	GetAll(limit, offset int) ([]models.TeamMember, int64, error)
	GetByArea(area string) ([]models.TeamMember, error)
	Update(member *models.TeamMember) error
	Delete(id uuid.UUID) error
}
