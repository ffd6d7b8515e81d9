package testutils

import (
	"time"

	"qualityflow-backend/internal/database/models"

	"github.com/google/uuid"
)

// FactorySet bundles all factories for convenient test setup
type FactorySet struct {
	Project       *ProjectFactory
	TeamMember    *TeamMemberFactory
	SchedulePhase *SchedulePhaseFactory
	Template      *TemplateFactory
}

// NewFactorySet creates a new FactorySet
func NewFactorySet() *FactorySet {
	return &FactorySet{
		Project:       NewProjectFactory(),
		TeamMember:    NewTeamMemberFactory(),
		SchedulePhase: NewSchedulePhaseFactory(),
		Template:      NewTemplateFactory(),
	}
}

// ProjectFactory provides methods to create test Project data
type ProjectFactory struct{}

// NewProjectFactory creates a new ProjectFactory
func NewProjectFactory() *ProjectFactory {
	return &ProjectFactory{}
}

// Create creates a test Project with default values
func (f *ProjectFactory) Create() *models.Project {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &models.Project{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:              "Test Project " + uuid.New().String()[:8],
		ClientName:        "Test Client",
		Description:       "A test project for testing purposes",
		ProjectType:       models.ProjectTypeWebsite,
		Status:            models.ProjectStatusActive,
		RiskLevel:         "medium",
		StartDate:         &start,
		LeaderEmail:       "leader@test.com",
		ProductOwnerEmail: "owner@test.com",
		AreaResponsibles: models.StringMap{
			"creativity": "design@test.com",
			"software":   "dev@test.com",
		},
	}
}

// WithName sets a custom name for the project
func (f *ProjectFactory) WithName(name string) *models.Project {
	project := f.Create()
	project.Name = name
	return project
}

// WithStartDate sets a custom start date for the project
func (f *ProjectFactory) WithStartDate(start time.Time) *models.Project {
	project := f.Create()
	project.StartDate = &start
	return project
}

// WithType sets a custom project type
func (f *ProjectFactory) WithType(projectType models.ProjectType) *models.Project {
	project := f.Create()
	project.ProjectType = projectType
	return project
}

// TeamMemberFactory provides methods to create test TeamMember data
type TeamMemberFactory struct{}

// NewTeamMemberFactory creates a new TeamMemberFactory
func NewTeamMemberFactory() *TeamMemberFactory {
	return &TeamMemberFactory{}
}

// Create creates a test TeamMember with default values
func (f *TeamMemberFactory) Create() *models.TeamMember {
	id := uuid.New()
	return &models.TeamMember{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Email:    "member-" + id.String()[:8] + "@test.com",
		FullName: "Jane Doe",
		Role:     models.MemberRoleMember,
		Area:     "software",
		IsActive: true,
	}
}

// WithEmail sets a custom email for the team member
func (f *TeamMemberFactory) WithEmail(email string) *models.TeamMember {
	member := f.Create()
	member.Email = email
	return member
}

// WithRole sets a custom role for the team member
func (f *TeamMemberFactory) WithRole(role models.MemberRole) *models.TeamMember {
	member := f.Create()
	member.Role = role
	return member
}

// SchedulePhaseFactory provides methods to create test SchedulePhase data
type SchedulePhaseFactory struct{}

// NewSchedulePhaseFactory creates a new SchedulePhaseFactory
func NewSchedulePhaseFactory() *SchedulePhaseFactory {
	return &SchedulePhaseFactory{}
}

// Create creates a test SchedulePhase with default values
func (f *SchedulePhaseFactory) Create(projectID uuid.UUID) *models.SchedulePhase {
	return &models.SchedulePhase{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		ProjectID:        projectID,
		PhaseKey:         "planning",
		PhaseName:        "Planning",
		StartDate:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC),
		DurationDays:     10,
		ResponsibleEmail: "planner@test.com",
		Status:           models.PhaseStatusPlanned,
		SortOrder:        0,
	}
}

// WithKey sets a custom phase key and name
func (f *SchedulePhaseFactory) WithKey(projectID uuid.UUID, key, name string) *models.SchedulePhase {
	phase := f.Create(projectID)
	phase.PhaseKey = key
	phase.PhaseName = name
	return phase
}

// WithDates sets custom dates and duration
func (f *SchedulePhaseFactory) WithDates(projectID uuid.UUID, start, end time.Time, duration int) *models.SchedulePhase {
	phase := f.Create(projectID)
	phase.StartDate = start
	phase.EndDate = end
	phase.DurationDays = duration
	return phase
}

// TemplateFactory provides methods to create test ScheduleTemplate data
type TemplateFactory struct{}

// NewTemplateFactory creates a new TemplateFactory
func NewTemplateFactory() *TemplateFactory {
	return &TemplateFactory{}
}

// Create creates a test ScheduleTemplate with a short two-phase blueprint
func (f *TemplateFactory) Create() *models.ScheduleTemplate {
	return &models.ScheduleTemplate{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:        "test-template-" + uuid.New().String()[:8],
		Description: "A test template for testing purposes",
		ProjectType: models.ProjectTypeWebsite,
		IsActive:    true,
		Phases: models.TemplatePhases{
			{PhaseKey: "planning", PhaseName: "Planning", DefaultDurationDays: 5, Order: 0},
			{PhaseKey: "build", PhaseName: "Build", DefaultDurationDays: 10, DependsOn: []string{"planning"}, Order: 1},
		},
	}
}

// WithProjectType sets a custom project type for the template
func (f *TemplateFactory) WithProjectType(projectType models.ProjectType) *models.ScheduleTemplate {
	template := f.Create()
	template.ProjectType = projectType
	return template
}
