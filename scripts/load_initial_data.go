package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"qualityflow-backend/internal/config"
	"qualityflow-backend/internal/database"
	"qualityflow-backend/internal/database/models"
	"qualityflow-backend/internal/schedule"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type TeamMemberData struct {
	Email    string `yaml:"email"`
	FullName string `yaml:"full_name"`
	Role     string `yaml:"role"`
	Area     string `yaml:"area,omitempty"`
	IsActive bool   `yaml:"is_active"`
}

type TemplatePhaseData struct {
	PhaseKey            string   `yaml:"phase_key"`
	PhaseName           string   `yaml:"phase_name"`
	DefaultDurationDays int      `yaml:"default_duration_days"`
	DependsOn           []string `yaml:"depends_on,omitempty"`
	RequiredArea        string   `yaml:"required_area,omitempty"`
	Order               int      `yaml:"order"`
}

type TemplateData struct {
	Name        string              `yaml:"name"`
	Description string              `yaml:"description"`
	ProjectType string              `yaml:"project_type"`
	IsActive    bool                `yaml:"is_active"`
	Phases      []TemplatePhaseData `yaml:"phases"`
}

type ProjectData struct {
	Name              string            `yaml:"name"`
	ClientName        string            `yaml:"client_name,omitempty"`
	Description       string            `yaml:"description,omitempty"`
	ProjectType       string            `yaml:"project_type"`
	Status            string            `yaml:"status"`
	RiskLevel         string            `yaml:"risk_level,omitempty"`
	StartDate         string            `yaml:"start_date,omitempty"`
	LeaderEmail       string            `yaml:"leader_email,omitempty"`
	ProductOwnerEmail string            `yaml:"product_owner_email,omitempty"`
	AreaResponsibles  map[string]string `yaml:"area_responsibles,omitempty"`
}

// File structures
type TeamMembersFile struct {
	Members []TeamMemberData `yaml:"members"`
}

type TemplatesFile struct {
	Templates []TemplateData `yaml:"templates"`
}

type ProjectsFile struct {
	Projects []ProjectData `yaml:"projects"`
}

func main() {
	log.Println("🚀 Loading initial data from YAML files...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := loadDataFromYAMLFiles(db, "scripts/data"); err != nil {
		log.Fatalf("Failed to load data from YAML files: %v", err)
	}

	log.Println("✅ Initial data loaded successfully!")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	opts := &database.Options{
		LogLevel: logger.Silent, // Suppress GORM logs including "record not found"
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(db *gorm.DB, dataDir string) error {
	members, err := loadTeamMembers(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load team members: %w", err)
	}

	templates, err := loadTemplates(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	projects, err := loadProjects(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}

	memberCreated := 0
	for _, memberData := range members {
		created, err := createTeamMember(db, memberData)
		if err != nil {
			return fmt.Errorf("failed to create team member %s: %w", memberData.Email, err)
		}
		if created {
			memberCreated++
		}
	}
	log.Printf("📋 Team members: %d created, %d total", memberCreated, len(members))

	templateCreated := 0
	for _, templateData := range templates {
		created, err := createTemplate(db, templateData)
		if err != nil {
			return fmt.Errorf("failed to create template %s: %w", templateData.Name, err)
		}
		if created {
			templateCreated++
		}
	}
	log.Printf("📋 Templates: %d created, %d total", templateCreated, len(templates))

	projectCreated := 0
	for _, projectData := range projects {
		created, err := createProject(db, projectData)
		if err != nil {
			return fmt.Errorf("failed to create project %s: %w", projectData.Name, err)
		}
		if created {
			projectCreated++
		}
	}
	log.Printf("📋 Projects: %d created, %d total", projectCreated, len(projects))

	return nil
}

func loadTeamMembers(dataDir string) ([]TeamMemberData, error) {
	var file TeamMembersFile
	if err := readYAMLFile(filepath.Join(dataDir, "team_members.yaml"), &file); err != nil {
		return nil, err
	}
	return file.Members, nil
}

func loadTemplates(dataDir string) ([]TemplateData, error) {
	var file TemplatesFile
	if err := readYAMLFile(filepath.Join(dataDir, "templates.yaml"), &file); err != nil {
		return nil, err
	}
	return file.Templates, nil
}

func loadProjects(dataDir string) ([]ProjectData, error) {
	var file ProjectsFile
	if err := readYAMLFile(filepath.Join(dataDir, "projects.yaml"), &file); err != nil {
		return nil, err
	}
	return file.Projects, nil
}

func readYAMLFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("⚠️  %s not found, skipping", path)
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, out)
}

func createTeamMember(db *gorm.DB, data TeamMemberData) (bool, error) {
	var existing models.TeamMember
	err := db.First(&existing, "email = ?", data.Email).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	role := models.MemberRole(data.Role)
	if role == "" {
		role = models.MemberRoleMember
	}

	member := models.TeamMember{
		Email:    data.Email,
		FullName: data.FullName,
		Role:     role,
		Area:     data.Area,
		IsActive: data.IsActive,
	}
	member.CreatedBy = "seed"
	return true, db.Create(&member).Error
}

func createTemplate(db *gorm.DB, data TemplateData) (bool, error) {
	var existing models.ScheduleTemplate
	err := db.First(&existing, "name = ?", data.Name).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	phases := make(models.TemplatePhases, len(data.Phases))
	for i, p := range data.Phases {
		phases[i] = models.TemplatePhase{
			PhaseKey:            p.PhaseKey,
			PhaseName:           p.PhaseName,
			DefaultDurationDays: p.DefaultDurationDays,
			DependsOn:           p.DependsOn,
			RequiredArea:        p.RequiredArea,
			Order:               p.Order,
		}
	}

	template := models.ScheduleTemplate{
		Name:        data.Name,
		Description: data.Description,
		ProjectType: models.ProjectType(data.ProjectType),
		IsActive:    data.IsActive,
		Phases:      phases,
	}
	template.CreatedBy = "seed"
	return true, db.Create(&template).Error
}

func createProject(db *gorm.DB, data ProjectData) (bool, error) {
	var existing models.Project
	err := db.First(&existing, "name = ?", data.Name).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	status := models.ProjectStatus(data.Status)
	if status == "" {
		status = models.ProjectStatusActive
	}
	riskLevel := data.RiskLevel
	if riskLevel == "" {
		riskLevel = "medium"
	}

	project := models.Project{
		Name:              data.Name,
		ClientName:        data.ClientName,
		Description:       data.Description,
		ProjectType:       models.ProjectType(data.ProjectType),
		Status:            status,
		RiskLevel:         riskLevel,
		LeaderEmail:       data.LeaderEmail,
		ProductOwnerEmail: data.ProductOwnerEmail,
		AreaResponsibles:  models.StringMap(data.AreaResponsibles),
	}
	project.CreatedBy = "seed"

	if data.StartDate != "" {
		start, err := schedule.ParseDate(data.StartDate)
		if err != nil {
			return false, fmt.Errorf("invalid start_date %q: %w", data.StartDate, err)
		}
		project.StartDate = &start
	}

	return true, db.Create(&project).Error
}
