package routes

import (
	"log"

	"qualityflow-backend/internal/api/handlers"
	"qualityflow-backend/internal/api/middleware"
	"qualityflow-backend/internal/auth"
	"qualityflow-backend/internal/config"
	"qualityflow-backend/internal/mailer"
	"qualityflow-backend/internal/repository"
	"qualityflow-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))

	// Initialize validator
	validator := validator.New()

	// Initialize repositories
	projectRepo := repository.NewProjectRepository(db)
	phaseRepo := repository.NewSchedulePhaseRepository(db)
	templateRepo := repository.NewScheduleTemplateRepository(db)
	changeLogRepo := repository.NewScheduleChangeLogRepository(db)
	alertRepo := repository.NewScheduleAlertRepository(db)
	memberRepo := repository.NewTeamMemberRepository(db)

	// Initialize services
	alertMailer := mailer.FromConfig(cfg)
	projectService := service.NewProjectService(projectRepo, validator)
	scheduleService := service.NewScheduleService(projectRepo, phaseRepo, templateRepo, changeLogRepo, alertRepo, alertMailer, validator)
	templateService := service.NewTemplateService(templateRepo, validator)
	memberService := service.NewTeamMemberService(memberRepo, validator)

	// Initialize auth configuration and middleware
	authConfig, err := auth.LoadAuthConfig("config/auth.yaml")
	if err != nil {
		log.Printf("Warning: Failed to load auth config: %v", err)
		// Continue without auth if config fails to load
		authConfig = nil
	}

	var authMiddleware *auth.AuthMiddleware
	if authConfig != nil {
		authService, err := auth.NewAuthService(authConfig)
		if err != nil {
			log.Printf("Warning: Failed to initialize auth service: %v", err)
		} else {
			authMiddleware = auth.NewAuthMiddleware(authService)
		}
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	projectHandler := handlers.NewProjectHandler(projectService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	templateHandler := handlers.NewTemplateHandler(templateService)
	memberHandler := handlers.NewTeamMemberHandler(memberService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes - All endpoints require authentication
	v1 := router.Group("/api/v1")

	// Apply auth middleware to require authentication for all API endpoints
	if authMiddleware != nil {
		v1.Use(authMiddleware.RequireAuth())
	}

	{
		// Project routes
		projects := v1.Group("/projects")
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)

			// Schedule routes
			projects.POST("/:id/schedule/init", scheduleHandler.InitSchedule)
			projects.POST("/:id/schedule/recalculate", scheduleHandler.Recalculate)
			projects.GET("/:id/schedule/phases", scheduleHandler.ListPhases)
			projects.GET("/:id/schedule/changelog", scheduleHandler.GetChangeLog)
			projects.GET("/:id/schedule/alerts", scheduleHandler.GetAlerts)
		}

		// Schedule template routes
		templates := v1.Group("/templates")
		{
			templates.GET("", templateHandler.ListTemplates)
			templates.POST("", templateHandler.CreateTemplate)
			templates.GET("/:id", templateHandler.GetTemplate)
			templates.PUT("/:id", templateHandler.UpdateTemplate)
			templates.DELETE("/:id", templateHandler.DeleteTemplate)
		}

		// Team member routes
		members := v1.Group("/team-members")
		{
			members.GET("", memberHandler.ListTeamMembers)
			members.POST("", memberHandler.CreateTeamMember)
			members.GET("/:id", memberHandler.GetTeamMember)
			members.PUT("/:id", memberHandler.UpdateTeamMember)
			members.DELETE("/:id", memberHandler.DeleteTeamMember)
		}
	}

	return router
}
