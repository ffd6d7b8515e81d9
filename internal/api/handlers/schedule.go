package handlers

import (
	"errors"
	"net/http"

	apperrors "qualityflow-backend/internal/errors"
	"qualityflow-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ScheduleHandler handles HTTP requests for schedule operations
type ScheduleHandler struct {
	scheduleService *service.ScheduleService
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(scheduleService *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
	}
}

// InitSchedule handles POST /projects/:id/schedule/init
// @Summary Initialize a project schedule
// @Description Build the project's phase set from a schedule template. Re-initialization replaces existing phases.
// @Tags schedule
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Param request body service.InitScheduleRequest true "Initialization parameters"
// @Success 200 {object} service.InitScheduleResponse "Schedule initialized"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Project or template not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /projects/{id}/schedule/init [post]
func (h *ScheduleHandler) InitSchedule(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	var req service.InitScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.scheduleService.InitFromTemplate(projectID, &req, userEmail(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrProjectNotFound) || errors.Is(err, apperrors.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrInvalidDateFormat) || errors.Is(err, apperrors.ErrEmptyTemplate) || apperrors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Recalculate handles POST /projects/:id/schedule/recalculate
// @Summary Recalculate a project schedule
// @Description Apply a manual end-date edit to one phase and cascade the change through dependent phases
// @Tags schedule
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Param request body service.RecalculateRequest true "Phase edit"
// @Success 200 {object} service.RecalculateResponse "Schedule recalculated"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Project or phase not found"
// @Failure 409 {object} ErrorResponse "Phase dependencies contain a cycle"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /projects/{id}/schedule/recalculate [post]
func (h *ScheduleHandler) Recalculate(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	var req service.RecalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.scheduleService.Recalculate(projectID, &req, userEmail(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrProjectNotFound) || errors.Is(err, apperrors.ErrPhaseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrDependencyCycle) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrInvalidDateFormat) || apperrors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListPhases handles GET /projects/:id/schedule/phases
// @Summary List project phases
// @Description Get a project's schedule phases in schedule order
// @Tags schedule
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Success 200 {object} service.PhaseListResponse "Successfully retrieved phases"
// @Failure 400 {object} ErrorResponse "Invalid project ID"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /projects/{id}/schedule/phases [get]
func (h *ScheduleHandler) ListPhases(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	result, err := h.scheduleService.ListPhases(projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetChangeLog handles GET /projects/:id/schedule/changelog
// @Summary Get schedule change log
// @Description Get a project's schedule audit trail, newest first
// @Tags schedule
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} service.ChangeLogListResponse "Successfully retrieved change log"
// @Failure 400 {object} ErrorResponse "Invalid project ID"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /projects/{id}/schedule/changelog [get]
func (h *ScheduleHandler) GetChangeLog(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	page, pageSize := pagination(c)
	result, err := h.scheduleService.GetChangeLog(projectID, page, pageSize)
	if err != nil {
		if errors.Is(err, apperrors.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAlerts handles GET /projects/:id/schedule/alerts
// @Summary Get schedule alerts
// @Description Get a project's schedule alerts, newest first
// @Tags schedule
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} service.AlertListResponse "Successfully retrieved alerts"
// @Failure 400 {object} ErrorResponse "Invalid project ID"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /projects/{id}/schedule/alerts [get]
func (h *ScheduleHandler) GetAlerts(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	page, pageSize := pagination(c)
	result, err := h.scheduleService.GetAlerts(projectID, page, pageSize)
	if err != nil {
		if errors.Is(err, apperrors.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
