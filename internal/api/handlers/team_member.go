package handlers

import (
	"errors"
	"net/http"

	apperrors "qualityflow-backend/internal/errors"
	"qualityflow-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TeamMemberHandler handles HTTP requests for team member operations
type TeamMemberHandler struct {
	memberService *service.TeamMemberService
}

// NewTeamMemberHandler creates a new team member handler
func NewTeamMemberHandler(memberService *service.TeamMemberService) *TeamMemberHandler {
	return &TeamMemberHandler{
		memberService: memberService,
	}
}

// CreateTeamMember handles POST /team-members
// @Summary Create a team member
// @Description Register a person who can be assigned to project phases
// @Tags team-members
// @Accept json
// @Produce json
// @Param member body service.CreateTeamMemberRequest true "Team member data"
// @Success 201 {object} models.TeamMember "Successfully created team member"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 409 {object} ErrorResponse "Team member already exists"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /team-members [post]
func (h *TeamMemberHandler) CreateTeamMember(c *gin.Context) {
	var req service.CreateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.memberService.Create(&req, userEmail(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrTeamMemberExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if apperrors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, member)
}

// GetTeamMember handles GET /team-members/:id
// @Summary Get team member by ID
// @Description Get a specific team member by their UUID
// @Tags team-members
// @Accept json
// @Produce json
// @Param id path string true "Team member ID (UUID)"
// @Success 200 {object} models.TeamMember "Successfully retrieved team member"
// @Failure 400 {object} ErrorResponse "Invalid team member ID"
// @Failure 404 {object} ErrorResponse "Team member not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /team-members/{id} [get]
func (h *TeamMemberHandler) GetTeamMember(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid team member ID"})
		return
	}

	member, err := h.memberService.GetByID(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrTeamMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, member)
}

// ListTeamMembers handles GET /team-members
// @Summary List team members
// @Description List team members with pagination, optionally filtered by area
// @Tags team-members
// @Accept json
// @Produce json
// @Param area query string false "Filter by delivery area"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} service.TeamMemberListResponse "Successfully retrieved team members"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /team-members [get]
func (h *TeamMemberHandler) ListTeamMembers(c *gin.Context) {
	page, pageSize := pagination(c)
	area := c.Query("area")

	members, err := h.memberService.GetAll(area, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, members)
}

// UpdateTeamMember handles PUT /team-members/:id
// @Summary Update team member
// @Description Update an existing team member by ID
// @Tags team-members
// @Accept json
// @Produce json
// @Param id path string true "Team member ID (UUID)"
// @Param member body service.UpdateTeamMemberRequest true "Updated team member data"
// @Success 200 {object} models.TeamMember "Successfully updated team member"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Team member not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /team-members/{id} [put]
func (h *TeamMemberHandler) UpdateTeamMember(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid team member ID"})
		return
	}

	var req service.UpdateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.memberService.Update(id, &req, userEmail(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrTeamMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if apperrors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, member)
}

// DeleteTeamMember handles DELETE /team-members/:id
// @Summary Delete team member
// @Description Delete a team member
// @Tags team-members
// @Accept json
// @Produce json
// @Param id path string true "Team member ID (UUID)"
// @Success 204 "Successfully deleted team member"
// @Failure 400 {object} ErrorResponse "Invalid team member ID"
// @Failure 404 {object} ErrorResponse "Team member not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /team-members/{id} [delete]
func (h *TeamMemberHandler) DeleteTeamMember(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid team member ID"})
		return
	}

	if err := h.memberService.Delete(id); err != nil {
		if errors.Is(err, apperrors.ErrTeamMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
