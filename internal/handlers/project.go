package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nvoloshyn/scrum-api/internal/dto"
	apierrors "github.com/nvoloshyn/scrum-api/internal/errors"
	"github.com/nvoloshyn/scrum-api/internal/middleware"
	"github.com/nvoloshyn/scrum-api/internal/services"
)

// ProjectHandler coordinates project HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// ListProjects returns the projects the principal is a member of.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	projects, err := h.projectService.ListForUser(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	summaries := make([]dto.ProjectSummaryDTO, len(projects))
	for i, project := range projects {
		summaries[i] = dto.ToProjectSummaryDTO(project)
	}

	c.JSON(http.StatusOK, gin.H{"projects": summaries})
}

// GetProject returns one project by alias.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	project, err := h.projectService.Open(userID, c.Param("alias"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	payload, err := h.projectService.Dump(project)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payload)
}

// ListMembers returns a project's members.
func (h *ProjectHandler) ListMembers(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	members, err := h.projectService.Members(userID, c.Param("alias"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	memberDTOs := make([]dto.UserDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = dto.ToUserDTO(member)
	}

	c.JSON(http.StatusOK, gin.H{"members": memberDTOs})
}
