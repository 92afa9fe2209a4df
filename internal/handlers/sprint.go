package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nvoloshyn/scrum-api/internal/dto"
	apierrors "github.com/nvoloshyn/scrum-api/internal/errors"
	"github.com/nvoloshyn/scrum-api/internal/middleware"
	"github.com/nvoloshyn/scrum-api/internal/services"
)

// SprintHandler coordinates sprint HTTP handlers.
type SprintHandler struct {
	sprintService  *services.SprintService
	projectService *services.ProjectService
}

// NewSprintHandler creates a new SprintHandler.
func NewSprintHandler(sprintService *services.SprintService, projectService *services.ProjectService) *SprintHandler {
	return &SprintHandler{
		sprintService:  sprintService,
		projectService: projectService,
	}
}

// ListProjectSprints returns a project's sprints.
func (h *SprintHandler) ListProjectSprints(c *gin.Context) {
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

	sprints, err := h.sprintService.ListForProject(project.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Ordinal numbers follow from the creation order of the listing itself.
	sprintDTOs := make([]dto.SprintDTO, len(sprints))
	for i, sprint := range sprints {
		sprintDTOs[i] = dto.ToSprintDTO(sprint, i+1)
	}

	c.JSON(http.StatusOK, gin.H{"sprints": sprintDTOs})
}

// CreateSprint adds a sprint to a project.
func (h *SprintHandler) CreateSprint(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateSprintRequest struct {
		StartDate string  `json:"startDate" binding:"required"`
		EndDate   string  `json:"endDate" binding:"required"`
		Goal      *string `json:"goal"`
	}

	var req CreateSprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.Open(userID, c.Param("alias"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	input, err := parseCreateSprintInput(req.StartDate, req.EndDate, req.Goal)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	sprint, err := h.sprintService.Create(project.ID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	payload, err := h.sprintService.Dump(sprint)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payload)
}

// GetSprint returns one sprint by ID.
func (h *SprintHandler) GetSprint(c *gin.Context) {
	userID, sprintID, ok := h.principalAndID(c)
	if !ok {
		return
	}

	sprint, err := h.sprintService.Open(userID, sprintID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	payload, err := h.sprintService.Dump(sprint)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payload)
}

// UpdateSprint applies a partial update to a sprint.
func (h *SprintHandler) UpdateSprint(c *gin.Context) {
	userID, sprintID, ok := h.principalAndID(c)
	if !ok {
		return
	}

	var patch dto.SprintPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	sprint, err := h.sprintService.Update(userID, sprintID, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	payload, err := h.sprintService.Dump(sprint)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payload)
}

// DeleteSprint removes a sprint, detaching its tasks.
func (h *SprintHandler) DeleteSprint(c *gin.Context) {
	userID, sprintID, ok := h.principalAndID(c)
	if !ok {
		return
	}

	if err := h.sprintService.Delete(userID, sprintID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sprint deleted"})
}

// ListSprintTasks returns the sprint's tasks in summary form.
func (h *SprintHandler) ListSprintTasks(c *gin.Context) {
	userID, sprintID, ok := h.principalAndID(c)
	if !ok {
		return
	}

	tasks, err := h.sprintService.Tasks(userID, sprintID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	taskDTOs := make([]dto.TaskShortDTO, len(tasks))
	for i, task := range tasks {
		taskDTOs[i] = dto.ToTaskShortDTO(task)
	}

	c.JSON(http.StatusOK, gin.H{"tasks": taskDTOs})
}

// GetBurndown returns the sprint's burndown series.
func (h *SprintHandler) GetBurndown(c *gin.Context) {
	userID, sprintID, ok := h.principalAndID(c)
	if !ok {
		return
	}

	points, err := h.sprintService.Burndown(userID, sprintID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"burndown": points})
}

func parseCreateSprintInput(startDate, endDate string, goal *string) (services.CreateSprintInput, error) {
	start, err := dto.ParseDate(startDate)
	if err != nil {
		return services.CreateSprintInput{}, err
	}

	end, err := dto.ParseDate(endDate)
	if err != nil {
		return services.CreateSprintInput{}, err
	}

	return services.CreateSprintInput{
		StartDate: start,
		EndDate:   end,
		Goal:      goal,
	}, nil
}

func (h *SprintHandler) principalAndID(c *gin.Context) (uint64, uint64, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return 0, 0, false
	}

	sprintID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid sprint ID")
		return 0, 0, false
	}

	return userID, sprintID, true
}
