package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nvoloshyn/scrum-api/internal/dto"
	apierrors "github.com/nvoloshyn/scrum-api/internal/errors"
	"github.com/nvoloshyn/scrum-api/internal/middleware"
	"github.com/nvoloshyn/scrum-api/internal/services"
	"github.com/nvoloshyn/scrum-api/internal/utils"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService    *services.TaskService
	projectService *services.ProjectService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, projectService *services.ProjectService) *TaskHandler {
	return &TaskHandler{
		taskService:    taskService,
		projectService: projectService,
	}
}

// ListProjectTasks returns a project's tasks in summary form, with optional
// status/kind filters and pagination.
func (h *TaskHandler) ListProjectTasks(c *gin.Context) {
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

	params := utils.GetPaginationParams(c)
	input := services.ListTasksInput{
		Page:     params.Page,
		PageSize: params.Limit,
	}
	if status := c.Query("status"); status != "" {
		input.Status = &status
	}
	if kind := c.Query("kind"); kind != "" {
		input.Kind = &kind
	}

	tasks, total, err := h.taskService.ListForProject(project.ID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	taskDTOs := make([]dto.TaskShortDTO, len(tasks))
	for i, task := range tasks {
		taskDTOs[i] = dto.ToTaskShortDTO(task)
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": taskDTOs,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// CreateTask adds a task to a project. Assignees are usernames of project
// members.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Title              string   `json:"title" binding:"required"`
		Kind               string   `json:"kind" binding:"required"`
		Sprint             *uint64  `json:"sprint"`
		ParentTask         *uint64  `json:"parentTask"`
		Priority           int      `json:"priority"`
		AcceptanceCriteria *string  `json:"acceptanceCriteria"`
		UserStory          *string  `json:"userStory"`
		InitialEstimate    *int     `json:"initialEstimate"`
		Assignees          []string `json:"assignees"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.Open(userID, c.Param("alias"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	task, err := h.taskService.Create(userID, project, services.CreateTaskInput{
		Title:              req.Title,
		Kind:               req.Kind,
		SprintID:           req.Sprint,
		ParentTaskID:       req.ParentTask,
		Priority:           req.Priority,
		AcceptanceCriteria: req.AcceptanceCriteria,
		UserStory:          req.UserStory,
		InitialEstimate:    req.InitialEstimate,
		Assignees:          req.Assignees,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskFullDTO(*task))
}

// GetTask returns one task in detail form.
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, taskID, ok := h.principalAndID(c)
	if !ok {
		return
	}

	task, err := h.taskService.Open(userID, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskFullDTO(*task))
}

// UpdateTask applies a partial update to a task. Absent fields are left
// unchanged; explicit nulls clear the sprint or parent-task reference.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, taskID, ok := h.principalAndID(c)
	if !ok {
		return
	}

	var patch dto.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Update(userID, taskID, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskFullDTO(*task))
}

// DeleteTask removes a task together with its assignments and comments.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, taskID, ok := h.principalAndID(c)
	if !ok {
		return
	}

	if err := h.taskService.Delete(userID, taskID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

func (h *TaskHandler) principalAndID(c *gin.Context) (uint64, uint64, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return 0, 0, false
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, 0, false
	}

	return userID, taskID, true
}
