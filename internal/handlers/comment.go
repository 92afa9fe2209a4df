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

// CommentHandler coordinates comment HTTP handlers.
type CommentHandler struct {
	commentService *services.CommentService
	taskService    *services.TaskService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService, taskService *services.TaskService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		taskService:    taskService,
	}
}

// ListTaskComments returns a task's comments.
func (h *CommentHandler) ListTaskComments(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.Open(userID, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	comments, err := h.commentService.ListForTask(task.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	commentDTOs := make([]dto.CommentDTO, len(comments))
	for i, comment := range comments {
		commentDTOs[i] = dto.ToCommentDTO(comment)
	}

	c.JSON(http.StatusOK, gin.H{"comments": commentDTOs})
}

// CreateComment adds a comment to a task.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type CreateCommentRequest struct {
		Message string `json:"message" binding:"required"`
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Open(userID, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	comment, err := h.commentService.Create(userID, task, req.Message)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// GetComment returns one comment by ID.
func (h *CommentHandler) GetComment(c *gin.Context) {
	userID, commentID, ok := h.principalAndID(c)
	if !ok {
		return
	}

	comment, err := h.commentService.Open(userID, commentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTO(*comment))
}

// UpdateComment applies a partial update to a comment.
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, commentID, ok := h.principalAndID(c)
	if !ok {
		return
	}

	var patch dto.CommentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.Update(userID, commentID, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTO(*comment))
}

// DeleteComment removes a comment.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, commentID, ok := h.principalAndID(c)
	if !ok {
		return
	}

	if err := h.commentService.Delete(userID, commentID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

func (h *CommentHandler) principalAndID(c *gin.Context) (uint64, uint64, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return 0, 0, false
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid comment ID")
		return 0, 0, false
	}

	return userID, commentID, true
}
