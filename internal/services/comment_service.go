package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nvoloshyn/scrum-api/internal/dto"
	apierrors "github.com/nvoloshyn/scrum-api/internal/errors"
	"github.com/nvoloshyn/scrum-api/internal/models"
	"github.com/nvoloshyn/scrum-api/internal/repository"
	"gorm.io/gorm"
)

// CommentService handles comment business logic. Authorization delegates
// through the comment's task to its project.
type CommentService struct {
	comments repository.CommentRepository
	guard    *Guard
}

// NewCommentService creates a new CommentService.
func NewCommentService(comments repository.CommentRepository, guard *Guard) *CommentService {
	return &CommentService{
		comments: comments,
		guard:    guard,
	}
}

// Open looks up a comment and applies the guard of the project owning the
// comment's task. Not-found is checked before authorization.
func (s *CommentService) Open(principalID, commentID uint64) (*models.Comment, error) {
	comment, err := s.comments.FindByID(commentID, "Task", "Author")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("comment %d: %w", commentID, apierrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	if err := s.guard.AuthorizeProject(principalID, comment.Task.ProjectID); err != nil {
		return nil, err
	}

	return comment, nil
}

// Create adds a comment to an already-opened task.
func (s *CommentService) Create(principalID uint64, task *models.Task, message string) (*models.Comment, error) {
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: message is required", apierrors.ErrValidation)
	}

	comment := &models.Comment{
		TaskID:       task.ID,
		AuthorID:     principalID,
		CreationDate: time.Now().UTC(),
		Message:      message,
	}

	if err := s.comments.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return s.comments.FindByID(comment.ID, "Author")
}

// Update applies a partial update to a comment.
func (s *CommentService) Update(principalID, commentID uint64, patch dto.CommentPatch) (*models.Comment, error) {
	comment, err := s.Open(principalID, commentID)
	if err != nil {
		return nil, err
	}

	if err := dto.ApplyCommentPatch(comment, patch); err != nil {
		return nil, err
	}

	if err := s.comments.Update(comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return comment, nil
}

// Delete removes a comment.
func (s *CommentService) Delete(principalID, commentID uint64) error {
	comment, err := s.Open(principalID, commentID)
	if err != nil {
		return err
	}

	if err := s.comments.Delete(comment.ID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}

// ListForTask returns a task's comments in creation order. The caller is
// expected to have opened the task already.
func (s *CommentService) ListForTask(taskID uint64) ([]models.Comment, error) {
	comments, err := s.comments.ListByTaskID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
