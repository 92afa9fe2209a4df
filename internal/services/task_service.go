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

// taskPreloads are the relations task dumps depend on.
var taskPreloads = []string{"Project", "Author"}

// TaskService handles task business logic.
type TaskService struct {
	tasks   repository.TaskRepository
	sprints repository.SprintRepository
	users   repository.UserRepository
	guard   *Guard
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	tasks repository.TaskRepository,
	sprints repository.SprintRepository,
	users repository.UserRepository,
	guard *Guard,
) *TaskService {
	return &TaskService{
		tasks:   tasks,
		sprints: sprints,
		users:   users,
		guard:   guard,
	}
}

// CreateTaskInput represents parameters for a new task.
type CreateTaskInput struct {
	Title              string
	Kind               string
	SprintID           *uint64
	ParentTaskID       *uint64
	Priority           int
	AcceptanceCriteria *string
	UserStory          *string
	InitialEstimate    *int
	Assignees          []string
}

// ListTasksInput represents filters for listing a project's tasks.
type ListTasksInput struct {
	Status   *string
	Kind     *string
	Page     int
	PageSize int
}

// Open looks up a task and applies the owning project's guard. Not-found is
// checked before authorization.
func (s *TaskService) Open(principalID, taskID uint64) (*models.Task, error) {
	task, err := s.tasks.FindByID(taskID, taskPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("task %d: %w", taskID, apierrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.guard.AuthorizeProject(principalID, task.ProjectID); err != nil {
		return nil, err
	}

	return task, nil
}

// Create adds a task to an already-opened project. Assignees are usernames
// and must all be members of the project.
func (s *TaskService) Create(principalID uint64, project *models.Project, input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", apierrors.ErrValidation)
	}

	kind, err := models.ParseTaskKind(input.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apierrors.ErrValidation, err)
	}

	if input.SprintID != nil {
		if err := s.checkSprintRef(project.ID, *input.SprintID); err != nil {
			return nil, err
		}
	}
	if input.ParentTaskID != nil {
		if _, err := s.findProjectTask(project.ID, *input.ParentTaskID); err != nil {
			return nil, err
		}
	}

	assigneeIDs, err := s.resolveAssignees(project.ID, input.Assignees)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		ProjectID:          project.ID,
		SprintID:           input.SprintID,
		ParentTaskID:       input.ParentTaskID,
		AuthorID:           principalID,
		Title:              input.Title,
		CreationDate:       time.Now().UTC(),
		Status:             models.TaskStatusBacklog,
		Kind:               kind,
		Priority:           input.Priority,
		AcceptanceCriteria: input.AcceptanceCriteria,
		UserStory:          input.UserStory,
		InitialEstimate:    input.InitialEstimate,
	}

	if err := s.tasks.CreateWithAssignees(task, assigneeIDs); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.tasks.FindByID(task.ID, taskPreloads...)
}

// Update applies a partial update to a task. Reference fields (sprint,
// parent task) are resolved and validated here; everything else is merged
// by the serialization layer.
func (s *TaskService) Update(principalID, taskID uint64, patch dto.TaskPatch) (*models.Task, error) {
	task, err := s.Open(principalID, taskID)
	if err != nil {
		return nil, err
	}

	if patch.Sprint.Set {
		if patch.Sprint.Value == nil {
			task.SprintID = nil
		} else {
			if err := s.checkSprintRef(task.ProjectID, *patch.Sprint.Value); err != nil {
				return nil, err
			}
			task.SprintID = patch.Sprint.Value
		}
	}

	if patch.ParentTask.Set {
		if patch.ParentTask.Value == nil {
			task.ParentTaskID = nil
		} else {
			if err := s.checkParentRef(task, *patch.ParentTask.Value); err != nil {
				return nil, err
			}
			task.ParentTaskID = patch.ParentTask.Value
		}
	}

	if err := dto.ApplyTaskPatch(task, patch, time.Now()); err != nil {
		return nil, err
	}

	if err := s.tasks.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.tasks.FindByID(task.ID, taskPreloads...)
}

// Delete removes a task together with its assignments and comments.
func (s *TaskService) Delete(principalID, taskID uint64) error {
	task, err := s.Open(principalID, taskID)
	if err != nil {
		return err
	}

	if err := s.tasks.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// ListForProject returns a project's tasks with filtering and pagination.
// The caller is expected to have opened the project already.
func (s *TaskService) ListForProject(projectID uint64, input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		ProjectID: &projectID,
		Page:      input.Page,
		PageSize:  input.PageSize,
	}

	if input.Status != nil {
		status, err := models.ParseTaskStatus(*input.Status)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", apierrors.ErrValidation, err)
		}
		filter.Status = &status
	}
	if input.Kind != nil {
		kind, err := models.ParseTaskKind(*input.Kind)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", apierrors.ErrValidation, err)
		}
		filter.Kind = &kind
	}

	tasks, total, err := s.tasks.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// checkSprintRef verifies the sprint exists and belongs to the project.
func (s *TaskService) checkSprintRef(projectID, sprintID uint64) error {
	sprint, err := s.sprints.FindByID(sprintID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: sprint %d does not exist", apierrors.ErrValidation, sprintID)
		}
		return fmt.Errorf("failed to find sprint: %w", err)
	}
	if sprint.ProjectID != projectID {
		return fmt.Errorf("%w: sprint %d belongs to another project", apierrors.ErrValidation, sprintID)
	}
	return nil
}

// checkParentRef verifies the parent task reference and rejects cycles by
// walking the ancestor chain.
func (s *TaskService) checkParentRef(task *models.Task, parentID uint64) error {
	parent, err := s.findProjectTask(task.ProjectID, parentID)
	if err != nil {
		return err
	}

	for parent != nil {
		if parent.ID == task.ID {
			return fmt.Errorf("%w: task %d cannot be its own ancestor", apierrors.ErrValidation, task.ID)
		}
		if parent.ParentTaskID == nil {
			break
		}
		parent, err = s.tasks.FindByID(*parent.ParentTaskID)
		if err != nil {
			return fmt.Errorf("failed to walk parent chain: %w", err)
		}
	}

	return nil
}

// findProjectTask loads a task and verifies it belongs to the project.
func (s *TaskService) findProjectTask(projectID, taskID uint64) (*models.Task, error) {
	task, err := s.tasks.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: task %d does not exist", apierrors.ErrValidation, taskID)
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if task.ProjectID != projectID {
		return nil, fmt.Errorf("%w: task %d belongs to another project", apierrors.ErrValidation, taskID)
	}
	return task, nil
}

// resolveAssignees maps usernames to user IDs, requiring every username to
// be a member of the project.
func (s *TaskService) resolveAssignees(projectID uint64, usernames []string) ([]uint64, error) {
	if len(usernames) == 0 {
		return nil, nil
	}

	unique := uniqueStrings(usernames)

	users, err := s.users.FindMembersByUsernames(projectID, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve assignees: %w", err)
	}
	if len(users) != len(unique) {
		return nil, fmt.Errorf("%w: one or more assignees are not members of the project", apierrors.ErrValidation)
	}

	ids := make([]uint64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids, nil
}

// uniqueStrings removes duplicate values preserving order.
func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
