package repository

import (
	"time"

	"github.com/nvoloshyn/scrum-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// Update persists changes to a user
	Update(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// DeleteByUsername removes a user and their membership and assignment rows
	DeleteByUsername(username string) error

	// FindMembersByUsernames resolves usernames to users that are members of
	// the given project; missing or non-member usernames are omitted
	FindMembersByUsernames(projectID uint64, usernames []string) ([]models.User, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// FindByAlias finds a project by its unique alias
	FindByAlias(alias string) (*models.Project, error)

	// ListByUserID lists projects the user is a member of
	ListByUserID(userID uint64) ([]models.Project, error)

	// ListMembers lists all members of a project
	ListMembers(projectID uint64) ([]models.User, error)

	// AddMember adds a membership row
	AddMember(member *models.Membership) error

	// HasMember reports whether a membership row exists for the pair
	HasMember(projectID, userID uint64) (bool, error)

	// CurrentSprint returns the sprint whose date range covers the given day,
	// or gorm.ErrRecordNotFound if none does
	CurrentSprint(projectID uint64, day time.Time) (*models.Sprint, error)
}

// SprintRepository defines the interface for sprint data access
type SprintRepository interface {
	// Create creates a new sprint
	Create(sprint *models.Sprint) error

	// Update persists changes to a sprint
	Update(sprint *models.Sprint) error

	// Delete detaches the sprint's tasks and removes the sprint
	Delete(id uint64) error

	// FindByID finds a sprint by ID
	FindByID(id uint64) (*models.Sprint, error)

	// ListByProjectID lists a project's sprints ordered by ID
	ListByProjectID(projectID uint64) ([]models.Sprint, error)

	// Number returns the sprint's 1-based ordinal within its project
	Number(sprint *models.Sprint) (int, error)

	// CountTasks counts the tasks currently attached to the sprint
	CountTasks(sprintID uint64) (int64, error)

	// CountTasksCompletedBy counts sprint tasks completed on or before the day
	CountTasksCompletedBy(sprintID uint64, day time.Time) (int64, error)

	// ListTasks lists the sprint's tasks with author and project preloaded
	ListTasks(sprintID uint64) ([]models.Task, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	ProjectID *uint64
	SprintID  *uint64
	Status    *models.TaskStatus
	Kind      *models.TaskKind
	Page      int
	PageSize  int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// CreateWithAssignees creates a task and its assignment rows atomically
	CreateWithAssignees(task *models.Task, assigneeIDs []uint64) error

	// Update persists changes to a task
	Update(task *models.Task) error

	// Delete removes a task, its assignments and comments, detaching subtasks
	Delete(id uint64) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(comment *models.Comment) error

	// Update persists changes to a comment
	Update(comment *models.Comment) error

	// Delete removes a comment
	Delete(id uint64) error

	// FindByID finds a comment by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Comment, error)

	// ListByTaskID lists a task's comments ordered by creation date
	ListByTaskID(taskID uint64) ([]models.Comment, error)
}
