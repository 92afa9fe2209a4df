package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/nvoloshyn/scrum-api/internal/dto"
	apierrors "github.com/nvoloshyn/scrum-api/internal/errors"
	"github.com/nvoloshyn/scrum-api/internal/models"
	"github.com/nvoloshyn/scrum-api/internal/repository"
	"gorm.io/gorm"
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projects repository.ProjectRepository
	guard    *Guard
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projects repository.ProjectRepository, guard *Guard) *ProjectService {
	return &ProjectService{
		projects: projects,
		guard:    guard,
	}
}

// Open looks up a project by alias and applies the guard. Not-found is
// checked before authorization.
func (s *ProjectService) Open(principalID uint64, alias string) (*models.Project, error) {
	project, err := s.projects.FindByAlias(alias)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %q: %w", alias, apierrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.guard.AuthorizeProject(principalID, project.ID); err != nil {
		return nil, err
	}

	return project, nil
}

// ListForUser returns the projects the principal is a member of.
func (s *ProjectService) ListForUser(userID uint64) ([]models.Project, error) {
	projects, err := s.projects.ListByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Members returns a project's members.
func (s *ProjectService) Members(principalID uint64, alias string) ([]models.User, error) {
	project, err := s.Open(principalID, alias)
	if err != nil {
		return nil, err
	}

	members, err := s.projects.ListMembers(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// Dump serializes a project, resolving the sprint whose date range covers
// today.
func (s *ProjectService) Dump(project *models.Project) (dto.ProjectDTO, error) {
	var currentSprintID *uint64

	today := time.Now().UTC().Truncate(24 * time.Hour)
	sprint, err := s.projects.CurrentSprint(project.ID, today)
	switch {
	case err == nil:
		currentSprintID = &sprint.ID
	case errors.Is(err, gorm.ErrRecordNotFound):
		// No sprint running today; the field is omitted.
	default:
		return dto.ProjectDTO{}, fmt.Errorf("failed to resolve current sprint: %w", err)
	}

	return dto.ToProjectDTO(*project, currentSprintID), nil
}
