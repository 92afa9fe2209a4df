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

// SprintService provides business logic for sprint operations, including
// the burndown computation.
type SprintService struct {
	sprints repository.SprintRepository
	guard   *Guard
}

// NewSprintService creates a new SprintService.
func NewSprintService(sprints repository.SprintRepository, guard *Guard) *SprintService {
	return &SprintService{
		sprints: sprints,
		guard:   guard,
	}
}

// CreateSprintInput represents parameters for a new sprint.
type CreateSprintInput struct {
	StartDate time.Time
	EndDate   time.Time
	Goal      *string
}

// BurndownPoint is one day of a sprint's burndown series.
type BurndownPoint struct {
	Date         string `json:"date"`
	ActuallyLeft int    `json:"actuallyLeft"`
	ShouldBeLeft int    `json:"shouldBeLeft"`
}

// Open looks up a sprint and applies the owning project's guard. Not-found
// is checked before authorization.
func (s *SprintService) Open(principalID, sprintID uint64) (*models.Sprint, error) {
	sprint, err := s.sprints.FindByID(sprintID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("sprint %d: %w", sprintID, apierrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find sprint: %w", err)
	}

	if err := s.guard.AuthorizeProject(principalID, sprint.ProjectID); err != nil {
		return nil, err
	}

	return sprint, nil
}

// ListForProject returns a project's sprints in creation order. The caller
// is expected to have opened the project already.
func (s *SprintService) ListForProject(projectID uint64) ([]models.Sprint, error) {
	sprints, err := s.sprints.ListByProjectID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sprints: %w", err)
	}
	return sprints, nil
}

// Create adds a sprint to an already-opened project.
func (s *SprintService) Create(projectID uint64, input CreateSprintInput) (*models.Sprint, error) {
	if input.EndDate.Before(input.StartDate) {
		return nil, fmt.Errorf("%w: endDate precedes startDate", apierrors.ErrValidation)
	}

	sprint := &models.Sprint{
		ProjectID: projectID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Goal:      input.Goal,
	}

	if err := s.sprints.Create(sprint); err != nil {
		return nil, fmt.Errorf("failed to create sprint: %w", err)
	}

	return sprint, nil
}

// Update applies a partial update to a sprint.
func (s *SprintService) Update(principalID, sprintID uint64, patch dto.SprintPatch) (*models.Sprint, error) {
	sprint, err := s.Open(principalID, sprintID)
	if err != nil {
		return nil, err
	}

	if err := dto.ApplySprintPatch(sprint, patch); err != nil {
		return nil, err
	}

	if sprint.EndDate.Before(sprint.StartDate) {
		return nil, fmt.Errorf("%w: endDate precedes startDate", apierrors.ErrValidation)
	}

	if err := s.sprints.Update(sprint); err != nil {
		return nil, fmt.Errorf("failed to update sprint: %w", err)
	}

	return sprint, nil
}

// Delete removes a sprint, detaching its tasks.
func (s *SprintService) Delete(principalID, sprintID uint64) error {
	sprint, err := s.Open(principalID, sprintID)
	if err != nil {
		return err
	}

	if err := s.sprints.Delete(sprint.ID); err != nil {
		return fmt.Errorf("failed to delete sprint: %w", err)
	}

	return nil
}

// Tasks returns the sprint's tasks.
func (s *SprintService) Tasks(principalID, sprintID uint64) ([]models.Task, error) {
	sprint, err := s.Open(principalID, sprintID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.sprints.ListTasks(sprint.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sprint tasks: %w", err)
	}
	return tasks, nil
}

// Dump serializes a sprint with its ordinal number.
func (s *SprintService) Dump(sprint *models.Sprint) (dto.SprintDTO, error) {
	number, err := s.sprints.Number(sprint)
	if err != nil {
		return dto.SprintDTO{}, fmt.Errorf("failed to compute sprint number: %w", err)
	}
	return dto.ToSprintDTO(*sprint, number), nil
}

// Burndown derives the day-by-day remaining-work series for a sprint.
//
// One point is emitted per day of the half-open interval [start, end); the
// end date itself gets no point. The task count is a snapshot taken at call
// time, so the ideal line is a linear projection over the sprint's current
// scope, not a historical record. A zero-length sprint (start == end)
// yields an empty series.
func (s *SprintService) Burndown(principalID, sprintID uint64) ([]BurndownPoint, error) {
	sprint, err := s.Open(principalID, sprintID)
	if err != nil {
		return nil, err
	}

	if sprint.EndDate.Before(sprint.StartDate) {
		return nil, fmt.Errorf("%w: sprint %d ends before it starts", apierrors.ErrValidation, sprint.ID)
	}

	dayCount := int(sprint.EndDate.Sub(sprint.StartDate).Hours() / 24)
	points := make([]BurndownPoint, 0, dayCount)
	if dayCount == 0 {
		return points, nil
	}

	taskCount, err := s.sprints.CountTasks(sprint.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count sprint tasks: %w", err)
	}

	for dayNo := 0; dayNo < dayCount; dayNo++ {
		date := sprint.StartDate.AddDate(0, 0, dayNo)

		completed, err := s.sprints.CountTasksCompletedBy(sprint.ID, date)
		if err != nil {
			return nil, fmt.Errorf("failed to count completed tasks: %w", err)
		}

		points = append(points, BurndownPoint{
			Date:         date.Format("2006-01-02"),
			ActuallyLeft: int(taskCount - completed),
			ShouldBeLeft: int(taskCount) * (dayCount - dayNo) / dayCount,
		})
	}

	return points, nil
}
