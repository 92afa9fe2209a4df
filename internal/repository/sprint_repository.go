package repository

import (
	"time"

	"github.com/nvoloshyn/scrum-api/internal/models"
	"gorm.io/gorm"
)

// GormSprintRepository is a GORM implementation of SprintRepository
type GormSprintRepository struct {
	db *gorm.DB
}

// NewSprintRepository creates a new SprintRepository
func NewSprintRepository(db *gorm.DB) SprintRepository {
	return &GormSprintRepository{db: db}
}

// Create creates a new sprint
func (r *GormSprintRepository) Create(sprint *models.Sprint) error {
	return r.db.Create(sprint).Error
}

// Update persists changes to a sprint
func (r *GormSprintRepository) Update(sprint *models.Sprint) error {
	return r.db.Save(sprint).Error
}

// Delete detaches the sprint's tasks and removes the sprint
func (r *GormSprintRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Task{}).
			Where("sprint_id = ?", id).
			Update("sprint_id", nil).Error
		if err != nil {
			return err
		}

		return tx.Delete(&models.Sprint{}, id).Error
	})
}

// FindByID finds a sprint by ID
func (r *GormSprintRepository) FindByID(id uint64) (*models.Sprint, error) {
	var sprint models.Sprint
	if err := r.db.First(&sprint, id).Error; err != nil {
		return nil, err
	}
	return &sprint, nil
}

// ListByProjectID lists a project's sprints ordered by ID
func (r *GormSprintRepository) ListByProjectID(projectID uint64) ([]models.Sprint, error) {
	var sprints []models.Sprint
	err := r.db.Where("project_id = ?", projectID).
		Order("id").
		Find(&sprints).Error
	if err != nil {
		return nil, err
	}
	return sprints, nil
}

// Number returns the sprint's 1-based position among its project's sprints
// ordered by ID.
func (r *GormSprintRepository) Number(sprint *models.Sprint) (int, error) {
	var before int64
	err := r.db.Model(&models.Sprint{}).
		Where("project_id = ? AND id < ?", sprint.ProjectID, sprint.ID).
		Count(&before).Error
	if err != nil {
		return 0, err
	}
	return int(before) + 1, nil
}

// CountTasks counts the tasks currently attached to the sprint
func (r *GormSprintRepository) CountTasks(sprintID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("sprint_id = ?", sprintID).
		Count(&count).Error
	return count, err
}

// CountTasksCompletedBy counts sprint tasks completed on or before the day
func (r *GormSprintRepository) CountTasksCompletedBy(sprintID uint64, day time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("sprint_id = ? AND completion_date IS NOT NULL AND completion_date <= ?", sprintID, day).
		Count(&count).Error
	return count, err
}

// ListTasks lists the sprint's tasks with author and project preloaded
func (r *GormSprintRepository) ListTasks(sprintID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Preload("Author").Preload("Project").
		Where("sprint_id = ?", sprintID).
		Order("id").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}
