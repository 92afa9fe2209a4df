package repository

import (
	"time"

	"github.com/nvoloshyn/scrum-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByAlias finds a project by its unique alias
func (r *GormProjectRepository) FindByAlias(alias string) (*models.Project, error) {
	var project models.Project
	if err := r.db.Where("alias = ?", alias).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListByUserID lists projects the user is a member of
func (r *GormProjectRepository) ListByUserID(userID uint64) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Model(&models.Project{}).
		Joins("JOIN memberships ON memberships.project_id = projects.id").
		Where("memberships.user_id = ?", userID).
		Order("projects.id").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// ListMembers lists all members of a project
func (r *GormProjectRepository) ListMembers(projectID uint64) ([]models.User, error) {
	var users []models.User
	err := r.db.Model(&models.User{}).
		Joins("JOIN memberships ON memberships.user_id = users.id").
		Where("memberships.project_id = ?", projectID).
		Order("users.username").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// AddMember adds a membership row
func (r *GormProjectRepository) AddMember(member *models.Membership) error {
	return r.db.Create(member).Error
}

// HasMember reports whether a membership row exists for the pair
func (r *GormProjectRepository) HasMember(projectID, userID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Membership{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CurrentSprint returns the sprint covering the given day
func (r *GormProjectRepository) CurrentSprint(projectID uint64, day time.Time) (*models.Sprint, error) {
	var sprint models.Sprint
	err := r.db.Where("project_id = ? AND start_date <= ? AND end_date >= ?",
		projectID, day, day).
		Order("id").
		First(&sprint).Error
	if err != nil {
		return nil, err
	}
	return &sprint, nil
}
