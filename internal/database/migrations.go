package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes beyond what AutoMigrate
// declares. Only supported on PostgreSQL; other drivers rely on the model
// tags alone.
func AddIndexes(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Burndown counts filter tasks by sprint and completion date.
		{"tasks", "idx_tasks_sprint_completion", "sprint_id, completion_date"},
		{"tasks", "idx_tasks_project_id", "project_id"},
		{"tasks", "idx_tasks_author_id", "author_id"},

		{"sprints", "idx_sprints_project_id", "project_id"},

		{"comments", "idx_comments_task_id", "task_id"},

		// The membership pair is the authorization hot path.
		{"memberships", "idx_memberships_project_user", "project_id, user_id"},

		{"assignments", "idx_assignments_task_id", "task_id"},
		{"assignments", "idx_assignments_user_id", "user_id"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
