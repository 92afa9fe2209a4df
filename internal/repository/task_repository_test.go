package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/nvoloshyn/scrum-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTaskRepoTest(t *testing.T) (*gorm.DB, TaskRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Sprint{},
		&models.Task{},
		&models.Assignment{},
		&models.Comment{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db, NewTaskRepository(db)
}

func seedProjectTasks(t *testing.T, db *gorm.DB, count int) uint64 {
	t.Helper()

	author := models.User{Username: "author", PasswordHash: "x", FullName: "A", Email: "a@example.com"}
	require.NoError(t, db.Create(&author).Error)
	project := models.Project{Alias: "sandbox", Name: "Sandbox"}
	require.NoError(t, db.Create(&project).Error)

	for i := 0; i < count; i++ {
		task := models.Task{
			ProjectID:    project.ID,
			AuthorID:     author.ID,
			Title:        fmt.Sprintf("task %02d", i),
			CreationDate: time.Now().UTC(),
			Status:       models.TaskStatusBacklog,
			Kind:         models.TaskKindFeature,
		}
		require.NoError(t, db.Create(&task).Error)
	}

	return project.ID
}

func TestGormTaskRepository_List_Pagination(t *testing.T) {
	db, repo := setupTaskRepoTest(t)
	projectID := seedProjectTasks(t, db, 5)

	tasks, total, err := repo.List(TaskFilter{ProjectID: &projectID, Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, int64(5), total)
	require.Len(t, tasks, 2)
	require.Equal(t, "task 00", tasks[0].Title)

	tasks, total, err = repo.List(TaskFilter{ProjectID: &projectID, Page: 3, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, int64(5), total)
	require.Len(t, tasks, 1)
	require.Equal(t, "task 04", tasks[0].Title)

	// Beyond the last page the listing is empty but the total stands.
	tasks, total, err = repo.List(TaskFilter{ProjectID: &projectID, Page: 4, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, int64(5), total)
	require.Empty(t, tasks)
}

func TestGormTaskRepository_List_UnpagedWhenNoPageGiven(t *testing.T) {
	db, repo := setupTaskRepoTest(t)
	projectID := seedProjectTasks(t, db, 3)

	tasks, total, err := repo.List(TaskFilter{ProjectID: &projectID})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, tasks, 3)
}
