package services

import (
	"testing"
	"time"

	"github.com/nvoloshyn/scrum-api/internal/dto"
	apierrors "github.com/nvoloshyn/scrum-api/internal/errors"
	"github.com/nvoloshyn/scrum-api/internal/models"
	"github.com/stretchr/testify/require"
)

func TestTaskService_Create_Defaults(t *testing.T) {
	env := setupServiceTestEnv(t)

	task, err := env.tasks.Create(env.member.ID, &env.project, CreateTaskInput{
		Title: "Wire up the login form",
		Kind:  "FEATURE",
	})
	require.NoError(t, err)

	require.Equal(t, models.TaskStatusBacklog, task.Status)
	require.Equal(t, models.TaskKindFeature, task.Kind)
	require.Equal(t, env.member.ID, task.AuthorID)
	require.Equal(t, 0, task.Priority)
	require.Nil(t, task.SprintID)
	require.Nil(t, task.CompletionDate)
	require.Equal(t, "sandbox", task.Project.Alias)
	require.Equal(t, "insider", task.Author.Username)
}

func TestTaskService_Create_RejectsUnknownKind(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.tasks.Create(env.member.ID, &env.project, CreateTaskInput{
		Title: "Broken",
		Kind:  "CHORE",
	})
	require.ErrorIs(t, err, apierrors.ErrValidation)
}

func TestTaskService_Create_AssigneesMustBeMembers(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.tasks.Create(env.member.ID, &env.project, CreateTaskInput{
		Title:     "Assigned work",
		Kind:      "BUG",
		Assignees: []string{"insider", "outsider"},
	})
	require.ErrorIs(t, err, apierrors.ErrValidation)

	task, err := env.tasks.Create(env.member.ID, &env.project, CreateTaskInput{
		Title:     "Assigned work",
		Kind:      "BUG",
		Assignees: []string{"insider", "insider"},
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, env.db.Model(&models.Assignment{}).Where("task_id = ?", task.ID).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestTaskService_Create_SprintMustBelongToProject(t *testing.T) {
	env := setupServiceTestEnv(t)

	other := models.Project{Alias: "elsewhere", Name: "Elsewhere"}
	require.NoError(t, env.db.Create(&other).Error)
	foreign := models.Sprint{
		ProjectID: other.ID,
		StartDate: date(2026, 3, 2),
		EndDate:   date(2026, 3, 16),
	}
	require.NoError(t, env.db.Create(&foreign).Error)

	_, err := env.tasks.Create(env.member.ID, &env.project, CreateTaskInput{
		Title:    "Misplaced",
		Kind:     "FEATURE",
		SprintID: &foreign.ID,
	})
	require.ErrorIs(t, err, apierrors.ErrValidation)
}

func TestTaskService_Update_SprintNullDetaches(t *testing.T) {
	env := setupServiceTestEnv(t)
	sprint := env.createSprint(t, date(2026, 3, 2), 14)
	task := env.createSprintTask(t, sprint.ID, nil)

	patch := dto.TaskPatch{Sprint: dto.Null[uint64]()}
	updated, err := env.tasks.Update(env.member.ID, task.ID, patch)
	require.NoError(t, err)
	require.Nil(t, updated.SprintID)
}

func TestTaskService_Update_RejectsParentCycle(t *testing.T) {
	env := setupServiceTestEnv(t)

	grandparent, err := env.tasks.Create(env.member.ID, &env.project, CreateTaskInput{Title: "a", Kind: "FEATURE"})
	require.NoError(t, err)
	parent, err := env.tasks.Create(env.member.ID, &env.project, CreateTaskInput{
		Title: "b", Kind: "FEATURE", ParentTaskID: &grandparent.ID,
	})
	require.NoError(t, err)
	child, err := env.tasks.Create(env.member.ID, &env.project, CreateTaskInput{
		Title: "c", Kind: "FEATURE", ParentTaskID: &parent.ID,
	})
	require.NoError(t, err)

	// Self-reference.
	_, err = env.tasks.Update(env.member.ID, parent.ID, dto.TaskPatch{ParentTask: dto.Some(parent.ID)})
	require.ErrorIs(t, err, apierrors.ErrValidation)

	// Descendant as parent closes a cycle through the ancestor chain.
	_, err = env.tasks.Update(env.member.ID, grandparent.ID, dto.TaskPatch{ParentTask: dto.Some(child.ID)})
	require.ErrorIs(t, err, apierrors.ErrValidation)

	// Reparenting to an unrelated task stays legal.
	other, err := env.tasks.Create(env.member.ID, &env.project, CreateTaskInput{Title: "d", Kind: "FEATURE"})
	require.NoError(t, err)
	updated, err := env.tasks.Update(env.member.ID, child.ID, dto.TaskPatch{ParentTask: dto.Some(other.ID)})
	require.NoError(t, err)
	require.Equal(t, other.ID, *updated.ParentTaskID)
}

func TestTaskService_Update_StatusTransitionTracksCompletion(t *testing.T) {
	env := setupServiceTestEnv(t)

	task, err := env.tasks.Create(env.member.ID, &env.project, CreateTaskInput{Title: "work", Kind: "BUG"})
	require.NoError(t, err)

	done, err := env.tasks.Update(env.member.ID, task.ID, dto.TaskPatch{Status: dto.Some("DONE")})
	require.NoError(t, err)
	require.NotNil(t, done.CompletionDate)
	require.WithinDuration(t, time.Now().UTC(), *done.CompletionDate, time.Minute)

	reopened, err := env.tasks.Update(env.member.ID, task.ID, dto.TaskPatch{Status: dto.Some("IN_PROCESS")})
	require.NoError(t, err)
	require.Nil(t, reopened.CompletionDate)
}

func TestTaskService_Delete_Cascades(t *testing.T) {
	env := setupServiceTestEnv(t)

	parent, err := env.tasks.Create(env.member.ID, &env.project, CreateTaskInput{
		Title: "parent", Kind: "FEATURE", Assignees: []string{"insider"},
	})
	require.NoError(t, err)
	subtask, err := env.tasks.Create(env.member.ID, &env.project, CreateTaskInput{
		Title: "subtask", Kind: "FEATURE", ParentTaskID: &parent.ID,
	})
	require.NoError(t, err)
	_, err = env.comments.Create(env.member.ID, parent, "looks good")
	require.NoError(t, err)

	require.NoError(t, env.tasks.Delete(env.member.ID, parent.ID))

	_, err = env.tasks.Open(env.member.ID, parent.ID)
	require.ErrorIs(t, err, apierrors.ErrNotFound)

	var reloaded models.Task
	require.NoError(t, env.db.First(&reloaded, subtask.ID).Error)
	require.Nil(t, reloaded.ParentTaskID)

	var assignments, comments int64
	require.NoError(t, env.db.Model(&models.Assignment{}).Where("task_id = ?", parent.ID).Count(&assignments).Error)
	require.NoError(t, env.db.Model(&models.Comment{}).Where("task_id = ?", parent.ID).Count(&comments).Error)
	require.Zero(t, assignments)
	require.Zero(t, comments)
}

func TestTaskService_ListForProject_Filters(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.tasks.Create(env.member.ID, &env.project, CreateTaskInput{Title: "bug one", Kind: "BUG"})
	require.NoError(t, err)
	feature, err := env.tasks.Create(env.member.ID, &env.project, CreateTaskInput{Title: "feature one", Kind: "FEATURE"})
	require.NoError(t, err)
	_, err = env.tasks.Update(env.member.ID, feature.ID, dto.TaskPatch{Status: dto.Some("DONE")})
	require.NoError(t, err)

	kind := "BUG"
	tasks, total, err := env.tasks.ListForProject(env.project.ID, ListTasksInput{Kind: &kind, Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, tasks, 1)
	require.Equal(t, "bug one", tasks[0].Title)

	status := "DONE"
	tasks, total, err = env.tasks.ListForProject(env.project.ID, ListTasksInput{Status: &status, Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "feature one", tasks[0].Title)

	bad := "INVALID"
	_, _, err = env.tasks.ListForProject(env.project.ID, ListTasksInput{Status: &bad, Page: 1, PageSize: 20})
	require.ErrorIs(t, err, apierrors.ErrValidation)
}

func TestTaskService_Open_GuardDelegatesToProject(t *testing.T) {
	env := setupServiceTestEnv(t)

	task, err := env.tasks.Create(env.member.ID, &env.project, CreateTaskInput{Title: "private", Kind: "BUG"})
	require.NoError(t, err)

	_, err = env.tasks.Open(env.outsider.ID, task.ID)
	require.ErrorIs(t, err, apierrors.ErrAccessDenied)

	_, err = env.tasks.Open(env.outsider.ID, 9999)
	require.ErrorIs(t, err, apierrors.ErrNotFound)
}
