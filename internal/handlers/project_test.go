package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/nvoloshyn/scrum-api/internal/dto"
	"github.com/nvoloshyn/scrum-api/internal/models"
	"github.com/stretchr/testify/require"
)

func TestProjectHandler_ListProjects(t *testing.T) {
	env := setupHandlerTestEnv(t)
	joe := env.createUser(t, "joe")
	env.createProject(t, "alpha", joe)
	env.createProject(t, "beta")
	token := env.login(t, "joe")

	w := env.request(t, http.MethodGet, "/v1/projects", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Projects []dto.ProjectSummaryDTO `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Projects, 1)
	require.Equal(t, "alpha", response.Projects[0].Alias)
}

func TestProjectHandler_GetProject(t *testing.T) {
	env := setupHandlerTestEnv(t)
	joe := env.createUser(t, "joe")
	env.createProject(t, "alpha", joe)
	token := env.login(t, "joe")

	w := env.request(t, http.MethodGet, "/v1/projects/alpha", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.ProjectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "alpha", response.Alias)

	// Optional links are omitted, not serialized as nulls.
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fields))
	require.NotContains(t, fields, "vcsLink")
	require.NotContains(t, fields, "currentSprint")
}

func TestProjectHandler_GetProject_NotFoundVsForbidden(t *testing.T) {
	env := setupHandlerTestEnv(t)
	joe := env.createUser(t, "joe")
	env.createProject(t, "alpha", joe)
	env.createProject(t, "restricted")
	token := env.login(t, "joe")

	missing := env.request(t, http.MethodGet, "/v1/projects/no-such", token, nil)
	require.Equal(t, http.StatusNotFound, missing.Code)

	denied := env.request(t, http.MethodGet, "/v1/projects/restricted", token, nil)
	require.Equal(t, http.StatusForbidden, denied.Code)
}

func TestProjectHandler_ListMembers(t *testing.T) {
	env := setupHandlerTestEnv(t)
	joe := env.createUser(t, "joe")
	ann := env.createUser(t, "ann")
	env.createProject(t, "alpha", joe, ann)
	token := env.login(t, "joe")

	w := env.request(t, http.MethodGet, "/v1/projects/alpha/members", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Members []dto.UserDTO `json:"members"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Members, 2)
}

func TestSprintHandler_CreateAndGet(t *testing.T) {
	env := setupHandlerTestEnv(t)
	joe := env.createUser(t, "joe")
	env.createProject(t, "alpha", joe)
	token := env.login(t, "joe")

	w := env.request(t, http.MethodPost, "/v1/projects/alpha/sprints", token, map[string]any{
		"startDate": "2026-03-02",
		"endDate":   "2026-03-16",
		"goal":      "ship the login flow",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var sprint dto.SprintDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sprint))
	require.Equal(t, 1, sprint.Number)
	require.Equal(t, "2026-03-02", sprint.StartDate)
	require.Equal(t, "2026-03-16", sprint.EndDate)

	inverted := env.request(t, http.MethodPost, "/v1/projects/alpha/sprints", token, map[string]any{
		"startDate": "2026-03-16",
		"endDate":   "2026-03-02",
	})
	require.Equal(t, http.StatusBadRequest, inverted.Code)
}

func TestSprintHandler_Burndown(t *testing.T) {
	env := setupHandlerTestEnv(t)
	joe := env.createUser(t, "joe")
	project := env.createProject(t, "alpha", joe)
	token := env.login(t, "joe")

	sprint := models.Sprint{
		ProjectID: project.ID,
		StartDate: mustDate(t, "2026-03-02"),
		EndDate:   mustDate(t, "2026-03-06"),
	}
	require.NoError(t, env.db.Create(&sprint).Error)

	w := env.request(t, http.MethodGet, fmt.Sprintf("/v1/sprints/%d/burndown", sprint.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Burndown []struct {
			Date         string `json:"date"`
			ActuallyLeft int    `json:"actuallyLeft"`
			ShouldBeLeft int    `json:"shouldBeLeft"`
		} `json:"burndown"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Burndown, 4)
	require.Equal(t, "2026-03-02", response.Burndown[0].Date)
}
