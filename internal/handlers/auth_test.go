package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nvoloshyn/scrum-api/internal/database"
	"github.com/nvoloshyn/scrum-api/internal/dto"
	"github.com/nvoloshyn/scrum-api/internal/middleware"
	"github.com/nvoloshyn/scrum-api/internal/models"
	"github.com/nvoloshyn/scrum-api/internal/repository"
	"github.com/nvoloshyn/scrum-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "handler-test-secret"

type handlerTestEnv struct {
	db     *gorm.DB
	router *gin.Engine

	authService    *services.AuthService
	projectService *services.ProjectService
	taskService    *services.TaskService
	sprintService  *services.SprintService
}

func setupHandlerTestEnv(t *testing.T) *handlerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Membership{},
		&models.Sprint{},
		&models.Task{},
		&models.Assignment{},
		&models.Comment{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	sprintRepo := repository.NewSprintRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	guard := services.NewGuard(projectRepo)
	authService := services.NewAuthService(userRepo, testJWTSecret, time.Hour)
	projectService := services.NewProjectService(projectRepo, guard)
	sprintService := services.NewSprintService(sprintRepo, guard)
	taskService := services.NewTaskService(taskRepo, sprintRepo, userRepo, guard)
	commentService := services.NewCommentService(commentRepo, guard)

	authHandler := NewAuthHandler(authService)
	projectHandler := NewProjectHandler(projectService)
	sprintHandler := NewSprintHandler(sprintService, projectService)
	taskHandler := NewTaskHandler(taskService, projectService)
	commentHandler := NewCommentHandler(commentService, taskService)

	r := gin.New()
	v1 := r.Group("/v1")
	v1.POST("/login", authHandler.Login)

	protected := v1.Group("")
	protected.Use(middleware.RequireAuth(testJWTSecret))
	{
		protected.GET("/profile", authHandler.GetProfile)
		protected.PUT("/profile", authHandler.UpdateProfile)

		protected.GET("/projects", projectHandler.ListProjects)
		protected.GET("/projects/:alias", projectHandler.GetProject)
		protected.GET("/projects/:alias/members", projectHandler.ListMembers)
		protected.GET("/projects/:alias/sprints", sprintHandler.ListProjectSprints)
		protected.POST("/projects/:alias/sprints", sprintHandler.CreateSprint)
		protected.GET("/projects/:alias/tasks", taskHandler.ListProjectTasks)
		protected.POST("/projects/:alias/tasks", taskHandler.CreateTask)

		protected.GET("/sprints/:id", sprintHandler.GetSprint)
		protected.PUT("/sprints/:id", sprintHandler.UpdateSprint)
		protected.DELETE("/sprints/:id", sprintHandler.DeleteSprint)
		protected.GET("/sprints/:id/tasks", sprintHandler.ListSprintTasks)
		protected.GET("/sprints/:id/burndown", sprintHandler.GetBurndown)

		protected.GET("/tasks/:id", taskHandler.GetTask)
		protected.PUT("/tasks/:id", taskHandler.UpdateTask)
		protected.DELETE("/tasks/:id", taskHandler.DeleteTask)
		protected.GET("/tasks/:id/comments", commentHandler.ListTaskComments)
		protected.POST("/tasks/:id/comments", commentHandler.CreateComment)

		protected.GET("/comments/:id", commentHandler.GetComment)
		protected.PUT("/comments/:id", commentHandler.UpdateComment)
		protected.DELETE("/comments/:id", commentHandler.DeleteComment)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return &handlerTestEnv{
		db:             db,
		router:         r,
		authService:    authService,
		projectService: projectService,
		taskService:    taskService,
		sprintService:  sprintService,
	}
}

func (env *handlerTestEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()

	user, err := env.authService.CreateUser(username, "supersecret", "Test User", username+"@example.com")
	require.NoError(t, err)
	return user
}

func (env *handlerTestEnv) createProject(t *testing.T, alias string, members ...*models.User) models.Project {
	t.Helper()

	project := models.Project{Alias: alias, Name: "Project " + alias}
	require.NoError(t, env.db.Create(&project).Error)
	for _, member := range members {
		require.NoError(t, env.db.Create(&models.Membership{UserID: member.ID, ProjectID: project.ID}).Error)
	}
	return project
}

func (env *handlerTestEnv) login(t *testing.T, username string) string {
	t.Helper()

	w := env.request(t, http.MethodPost, "/v1/login", "", map[string]any{
		"username": username,
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.AccessToken)
	return response.AccessToken
}

func (env *handlerTestEnv) request(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupHandlerTestEnv(t)
	env.createUser(t, "joe")

	token := env.login(t, "joe")
	require.NotEmpty(t, token)
}

func TestAuthHandler_Login_BadCredentialsAreIndistinguishable(t *testing.T) {
	env := setupHandlerTestEnv(t)
	env.createUser(t, "joe")

	wrongPassword := env.request(t, http.MethodPost, "/v1/login", "", map[string]any{
		"username": "joe",
		"password": "not-the-password",
	})
	unknownUser := env.request(t, http.MethodPost, "/v1/login", "", map[string]any{
		"username": "nobody",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	require.JSONEq(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestAuthHandler_ProtectedRoutesRequireToken(t *testing.T) {
	env := setupHandlerTestEnv(t)

	missing := env.request(t, http.MethodGet, "/v1/profile", "", nil)
	require.Equal(t, http.StatusUnauthorized, missing.Code)

	garbage := env.request(t, http.MethodGet, "/v1/profile", "not-a-jwt", nil)
	require.Equal(t, http.StatusUnauthorized, garbage.Code)
}

func TestAuthHandler_GetProfile(t *testing.T) {
	env := setupHandlerTestEnv(t)
	env.createUser(t, "joe")
	token := env.login(t, "joe")

	w := env.request(t, http.MethodGet, "/v1/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "joe", response.Username)
	require.Equal(t, "Test User", response.FullName)
}

func TestAuthHandler_UpdateProfile(t *testing.T) {
	env := setupHandlerTestEnv(t)
	env.createUser(t, "joe")
	token := env.login(t, "joe")

	w := env.request(t, http.MethodPut, "/v1/profile", token, map[string]any{
		"fullName": "Joe Updated",
		"avatar":   "https://example.com/joe.png",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Joe Updated", response.FullName)
	require.NotNil(t, response.Avatar)

	// Absent fields survived the partial update.
	require.Equal(t, "joe@example.com", response.Email)

	// An explicit null clears the avatar again. The cleared field is omitted
	// from the payload entirely, so assert on the raw keys.
	w = env.request(t, http.MethodPut, "/v1/profile", token, map[string]any{"avatar": nil})
	require.Equal(t, http.StatusOK, w.Code)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fields))
	require.NotContains(t, fields, "avatar")
}
