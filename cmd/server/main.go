package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/nvoloshyn/scrum-api/internal/config"
	"github.com/nvoloshyn/scrum-api/internal/database"
	"github.com/nvoloshyn/scrum-api/internal/handlers"
	"github.com/nvoloshyn/scrum-api/internal/middleware"
	"github.com/nvoloshyn/scrum-api/internal/repository"
	"github.com/nvoloshyn/scrum-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	sprintRepo := repository.NewSprintRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Services
	guard := services.NewGuard(projectRepo)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	projectService := services.NewProjectService(projectRepo, guard)
	sprintService := services.NewSprintService(sprintRepo, guard)
	taskService := services.NewTaskService(taskRepo, sprintRepo, userRepo, guard)
	commentService := services.NewCommentService(commentRepo, guard)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	sprintHandler := handlers.NewSprintHandler(sprintService, projectService)
	taskHandler := handlers.NewTaskHandler(taskService, projectService)
	commentHandler := handlers.NewCommentHandler(commentService, taskService)

	// Initialize Gin router
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Scrum API is running",
		})
	})

	// API routes
	v1 := r.Group("/v1")
	{
		// Public
		v1.POST("/login", authHandler.Login)

		// Protected
		auth := v1.Group("")
		auth.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			auth.GET("/profile", authHandler.GetProfile)
			auth.PUT("/profile", authHandler.UpdateProfile)

			auth.GET("/projects", projectHandler.ListProjects)
			auth.GET("/projects/:alias", projectHandler.GetProject)
			auth.GET("/projects/:alias/members", projectHandler.ListMembers)
			auth.GET("/projects/:alias/sprints", sprintHandler.ListProjectSprints)
			auth.POST("/projects/:alias/sprints", sprintHandler.CreateSprint)
			auth.GET("/projects/:alias/tasks", taskHandler.ListProjectTasks)
			auth.POST("/projects/:alias/tasks", taskHandler.CreateTask)

			auth.GET("/sprints/:id", sprintHandler.GetSprint)
			auth.PUT("/sprints/:id", sprintHandler.UpdateSprint)
			auth.DELETE("/sprints/:id", sprintHandler.DeleteSprint)
			auth.GET("/sprints/:id/tasks", sprintHandler.ListSprintTasks)
			auth.GET("/sprints/:id/burndown", sprintHandler.GetBurndown)

			auth.GET("/tasks/:id", taskHandler.GetTask)
			auth.PUT("/tasks/:id", taskHandler.UpdateTask)
			auth.DELETE("/tasks/:id", taskHandler.DeleteTask)
			auth.GET("/tasks/:id/comments", commentHandler.ListTaskComments)
			auth.POST("/tasks/:id/comments", commentHandler.CreateComment)

			auth.GET("/comments/:id", commentHandler.GetComment)
			auth.PUT("/comments/:id", commentHandler.UpdateComment)
			auth.DELETE("/comments/:id", commentHandler.DeleteComment)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
