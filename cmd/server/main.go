package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/harukimoto/board-management-api/internal/auth"
	"github.com/harukimoto/board-management-api/internal/config"
	"github.com/harukimoto/board-management-api/internal/database"
	"github.com/harukimoto/board-management-api/internal/handlers"
	"github.com/harukimoto/board-management-api/internal/middleware"
	"github.com/harukimoto/board-management-api/internal/models"
	"github.com/harukimoto/board-management-api/internal/repository"
	"github.com/harukimoto/board-management-api/internal/services"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)
	if cfg.GinMode != "release" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("failed to create upload directory")
	}

	issuer := auth.NewTokenIssuer(cfg.JWTSecret)

	// Repositories
	userRepo := repository.NewUserRepository(database.GetDB())
	orgRepo := repository.NewOrganizationRepository(database.GetDB())
	taskRepo := repository.NewTaskRepository(database.GetDB())
	boardRepo := repository.NewBoardRepository(database.GetDB())

	// Services
	authService := services.NewAuthService(userRepo, orgRepo)
	orgService := services.NewOrganizationService(orgRepo, userRepo)
	taskService := services.NewTaskService(taskRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, issuer)
	orgHandler := handlers.NewOrganizationHandler(orgService)
	taskHandler := handlers.NewTaskHandler(taskService)
	boardHandler := handlers.NewBoardHandler(boardRepo, taskService)
	userHandler := handlers.NewUserHandler(taskRepo, orgRepo, cfg.UploadDir)

	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		var userCount int64
		if err := database.GetDB().Model(&models.User{}).Count(&userCount).Error; err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"users":  userCount,
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/profile", middleware.RequireAuth(issuer), authHandler.GetProfile)
			authRoutes.PUT("/profile", middleware.RequireAuth(issuer), authHandler.UpdateProfile)
		}

		// Organization routes (protected)
		orgs := api.Group("/organization")
		orgs.Use(middleware.RequireAuth(issuer))
		{
			orgs.GET("/my", orgHandler.GetMyOrganization)
			orgs.PUT("/my", middleware.AdminOnly(), orgHandler.UpdateMyOrganization)
			orgs.GET("/members", orgHandler.GetMembers)
			orgs.GET("/:orgId/roles", orgHandler.GetRoles)
			orgs.POST("/:orgId/add-role", middleware.AdminOnly(), orgHandler.AddRole)
			orgs.DELETE("/:orgId/remove-role", middleware.AdminOnly(), orgHandler.RemoveRole)
			orgs.GET("/:orgId/departments", orgHandler.GetDepartments)
			orgs.POST("/:orgId/departments", middleware.AdminOnly(), orgHandler.AddDepartment)
			orgs.DELETE("/:orgId/departments/:departmentId", middleware.AdminOnly(), orgHandler.DeleteDepartment)
		}

		// Board routes (protected)
		boards := api.Group("/boards")
		boards.Use(middleware.RequireAuth(issuer))
		{
			boards.POST("", boardHandler.CreateBoard)
			boards.GET("/:id", boardHandler.ListBoards)
			boards.GET("/:id/tasks", boardHandler.GetBoardTasks)
			boards.DELETE("/:id", boardHandler.DeleteBoard)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(issuer))
		{
			tasks.GET("/board/:boardId", taskHandler.ListTasksByBoard)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", middleware.RequireTaskAccess(), taskHandler.GetTask)
			tasks.PUT("/:id", middleware.RequireTaskAccess(), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireTaskAccess(), taskHandler.DeleteTask)
			tasks.PATCH("/:id/status", middleware.RequireTaskAccess(), taskHandler.UpdateTaskStatus)
			tasks.PUT("/:id/todo", middleware.RequireTaskAccess(), taskHandler.UpdateTaskChecklist)
			tasks.POST("/:id/comments", middleware.RequireTaskAccess(), taskHandler.AddComment)
			tasks.GET("/:id/comments", middleware.RequireTaskAccess(), taskHandler.GetComments)
		}

		// User routes (protected)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth(issuer))
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUserByID)
			users.PUT("/my", userHandler.UpdateMyUser)
			users.PUT("/:id/role", middleware.AdminOnly(), userHandler.UpdateUserRole)
			users.POST("/upload-profile-image", userHandler.UploadProfileImage)
			users.PATCH("/:id/assign-department", middleware.AdminOnly(), userHandler.AssignUserToDepartment)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
