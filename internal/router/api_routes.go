package router

import (
	"user-management/internal/config"
	"user-management/internal/handler"
	"user-management/internal/middleware"
	"user-management/internal/repository"
	"user-management/internal/service"
	"user-management/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

func SetupAPIRoutes(
	router fiber.Router,
	db *sqlx.DB,
	redis *redis.Client,
	cfg *config.Config,
) {
	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	operatorRepo := repository.NewOperatorRepository(db)
	sessionRepo := repository.NewImportSessionRepository(db)

	// Initialize services
	authService := service.NewAuthService(operatorRepo, cfg)
	userService := service.NewUserService(userRepo)
	importService := service.NewImportService(userRepo, utils.GetLogger())

	// Initialize Asynq client (optional - only if Redis is available)
	var asynqClient *asynq.Client
	if redis != nil {
		asynqClient = asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.AsynqRedisAddr,
			Password: cfg.AsynqRedisPassword,
			DB:       cfg.AsynqRedisDB,
		})
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	importHandler := handler.NewImportHandler(importService, sessionRepo, asynqClient, cfg)

	// Public routes
	auth := router.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)

	// Protected routes
	protected := router.Group("", middleware.AuthMiddleware(cfg))

	protected.Get("/auth/me", authHandler.Me)

	// User record routes
	users := protected.Group("/users")
	users.Get("/", userHandler.GetUsers)
	users.Get("/export", userHandler.ExportUsers)
	users.Get("/template", userHandler.DownloadTemplate)
	users.Post("/import", importHandler.ImportUsers)
	users.Post("/import/async", importHandler.ImportUsersAsync)
	users.Get("/:id", userHandler.GetUser)
	users.Post("/", userHandler.CreateUser)
	users.Put("/:id", userHandler.UpdateUser)
	users.Delete("/:id", userHandler.DeleteUser)

	// Import session routes
	imports := protected.Group("/imports")
	imports.Get("/", importHandler.GetImportSessions)
	imports.Get("/:id", importHandler.GetImportSession)
}
