package app

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"askpro_backend/internal/auth"
	"askpro_backend/internal/config"
	"askpro_backend/internal/email"
	"askpro_backend/internal/handlers"
	"askpro_backend/internal/logger"
	"askpro_backend/internal/middleware"
	"askpro_backend/internal/models"
	"askpro_backend/internal/routes"
	"askpro_backend/internal/services"
	"askpro_backend/internal/storage"
	"askpro_backend/internal/validator"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := openDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected", "driver", cfg.Database.Driver)

	if err := AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case "mysql":
		return gorm.Open(mysql.Open(cfg.Database.DSN), &gorm.Config{})
	case "postgres", "":
		return gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

// AutoMigrate прогоняет схему. Порядок важен: сначала справочники
// и пользователи, затем зависящие от них сущности.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.ProfessionalProfile{},
		&models.Question{},
		&models.Answer{},
		&models.Comment{},
		&models.Attachment{},
		&models.TagApplication{},
		&models.Review{},
		&models.Notification{},
	)
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:     cfg.Storage.Type,
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	var emailProvider email.Provider
	if cfg.Email.Enabled {
		emailProvider = email.NewGomailProvider(cfg)
		logger.Info("Email provider initialized", "host", cfg.Email.SMTPHost)
	} else {
		emailProvider = &MockEmailProvider{}
		logger.Warn("Email is disabled, using mock provider")
	}

	serviceContainer := services.NewServiceContainer(storageInstance, emailProvider)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(gormDB, cfg)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, container.AuthService),
		UserHandler:         handlers.NewUserHandler(baseHandler, container.UserService),
		TagHandler:          handlers.NewTagHandler(baseHandler, container.TagService),
		QuestionHandler:     handlers.NewQuestionHandler(baseHandler, container.QuestionService),
		AnswerHandler:       handlers.NewAnswerHandler(baseHandler, container.AnswerService),
		CommentHandler:      handlers.NewCommentHandler(baseHandler, container.CommentService),
		AttachmentHandler:   handlers.NewAttachmentHandler(baseHandler, container.AttachmentService),
		ApplicationHandler:  handlers.NewApplicationHandler(baseHandler, container.ApplicationService),
		ReviewHandler:       handlers.NewReviewHandler(baseHandler, container.ReviewService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, container.NotificationService),
	}
}

func initializeGinRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MaxBodySize(cfg.Upload.MaxDocumentSize + 1024*1024))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstAdmin создает первого админа из конфигурации, если его
// еще нет. Без него некому рассматривать заявки и модерировать.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("First admin credentials are not configured. Skipping admin seeding.")
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var adminUser models.User
	result := tx.Where("email = ?", adminEmail).First(&adminUser)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Username:     "admin",
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
	}
	if err := tx.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("Created first admin user", "email", adminEmail)
	return tx.Commit().Error
}
