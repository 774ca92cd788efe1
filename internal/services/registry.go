package services

import (
	"askpro_backend/internal/email"
	"askpro_backend/internal/repositories"
	"askpro_backend/internal/storage"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         *AuthService
	UserService         *UserService
	TagService          *TagService
	QuestionService     *QuestionService
	AnswerService       *AnswerService
	CommentService      *CommentService
	AttachmentService   *AttachmentService
	ApplicationService  *ApplicationService
	ReviewService       *ReviewService
	NotificationService *NotificationService
}

// NewServiceContainer собирает полный граф сервисов поверх
// репозиториев, хранилища файлов и почтового провайдера.
func NewServiceContainer(fileStorage storage.Storage, emailProvider email.Provider) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	tagRepo := repositories.NewTagRepository()
	questionRepo := repositories.NewQuestionRepository()
	answerRepo := repositories.NewAnswerRepository()
	commentRepo := repositories.NewCommentRepository()
	attachmentRepo := repositories.NewAttachmentRepository()
	applicationRepo := repositories.NewApplicationRepository()
	reviewRepo := repositories.NewReviewRepository()
	notificationRepo := repositories.NewNotificationRepository()

	notifier := NewNotifier(notificationRepo)

	return &ServiceContainer{
		AuthService: NewAuthService(userRepo, emailProvider),
		UserService: NewUserService(
			userRepo, profileRepo, questionRepo, answerRepo, commentRepo,
			notificationRepo, notifier, fileStorage, emailProvider,
		),
		TagService: NewTagService(tagRepo, profileRepo),
		QuestionService: NewQuestionService(
			questionRepo, tagRepo, userRepo, attachmentRepo, notifier, fileStorage,
		),
		AnswerService: NewAnswerService(
			answerRepo, questionRepo, userRepo, profileRepo, notifier,
		),
		CommentService: NewCommentService(
			commentRepo, answerRepo, questionRepo, userRepo, notifier,
		),
		AttachmentService: NewAttachmentService(attachmentRepo, questionRepo, fileStorage),
		ApplicationService: NewApplicationService(
			applicationRepo, tagRepo, userRepo, profileRepo, notifier, fileStorage, emailProvider,
		),
		ReviewService:       NewReviewService(reviewRepo, userRepo, notifier),
		NotificationService: NewNotificationService(notificationRepo),
	}
}
