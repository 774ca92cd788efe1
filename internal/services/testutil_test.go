package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"askpro_backend/internal/config"
	"askpro_backend/internal/models"
	"askpro_backend/internal/repositories"
	"askpro_backend/internal/storage"
)

// testEnv - полный граф сервисов поверх изолированной in-memory
// базы. Каждый тест получает свою.
type testEnv struct {
	db        *gorm.DB
	container *ServiceContainer

	userRepo         repositories.UserRepository
	profileRepo      repositories.ProfileRepository
	tagRepo          repositories.TagRepository
	questionRepo     repositories.QuestionRepository
	answerRepo       repositories.AnswerRepository
	notificationRepo repositories.NotificationRepository
}

type noopEmail struct{}

func (noopEmail) Send(to, subject, body string) error { return nil }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	config.SetTestConfig(&config.Config{})
	config.AppConfig.JWT.Secret = "test-secret"

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
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
	))

	fileStorage, err := storage.NewStorage(storage.Config{
		Type:     "local",
		BasePath: t.TempDir(),
		BaseURL:  "/api/v1/files",
	})
	require.NoError(t, err)

	return &testEnv{
		db:               db,
		container:        NewServiceContainer(fileStorage, noopEmail{}),
		userRepo:         repositories.NewUserRepository(),
		profileRepo:      repositories.NewProfileRepository(),
		tagRepo:          repositories.NewTagRepository(),
		questionRepo:     repositories.NewQuestionRepository(),
		answerRepo:       repositories.NewAnswerRepository(),
		notificationRepo: repositories.NewNotificationRepository(),
	}
}

func (e *testEnv) createUser(t *testing.T, username string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
		Status:       models.UserStatusActive,
	}
	require.NoError(t, e.userRepo.Create(e.db, user))
	return user
}

func (e *testEnv) createTag(t *testing.T, name string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name}
	require.NoError(t, e.tagRepo.Create(e.db, tag))
	return tag
}

// certify выдает пользователю сертификацию в теге напрямую,
// минуя процесс заявки.
func (e *testEnv) certify(t *testing.T, user *models.User, tag *models.Tag) {
	t.Helper()
	profile := &models.ProfessionalProfile{
		UserID:             user.ID,
		VerificationStatus: models.VerificationStatusVerified,
	}
	require.NoError(t, e.profileRepo.Create(e.db, profile))
	require.NoError(t, e.profileRepo.AddTag(e.db, profile, tag))
}

func (e *testEnv) createQuestion(t *testing.T, author *models.User, tags ...models.Tag) *models.Question {
	t.Helper()
	question := &models.Question{
		Title:   "How do I do the thing",
		Content: "Detailed description of the thing I cannot do",
		UserID:  author.ID,
		Status:  models.QuestionStatusOpen,
		Tags:    tags,
	}
	require.NoError(t, e.questionRepo.Create(e.db, question))
	return question
}

func (e *testEnv) notificationsFor(t *testing.T, userID string) []models.Notification {
	t.Helper()
	notifications, _, err := e.notificationRepo.FindByUser(e.db, userID, 1, 100)
	require.NoError(t, err)
	return notifications
}
