package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askpro_backend/internal/models"
	"askpro_backend/internal/services/dto"
	"askpro_backend/pkg/apperrors"
)

func submitApplication(t *testing.T, env *testEnv, user *models.User, tagID string) *models.TagApplication {
	t.Helper()
	application, err := env.container.ApplicationService.Submit(
		context.Background(), env.db,
		user.ID, user.Role, tagID,
		"diploma.pdf", models.MimePDF, 1024, bytes.NewReader([]byte("%PDF-1.4 fake")),
	)
	require.NoError(t, err)
	return application
}

func TestSubmitApplication_RegularUserForbidden(t *testing.T) {
	env := newTestEnv(t)
	tag := env.createTag(t, "plumbing")
	regular := env.createUser(t, "regular", models.UserRoleRegular)

	_, err := env.container.ApplicationService.Submit(
		context.Background(), env.db,
		regular.ID, regular.Role, tag.ID,
		"diploma.pdf", models.MimePDF, 1024, bytes.NewReader([]byte("x")),
	)

	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.HTTPCode)
}

func TestSubmitApplication_RejectsNonPDF(t *testing.T) {
	env := newTestEnv(t)
	tag := env.createTag(t, "plumbing")
	pro := env.createUser(t, "pro", models.UserRolePower)

	_, err := env.container.ApplicationService.Submit(
		context.Background(), env.db,
		pro.ID, pro.Role, tag.ID,
		"photo.png", models.MimePNG, 1024, bytes.NewReader([]byte("x")),
	)
	require.Error(t, err)
}

func TestSubmitApplication_DuplicatePendingRejected(t *testing.T) {
	env := newTestEnv(t)
	tag := env.createTag(t, "plumbing")
	pro := env.createUser(t, "pro", models.UserRolePower)

	submitApplication(t, env, pro, tag.ID)

	_, err := env.container.ApplicationService.Submit(
		context.Background(), env.db,
		pro.ID, pro.Role, tag.ID,
		"diploma.pdf", models.MimePDF, 1024, bytes.NewReader([]byte("x")),
	)

	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestSubmitApplication_AlreadyCertifiedRejected(t *testing.T) {
	env := newTestEnv(t)
	tag := env.createTag(t, "plumbing")
	pro := env.createUser(t, "pro", models.UserRolePower)
	admin := env.createUser(t, "admin", models.UserRoleAdmin)

	application := submitApplication(t, env, pro, tag.ID)
	_, err := env.container.ApplicationService.Review(env.db, application.ID, admin.ID, admin.Role, &dto.ReviewApplicationRequest{
		Status: string(models.ApplicationStatusApproved),
	})
	require.NoError(t, err)

	// Повторная заявка на уже выданный тег
	_, err = env.container.ApplicationService.Submit(
		context.Background(), env.db,
		pro.ID, pro.Role, tag.ID,
		"diploma.pdf", models.MimePDF, 1024, bytes.NewReader([]byte("x")),
	)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestReviewApplication_ApproveGrantsCertification(t *testing.T) {
	env := newTestEnv(t)
	tag := env.createTag(t, "plumbing")
	pro := env.createUser(t, "pro", models.UserRolePower)
	admin := env.createUser(t, "admin", models.UserRoleAdmin)

	application := submitApplication(t, env, pro, tag.ID)

	reviewed, err := env.container.ApplicationService.Review(env.db, application.ID, admin.ID, admin.Role, &dto.ReviewApplicationRequest{
		Status: string(models.ApplicationStatusApproved),
		Notes:  "Documents check out",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusApproved, reviewed.Status)
	assert.Equal(t, admin.ID, reviewed.ReviewedBy)
	require.NotNil(t, reviewed.ReviewedAt)

	// Профиль создан, тег выдан, профиль verified
	profile, err := env.profileRepo.FindByUserID(env.db, pro.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationStatusVerified, profile.VerificationStatus)

	has, err := env.profileRepo.HasTag(env.db, profile.ID, tag.ID)
	require.NoError(t, err)
	assert.True(t, has)

	// Заявитель уведомлен
	notifications := env.notificationsFor(t, pro.ID)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationApplicationReviewed, notifications[0].Type)

	// Теперь профессионал может отвечать на вопросы с этим тегом
	asker := env.createUser(t, "asker", models.UserRoleRegular)
	question := env.createQuestion(t, asker, *tag)
	_, err = env.container.AnswerService.CreateAnswer(env.db, pro.ID, pro.Role, &dto.CreateAnswerRequest{
		QuestionID: question.ID, Content: "Certified answer at last",
	})
	require.NoError(t, err)
}

func TestReviewApplication_OneShot(t *testing.T) {
	env := newTestEnv(t)
	tag := env.createTag(t, "plumbing")
	pro := env.createUser(t, "pro", models.UserRolePower)
	admin := env.createUser(t, "admin", models.UserRoleAdmin)

	application := submitApplication(t, env, pro, tag.ID)

	_, err := env.container.ApplicationService.Review(env.db, application.ID, admin.ID, admin.Role, &dto.ReviewApplicationRequest{
		Status: string(models.ApplicationStatusRejected),
	})
	require.NoError(t, err)

	// Повторное рассмотрение, включая смену вердикта, невозможно
	_, err = env.container.ApplicationService.Review(env.db, application.ID, admin.ID, admin.Role, &dto.ReviewApplicationRequest{
		Status: string(models.ApplicationStatusApproved),
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestReviewApplication_RejectDoesNotGrant(t *testing.T) {
	env := newTestEnv(t)
	tag := env.createTag(t, "plumbing")
	pro := env.createUser(t, "pro", models.UserRolePower)
	admin := env.createUser(t, "admin", models.UserRoleAdmin)

	application := submitApplication(t, env, pro, tag.ID)

	_, err := env.container.ApplicationService.Review(env.db, application.ID, admin.ID, admin.Role, &dto.ReviewApplicationRequest{
		Status: string(models.ApplicationStatusRejected),
		Notes:  "Document is unreadable",
	})
	require.NoError(t, err)

	// После отказа можно подать заново
	submitApplication(t, env, pro, tag.ID)

	// Сертификация не выдана
	asker := env.createUser(t, "asker", models.UserRoleRegular)
	question := env.createQuestion(t, asker, *tag)
	_, err = env.container.AnswerService.CreateAnswer(env.db, pro.ID, pro.Role, &dto.CreateAnswerRequest{
		QuestionID: question.ID, Content: "Should not be allowed yet",
	})
	require.Error(t, err)
}

func TestReviewApplication_RequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	tag := env.createTag(t, "plumbing")
	pro := env.createUser(t, "pro", models.UserRolePower)

	application := submitApplication(t, env, pro, tag.ID)

	_, err := env.container.ApplicationService.Review(env.db, application.ID, pro.ID, pro.Role, &dto.ReviewApplicationRequest{
		Status: string(models.ApplicationStatusApproved),
	})
	require.Error(t, err)
}
