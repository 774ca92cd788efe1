package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askpro_backend/internal/models"
	"askpro_backend/internal/repositories"
	"askpro_backend/internal/services/dto"
	"askpro_backend/pkg/apperrors"
)

func TestCreateQuestion_UnknownTagRejected(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "asker", models.UserRoleRegular)

	_, err := env.container.QuestionService.CreateQuestion(env.db, user.ID, &dto.CreateQuestionRequest{
		Title:   "A question about nothing",
		Content: "Content long enough to pass validation",
		TagIDs:  []string{"nonexistent"},
	})
	require.Error(t, err)
}

func TestCreateQuestion_StartsOpen(t *testing.T) {
	env := newTestEnv(t)
	tag := env.createTag(t, "plumbing")
	user := env.createUser(t, "asker", models.UserRoleRegular)

	question, err := env.container.QuestionService.CreateQuestion(env.db, user.ID, &dto.CreateQuestionRequest{
		Title:   "Leaky faucet keeps dripping",
		Content: "It drips even when fully closed, what do I check first?",
		TagIDs:  []string{tag.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, models.QuestionStatusOpen, question.Status)
	require.Len(t, question.Tags, 1)
}

func TestUpdateQuestion_StatusIsAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	tag := env.createTag(t, "plumbing")
	owner := env.createUser(t, "owner", models.UserRoleRegular)
	question := env.createQuestion(t, owner, *tag)

	closed := string(models.QuestionStatusClosed)

	// Владелец не может дергать статус напрямую
	_, err := env.container.QuestionService.UpdateQuestion(env.db, question.ID, owner.ID, owner.Role, &dto.UpdateQuestionRequest{
		Status: &closed,
	})
	require.Error(t, err)

	// Админ может
	admin := env.createUser(t, "admin", models.UserRoleAdmin)
	updated, err := env.container.QuestionService.UpdateQuestion(env.db, question.ID, admin.ID, admin.Role, &dto.UpdateQuestionRequest{
		Status: &closed,
	})
	require.NoError(t, err)
	assert.Equal(t, models.QuestionStatusClosed, updated.Status)
}

func TestUpdateQuestion_OwnerEditsTextAndTags(t *testing.T) {
	env := newTestEnv(t)
	plumbing := env.createTag(t, "plumbing")
	wiring := env.createTag(t, "wiring")
	owner := env.createUser(t, "owner", models.UserRoleRegular)
	question := env.createQuestion(t, owner, *plumbing)

	newTitle := "Updated and clarified title"
	updated, err := env.container.QuestionService.UpdateQuestion(env.db, question.ID, owner.ID, owner.Role, &dto.UpdateQuestionRequest{
		Title:  &newTitle,
		TagIDs: []string{wiring.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, wiring.ID, updated.Tags[0].ID)

	// Посторонний не может
	stranger := env.createUser(t, "stranger", models.UserRoleRegular)
	_, err = env.container.QuestionService.UpdateQuestion(env.db, question.ID, stranger.ID, stranger.Role, &dto.UpdateQuestionRequest{
		Title: &newTitle,
	})
	require.Error(t, err)
}

func TestDeleteQuestion_ByAdminNotifiesOwner(t *testing.T) {
	env := newTestEnv(t)
	tag := env.createTag(t, "plumbing")
	owner := env.createUser(t, "owner", models.UserRoleRegular)
	question := env.createQuestion(t, owner, *tag)

	admin := env.createUser(t, "admin", models.UserRoleAdmin)
	err := env.container.QuestionService.DeleteQuestion(context.Background(), env.db, question.ID, admin.ID, admin.Role, "duplicate")
	require.NoError(t, err)

	_, err = env.questionRepo.FindByID(env.db, question.ID)
	assert.ErrorIs(t, err, repositories.ErrQuestionNotFound)

	notifications := env.notificationsFor(t, owner.ID)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationQuestionDeleted, notifications[0].Type)
}

func TestDeleteQuestion_AuthorForbidden(t *testing.T) {
	env := newTestEnv(t)
	tag := env.createTag(t, "plumbing")
	owner := env.createUser(t, "owner", models.UserRoleRegular)
	question := env.createQuestion(t, owner, *tag)

	// Автору удаление недоступно, вопрос остается на месте
	err := env.container.QuestionService.DeleteQuestion(context.Background(), env.db, question.ID, owner.ID, owner.Role, "")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.HTTPCode)

	_, err = env.questionRepo.FindByID(env.db, question.ID)
	require.NoError(t, err)
}

func TestListQuestions_Filters(t *testing.T) {
	env := newTestEnv(t)
	plumbing := env.createTag(t, "plumbing")
	wiring := env.createTag(t, "wiring")
	user := env.createUser(t, "asker", models.UserRoleRegular)

	q1 := env.createQuestion(t, user, *plumbing)
	env.createQuestion(t, user, *wiring)

	resp, err := env.container.QuestionService.ListQuestions(env.db, repositories.QuestionCriteria{
		TagIDs: []string{plumbing.ID}, Page: 1, PageSize: 20,
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, resp.Total)
	assert.Equal(t, q1.ID, resp.Questions[0].ID)

	resp, err = env.container.QuestionService.ListQuestions(env.db, repositories.QuestionCriteria{
		Status: models.QuestionStatusOpen, Page: 1, PageSize: 1,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.Total)
	assert.Len(t, resp.Questions, 1)
	assert.Equal(t, 2, resp.TotalPages)
}
