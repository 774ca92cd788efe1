package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askpro_backend/internal/models"
	"askpro_backend/internal/services/dto"
	"askpro_backend/pkg/apperrors"
)

func commentSetup(t *testing.T, env *testEnv) (asker, pro *models.User, question *models.Question, answer *models.Answer) {
	t.Helper()
	tag := env.createTag(t, "plumbing")
	asker = env.createUser(t, "asker", models.UserRoleRegular)
	question = env.createQuestion(t, asker, *tag)

	pro = env.createUser(t, "pro", models.UserRolePower)
	env.certify(t, pro, tag)

	var err error
	answer, err = env.container.AnswerService.CreateAnswer(env.db, pro.ID, pro.Role, &dto.CreateAnswerRequest{
		QuestionID: question.ID, Content: "Replace the washer",
	})
	require.NoError(t, err)
	return asker, pro, question, answer
}

func TestCreateComment_ParticipantsOnly(t *testing.T) {
	env := newTestEnv(t)
	asker, pro, _, answer := commentSetup(t, env)

	// Обе стороны обсуждения могут комментировать
	_, err := env.container.CommentService.CreateComment(env.db, asker.ID, &dto.CreateCommentRequest{
		AnswerID: answer.ID, Content: "Which washer size?",
	})
	require.NoError(t, err)

	_, err = env.container.CommentService.CreateComment(env.db, pro.ID, &dto.CreateCommentRequest{
		AnswerID: answer.ID, Content: "Half inch, most likely",
	})
	require.NoError(t, err)

	// Третий лишний
	stranger := env.createUser(t, "stranger", models.UserRoleRegular)
	_, err = env.container.CommentService.CreateComment(env.db, stranger.ID, &dto.CreateCommentRequest{
		AnswerID: answer.ID, Content: "Let me butt in",
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.HTTPCode)
}

func TestCreateComment_ClosedQuestion(t *testing.T) {
	env := newTestEnv(t)
	asker, _, _, answer := commentSetup(t, env)

	require.NoError(t, env.container.AnswerService.AcceptAnswer(env.db, answer.ID, asker.ID))

	_, err := env.container.CommentService.CreateComment(env.db, asker.ID, &dto.CreateCommentRequest{
		AnswerID: answer.ID, Content: "One more thing...",
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.HTTPCode)
}

func TestCreateComment_NotifiesOtherSide(t *testing.T) {
	env := newTestEnv(t)
	asker, pro, _, answer := commentSetup(t, env)

	// Ответ уже принес автору вопроса одно уведомление
	base := len(env.notificationsFor(t, asker.ID))

	_, err := env.container.CommentService.CreateComment(env.db, asker.ID, &dto.CreateCommentRequest{
		AnswerID: answer.ID, Content: "Which washer size?",
	})
	require.NoError(t, err)

	// Комментарий автора вопроса уходит автору ответа
	proNotifications := env.notificationsFor(t, pro.ID)
	require.Len(t, proNotifications, 1)
	assert.Equal(t, models.NotificationComment, proNotifications[0].Type)

	// И наоборот
	_, err = env.container.CommentService.CreateComment(env.db, pro.ID, &dto.CreateCommentRequest{
		AnswerID: answer.ID, Content: "Half inch",
	})
	require.NoError(t, err)
	assert.Len(t, env.notificationsFor(t, asker.ID), base+1)
}

func TestUpdateComment_AuthorOnly(t *testing.T) {
	env := newTestEnv(t)
	asker, pro, _, answer := commentSetup(t, env)

	comment, err := env.container.CommentService.CreateComment(env.db, asker.ID, &dto.CreateCommentRequest{
		AnswerID: answer.ID, Content: "Original text",
	})
	require.NoError(t, err)

	_, err = env.container.CommentService.UpdateComment(env.db, comment.ID, pro.ID, &dto.UpdateCommentRequest{
		Content: "Hijacked text",
	})
	require.Error(t, err)

	updated, err := env.container.CommentService.UpdateComment(env.db, comment.ID, asker.ID, &dto.UpdateCommentRequest{
		Content: "Clarified text",
	})
	require.NoError(t, err)
	assert.Equal(t, "Clarified text", updated.Content)
}

func TestDeleteComment_AuthorOrAdmin(t *testing.T) {
	env := newTestEnv(t)
	asker, pro, _, answer := commentSetup(t, env)

	comment, err := env.container.CommentService.CreateComment(env.db, asker.ID, &dto.CreateCommentRequest{
		AnswerID: answer.ID, Content: "To be deleted",
	})
	require.NoError(t, err)

	// Не автор и не админ
	require.Error(t, env.container.CommentService.DeleteComment(env.db, comment.ID, pro.ID, pro.Role))

	admin := env.createUser(t, "admin", models.UserRoleAdmin)
	require.NoError(t, env.container.CommentService.DeleteComment(env.db, comment.ID, admin.ID, admin.Role))

	comments, err := env.container.CommentService.ListByAnswer(env.db, answer.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
