package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askpro_backend/internal/models"
	"askpro_backend/internal/services/dto"
)

func TestSubmitReview_UpsertsByPair(t *testing.T) {
	env := newTestEnv(t)
	pro := env.createUser(t, "pro", models.UserRolePower)
	client := env.createUser(t, "client", models.UserRoleRegular)

	_, err := env.container.ReviewService.SubmitReview(env.db, client.ID, pro.ID, &dto.SubmitReviewRequest{
		Rating:  5,
		Comment: "Excellent advice",
	})
	require.NoError(t, err)

	// Повторная отправка перезаписывает, а не дублирует
	_, err = env.container.ReviewService.SubmitReview(env.db, client.ID, pro.ID, &dto.SubmitReviewRequest{
		Rating:  2,
		Comment: "Advice did not survive contact with my pipes",
	})
	require.NoError(t, err)

	resp, err := env.container.ReviewService.GetUserReviews(env.db, pro.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, resp.Total)
	assert.InDelta(t, 2.0, resp.AverageRating, 0.001)
	require.Len(t, resp.Reviews, 1)
	assert.Equal(t, 2, resp.Reviews[0].Rating)
}

func TestSubmitReview_AverageAcrossReviewers(t *testing.T) {
	env := newTestEnv(t)
	pro := env.createUser(t, "pro", models.UserRolePower)
	clientA := env.createUser(t, "client_a", models.UserRoleRegular)
	clientB := env.createUser(t, "client_b", models.UserRoleRegular)

	_, err := env.container.ReviewService.SubmitReview(env.db, clientA.ID, pro.ID, &dto.SubmitReviewRequest{Rating: 5})
	require.NoError(t, err)
	_, err = env.container.ReviewService.SubmitReview(env.db, clientB.ID, pro.ID, &dto.SubmitReviewRequest{Rating: 2})
	require.NoError(t, err)

	resp, err := env.container.ReviewService.GetUserReviews(env.db, pro.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.Total)
	assert.InDelta(t, 3.5, resp.AverageRating, 0.001)
}

func TestSubmitReview_SelfReviewRejected(t *testing.T) {
	env := newTestEnv(t)
	pro := env.createUser(t, "pro", models.UserRolePower)

	_, err := env.container.ReviewService.SubmitReview(env.db, pro.ID, pro.ID, &dto.SubmitReviewRequest{Rating: 5})
	require.Error(t, err)
}

func TestSubmitReview_OnlyProfessionalsReviewable(t *testing.T) {
	env := newTestEnv(t)
	regular := env.createUser(t, "regular", models.UserRoleRegular)
	client := env.createUser(t, "client", models.UserRoleRegular)

	_, err := env.container.ReviewService.SubmitReview(env.db, client.ID, regular.ID, &dto.SubmitReviewRequest{Rating: 4})
	require.Error(t, err)

	// Админ тоже вне системы оценок
	admin := env.createUser(t, "admin", models.UserRoleAdmin)
	_, err = env.container.ReviewService.SubmitReview(env.db, client.ID, admin.ID, &dto.SubmitReviewRequest{Rating: 4})
	require.Error(t, err)
}

func TestSubmitReview_RatingBounds(t *testing.T) {
	env := newTestEnv(t)
	pro := env.createUser(t, "pro", models.UserRolePower)
	client := env.createUser(t, "client", models.UserRoleRegular)

	_, err := env.container.ReviewService.SubmitReview(env.db, client.ID, pro.ID, &dto.SubmitReviewRequest{Rating: 0})
	require.Error(t, err)
	_, err = env.container.ReviewService.SubmitReview(env.db, client.ID, pro.ID, &dto.SubmitReviewRequest{Rating: 6})
	require.Error(t, err)
}

func TestSubmitReview_NotifiesOnFirstReviewOnly(t *testing.T) {
	env := newTestEnv(t)
	pro := env.createUser(t, "pro", models.UserRolePower)
	client := env.createUser(t, "client", models.UserRoleRegular)

	_, err := env.container.ReviewService.SubmitReview(env.db, client.ID, pro.ID, &dto.SubmitReviewRequest{Rating: 5})
	require.NoError(t, err)
	_, err = env.container.ReviewService.SubmitReview(env.db, client.ID, pro.ID, &dto.SubmitReviewRequest{Rating: 4})
	require.NoError(t, err)

	notifications := env.notificationsFor(t, pro.ID)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationReview, notifications[0].Type)
}
