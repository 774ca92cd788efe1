package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askpro_backend/internal/models"
	"askpro_backend/pkg/apperrors"
)

func TestMarkAsRead_RecipientOnly(t *testing.T) {
	env := newTestEnv(t)
	recipient := env.createUser(t, "recipient", models.UserRoleRegular)
	other := env.createUser(t, "other", models.UserRoleRegular)

	notification := &models.Notification{
		UserID:  recipient.ID,
		Type:    models.NotificationAnswer,
		Title:   "Test",
		Message: "Test message",
	}
	require.NoError(t, env.notificationRepo.Create(env.db, notification))

	err := env.container.NotificationService.MarkAsRead(env.db, notification.ID, other.ID)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.HTTPCode)

	require.NoError(t, env.container.NotificationService.MarkAsRead(env.db, notification.ID, recipient.ID))

	updated, err := env.notificationRepo.FindByID(env.db, notification.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsRead)
	require.NotNil(t, updated.ReadAt)

	// Повторная пометка безвредна
	require.NoError(t, env.container.NotificationService.MarkAsRead(env.db, notification.ID, recipient.ID))
}

func TestUnreadCountAndPagination(t *testing.T) {
	env := newTestEnv(t)
	recipient := env.createUser(t, "recipient", models.UserRoleRegular)

	for i := 0; i < 3; i++ {
		require.NoError(t, env.notificationRepo.Create(env.db, &models.Notification{
			UserID:  recipient.ID,
			Type:    models.NotificationAnswer,
			Title:   "Test",
			Message: "Test message",
		}))
	}

	count, err := env.container.NotificationService.CountUnread(env.db, recipient.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	resp, err := env.container.NotificationService.ListNotifications(env.db, recipient.ID, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, resp.Total)
	assert.Len(t, resp.Notifications, 2)

	require.NoError(t, env.container.NotificationService.MarkAsRead(env.db, resp.Notifications[0].ID, recipient.ID))

	count, err = env.container.NotificationService.CountUnread(env.db, recipient.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
