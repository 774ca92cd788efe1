package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askpro_backend/internal/models"
	"askpro_backend/internal/services/dto"
	"askpro_backend/pkg/apperrors"
)

func TestCreateTag_DuplicateNameRejected(t *testing.T) {
	env := newTestEnv(t)
	env.createTag(t, "plumbing")

	_, err := env.container.TagService.CreateTag(env.db, &dto.CreateTagRequest{Name: "plumbing"})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.HTTPCode)
}

func TestDeleteTag_RefusesWhileReferenced(t *testing.T) {
	env := newTestEnv(t)
	tag := env.createTag(t, "plumbing")
	user := env.createUser(t, "asker", models.UserRoleRegular)
	question := env.createQuestion(t, user, *tag)

	err := env.container.TagService.DeleteTag(env.db, tag.ID)
	require.Error(t, err)

	// После удаления вопроса тег может держать сертификация
	require.NoError(t, env.questionRepo.Delete(env.db, question.ID))
	pro := env.createUser(t, "pro", models.UserRolePower)
	env.certify(t, pro, tag)

	err = env.container.TagService.DeleteTag(env.db, tag.ID)
	require.Error(t, err)
}

func TestDeleteTag_UnreferencedSucceeds(t *testing.T) {
	env := newTestEnv(t)
	tag := env.createTag(t, "ephemeral")

	require.NoError(t, env.container.TagService.DeleteTag(env.db, tag.ID))

	_, err := env.container.TagService.GetTag(env.db, tag.ID)
	require.Error(t, err)
}

func TestUpdateTag_RenameCollision(t *testing.T) {
	env := newTestEnv(t)
	env.createTag(t, "plumbing")
	wiring := env.createTag(t, "wiring")

	name := "plumbing"
	_, err := env.container.TagService.UpdateTag(env.db, wiring.ID, &dto.UpdateTagRequest{Name: &name})
	require.Error(t, err)

	fresh := "electrical"
	updated, err := env.container.TagService.UpdateTag(env.db, wiring.ID, &dto.UpdateTagRequest{Name: &fresh})
	require.NoError(t, err)
	assert.Equal(t, "electrical", updated.Name)
}
