package services

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askpro_backend/internal/models"
)

func uploadAttachment(t *testing.T, env *testEnv, questionID, userID, filename, mime string) (*models.Attachment, error) {
	t.Helper()
	return env.container.AttachmentService.Upload(
		context.Background(), env.db,
		questionID, userID,
		filename, mime, 512, bytes.NewReader([]byte("file body")),
	)
}

func TestUploadAttachment_LimitPerQuestion(t *testing.T) {
	env := newTestEnv(t)
	tag := env.createTag(t, "plumbing")
	owner := env.createUser(t, "owner", models.UserRoleRegular)
	question := env.createQuestion(t, owner, *tag)

	_, err := uploadAttachment(t, env, question.ID, owner.ID, "leak.png", models.MimePNG)
	require.NoError(t, err)
	_, err = uploadAttachment(t, env, question.ID, owner.ID, "invoice.pdf", models.MimePDF)
	require.NoError(t, err)

	// Третий файл сверх лимита
	_, err = uploadAttachment(t, env, question.ID, owner.ID, "more.png", models.MimePNG)
	require.Error(t, err)
}

func TestUploadAttachment_MimeAndOwnership(t *testing.T) {
	env := newTestEnv(t)
	tag := env.createTag(t, "plumbing")
	owner := env.createUser(t, "owner", models.UserRoleRegular)
	question := env.createQuestion(t, owner, *tag)

	_, err := uploadAttachment(t, env, question.ID, owner.ID, "notes.txt", "text/plain")
	require.Error(t, err)

	stranger := env.createUser(t, "stranger", models.UserRoleRegular)
	_, err = uploadAttachment(t, env, question.ID, stranger.ID, "leak.png", models.MimePNG)
	require.Error(t, err)
}

func TestDownloadAttachment_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	tag := env.createTag(t, "plumbing")
	owner := env.createUser(t, "owner", models.UserRoleRegular)
	question := env.createQuestion(t, owner, *tag)

	attachment, err := uploadAttachment(t, env, question.ID, owner.ID, "leak photo.png", models.MimePNG)
	require.NoError(t, err)
	assert.Equal(t, "leak_photo.png", attachment.Filename)

	meta, reader, err := env.container.AttachmentService.Download(context.Background(), env.db, attachment.ID)
	require.NoError(t, err)
	defer reader.Close()

	body, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, []byte("file body"), body)
	assert.Equal(t, models.MimePNG, meta.MimeType)
}

func TestDeleteAttachment_UploaderOrAdmin(t *testing.T) {
	env := newTestEnv(t)
	tag := env.createTag(t, "plumbing")
	owner := env.createUser(t, "owner", models.UserRoleRegular)
	question := env.createQuestion(t, owner, *tag)

	attachment, err := uploadAttachment(t, env, question.ID, owner.ID, "leak.png", models.MimePNG)
	require.NoError(t, err)

	stranger := env.createUser(t, "stranger", models.UserRoleRegular)
	err = env.container.AttachmentService.Delete(context.Background(), env.db, attachment.ID, stranger.ID, stranger.Role)
	require.Error(t, err)

	err = env.container.AttachmentService.Delete(context.Background(), env.db, attachment.ID, owner.ID, owner.Role)
	require.NoError(t, err)

	_, _, err = env.container.AttachmentService.Download(context.Background(), env.db, attachment.ID)
	require.Error(t, err)
}
