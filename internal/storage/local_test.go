package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveGetDelete(t *testing.T) {
	st, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)

	ctx := context.Background()
	path := "attachments/u1_1_report.pdf"

	require.NoError(t, st.Save(ctx, path, strings.NewReader("%PDF-1.4 data"), "application/pdf"))

	exists, err := st.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, exists)

	size, err := st.GetSize(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, int64(len("%PDF-1.4 data")), size)

	rc, err := st.Get(ctx, path)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	rc.Close()
	assert.Equal(t, "%PDF-1.4 data", string(data))

	require.NoError(t, st.Delete(ctx, path))
	exists, err = st.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, exists)

	// Повторное удаление не является ошибкой
	assert.NoError(t, st.Delete(ctx, path))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "report.pdf", SanitizeFilename("report.pdf"))
	assert.Equal(t, "passwd", SanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "my_resume_2024.pdf", SanitizeFilename("my resume 2024.pdf"))
	assert.Equal(t, "file", SanitizeFilename("///"))
}

func TestBuildObjectName(t *testing.T) {
	name := BuildObjectName("user-1", "диплом 2020.pdf")
	assert.Contains(t, name, "user-1_")
	assert.True(t, strings.HasSuffix(name, ".pdf"))
	assert.NotContains(t, name, " ")
}
