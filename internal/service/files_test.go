package service

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigkaa/docstore/internal/domain/model"
)

// uploadOne загружает один PDF и возвращает его запись.
func uploadOne(t *testing.T, env *testEnv, name, content string, at time.Time) model.FileRecord {
	t.Helper()
	svc := env.uploadService(byExtension())
	svc.now = func() time.Time { return at }

	res, err := svc.Upload([]IncomingFile{incoming(name, content)})
	require.NoError(t, err)
	require.Len(t, res.Uploaded, 1)
	return res.Uploaded[0]
}

func TestList_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	uploadOne(t, env, "old.pdf", "%PDF", base)
	uploadOne(t, env, "new.pdf", "%PDF", base.Add(2*time.Hour))
	uploadOne(t, env, "mid.pdf", "%PDF", base.Add(time.Hour))

	files := env.filesService().List()
	require.Len(t, files, 3)
	assert.Equal(t, "new.pdf", files[0].OriginalName)
	assert.Equal(t, "mid.pdf", files[1].OriginalName)
	assert.Equal(t, "old.pdf", files[2].OriginalName)
}

func TestList_EmptyAndCorrupted(t *testing.T) {
	env := newTestEnv(t)
	svc := env.filesService()

	files := svc.List()
	assert.NotNil(t, files)
	assert.Empty(t, files)

	require.NoError(t, os.WriteFile(env.meta.Path(), []byte("{broken"), 0o644))
	files = svc.List()
	assert.NotNil(t, files)
	assert.Empty(t, files)
	assert.Equal(t, 0, svc.Count())
}

func TestOpen(t *testing.T) {
	env := newTestEnv(t)
	rec := uploadOne(t, env, "manual.pdf", "%PDF-manual", time.Now())
	svc := env.filesService()

	got, f, err := svc.Open(rec.StoredName)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, rec.ID, got.ID)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-manual", string(data))
}

func TestOpen_UnknownStoredName(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.filesService().Open("deadbeef0000_missing.pdf")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpen_BlobMissing(t *testing.T) {
	env := newTestEnv(t)
	rec := uploadOne(t, env, "gone.pdf", "%PDF", time.Now())
	require.NoError(t, os.Remove(rec.StoredPath))

	_, _, err := env.filesService().Open(rec.StoredName)
	assert.ErrorIs(t, err, ErrBlobMissing)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	env := newTestEnv(t)
	keep := uploadOne(t, env, "keep.pdf", "%PDF", time.Now())
	drop := uploadOne(t, env, "drop.pdf", "%PDF", time.Now())
	svc := env.filesService()

	deleted, err := svc.Delete(drop.ID)
	require.NoError(t, err)
	assert.Equal(t, "drop.pdf", deleted.OriginalName)

	_, statErr := os.Stat(drop.StoredPath)
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(keep.StoredPath)
	assert.NoError(t, statErr)

	files := svc.List()
	require.Len(t, files, 1)
	assert.Equal(t, keep.ID, files[0].ID)
}

func TestDelete_SecondCallNotFound(t *testing.T) {
	env := newTestEnv(t)
	rec := uploadOne(t, env, "once.pdf", "%PDF", time.Now())
	svc := env.filesService()

	_, err := svc.Delete(rec.ID)
	require.NoError(t, err)

	_, err = svc.Delete(rec.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, svc.Count())
}

func TestDelete_UnknownIDLeavesDocumentUntouched(t *testing.T) {
	env := newTestEnv(t)
	uploadOne(t, env, "a.pdf", "%PDF", time.Now())

	before, err := os.ReadFile(env.meta.Path())
	require.NoError(t, err)

	_, err = env.filesService().Delete("00000000-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, ErrNotFound)

	after, err := os.ReadFile(env.meta.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDelete_BlobAlreadyMissing(t *testing.T) {
	env := newTestEnv(t)
	rec := uploadOne(t, env, "orphan.pdf", "%PDF", time.Now())
	require.NoError(t, os.Remove(rec.StoredPath))
	svc := env.filesService()

	_, err := svc.Delete(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, svc.Count())
}
