package service

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigkaa/docstore/internal/config"
	"github.com/bigkaa/docstore/internal/domain/model"
	"github.com/bigkaa/docstore/internal/storage/filestore"
	"github.com/bigkaa/docstore/internal/storage/metastore"
)

// detectFunc — детектор-заглушка.
type detectFunc func(path string) (string, error)

func (f detectFunc) DetectFile(path string) (string, error) { return f(path) }

// byExtension возвращает MIME-тип по расширению сохранённого файла.
func byExtension() detectFunc {
	return func(path string) (string, error) {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".pdf":
			return "application/pdf", nil
		case ".xlsx":
			return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
		case ".xls":
			return "application/vnd.ms-excel", nil
		case ".docx":
			return "application/vnd.openxmlformats-officedocument.wordprocessingml.document", nil
		}
		return "application/octet-stream", nil
	}
}

type testEnv struct {
	cfg   *config.Config
	meta  *metastore.Store
	store *filestore.FileStore
	dir   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	meta, err := metastore.New(filepath.Join(dir, "data", "files.json"), logger)
	require.NoError(t, err)
	store, err := filestore.New(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	return &testEnv{
		cfg:   &config.Config{DetectFailOpen: true},
		meta:  meta,
		store: store,
		dir:   dir,
	}
}

func (e *testEnv) uploadService(d detectFunc) *UploadService {
	return NewUploadService(e.cfg, e.meta, e.store, d, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (e *testEnv) filesService() *FilesService {
	return NewFilesService(e.meta, e.store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// blobCount возвращает количество файлов во всех директориях категорий.
func (e *testEnv) blobCount(t *testing.T) int {
	t.Helper()
	n := 0
	require.NoError(t, e.store.Walk(func(filestore.Blob) error {
		n++
		return nil
	}))
	return n
}

func incoming(name, content string) IncomingFile {
	return IncomingFile{
		Filename: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func TestUpload_SinglePDF(t *testing.T) {
	env := newTestEnv(t)
	svc := env.uploadService(byExtension())
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("MSK", 3*3600))
	svc.now = func() time.Time { return fixed }

	res, err := svc.Upload([]IncomingFile{incoming("report.pdf", "%PDF-1.4 test")})
	require.NoError(t, err)
	require.Len(t, res.Uploaded, 1)
	assert.Empty(t, res.Errors)

	rec := res.Uploaded[0]
	assert.Equal(t, "report.pdf", rec.OriginalName)
	assert.Equal(t, model.FileTypePDF, rec.FileType)
	assert.Equal(t, int64(len("%PDF-1.4 test")), rec.FileSize)
	assert.True(t, strings.HasSuffix(rec.StoredName, "_report.pdf"))
	assert.Equal(t, filepath.Join(env.store.Root(), "pdf", rec.StoredName), rec.StoredPath)
	assert.Equal(t, time.UTC, rec.UploadDate.Location())
	assert.True(t, fixed.Equal(rec.UploadDate))

	data, err := os.ReadFile(rec.StoredPath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(data))

	doc := env.meta.Load()
	require.Equal(t, 1, doc.Len())
	assert.Equal(t, rec.ID, doc.Files[0].ID)
}

func TestUpload_InvalidExtensionRejected(t *testing.T) {
	env := newTestEnv(t)
	svc := env.uploadService(byExtension())

	for _, name := range []string{"notes.txt", "README", "archive.tar.gz"} {
		res, err := svc.Upload([]IncomingFile{incoming(name, "data")})
		require.ErrorIs(t, err, ErrNothingUploaded, name)
		require.NotNil(t, res)
		assert.Equal(t, []string{name + ": Invalid file type"}, res.Errors)
	}

	assert.Equal(t, 0, env.blobCount(t))
	assert.Equal(t, 0, env.meta.Load().Len())
}

func TestUpload_ContentMismatchRejected(t *testing.T) {
	env := newTestEnv(t)
	svc := env.uploadService(func(string) (string, error) {
		return "text/plain; charset=utf-8", nil
	})

	res, err := svc.Upload([]IncomingFile{incoming("fake.pdf", "just text")})
	require.ErrorIs(t, err, ErrNothingUploaded)
	assert.Equal(t, []string{"fake.pdf: File content doesn't match extension"}, res.Errors)

	assert.Equal(t, 0, env.blobCount(t), "отклонённый файл должен быть удалён с диска")
	assert.Equal(t, 0, env.meta.Load().Len())
}

func TestUpload_MixedBatch(t *testing.T) {
	env := newTestEnv(t)
	svc := env.uploadService(byExtension())

	res, err := svc.Upload([]IncomingFile{
		incoming("a.pdf", "%PDF-a"),
		incoming("b.txt", "text"),
		incoming("Отчёт 2024.XLSX", "PK sheet"),
		incoming("c.docx", "PK doc"),
	})
	require.NoError(t, err)
	require.Len(t, res.Uploaded, 3)
	assert.Equal(t, []string{"b.txt: Invalid file type"}, res.Errors)

	types := []model.FileType{res.Uploaded[0].FileType, res.Uploaded[1].FileType, res.Uploaded[2].FileType}
	assert.Equal(t, []model.FileType{model.FileTypePDF, model.FileTypeExcel, model.FileTypeDocx}, types)
	assert.True(t, strings.HasSuffix(res.Uploaded[1].StoredName, "_Отчёт_2024.xlsx"))

	assert.Equal(t, 3, env.blobCount(t))
	assert.Equal(t, 3, env.meta.Load().Len())
}

func TestUpload_SameNameTwiceGetsDistinctRecords(t *testing.T) {
	env := newTestEnv(t)
	svc := env.uploadService(byExtension())

	res, err := svc.Upload([]IncomingFile{
		incoming("same.pdf", "%PDF-1"),
		incoming("same.pdf", "%PDF-2"),
	})
	require.NoError(t, err)
	require.Len(t, res.Uploaded, 2)

	a, b := res.Uploaded[0], res.Uploaded[1]
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, a.StoredName, b.StoredName)
	assert.Equal(t, a.OriginalName, b.OriginalName)
	assert.Equal(t, 2, env.blobCount(t))
}

func TestUpload_EmptyBatch(t *testing.T) {
	env := newTestEnv(t)
	svc := env.uploadService(byExtension())

	_, err := svc.Upload(nil)
	assert.ErrorIs(t, err, ErrNoFiles)

	_, err = svc.Upload([]IncomingFile{incoming("", "")})
	assert.ErrorIs(t, err, ErrNoFiles)

	_, statErr := os.Stat(env.meta.Path())
	assert.True(t, os.IsNotExist(statErr), "документ метаданных не должен создаваться")
}

func TestUpload_DetectorFailure(t *testing.T) {
	failing := func(string) (string, error) { return "", errors.New("detector unavailable") }

	t.Run("fail-open принимает файл", func(t *testing.T) {
		env := newTestEnv(t)
		svc := env.uploadService(failing)

		res, err := svc.Upload([]IncomingFile{incoming("doc.pdf", "%PDF")})
		require.NoError(t, err)
		assert.Len(t, res.Uploaded, 1)
		assert.Equal(t, 1, env.blobCount(t))
	})

	t.Run("fail-closed отклоняет файл", func(t *testing.T) {
		env := newTestEnv(t)
		env.cfg.DetectFailOpen = false
		svc := env.uploadService(failing)

		res, err := svc.Upload([]IncomingFile{incoming("doc.pdf", "%PDF")})
		require.ErrorIs(t, err, ErrNothingUploaded)
		assert.Equal(t, []string{"doc.pdf: Content type detection failed"}, res.Errors)
		assert.Equal(t, 0, env.blobCount(t))
	})
}

func TestUpload_PanicIsolatedToFile(t *testing.T) {
	env := newTestEnv(t)
	svc := env.uploadService(func(path string) (string, error) {
		if strings.HasSuffix(path, "_boom.pdf") {
			panic("boom")
		}
		return "application/pdf", nil
	})

	res, err := svc.Upload([]IncomingFile{
		incoming("boom.pdf", "%PDF-boom"),
		incoming("ok.pdf", "%PDF-ok"),
	})
	require.NoError(t, err)
	require.Len(t, res.Uploaded, 1)
	assert.Equal(t, "ok.pdf", res.Uploaded[0].OriginalName)
	require.Len(t, res.Errors, 1)
	assert.True(t, strings.HasPrefix(res.Errors[0], "boom.pdf: "))

	assert.Equal(t, 1, env.blobCount(t), "файл с паникой должен быть удалён")
}

func TestUpload_OpenErrorReported(t *testing.T) {
	env := newTestEnv(t)
	svc := env.uploadService(byExtension())

	broken := IncomingFile{
		Filename: "broken.pdf",
		Open:     func() (io.ReadCloser, error) { return nil, errors.New("read failed") },
	}

	res, err := svc.Upload([]IncomingFile{broken, incoming("ok.pdf", "%PDF")})
	require.NoError(t, err)
	assert.Len(t, res.Uploaded, 1)
	assert.Equal(t, []string{"broken.pdf: read failed"}, res.Errors)
}

func TestUpload_MetadataSaveFailureRemovesBlobs(t *testing.T) {
	env := newTestEnv(t)
	svc := env.uploadService(byExtension())

	// Директория на месте документа делает rename невозможным
	require.NoError(t, os.MkdirAll(filepath.Join(env.meta.Path(), "blocker"), 0o755))

	_, err := svc.Upload([]IncomingFile{incoming("a.pdf", "%PDF")})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNothingUploaded))
	assert.Equal(t, 0, env.blobCount(t))
}

func TestUpload_AppendsToExistingDocument(t *testing.T) {
	env := newTestEnv(t)
	svc := env.uploadService(byExtension())

	_, err := svc.Upload([]IncomingFile{incoming("first.pdf", "%PDF-1")})
	require.NoError(t, err)
	_, err = svc.Upload([]IncomingFile{incoming("second.docx", "PK")})
	require.NoError(t, err)

	doc := env.meta.Load()
	require.Equal(t, 2, doc.Len())
	assert.Equal(t, "first.pdf", doc.Files[0].OriginalName)
	assert.Equal(t, "second.docx", doc.Files[1].OriginalName)
}
