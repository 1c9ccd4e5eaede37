// files.go — HTTP handlers для файловых операций.
// Upload, List, Download, Delete.
package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	apierrors "github.com/bigkaa/docstore/internal/api/errors"
	"github.com/bigkaa/docstore/internal/api/generated"
	"github.com/bigkaa/docstore/internal/domain/model"
	"github.com/bigkaa/docstore/internal/service"
)

// multipartMemory — объём multipart-данных в памяти, остальное во временных файлах.
const multipartMemory = 8 << 20

// uploadFields — имена полей формы с файлами, в порядке приоритета.
var uploadFields = []string{"files", "files[]", "file"}

// FilesHandler — обработчик файловых endpoints.
type FilesHandler struct {
	uploadSvc     *service.UploadService
	filesSvc      *service.FilesService
	maxUploadSize int64
	logger        *slog.Logger
}

// NewFilesHandler создаёт обработчик файловых endpoints.
func NewFilesHandler(
	uploadSvc *service.UploadService,
	filesSvc *service.FilesService,
	maxUploadSize int64,
	logger *slog.Logger,
) *FilesHandler {
	return &FilesHandler{
		uploadSvc:     uploadSvc,
		filesSvc:      filesSvc,
		maxUploadSize: maxUploadSize,
		logger:        logger.With(slog.String("component", "files_handler")),
	}
}

// UploadFiles обрабатывает POST /upload.
// Multipart form: files (несколько значений), также принимаются files[] и file.
func (h *FilesHandler) UploadFiles(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			apierrors.FileTooLarge(w, fmt.Sprintf("Request body exceeds %d bytes", maxErr.Limit))
			return
		}
		if errors.Is(err, http.ErrNotMultipart) {
			apierrors.ValidationError(w, "No files selected")
			return
		}
		apierrors.ValidationError(w, fmt.Sprintf("Invalid multipart form: %s", err.Error()))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	result, err := h.uploadSvc.Upload(incomingFiles(r.MultipartForm))
	switch {
	case errors.Is(err, service.ErrNoFiles):
		apierrors.ValidationError(w, "No files selected")
		return
	case errors.Is(err, service.ErrNothingUploaded):
		apierrors.ValidationError(w, "No files were uploaded", result.Errors...)
		return
	case err != nil:
		h.logger.Error("Ошибка загрузки пакета", slog.String("error", err.Error()))
		apierrors.InternalError(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, generated.UploadResponse{
		Status:        "success",
		Message:       fmt.Sprintf("Successfully uploaded %d file(s)", len(result.Uploaded)),
		UploadedCount: len(result.Uploaded),
		Files:         domainToAPIRecords(result.Uploaded),
		Errors:        result.Errors,
	})
}

// incomingFiles собирает файлы из первого непустого поля формы.
func incomingFiles(form *multipart.Form) []service.IncomingFile {
	if form == nil {
		return nil
	}

	for _, field := range uploadFields {
		headers := form.File[field]
		if len(headers) == 0 {
			continue
		}

		files := make([]service.IncomingFile, 0, len(headers))
		for _, fh := range headers {
			files = append(files, service.IncomingFile{
				Filename: fh.Filename,
				Open: func() (io.ReadCloser, error) {
					return fh.Open()
				},
			})
		}
		return files
	}
	return nil
}

// ListFiles обрабатывает GET /files.
// Записи отсортированы по дате загрузки, новые первые.
func (h *FilesHandler) ListFiles(w http.ResponseWriter, _ *http.Request) {
	files := h.filesSvc.List()
	writeJSON(w, http.StatusOK, generated.FileListResponse{
		Files: domainToAPIRecords(files),
		Total: len(files),
	})
}

// DownloadFile обрабатывает GET /download/{stored_name}.
// Поддерживает Range requests и If-Modified-Since через http.ServeContent.
func (h *FilesHandler) DownloadFile(w http.ResponseWriter, r *http.Request, storedName generated.StoredName) {
	rec, f, err := h.filesSvc.Open(storedName)
	switch {
	case errors.Is(err, service.ErrBlobMissing):
		apierrors.NotFound(w, "File not found on disk")
		return
	case errors.Is(err, service.ErrNotFound):
		apierrors.NotFound(w, "File not found")
		return
	case err != nil:
		h.logger.Error("Ошибка открытия файла",
			slog.String("stored_name", storedName),
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, err.Error())
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		apierrors.InternalError(w, err.Error())
		return
	}

	w.Header().Set("Content-Type", contentType(rec))
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": rec.OriginalName}))

	http.ServeContent(w, r, rec.OriginalName, info.ModTime(), f)
}

// contentType возвращает Content-Type для отдачи файла.
func contentType(rec *model.FileRecord) string {
	if ct := mime.TypeByExtension(filepath.Ext(rec.StoredName)); ct != "" {
		return ct
	}
	if types := rec.FileType.AllowedMIMETypes(); len(types) > 0 {
		return types[0]
	}
	return "application/octet-stream"
}

// DeleteFile обрабатывает DELETE /delete/{id}.
func (h *FilesHandler) DeleteFile(w http.ResponseWriter, _ *http.Request, id generated.FileId) {
	rec, err := h.filesSvc.Delete(id)
	switch {
	case errors.Is(err, service.ErrNotFound):
		apierrors.NotFound(w, "File not found")
		return
	case err != nil:
		h.logger.Error("Ошибка удаления файла",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, generated.StatusResponse{
		Status:  "success",
		Message: fmt.Sprintf("File %s deleted successfully", rec.OriginalName),
	})
}

// domainToAPIRecord преобразует доменную запись в API-модель.
func domainToAPIRecord(rec model.FileRecord) generated.FileRecord {
	return generated.FileRecord{
		Id:           rec.ID,
		OriginalName: rec.OriginalName,
		StoredName:   rec.StoredName,
		StoredPath:   rec.StoredPath,
		FileType:     generated.FileRecordFileType(rec.FileType),
		FileSize:     strconv.FormatInt(rec.FileSize, 10),
		UploadDate:   rec.UploadDate,
	}
}

// domainToAPIRecords преобразует список записей, пустой список остаётся [].
func domainToAPIRecords(recs []model.FileRecord) []generated.FileRecord {
	out := make([]generated.FileRecord, 0, len(recs))
	for _, rec := range recs {
		out = append(out, domainToAPIRecord(rec))
	}
	return out
}
