// Пакет service — бизнес-логика сервиса хранения документов.
// upload.go — конвейер загрузки пакета файлов.
package service

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/docstore/internal/api/middleware"
	"github.com/bigkaa/docstore/internal/config"
	"github.com/bigkaa/docstore/internal/detect"
	"github.com/bigkaa/docstore/internal/domain/model"
	"github.com/bigkaa/docstore/internal/storage/filestore"
	"github.com/bigkaa/docstore/internal/storage/metastore"
)

// detectFailuresTotal — ошибки детектора типа содержимого.
var detectFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "docstore_detect_failures_total",
	Help: "Количество ошибок определения типа содержимого загружаемых файлов",
})

// IncomingFile — один файл пакета загрузки.
type IncomingFile struct {
	// Filename — имя файла, переданное клиентом
	Filename string
	// Open открывает поток данных файла
	Open func() (io.ReadCloser, error)
}

// UploadResult — результат загрузки пакета.
type UploadResult struct {
	// Uploaded — записи, добавленные в документ метаданных
	Uploaded []model.FileRecord
	// Errors — ошибки отдельных файлов ("имя: причина")
	Errors []string
}

// FileError — ошибка обработки одного файла пакета.
// Не прерывает обработку остальных файлов.
type FileError struct {
	Filename string
	Reason   string
	// Rejected — файл отклонён проверкой (а не сбоем ввода-вывода)
	Rejected bool
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Filename, e.Reason)
}

// UploadService — сервис загрузки файлов.
type UploadService struct {
	cfg      *config.Config
	meta     *metastore.Store
	store    *filestore.FileStore
	detector detect.Detector
	logger   *slog.Logger
	now      func() time.Time
}

// NewUploadService создаёт сервис загрузки файлов.
func NewUploadService(
	cfg *config.Config,
	meta *metastore.Store,
	store *filestore.FileStore,
	detector detect.Detector,
	logger *slog.Logger,
) *UploadService {
	return &UploadService{
		cfg:      cfg,
		meta:     meta,
		store:    store,
		detector: detector,
		logger:   logger.With(slog.String("component", "upload_service")),
		now:      time.Now,
	}
}

// Upload обрабатывает пакет файлов.
//
// Поток для каждого файла:
//  1. Проверка расширения (pdf, xlsx, xls, docx)
//  2. Категория по расширению
//  3. Генерация stored_name
//  4. Запись в {upload_dir}/{file_type}/{stored_name}
//  5. Размер записанных данных
//  6. Проверка типа содержимого детектором
//  7. Формирование FileRecord
//
// Ошибка одного файла не прерывает пакет. Все успешные записи добавляются
// в документ метаданных одним сохранением.
//
// Возвращает ErrNoFiles для пустого пакета и ErrNothingUploaded (вместе с
// результатом, содержащим ошибки файлов), если ни один файл не принят.
// Прочие ошибки — сбой сохранения документа; файлы пакета удаляются с диска.
func (s *UploadService) Upload(files []IncomingFile) (*UploadResult, error) {
	if len(files) == 0 || (len(files) == 1 && files[0].Filename == "") {
		return nil, ErrNoFiles
	}

	result := &UploadResult{Errors: []string{}}
	records := make([]model.FileRecord, 0, len(files))

	for _, f := range files {
		rec, err := s.processFile(f)
		if err != nil {
			var fileErr *FileError
			if !errors.As(err, &fileErr) {
				fileErr = &FileError{Filename: f.Filename, Reason: err.Error()}
			}

			opResult := "error"
			if fileErr.Rejected {
				opResult = "rejected"
			}
			middleware.OperationsTotal.WithLabelValues("upload", opResult).Inc()

			s.logger.Warn("Файл отклонён",
				slog.String("filename", f.Filename),
				slog.String("reason", fileErr.Reason),
			)
			result.Errors = append(result.Errors, fileErr.Error())
			continue
		}
		records = append(records, *rec)
	}

	if len(records) == 0 {
		return result, ErrNothingUploaded
	}

	if err := s.commit(records, result); err != nil {
		for _, rec := range records {
			if delErr := s.store.Delete(rec.StoredPath); delErr != nil {
				s.logger.Error("Ошибка удаления файла после сбоя сохранения метаданных",
					slog.String("path", rec.StoredPath),
					slog.String("error", delErr.Error()),
				)
			}
		}
		s.logger.Error("Ошибка сохранения метаданных пакета",
			slog.Int("files", len(records)),
			slog.String("error", err.Error()),
		)
		middleware.OperationsTotal.WithLabelValues("upload", "error").Add(float64(len(records)))
		return nil, fmt.Errorf("ошибка сохранения метаданных: %w", err)
	}

	if len(result.Uploaded) == 0 {
		return result, ErrNothingUploaded
	}

	middleware.OperationsTotal.WithLabelValues("upload", "success").Add(float64(len(result.Uploaded)))

	s.logger.Info("Пакет файлов загружен",
		slog.Int("uploaded", len(result.Uploaded)),
		slog.Int("rejected", len(result.Errors)),
	)

	return result, nil
}

// commit добавляет записи в документ метаданных одним циклом load-mutate-save.
// Записи с занятым id или stored_name пропускаются, их файлы удаляются.
func (s *UploadService) commit(records []model.FileRecord, result *UploadResult) error {
	var (
		uploaded []model.FileRecord
		dupErrs  []string
		total    int
	)

	err := s.meta.Update(func(doc *metastore.Document) (bool, error) {
		uploaded = uploaded[:0]
		dupErrs = dupErrs[:0]

		for _, rec := range records {
			if err := doc.Append(rec); err != nil {
				dupErrs = append(dupErrs, (&FileError{Filename: rec.OriginalName, Reason: msgDuplicateRecord}).Error())
				continue
			}
			uploaded = append(uploaded, rec)
		}
		total = doc.Len()
		return len(uploaded) > 0, nil
	})
	if err != nil {
		return err
	}

	// Файлы отклонённых дубликатов не должны оставаться на диске
	for _, rec := range records {
		if !containsRecord(uploaded, rec.ID) {
			_ = s.store.Delete(rec.StoredPath)
		}
	}

	result.Uploaded = uploaded
	result.Errors = append(result.Errors, dupErrs...)
	if len(uploaded) > 0 {
		middleware.FilesTotal.Set(float64(total))
	}
	return nil
}

// processFile проверяет и сохраняет один файл. Паника внутри обработки
// превращается в ошибку файла, записанный файл при этом удаляется.
func (s *UploadService) processFile(f IncomingFile) (rec *model.FileRecord, err error) {
	var savedPath string
	defer func() {
		if p := recover(); p != nil {
			if savedPath != "" {
				_ = s.store.Delete(savedPath)
			}
			s.logger.Error("Паника при обработке файла",
				slog.String("filename", f.Filename),
				slog.Any("panic", p),
			)
			rec = nil
			err = &FileError{Filename: f.Filename, Reason: fmt.Sprintf("unexpected error: %v", p)}
		}
	}()

	// 1-2. Расширение и категория
	ext := strings.TrimPrefix(filepath.Ext(f.Filename), ".")
	fileType, ok := model.FileTypeFromExtension(ext)
	if ext == "" || !ok {
		return nil, &FileError{Filename: f.Filename, Reason: msgInvalidFileType, Rejected: true}
	}

	// 3. Уникальное имя на диске
	storedName := filestore.GenerateStoredName(f.Filename)

	// 4-5. Запись и размер
	rc, err := f.Open()
	if err != nil {
		return nil, &FileError{Filename: f.Filename, Reason: err.Error()}
	}
	defer rc.Close()

	saved, err := s.store.Save(rc, fileType, storedName)
	if err != nil {
		return nil, &FileError{Filename: f.Filename, Reason: err.Error()}
	}
	savedPath = saved.Path

	// 6. Проверка содержимого
	mime, detectErr := s.detector.DetectFile(saved.Path)
	switch {
	case detectErr != nil:
		detectFailuresTotal.Inc()
		if !s.cfg.DetectFailOpen {
			_ = s.store.Delete(saved.Path)
			return nil, &FileError{Filename: f.Filename, Reason: msgDetectionFailed, Rejected: true}
		}
		s.logger.Warn("Тип содержимого не определён, файл принят без проверки",
			slog.String("filename", f.Filename),
			slog.String("path", saved.Path),
			slog.String("error", detectErr.Error()),
		)
	case !detect.Matches(fileType, mime):
		if delErr := s.store.Delete(saved.Path); delErr != nil {
			s.logger.Error("Ошибка удаления отклонённого файла",
				slog.String("path", saved.Path),
				slog.String("error", delErr.Error()),
			)
		}
		s.logger.Debug("Тип содержимого не совпадает с расширением",
			slog.String("filename", f.Filename),
			slog.String("mime", mime),
			slog.String("file_type", string(fileType)),
		)
		return nil, &FileError{Filename: f.Filename, Reason: msgContentMismatch, Rejected: true}
	}

	// 7. Запись метаданных
	return &model.FileRecord{
		ID:           uuid.New().String(),
		OriginalName: f.Filename,
		StoredName:   storedName,
		StoredPath:   saved.Path,
		FileType:     fileType,
		FileSize:     saved.Size,
		UploadDate:   s.now().UTC(),
	}, nil
}

// containsRecord проверяет наличие записи с указанным id.
func containsRecord(records []model.FileRecord, id string) bool {
	for _, rec := range records {
		if rec.ID == id {
			return true
		}
	}
	return false
}
