// files.go — список, скачивание и удаление файлов.
package service

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/bigkaa/docstore/internal/api/middleware"
	"github.com/bigkaa/docstore/internal/domain/model"
	"github.com/bigkaa/docstore/internal/storage/filestore"
	"github.com/bigkaa/docstore/internal/storage/metastore"
)

// FilesService — операции над уже загруженными файлами.
type FilesService struct {
	meta   *metastore.Store
	store  *filestore.FileStore
	logger *slog.Logger
}

// NewFilesService создаёт сервис файловых операций.
func NewFilesService(meta *metastore.Store, store *filestore.FileStore, logger *slog.Logger) *FilesService {
	return &FilesService{
		meta:   meta,
		store:  store,
		logger: logger.With(slog.String("component", "files_service")),
	}
}

// List возвращает все записи, отсортированные по дате загрузки (новые первые).
// Повреждённый документ метаданных даёт пустой список.
func (s *FilesService) List() []model.FileRecord {
	return s.meta.Load().Sorted()
}

// Count возвращает количество записей в документе метаданных.
func (s *FilesService) Count() int {
	return s.meta.Load().Len()
}

// Open ищет запись по stored_name и открывает файл для отдачи.
// Возвращает ErrNotFound, если записи нет, и ErrBlobMissing, если запись
// есть, а файла на диске нет. Вызывающий код обязан закрыть файл.
func (s *FilesService) Open(storedName string) (*model.FileRecord, *os.File, error) {
	rec, ok := s.meta.Load().FindByStoredName(storedName)
	if !ok {
		middleware.OperationsTotal.WithLabelValues("download", "not_found").Inc()
		return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, storedName)
	}

	f, err := s.store.Open(s.blobPath(rec))
	if err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			s.logger.Warn("Запись есть, но файл отсутствует на диске",
				slog.String("id", rec.ID),
				slog.String("stored_name", rec.StoredName),
				slog.String("path", s.blobPath(rec)),
			)
			middleware.OperationsTotal.WithLabelValues("download", "not_found").Inc()
			return nil, nil, fmt.Errorf("%w: %s", ErrBlobMissing, storedName)
		}
		middleware.OperationsTotal.WithLabelValues("download", "error").Inc()
		return nil, nil, err
	}

	middleware.OperationsTotal.WithLabelValues("download", "success").Inc()
	return &rec, f, nil
}

// Delete удаляет запись по id вместе с файлом на диске.
// Отсутствие файла на диске не ошибка. Для неизвестного id возвращает
// ErrNotFound, документ при этом не меняется.
func (s *FilesService) Delete(id string) (*model.FileRecord, error) {
	var (
		deleted model.FileRecord
		total   int
	)

	err := s.meta.Update(func(doc *metastore.Document) (bool, error) {
		rec, ok := doc.RemoveByID(id)
		if !ok {
			return false, fmt.Errorf("%w: %s", ErrNotFound, id)
		}

		if err := s.store.Delete(s.blobPath(rec)); err != nil {
			return false, err
		}

		deleted = rec
		total = doc.Len()
		return true, nil
	})
	if err != nil {
		result := "error"
		if errors.Is(err, ErrNotFound) {
			result = "not_found"
		}
		middleware.OperationsTotal.WithLabelValues("delete", result).Inc()
		return nil, err
	}

	middleware.OperationsTotal.WithLabelValues("delete", "success").Inc()
	middleware.FilesTotal.Set(float64(total))

	s.logger.Info("Файл удалён",
		slog.String("id", deleted.ID),
		slog.String("original_name", deleted.OriginalName),
		slog.String("stored_name", deleted.StoredName),
	)

	return &deleted, nil
}

// blobPath возвращает путь к файлу записи. Для записей без stored_path
// путь восстанавливается из категории и stored_name.
func (s *FilesService) blobPath(rec model.FileRecord) string {
	if rec.StoredPath != "" {
		return rec.StoredPath
	}
	return s.store.Path(rec.FileType, rec.StoredName)
}
