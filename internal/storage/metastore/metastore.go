// Пакет metastore — документ метаданных файлов на диске.
//
// Все записи хранятся в одном JSON-документе вида {"files": [...]}.
// Документ — единственный источник истины о существовании файла:
// blob на диске вторичен и может отсутствовать.
//
// Индексов нет, каждый поиск — линейный проход по списку.
// Запись выполняется атомарно: temp → fsync → rename.
package metastore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/docstore/internal/domain/model"
)

// ErrDuplicate — запись с таким id или stored_name уже есть в документе.
var ErrDuplicate = errors.New("запись с таким id или stored_name уже существует")

// loadFailuresTotal — количество загрузок, при которых повреждённый документ
// был заменён пустым.
var loadFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "docstore_metadata_load_failures_total",
	Help: "Количество загрузок документа метаданных, завершившихся ошибкой чтения или разбора",
})

// Document — содержимое документа метаданных.
type Document struct {
	Files []model.FileRecord `json:"files"`
}

// Append добавляет запись в документ. Для сохранения вызовите Store.Save.
// Возвращает ErrDuplicate, если id или stored_name уже заняты.
func (d *Document) Append(rec model.FileRecord) error {
	for _, existing := range d.Files {
		if existing.ID == rec.ID || existing.StoredName == rec.StoredName {
			return fmt.Errorf("%w: id=%s stored_name=%s", ErrDuplicate, rec.ID, rec.StoredName)
		}
	}
	d.Files = append(d.Files, rec)
	return nil
}

// RemoveByID удаляет запись по id и возвращает её.
// Второе значение false, если запись не найдена (документ не меняется).
func (d *Document) RemoveByID(id string) (model.FileRecord, bool) {
	for i, rec := range d.Files {
		if rec.ID == id {
			d.Files = slices.Delete(d.Files, i, i+1)
			return rec, true
		}
	}
	return model.FileRecord{}, false
}

// FindByStoredName ищет запись по имени файла на диске.
func (d *Document) FindByStoredName(name string) (model.FileRecord, bool) {
	for _, rec := range d.Files {
		if rec.StoredName == name {
			return rec, true
		}
	}
	return model.FileRecord{}, false
}

// Sorted возвращает копию записей, отсортированную по дате загрузки
// (новые первые). При равных датах сохраняется порядок добавления.
func (d *Document) Sorted() []model.FileRecord {
	out := slices.Clone(d.Files)
	if out == nil {
		out = []model.FileRecord{}
	}
	slices.SortStableFunc(out, func(a, b model.FileRecord) int {
		return b.UploadDate.Compare(a.UploadDate)
	})
	return out
}

// Len возвращает количество записей.
func (d *Document) Len() int {
	return len(d.Files)
}

// Store — документ метаданных на диске.
type Store struct {
	path   string
	mu     sync.Mutex // сериализует цикл load-mutate-save в Update
	logger *slog.Logger
}

// New создаёт Store для документа по указанному пути.
// Создаёт родительскую директорию, сам документ не создаётся до первого Save.
func New(path string, logger *slog.Logger) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию метаданных %s: %w", dir, err)
	}

	return &Store{
		path:   path,
		logger: logger.With(slog.String("component", "metastore")),
	}, nil
}

// Path возвращает путь к документу.
func (s *Store) Path() string {
	return s.path
}

// Load читает документ с диска.
//
// Никогда не возвращает ошибку: отсутствующий документ — пустой список,
// нечитаемый или повреждённый документ — тоже пустой список, но с
// предупреждением в логе и инкрементом docstore_metadata_load_failures_total.
func (s *Store) Load() *Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("Документ метаданных ещё не создан",
				slog.String("path", s.path),
			)
			return &Document{}
		}
		loadFailuresTotal.Inc()
		s.logger.Warn("Документ метаданных не читается, используется пустой список",
			slog.String("path", s.path),
			slog.String("error", err.Error()),
		)
		return &Document{}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		loadFailuresTotal.Inc()
		s.logger.Warn("Документ метаданных повреждён, используется пустой список",
			slog.String("path", s.path),
			slog.Int("bytes", len(data)),
			slog.String("error", err.Error()),
		)
		return &Document{}
	}

	return &doc
}

// Save перезаписывает документ целиком.
// Паттерн: JSON → temp файл → fsync → atomic rename.
func (s *Store) Save(doc *Document) error {
	if doc.Files == nil {
		doc = &Document{Files: []model.FileRecord{}}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка сериализации метаданных: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("не удалось создать директорию %s: %w", dir, err)
	}

	tmpPath := s.path + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("ошибка создания временного файла: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("ошибка записи: %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("ошибка fsync: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("ошибка атомарного переименования: %w", err)
	}

	return nil
}

// Update выполняет цикл load-mutate-save под мьютексом.
// fn получает загруженный документ и сообщает, изменился ли он.
// Документ сохраняется, только если fn вернул changed=true и nil-ошибку;
// ошибка fn возвращается без изменений.
//
// Мьютекс защищает от потери записей при параллельных запросах внутри
// одного процесса. Несколько процессов над одним документом по-прежнему
// работают по правилу "последняя запись побеждает".
func (s *Store) Update(fn func(doc *Document) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.Load()

	changed, err := fn(doc)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	return s.Save(doc)
}
