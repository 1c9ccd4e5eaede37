// Пакет filestore — операции с физическими файлами на диске.
// Файлы раскладываются по поддиректориям категорий:
// {upload_dir}/pdf, {upload_dir}/excel, {upload_dir}/docx.
package filestore

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/bigkaa/docstore/internal/domain/model"
)

// ErrNotFound — файла нет на диске.
var ErrNotFound = errors.New("файл не найден на диске")

// tokenLen — длина случайного префикса в имени файла (hex-символы UUID).
const tokenLen = 12

// maxStemLen — ограничение длины имени без расширения.
const maxStemLen = 100

// FileStore — управление физическими файлами на диске.
type FileStore struct {
	// root — корневая директория загрузок (DS_UPLOAD_DIR)
	root string
}

// SaveResult — результат сохранения файла на диск.
type SaveResult struct {
	// Path — путь к файлу: {root}/{file_type}/{stored_name}
	Path string
	// Size — количество записанных байт
	Size int64
}

// Blob — файл, найденный при обходе хранилища.
type Blob struct {
	FileType   model.FileType
	StoredName string
	Path       string
	Size       int64
}

// New создаёт FileStore и поддиректории всех категорий.
func New(root string) (*FileStore, error) {
	for _, ft := range model.FileTypes {
		dir := filepath.Join(root, string(ft))
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("не удалось создать директорию %s: %w", dir, err)
		}
	}

	return &FileStore{root: root}, nil
}

// Root возвращает корневую директорию загрузок.
func (s *FileStore) Root() string {
	return s.root
}

// Path возвращает путь к файлу категории fileType с именем storedName.
func (s *FileStore) Path(fileType model.FileType, storedName string) string {
	return filepath.Join(s.root, string(fileType), storedName)
}

// Save записывает данные из reader в {root}/{fileType}/{storedName}.
// Директория категории создаётся, если её нет.
//
// Паттерн: temp файл → запись → fsync → atomic rename.
// При ошибке temp файл удаляется.
func (s *FileStore) Save(reader io.Reader, fileType model.FileType, storedName string) (*SaveResult, error) {
	dir := filepath.Join(s.root, string(fileType))
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию %s: %w", dir, err)
	}

	fullPath := filepath.Join(dir, storedName)
	tmpPath := fullPath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания временного файла: %w", err)
	}

	size, err := io.Copy(f, reader)
	if err != nil {
		f.Close()
		os.Remove(tmpPath)
		return nil, fmt.Errorf("ошибка записи данных: %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return nil, fmt.Errorf("ошибка fsync: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("ошибка атомарного переименования: %w", err)
	}

	return &SaveResult{
		Path: fullPath,
		Size: size,
	}, nil
}

// Open открывает файл для чтения. Возвращает ErrNotFound, если файла нет.
// Вызывающий код обязан закрыть файл.
func (s *FileStore) Open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("ошибка открытия файла %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("ошибка получения stat файла %s: %w", path, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s является директорией", ErrNotFound, path)
	}

	return f, nil
}

// Delete удаляет файл с диска. Возвращает nil, если файла уже нет.
func (s *FileStore) Delete(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("ошибка удаления файла %s: %w", path, err)
	}
	return nil
}

// Exists проверяет существование обычного файла на диске.
func (s *FileStore) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// FileSize возвращает размер файла на диске.
func (s *FileStore) FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return 0, fmt.Errorf("ошибка получения информации о файле %s: %w", path, err)
	}
	return info.Size(), nil
}

// Walk обходит файлы во всех директориях категорий (не рекурсивно).
// Служебные (.*) и временные (*.tmp) файлы пропускаются.
// Отсутствующая директория категории не считается ошибкой.
func (s *FileStore) Walk(fn func(b Blob) error) error {
	for _, ft := range model.FileTypes {
		dir := filepath.Join(s.root, string(ft))

		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("ошибка чтения директории %s: %w", dir, err)
		}

		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}
			name := entry.Name()
			if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".tmp") {
				continue
			}

			info, err := entry.Info()
			if err != nil {
				// Файл удалён во время обхода
				continue
			}

			if err := fn(Blob{
				FileType:   ft,
				StoredName: name,
				Path:       filepath.Join(dir, name),
				Size:       info.Size(),
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// GenerateStoredName генерирует уникальное имя файла для хранения на диске.
// Формат: {token}_{sanitized_name}{.ext}
// Пример: 3f2a9c1b7d4e_quarterly_report.pdf
func GenerateStoredName(originalFilename string) string {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")[:tokenLen]
	return token + "_" + SanitizeFilename(originalFilename)
}

// SanitizeFilename приводит имя файла к безопасному виду:
// отбрасывает компоненты пути, заменяет пробелы на "_",
// удаляет всё, кроме букв, цифр, "-", "_" и ".", убирает ведущие точки.
// Расширение приводится к нижнему регистру.
func SanitizeFilename(name string) string {
	// Отбрасываем путь, в том числе windows-разделители
	name = strings.ReplaceAll(name, "\\", "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	stem = strings.TrimLeft(sanitize(stem), "._")
	if runes := []rune(stem); len(runes) > maxStemLen {
		stem = string(runes[:maxStemLen])
	}
	if stem == "" {
		stem = "file"
	}

	ext = strings.ToLower(sanitize(strings.TrimPrefix(ext, ".")))
	if ext == "" {
		return stem
	}
	return stem + "." + ext
}

// sanitize оставляет только буквы, цифры, дефис, подчёркивание и точку.
// Пробелы заменяются на подчёркивание.
func sanitize(s string) string {
	var result strings.Builder
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' ||
			(r >= 0x0400 && r <= 0x04FF): // Кириллица
			result.WriteRune(r)
		case r == ' ':
			result.WriteRune('_')
		}
	}
	return result.String()
}
