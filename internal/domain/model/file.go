// Пакет model — доменные модели сервиса хранения документов.
// FileRecord — метаданные одного загруженного файла, используется
// как in-memory представление и как элемент документа метаданных на диске.
package model

import (
	"slices"
	"strings"
	"time"
)

// FileType — категория документа, определяет поддиректорию хранения.
type FileType string

const (
	// FileTypePDF — документы PDF
	FileTypePDF FileType = "pdf"
	// FileTypeExcel — таблицы Excel (xlsx, xls)
	FileTypeExcel FileType = "excel"
	// FileTypeDocx — документы Word (docx)
	FileTypeDocx FileType = "docx"
)

// FileTypes — все поддерживаемые категории в порядке создания директорий.
var FileTypes = []FileType{FileTypePDF, FileTypeExcel, FileTypeDocx}

// extensionTypes — допустимые расширения и их категории.
var extensionTypes = map[string]FileType{
	"pdf":  FileTypePDF,
	"xlsx": FileTypeExcel,
	"xls":  FileTypeExcel,
	"docx": FileTypeDocx,
}

// allowedMIMETypes — MIME-типы, которые детектор может вернуть для категории.
var allowedMIMETypes = map[FileType][]string{
	FileTypePDF: {"application/pdf"},
	FileTypeExcel: {
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/vnd.ms-excel",
	},
	FileTypeDocx: {"application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
}

// FileTypeFromExtension возвращает категорию по расширению файла.
// Регистр не важен, ведущая точка допускается: ".PDF" → pdf.
func FileTypeFromExtension(ext string) (FileType, bool) {
	ft, ok := extensionTypes[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return ft, ok
}

// AllowedExtensions возвращает отсортированный список допустимых расширений.
func AllowedExtensions() []string {
	exts := make([]string, 0, len(extensionTypes))
	for ext := range extensionTypes {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// AllowedMIMETypes возвращает MIME-типы, соответствующие категории.
func (t FileType) AllowedMIMETypes() []string {
	return allowedMIMETypes[t]
}

// Valid проверяет, что категория известна.
func (t FileType) Valid() bool {
	_, ok := allowedMIMETypes[t]
	return ok
}

// FileRecord — метаданные загруженного файла. Все поля неизменяемы
// после создания записи.
type FileRecord struct {
	// ID — уникальный идентификатор записи (UUID v4), используется при удалении
	ID string `json:"id"`

	// OriginalName — имя файла, переданное пользователем
	OriginalName string `json:"original_name"`

	// StoredName — уникальное имя файла на диске, используется при скачивании.
	// Формат: {token}_{sanitized_name}.{ext}
	StoredName string `json:"stored_name"`

	// StoredPath — путь к файлу на диске: {upload_dir}/{file_type}/{stored_name}
	StoredPath string `json:"stored_path"`

	// FileType — категория, определённая по расширению
	FileType FileType `json:"file_type"`

	// FileSize — размер в байтах на момент загрузки
	FileSize int64 `json:"file_size,string"`

	// UploadDate — время загрузки (UTC), ключ сортировки списка
	UploadDate time.Time `json:"upload_date"`
}
