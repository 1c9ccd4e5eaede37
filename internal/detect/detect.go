// Пакет detect — определение MIME-типа файла по содержимому,
// независимо от имени и расширения.
package detect

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/bigkaa/docstore/internal/domain/model"
)

// Detector определяет MIME-тип файла на диске по его содержимому.
type Detector interface {
	// DetectFile возвращает MIME-тип без параметров (например, "application/pdf").
	DetectFile(path string) (string, error)
}

// MimetypeDetector — Detector на основе сигнатур gabriel-vasile/mimetype.
type MimetypeDetector struct{}

// NewMimetypeDetector создаёт детектор. readLimit задаёт количество байт,
// читаемых с начала файла (0 — значение библиотеки по умолчанию).
func NewMimetypeDetector(readLimit uint32) *MimetypeDetector {
	if readLimit > 0 {
		mimetype.SetLimit(readLimit)
	}
	return &MimetypeDetector{}
}

// DetectFile реализует Detector.
// Для zip-архивов дополнительно проверяется центральный каталог:
// docx и xlsx с нестандартным порядком записей тоже распознаются.
func (d *MimetypeDetector) DetectFile(path string) (string, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("ошибка определения типа содержимого %s: %w", path, err)
	}

	mime := BaseType(mt.String())
	if mime == mimeZip {
		if refined := refineZip(path); refined != "" {
			return refined, nil
		}
	}
	return mime, nil
}

// BaseType отбрасывает параметры MIME-типа и приводит к нижнему регистру:
// "text/plain; charset=utf-8" → "text/plain".
func BaseType(mime string) string {
	base, _, _ := strings.Cut(mime, ";")
	return strings.ToLower(strings.TrimSpace(base))
}

// Matches проверяет, что MIME-тип допустим для категории файла.
func Matches(fileType model.FileType, mime string) bool {
	return slices.Contains(fileType.AllowedMIMETypes(), BaseType(mime))
}
