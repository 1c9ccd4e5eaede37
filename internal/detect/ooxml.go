// ooxml.go — уточнение типа для OOXML-документов, распознанных как zip.
package detect

import (
	"archive/zip"
)

const (
	mimeZip  = "application/zip"
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeXlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// contentTypesEntry — обязательная часть любого OOXML-пакета.
	contentTypesEntry = "[Content_Types].xml"
)

// ooxmlParts — главная часть пакета и соответствующий MIME-тип.
var ooxmlParts = map[string]string{
	"word/document.xml": mimeDocx,
	"xl/workbook.xml":   mimeXlsx,
}

// refineZip определяет тип OOXML-пакета по центральному каталогу zip.
// Сигнатурный анализ смотрит только на первые записи архива, поэтому
// документы, где [Content_Types].xml и word/ или xl/ лежат не в начале
// (так пишет, например, openpyxl), распознаются как application/zip.
// Возвращает "" если архив не читается или это не docx/xlsx.
func refineZip(path string) string {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return ""
	}
	defer zr.Close()

	var (
		found        string
		contentTypes bool
	)
	for _, f := range zr.File {
		if f.Name == contentTypesEntry {
			contentTypes = true
			continue
		}
		if mime, ok := ooxmlParts[f.Name]; ok && found == "" {
			found = mime
		}
	}
	if !contentTypes {
		return ""
	}
	return found
}
