package detect

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigkaa/docstore/internal/domain/model"
)

func writeTemp(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func TestMimetypeDetector_PDF(t *testing.T) {
	path := writeTemp(t, "report.pdf", []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n%%EOF\n"))

	mime, err := NewMimetypeDetector(0).DetectFile(path)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", mime)
	assert.True(t, Matches(model.FileTypePDF, mime))
}

func TestMimetypeDetector_PlainTextIsNotPDF(t *testing.T) {
	// Имя с расширением .pdf не влияет на результат
	path := writeTemp(t, "fake.pdf", []byte("just some plain text pretending to be a pdf\n"))

	mime, err := NewMimetypeDetector(0).DetectFile(path)
	require.NoError(t, err)
	assert.Equal(t, "text/plain", mime, "параметры charset должны быть отброшены")
	assert.False(t, Matches(model.FileTypePDF, mime))
}

// zipEntries собирает zip-архив с записями в заданном порядке.
func zipEntries(t *testing.T, names ...string) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, name := range names {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<x/>"))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestMimetypeDetector_OOXML(t *testing.T) {
	tests := []struct {
		name     string
		fileType model.FileType
		entries  []string
		want     string
	}{
		{
			name:     "docx стандартный порядок",
			fileType: model.FileTypeDocx,
			entries:  []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml", "word/_rels/document.xml.rels"},
			want:     mimeDocx,
		},
		{
			name:     "xlsx стандартный порядок",
			fileType: model.FileTypeExcel,
			entries:  []string{"[Content_Types].xml", "_rels/.rels", "xl/workbook.xml", "xl/worksheets/sheet1.xml"},
			want:     mimeXlsx,
		},
		{
			name:     "xlsx с [Content_Types].xml в конце",
			fileType: model.FileTypeExcel,
			entries: []string{
				"docProps/app.xml", "docProps/core.xml", "xl/theme/theme1.xml",
				"xl/worksheets/sheet1.xml", "xl/styles.xml", "_rels/.rels",
				"xl/workbook.xml", "xl/_rels/workbook.xml.rels", "[Content_Types].xml",
			},
			want: mimeXlsx,
		},
		{
			name:     "docx с word/ после docProps",
			fileType: model.FileTypeDocx,
			entries:  []string{"docProps/app.xml", "docProps/core.xml", "_rels/.rels", "word/document.xml", "[Content_Types].xml"},
			want:     mimeDocx,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "doc.bin", zipEntries(t, tt.entries...))

			mime, err := NewMimetypeDetector(0).DetectFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, mime)
			assert.True(t, Matches(tt.fileType, mime))
		})
	}
}

func TestMimetypeDetector_PlainZip(t *testing.T) {
	// Архив с xl/workbook.xml, но без [Content_Types].xml — не OOXML
	path := writeTemp(t, "fake.xlsx", zipEntries(t, "readme.txt", "xl/workbook.xml"))

	mime, err := NewMimetypeDetector(0).DetectFile(path)
	require.NoError(t, err)
	assert.Equal(t, mimeZip, mime)
	assert.False(t, Matches(model.FileTypeExcel, mime))
	assert.False(t, Matches(model.FileTypeDocx, mime))
}

func TestMimetypeDetector_MissingFile(t *testing.T) {
	_, err := NewMimetypeDetector(0).DetectFile(filepath.Join(t.TempDir(), "nope.pdf"))
	assert.Error(t, err)
}

func TestBaseType(t *testing.T) {
	assert.Equal(t, "text/plain", BaseType("text/plain; charset=utf-8"))
	assert.Equal(t, "application/pdf", BaseType(" Application/PDF "))
}

func TestMatches(t *testing.T) {
	tests := []struct {
		fileType model.FileType
		mime     string
		want     bool
	}{
		{model.FileTypePDF, "application/pdf", true},
		{model.FileTypePDF, "application/zip", false},
		{model.FileTypeExcel, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", true},
		{model.FileTypeExcel, "application/vnd.ms-excel", true},
		{model.FileTypeExcel, "application/pdf", false},
		{model.FileTypeDocx, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", true},
		{model.FileTypeDocx, "application/msword", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Matches(tt.fileType, tt.mime), "%s / %s", tt.fileType, tt.mime)
	}
}
