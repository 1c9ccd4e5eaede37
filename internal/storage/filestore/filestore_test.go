package filestore

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bigkaa/docstore/internal/domain/model"
)

// TestNew_CreatesTypeDirectories проверяет создание директорий категорий.
func TestNew_CreatesTypeDirectories(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploads")

	fs, err := New(root)
	if err != nil {
		t.Fatalf("ошибка создания FileStore: %v", err)
	}
	if fs.Root() != root {
		t.Errorf("ожидался путь %s, получен %s", root, fs.Root())
	}

	for _, dir := range []string{"pdf", "excel", "docx"} {
		info, err := os.Stat(filepath.Join(root, dir))
		if err != nil {
			t.Fatalf("директория %s не создана: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("%s не является директорией", dir)
		}
	}
}

// TestSave проверяет запись файла в директорию категории.
func TestSave(t *testing.T) {
	fs, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("ошибка создания FileStore: %v", err)
	}

	content := []byte("%PDF-1.4 тестовые данные")
	result, err := fs.Save(bytes.NewReader(content), model.FileTypePDF, "abc_report.pdf")
	if err != nil {
		t.Fatalf("ошибка сохранения: %v", err)
	}

	if result.Size != int64(len(content)) {
		t.Errorf("размер: ожидалось %d, получено %d", len(content), result.Size)
	}
	if result.Path != filepath.Join(fs.Root(), "pdf", "abc_report.pdf") {
		t.Errorf("неожиданный путь: %s", result.Path)
	}

	data, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatalf("ошибка чтения файла: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Error("содержимое файла не совпадает")
	}

	if _, err := os.Stat(result.Path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp файл не должен существовать после сохранения")
	}
}

// TestSave_RecreatesMissingTypeDirectory проверяет создание директории на лету.
func TestSave_RecreatesMissingTypeDirectory(t *testing.T) {
	fs, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("ошибка создания FileStore: %v", err)
	}
	if err := os.RemoveAll(filepath.Join(fs.Root(), "excel")); err != nil {
		t.Fatalf("ошибка удаления директории: %v", err)
	}

	if _, err := fs.Save(bytes.NewReader([]byte("x")), model.FileTypeExcel, "t_sheet.xlsx"); err != nil {
		t.Fatalf("ошибка сохранения: %v", err)
	}
}

// TestOpen_NotFound проверяет ErrNotFound для отсутствующего файла.
func TestOpen_NotFound(t *testing.T) {
	fs, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("ошибка создания FileStore: %v", err)
	}

	_, err = fs.Open(fs.Path(model.FileTypePDF, "missing.pdf"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ожидалась ErrNotFound, получено: %v", err)
	}

	_, err = fs.Open(filepath.Join(fs.Root(), "pdf"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("директория должна давать ErrNotFound, получено: %v", err)
	}
}

// TestDelete_Idempotent проверяет, что повторное удаление не ошибка.
func TestDelete_Idempotent(t *testing.T) {
	fs, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("ошибка создания FileStore: %v", err)
	}

	result, err := fs.Save(bytes.NewReader([]byte("data")), model.FileTypeDocx, "t_doc.docx")
	if err != nil {
		t.Fatalf("ошибка сохранения: %v", err)
	}
	if !fs.Exists(result.Path) {
		t.Fatal("файл должен существовать после сохранения")
	}

	if err := fs.Delete(result.Path); err != nil {
		t.Fatalf("ошибка удаления: %v", err)
	}
	if fs.Exists(result.Path) {
		t.Error("файл должен быть удалён")
	}
	if err := fs.Delete(result.Path); err != nil {
		t.Errorf("повторное удаление должно возвращать nil, получено: %v", err)
	}
}

// TestWalk проверяет обход файлов с пропуском служебных и временных.
func TestWalk(t *testing.T) {
	fs, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("ошибка создания FileStore: %v", err)
	}

	files := map[string]string{
		filepath.Join("pdf", "a_one.pdf"):     "1",
		filepath.Join("excel", "b_two.xlsx"):  "22",
		filepath.Join("docx", ".hidden"):      "x",
		filepath.Join("docx", "c_three.tmp"):  "x",
		filepath.Join("docx", "d_four.docx"):  "4444",
	}
	for rel, content := range files {
		if err := os.WriteFile(filepath.Join(fs.Root(), rel), []byte(content), 0o600); err != nil {
			t.Fatalf("ошибка записи %s: %v", rel, err)
		}
	}

	got := map[string]int64{}
	err = fs.Walk(func(b Blob) error {
		got[string(b.FileType)+"/"+b.StoredName] = b.Size
		return nil
	})
	if err != nil {
		t.Fatalf("ошибка обхода: %v", err)
	}

	want := map[string]int64{"pdf/a_one.pdf": 1, "excel/b_two.xlsx": 2, "docx/d_four.docx": 4}
	if len(got) != len(want) {
		t.Fatalf("ожидалось %d файлов, получено %d: %v", len(want), len(got), got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s: ожидался размер %d, получен %d", k, v, got[k])
		}
	}
}

// TestGenerateStoredName_Unique проверяет уникальность и формат имён.
func TestGenerateStoredName_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		name := GenerateStoredName("report.pdf")
		if seen[name] {
			t.Fatalf("повтор имени: %s", name)
		}
		seen[name] = true

		if !strings.HasSuffix(name, "_report.pdf") {
			t.Fatalf("имя должно заканчиваться на _report.pdf: %s", name)
		}
		if len(name) != tokenLen+len("_report.pdf") {
			t.Fatalf("неожиданная длина имени: %s", name)
		}
	}
}

// TestSanitizeFilename проверяет очистку имён файлов.
func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"../../etc/passwd.pdf", "passwd.pdf"},
		{`C:\Users\me\Budget 2026.XLSX`, "Budget_2026.xlsx"},
		{"my report (final)!.docx", "my_report_final.docx"},
		{".hidden.pdf", "hidden.pdf"},
		{"$$$.pdf", "file.pdf"},
		{"отчёт.pdf", "отчёт.pdf"},
		{"noext", "noext"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, ожидалось %q", tt.in, got, tt.want)
		}
	}
}
