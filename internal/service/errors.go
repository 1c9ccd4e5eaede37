// errors.go — ошибки бизнес-логики сервисного слоя.
package service

import "errors"

var (
	// ErrNotFound — запись с указанным id или stored_name не найдена.
	ErrNotFound = errors.New("file not found")
	// ErrBlobMissing — запись есть, но файла нет на диске.
	ErrBlobMissing = errors.New("file not found on disk")
	// ErrNoFiles — запрос на загрузку без файлов.
	ErrNoFiles = errors.New("no files selected")
	// ErrNothingUploaded — ни один файл пакета не прошёл проверку.
	ErrNothingUploaded = errors.New("no files were uploaded")
	// ErrReconcileInProgress — сверка уже выполняется.
	ErrReconcileInProgress = errors.New("reconciliation already in progress")
)

// Тексты ошибок отдельного файла в пакете загрузки.
const (
	msgInvalidFileType = "Invalid file type"
	msgContentMismatch = "File content doesn't match extension"
	msgDetectionFailed = "Content type detection failed"
	msgDuplicateRecord = "Duplicate file record"
)
