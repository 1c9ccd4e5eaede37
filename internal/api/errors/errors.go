// Пакет errors — единый формат JSON-ответов с ошибками.
// Формат: {"status": "error", "message": "...", "errors": [...]}.
// Все HTTP-ответы с ошибками должны использовать WriteError.
package errors //nolint:revive // конфликт имени со stdlib, импортируется как apierrors

import (
	"encoding/json"
	"net/http"

	"github.com/bigkaa/docstore/internal/api/generated"
)

// StatusError — значение поля status в ответах с ошибкой.
const StatusError = "error"

// WriteError записывает ответ ошибки в стандартном формате.
// statusCode — HTTP статус-код, message — описание, fileErrors — ошибки
// отдельных файлов (могут отсутствовать).
func WriteError(w http.ResponseWriter, statusCode int, message string, fileErrors ...string) {
	body := generated.ErrorResponse{
		Status:  StatusError,
		Message: message,
	}
	if len(fileErrors) > 0 {
		body.Errors = &fileErrors
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// --- Конструкторы для типичных ошибок ---

// ValidationError — 400 некорректные входные данные.
func ValidationError(w http.ResponseWriter, message string, fileErrors ...string) {
	WriteError(w, http.StatusBadRequest, message, fileErrors...)
}

// NotFound — 404 ресурс не найден.
func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

// Conflict — 409 операция уже выполняется.
func Conflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, message)
}

// FileTooLarge — 413 тело запроса превышает лимит.
func FileTooLarge(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusRequestEntityTooLarge, message)
}

// InternalError — 500 внутренняя ошибка.
func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}
