// Пакет handlers — HTTP-обработчики сервиса хранения документов.
// handler.go — APIHandler реализует generated.ServerInterface,
// делегируя вызовы в отдельные handler'ы по доменам.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bigkaa/docstore/internal/api/generated"
	"github.com/bigkaa/docstore/internal/server"
)

// APIHandler — единая реализация ServerInterface, собирающая
// все доменные handlers в один объект.
type APIHandler struct {
	info        *InfoHandler
	files       *FilesHandler
	maintenance *MaintenanceHandler
	health      *HealthHandler
	metrics     *server.MetricsHandler
}

// NewAPIHandler создаёт единый handler для всех endpoints.
func NewAPIHandler(
	info *InfoHandler,
	files *FilesHandler,
	maintenance *MaintenanceHandler,
	health *HealthHandler,
	metrics *server.MetricsHandler,
) *APIHandler {
	return &APIHandler{
		info:        info,
		files:       files,
		maintenance: maintenance,
		health:      health,
		metrics:     metrics,
	}
}

// --- Info ---

func (h *APIHandler) GetServiceInfo(w http.ResponseWriter, r *http.Request) {
	h.info.GetServiceInfo(w, r)
}

func (h *APIHandler) GetUploadInfo(w http.ResponseWriter, r *http.Request) {
	h.info.GetUploadInfo(w, r)
}

func (h *APIHandler) GetOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	h.info.GetOpenAPISpec(w, r)
}

// --- File Operations ---

func (h *APIHandler) UploadFiles(w http.ResponseWriter, r *http.Request) {
	h.files.UploadFiles(w, r)
}

func (h *APIHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	h.files.ListFiles(w, r)
}

func (h *APIHandler) DownloadFile(w http.ResponseWriter, r *http.Request, storedName generated.StoredName) {
	h.files.DownloadFile(w, r, storedName)
}

func (h *APIHandler) DeleteFile(w http.ResponseWriter, r *http.Request, id generated.FileId) {
	h.files.DeleteFile(w, r, id)
}

// --- Maintenance ---

func (h *APIHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	h.maintenance.Reconcile(w, r)
}

// --- Health ---

func (h *APIHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	h.health.HealthLive(w, r)
}

func (h *APIHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	h.health.HealthReady(w, r)
}

// --- Metrics ---

func (h *APIHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.metrics.GetMetrics(w, r)
}

// Проверка соответствия интерфейсу на этапе компиляции.
var _ generated.ServerInterface = (*APIHandler)(nil)

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
