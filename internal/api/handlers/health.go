// health.go — обработчики health endpoints для Kubernetes probes.
package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/bigkaa/docstore/internal/api/generated"
	"github.com/bigkaa/docstore/internal/config"
)

// statusFail — строковая константа для статуса "fail" в health checks.
const statusFail = "fail"

// HealthHandler реализует health endpoints: /health/live, /health/ready.
type HealthHandler struct {
	version string
	// uploadDir — корень директорий загрузок
	uploadDir string
	// metadataDir — директория документа метаданных
	metadataDir string
}

// NewHealthHandler создаёт обработчик health endpoints.
func NewHealthHandler(uploadDir, metadataDir string) *HealthHandler {
	return &HealthHandler{
		version:     config.Version,
		uploadDir:   uploadDir,
		metadataDir: metadataDir,
	}
}

// HealthLive обрабатывает GET /health/live.
// Возвращает 200, если процесс жив. Не проверяет зависимости.
func (h *HealthHandler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, generated.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Truncate(time.Second),
		Version:   h.version,
		Service:   serviceName,
	})
}

// HealthReady обрабатывает GET /health/ready.
// Проверяет доступность на запись директории загрузок и директории метаданных.
func (h *HealthHandler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	overallStatus := "ok"
	httpStatus := http.StatusOK

	checks := map[string]generated.HealthCheck{
		"uploads":  checkWritable(h.uploadDir, "Директория загрузок"),
		"metadata": checkWritable(h.metadataDir, "Директория метаданных"),
	}
	for _, check := range checks {
		if check.Status != "ok" {
			overallStatus = statusFail
			httpStatus = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, httpStatus, generated.HealthResponse{
		Status:    overallStatus,
		Timestamp: time.Now().UTC().Truncate(time.Second),
		Version:   h.version,
		Service:   serviceName,
		Checks:    &checks,
	})
}

// checkWritable проверяет доступность директории на запись.
func checkWritable(dir, title string) generated.HealthCheck {
	if dir == "" {
		msg := "Проверка не настроена"
		return generated.HealthCheck{Status: "ok", Message: &msg}
	}

	testFile := filepath.Join(dir, ".health_check")
	if err := os.WriteFile(testFile, []byte("ok"), 0o600); err != nil {
		msg := title + " недоступна для записи: " + err.Error()
		return generated.HealthCheck{Status: statusFail, Message: &msg}
	}
	_ = os.Remove(testFile)

	return generated.HealthCheck{Status: "ok"}
}
