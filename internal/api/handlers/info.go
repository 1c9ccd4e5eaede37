// info.go — описание сервиса, параметров загрузки и OpenAPI-контракт.
package handlers

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/bigkaa/docstore/api"
	apierrors "github.com/bigkaa/docstore/internal/api/errors"
	"github.com/bigkaa/docstore/internal/api/generated"
	"github.com/bigkaa/docstore/internal/config"
	"github.com/bigkaa/docstore/internal/domain/model"
)

// serviceName — имя сервиса в ответах info и health.
const serviceName = "docstore"

// InfoHandler — обработчик GET /, GET /upload и GET /openapi.json.
type InfoHandler struct {
	maxUploadSize int64
	logger        *slog.Logger
}

// NewInfoHandler создаёт обработчик информационных endpoints.
func NewInfoHandler(maxUploadSize int64, logger *slog.Logger) *InfoHandler {
	return &InfoHandler{
		maxUploadSize: maxUploadSize,
		logger:        logger.With(slog.String("component", "info_handler")),
	}
}

// GetServiceInfo обрабатывает GET /.
// Список endpoints берётся из OpenAPI-контракта.
func (h *InfoHandler) GetServiceInfo(w http.ResponseWriter, _ *http.Request) {
	endpoints := []string{}
	if spec, err := api.Spec(); err == nil {
		for _, path := range spec.Paths.InMatchingOrder() {
			for method := range spec.Paths.Value(path).Operations() {
				endpoints = append(endpoints, method+" "+path)
			}
		}
	}
	slices.Sort(endpoints)

	writeJSON(w, http.StatusOK, generated.ServiceInfo{
		Name:      serviceName,
		Version:   config.Version,
		Endpoints: endpoints,
	})
}

// GetUploadInfo обрабатывает GET /upload: допустимые расширения и лимит размера.
func (h *InfoHandler) GetUploadInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, generated.UploadInfo{
		Field:             uploadFields[0],
		AllowedExtensions: model.AllowedExtensions(),
		MaxUploadSize:     h.maxUploadSize,
	})
}

// GetOpenAPISpec обрабатывает GET /openapi.json.
func (h *InfoHandler) GetOpenAPISpec(w http.ResponseWriter, _ *http.Request) {
	spec, err := api.Spec()
	if err != nil {
		h.logger.Error("OpenAPI-контракт недоступен", slog.String("error", err.Error()))
		apierrors.InternalError(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, spec)
}
