// maintenance.go — обработчик POST /maintenance/reconcile.
// Делегирует reconciliation в ReconcileService.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/docstore/internal/api/errors"
	"github.com/bigkaa/docstore/internal/api/generated"
	"github.com/bigkaa/docstore/internal/service"
)

// ReconcileRunner — интерфейс для запуска reconciliation.
// Позволяет тестировать handler без полного ReconcileService.
type ReconcileRunner interface {
	// RunOnce выполняет один цикл reconciliation.
	RunOnce() (*service.ReconcileReport, error)
}

// MaintenanceHandler — обработчик endpoints обслуживания.
type MaintenanceHandler struct {
	reconciler ReconcileRunner
	logger     *slog.Logger
}

// NewMaintenanceHandler создаёт обработчик maintenance endpoints.
func NewMaintenanceHandler(reconciler ReconcileRunner, logger *slog.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{
		reconciler: reconciler,
		logger:     logger.With(slog.String("component", "maintenance_handler")),
	}
}

// Reconcile обрабатывает POST /maintenance/reconcile.
// Запускает синхронный цикл reconciliation и возвращает отчёт.
// Если reconciliation уже выполняется — 409.
func (h *MaintenanceHandler) Reconcile(w http.ResponseWriter, _ *http.Request) {
	report, err := h.reconciler.RunOnce()
	switch {
	case errors.Is(err, service.ErrReconcileInProgress):
		apierrors.Conflict(w, "Reconciliation already in progress")
		return
	case err != nil:
		h.logger.Error("Ошибка reconciliation", slog.String("error", err.Error()))
		apierrors.InternalError(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, reportToAPI(report))
}

// reportToAPI преобразует отчёт сервиса в API-модель.
func reportToAPI(report *service.ReconcileReport) generated.ReconcileReport {
	issues := make([]generated.ReconcileIssue, 0, len(report.Issues))
	for _, issue := range report.Issues {
		apiIssue := generated.ReconcileIssue{
			Type:        generated.ReconcileIssueType(issue.Type),
			StoredName:  issue.StoredName,
			Path:        issue.Path,
			Description: issue.Description,
		}
		if issue.FileID != "" {
			fileID := issue.FileID
			apiIssue.FileId = &fileID
		}
		issues = append(issues, apiIssue)
	}

	return generated.ReconcileReport{
		StartedAt:    report.StartedAt,
		CompletedAt:  report.CompletedAt,
		FilesChecked: report.FilesChecked,
		Issues:       issues,
		Summary: generated.ReconcileSummary{
			Ok:             report.Summary.Ok,
			MissingFiles:   report.Summary.MissingFiles,
			OrphanedFiles:  report.Summary.OrphanedFiles,
			SizeMismatches: report.Summary.SizeMismatches,
		},
	}
}
