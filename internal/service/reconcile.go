// reconcile.go — сервис сверки документа метаданных с файлами на диске.
//
// Reconciliation сравнивает:
//   - записи документа метаданных с файлами в директориях категорий
//   - размер файла на диске с file_size записи
//
// Обнаруживает проблемы:
//   - missing_file: запись есть, файла на диске нет
//   - orphaned_file: файл на диске без записи
//   - size_mismatch: размер на диске не совпадает с записью
//
// Только отчёт: ни документ, ни файлы не изменяются.
// Запускается по запросу и периодически (DS_RECONCILE_INTERVAL).
package service

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/docstore/internal/domain/model"
	"github.com/bigkaa/docstore/internal/storage/filestore"
	"github.com/bigkaa/docstore/internal/storage/metastore"
)

// Prometheus метрики Reconciliation
var (
	// reconcileRunsTotal — количество запусков reconciliation.
	reconcileRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docstore_reconcile_runs_total",
		Help: "Общее количество запусков reconciliation",
	})

	// reconcileIssuesTotal — количество обнаруженных проблем по типу.
	reconcileIssuesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docstore_reconcile_issues_total",
		Help: "Общее количество проблем, обнаруженных reconciliation",
	}, []string{"type"})

	// reconcileDurationSeconds — длительность выполнения reconciliation.
	reconcileDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "docstore_reconcile_duration_seconds",
		Help:    "Длительность выполнения reconciliation в секундах",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
	})
)

// IssueType — тип расхождения.
type IssueType string

const (
	IssueMissingFile  IssueType = "missing_file"
	IssueOrphanedFile IssueType = "orphaned_file"
	IssueSizeMismatch IssueType = "size_mismatch"
)

// ReconcileIssue — одно найденное расхождение.
type ReconcileIssue struct {
	Type        IssueType `json:"type"`
	FileID      string    `json:"file_id,omitempty"`
	StoredName  string    `json:"stored_name"`
	Path        string    `json:"path"`
	Description string    `json:"description"`
}

// ReconcileSummary — сводка по типам расхождений.
type ReconcileSummary struct {
	Ok             int `json:"ok"`
	MissingFiles   int `json:"missing_files"`
	OrphanedFiles  int `json:"orphaned_files"`
	SizeMismatches int `json:"size_mismatches"`
}

// ReconcileReport — результат одного цикла сверки.
type ReconcileReport struct {
	StartedAt    time.Time        `json:"started_at"`
	CompletedAt  time.Time        `json:"completed_at"`
	FilesChecked int              `json:"files_checked"`
	Issues       []ReconcileIssue `json:"issues"`
	Summary      ReconcileSummary `json:"summary"`
}

// ReconcileService — сервис фоновой сверки хранилища.
type ReconcileService struct {
	meta     *metastore.Store
	store    *filestore.FileStore
	interval time.Duration
	logger   *slog.Logger

	mu        sync.Mutex // защита от параллельного запуска
	inProcess bool
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewReconcileService создаёт сервис reconciliation.
// interval <= 0 отключает периодический запуск.
func NewReconcileService(
	meta *metastore.Store,
	store *filestore.FileStore,
	interval time.Duration,
	logger *slog.Logger,
) *ReconcileService {
	return &ReconcileService{
		meta:     meta,
		store:    store,
		interval: interval,
		logger:   logger.With(slog.String("component", "reconcile")),
	}
}

// Start запускает фоновую горутину reconciliation с периодическим тикером.
func (rs *ReconcileService) Start(ctx context.Context) {
	if rs.interval <= 0 {
		rs.logger.Info("Периодическая reconciliation отключена")
		return
	}

	rsCtx, cancel := context.WithCancel(ctx)
	rs.cancel = cancel
	rs.done = make(chan struct{})

	go rs.run(rsCtx)

	rs.logger.Info("Reconciliation запущена",
		slog.String("interval", rs.interval.String()),
	)
}

// Stop останавливает фоновый процесс и ждёт его завершения.
func (rs *ReconcileService) Stop() {
	if rs.cancel == nil {
		return
	}
	rs.cancel()
	<-rs.done
	rs.logger.Info("Reconciliation остановлена")
}

// IsInProgress возвращает true, если reconciliation выполняется.
func (rs *ReconcileService) IsInProgress() bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.inProcess
}

// run — основной цикл фоновой горутины.
func (rs *ReconcileService) run(ctx context.Context) {
	defer close(rs.done)

	ticker := time.NewTicker(rs.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := rs.RunOnce(); err != nil && !errors.Is(err, ErrReconcileInProgress) {
				rs.logger.Error("Ошибка reconciliation", slog.String("error", err.Error()))
			}
		}
	}
}

// RunOnce выполняет один цикл reconciliation.
// Если цикл уже выполняется, возвращает ErrReconcileInProgress.
func (rs *ReconcileService) RunOnce() (*ReconcileReport, error) {
	rs.mu.Lock()
	if rs.inProcess {
		rs.mu.Unlock()
		rs.logger.Warn("Reconciliation уже выполняется, пропуск")
		return nil, ErrReconcileInProgress
	}
	rs.inProcess = true
	rs.mu.Unlock()

	defer func() {
		rs.mu.Lock()
		rs.inProcess = false
		rs.mu.Unlock()
	}()

	startedAt := time.Now().UTC()
	rs.logger.Info("Reconciliation начата")

	doc := rs.meta.Load()
	issues, err := rs.reconcile(doc)
	if err != nil {
		return nil, err
	}

	completedAt := time.Now().UTC()
	duration := completedAt.Sub(startedAt)

	summary := ReconcileSummary{}
	recordIssues := 0
	for _, issue := range issues {
		switch issue.Type {
		case IssueMissingFile:
			summary.MissingFiles++
			recordIssues++
		case IssueSizeMismatch:
			summary.SizeMismatches++
			recordIssues++
		case IssueOrphanedFile:
			summary.OrphanedFiles++
		}
	}

	filesChecked := doc.Len()
	summary.Ok = filesChecked - recordIssues

	reconcileRunsTotal.Inc()
	reconcileDurationSeconds.Observe(duration.Seconds())
	for _, issue := range issues {
		reconcileIssuesTotal.WithLabelValues(string(issue.Type)).Inc()
	}

	rs.logger.Info("Reconciliation завершена",
		slog.Int("files_checked", filesChecked),
		slog.Int("issues", len(issues)),
		slog.Int("ok", summary.Ok),
		slog.Duration("duration", duration),
	)

	return &ReconcileReport{
		StartedAt:    startedAt,
		CompletedAt:  completedAt,
		FilesChecked: filesChecked,
		Issues:       issues,
		Summary:      summary,
	}, nil
}

// reconcile сверяет записи документа с файлами на диске.
// Ключ сопоставления — {file_type}/{stored_name}.
func (rs *ReconcileService) reconcile(doc *metastore.Document) ([]ReconcileIssue, error) {
	issues := []ReconcileIssue{}

	onDisk := make(map[string]filestore.Blob)
	err := rs.store.Walk(func(b filestore.Blob) error {
		onDisk[blobKey(b.FileType, b.StoredName)] = b
		return nil
	})
	if err != nil {
		rs.logger.Error("Ошибка обхода директорий загрузок", slog.String("error", err.Error()))
		return nil, err
	}

	known := make(map[string]bool, doc.Len())

	// 1. Записи без файла и с несовпадающим размером
	for _, rec := range doc.Files {
		key := blobKey(rec.FileType, rec.StoredName)
		known[key] = true

		blob, ok := onDisk[key]
		if !ok {
			issues = append(issues, ReconcileIssue{
				Type:        IssueMissingFile,
				FileID:      rec.ID,
				StoredName:  rec.StoredName,
				Path:        rec.StoredPath,
				Description: "Запись в метаданных без файла на диске",
			})
			continue
		}

		if blob.Size != rec.FileSize {
			issues = append(issues, ReconcileIssue{
				Type:        IssueSizeMismatch,
				FileID:      rec.ID,
				StoredName:  rec.StoredName,
				Path:        blob.Path,
				Description: "Размер файла на диске не совпадает с метаданными",
			})
		}
	}

	// 2. Файлы без записи
	for key, blob := range onDisk {
		if known[key] {
			continue
		}
		issues = append(issues, ReconcileIssue{
			Type:        IssueOrphanedFile,
			StoredName:  blob.StoredName,
			Path:        blob.Path,
			Description: "Файл на диске без записи в метаданных",
		})
	}

	return issues, nil
}

// blobKey — ключ сопоставления записи и файла.
func blobKey(fileType model.FileType, storedName string) string {
	return filepath.Join(string(fileType), storedName)
}
