// Точка входа docstore — сервиса хранения документов (PDF, Excel, Word).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bigkaa/docstore/internal/api/handlers"
	"github.com/bigkaa/docstore/internal/api/middleware"
	"github.com/bigkaa/docstore/internal/config"
	"github.com/bigkaa/docstore/internal/detect"
	"github.com/bigkaa/docstore/internal/server"
	"github.com/bigkaa/docstore/internal/service"
	"github.com/bigkaa/docstore/internal/storage/filestore"
	"github.com/bigkaa/docstore/internal/storage/metastore"
)

func main() {
	// Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка конфигурации: %v\n", err)
		os.Exit(1)
	}

	// Настройка логгера
	logger := config.SetupLogger(cfg)
	logger.Info("docstore запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("upload_dir", cfg.UploadDir),
		slog.String("metadata_file", cfg.MetadataFile),
	)

	// --- Инициализация компонентов ---

	// 1. Файловое хранилище
	store, err := filestore.New(cfg.UploadDir)
	if err != nil {
		logger.Error("Ошибка инициализации файлового хранилища", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Документ метаданных
	meta, err := metastore.New(cfg.MetadataFile, logger)
	if err != nil {
		logger.Error("Ошибка инициализации хранилища метаданных", slog.String("error", err.Error()))
		os.Exit(1)
	}
	files := meta.Load().Len()
	middleware.FilesTotal.Set(float64(files))
	logger.Info("Метаданные загружены", slog.Int("files", files))

	// 3. Детектор типа содержимого
	detector := detect.NewMimetypeDetector(cfg.DetectReadLimit)

	// 4. Сервисы
	uploadSvc := service.NewUploadService(cfg, meta, store, detector, logger)
	filesSvc := service.NewFilesService(meta, store, logger)
	reconcileSvc := service.NewReconcileService(meta, store, cfg.ReconcileInterval, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reconcileSvc.Start(ctx)

	// 5. HTTP handlers
	apiHandler := handlers.NewAPIHandler(
		handlers.NewInfoHandler(cfg.MaxUploadSize, logger),
		handlers.NewFilesHandler(uploadSvc, filesSvc, cfg.MaxUploadSize, logger),
		handlers.NewMaintenanceHandler(reconcileSvc, logger),
		handlers.NewHealthHandler(store.Root(), filepath.Dir(meta.Path())),
		server.NewMetricsHandler(),
	)

	// 6. HTTP-сервер
	srv := server.New(cfg, logger, apiHandler)
	runErr := srv.Run()

	reconcileSvc.Stop()

	if runErr != nil {
		logger.Error("Ошибка сервера", slog.String("error", runErr.Error()))
		os.Exit(1)
	}
}
