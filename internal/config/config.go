// Пакет config — загрузка и валидация конфигурации сервиса
// из переменных окружения (и необязательного файла .env).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации сервиса.
type Config struct {
	// Порт HTTP-сервера
	Port int `env:"DS_PORT" envDefault:"8080"`
	// Корневая директория загрузок, внутри — pdf/, excel/, docx/
	UploadDir string `env:"DS_UPLOAD_DIR" envDefault:"uploads"`
	// Путь к JSON-документу метаданных
	MetadataFile string `env:"DS_METADATA_FILE" envDefault:"data/files.json"`
	// Максимальный размер тела запроса загрузки в байтах (16 MiB)
	MaxUploadSize int64 `env:"DS_MAX_UPLOAD_SIZE" envDefault:"16777216"`
	// Принимать файл, если детектор типа содержимого вернул ошибку
	DetectFailOpen bool `env:"DS_DETECT_FAIL_OPEN" envDefault:"true"`
	// Количество байт, читаемых детектором с начала файла
	DetectReadLimit uint32 `env:"DS_DETECT_READ_LIMIT" envDefault:"3072"`
	// Интервал периодической сверки (0 — отключена)
	ReconcileInterval time.Duration `env:"DS_RECONCILE_INTERVAL" envDefault:"6h"`
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level `env:"DS_LOG_LEVEL" envDefault:"info"`
	// Формат логов (json, text)
	LogFormat string `env:"DS_LOG_FORMAT" envDefault:"json"`
	// Путь к TLS сертификату (опционально)
	TLSCert string `env:"DS_TLS_CERT"`
	// Путь к TLS приватному ключу (опционально)
	TLSKey string `env:"DS_TLS_KEY"`
	// Таймаут graceful shutdown HTTP-сервера
	ShutdownTimeout time.Duration `env:"DS_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Load загружает конфигурацию: сначала .env из рабочей директории
// (если есть, уже заданные переменные не перезаписываются), затем
// переменные окружения. Возвращает Config или ошибку валидации.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf(".env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора переменных окружения: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность параметров.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("DS_PORT: значение %d вне допустимого диапазона 1-65535", c.Port)
	}
	if c.UploadDir == "" {
		return fmt.Errorf("DS_UPLOAD_DIR: значение не может быть пустым")
	}
	if c.MetadataFile == "" {
		return fmt.Errorf("DS_METADATA_FILE: значение не может быть пустым")
	}
	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("DS_MAX_UPLOAD_SIZE: значение должно быть положительным")
	}
	if c.ReconcileInterval < 0 {
		return fmt.Errorf("DS_RECONCILE_INTERVAL: значение не может быть отрицательным")
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("DS_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", c.LogFormat)
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return fmt.Errorf("DS_TLS_CERT и DS_TLS_KEY задаются только вместе")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("DS_SHUTDOWN_TIMEOUT: значение должно быть положительным")
	}
	return nil
}

// TLSEnabled возвращает true, если настроен TLS.
func (c *Config) TLSEnabled() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
