// logging.go — журнал HTTP-запросов сервиса документов через slog.
// Каждая запись содержит шаблон маршрута chi, request_id и параметры пути
// (id, stored_name), по которым запрос связывается с записью метаданных.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// serviceRoutes — служебные маршруты, опрашиваемые Kubernetes и Prometheus.
// Успешные ответы на них пишутся на уровне DEBUG.
var serviceRoutes = []string{"/health/", "/metrics"}

// responseWriter перехватывает статус и число записанных байт.
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	bytes       int64
	wroteHeader bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += int64(n)
	return n, err
}

// Unwrap нужен http.ServeContent и http.ResponseController.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// RequestLogger возвращает middleware журнала запросов.
// Уровень: ERROR для 5xx, WARN для 4xx, DEBUG для успешных служебных
// маршрутов, иначе INFO.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With(slog.String("component", "http"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := newResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			route := routePattern(r)
			level := levelFor(wrapped.statusCode, route)
			if !logger.Enabled(r.Context(), level) {
				return
			}

			attrs := make([]slog.Attr, 0, 10)
			attrs = append(attrs,
				slog.String("method", r.Method),
				slog.String("route", route),
				slog.String("path", r.URL.Path),
				slog.Int("status", wrapped.statusCode),
				slog.Duration("duration", time.Since(start)),
				slog.Int64("bytes", wrapped.bytes),
				slog.String("remote_addr", r.RemoteAddr),
			)
			if reqID := chimw.GetReqID(r.Context()); reqID != "" {
				attrs = append(attrs, slog.String("request_id", reqID))
			}
			attrs = append(attrs, pathParams(r)...)

			logger.LogAttrs(r.Context(), level, "HTTP запрос", attrs...)
		})
	}
}

// levelFor выбирает уровень записи по статусу и маршруту.
func levelFor(status int, route string) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	case isServiceRoute(route):
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func isServiceRoute(route string) bool {
	for _, prefix := range serviceRoutes {
		if strings.HasPrefix(route, prefix) {
			return true
		}
	}
	return false
}

// pathParams возвращает параметры пути chi: id удаляемой записи
// или stored_name скачиваемого файла.
func pathParams(r *http.Request) []slog.Attr {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return nil
	}

	var attrs []slog.Attr
	for i, key := range rctx.URLParams.Keys {
		if key == "" || key == "*" || i >= len(rctx.URLParams.Values) {
			continue
		}
		name := key
		if key == "id" {
			name = "file_id"
		}
		attrs = append(attrs, slog.String(name, rctx.URLParams.Values[i]))
	}
	return attrs
}
