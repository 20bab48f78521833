package rest

import (
	"net/http"
	"time"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// LoggerMiddleware логирует каждый запрос с trace_id, маршрутом и объявлением, к которому он относится
func LoggerMiddleware(logger port.LoggerPort) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get("X-Trace-ID")
			if _, err := uuid.Parse(traceID); err != nil {
				traceID = uuid.New().String()
			}

			requestFields := port.Fields{"trace_id": traceID}
			// заголовок проверяет только AuthMiddleware; сюда попадает лишь корректный uuid
			if userID, err := uuid.Parse(r.Header.Get("X-User-ID")); err == nil {
				requestFields["user_id"] = userID.String()
			}

			// Логгер для use case и адаптеров
			coreLogger := logger.WithFields(requestFields)

			httpLogger := coreLogger.WithFields(port.Fields{
				"http_method": r.Method,
				"http_path":   r.URL.Path,
				"remote_addr": r.RemoteAddr,
			})

			ctx := r.Context()
			ctx = contextkeys.ContextWithLogger(ctx, coreLogger)
			ctx = contextkeys.ContextWithTraceID(ctx, traceID)

			w.Header().Set("X-Trace-ID", traceID)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			startTime := time.Now()

			httpLogger.Debug("Request started", nil)

			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			finished := port.Fields{
				"status_code":   status,
				"bytes_written": ww.BytesWritten(),
				"duration_ms":   time.Since(startTime).Milliseconds(),
			}
			// маршрут и параметры chi заполняет только после роутинга
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					finished["http_route"] = pattern
				}
				if listingID := rctx.URLParam("listingID"); listingID != "" {
					finished["listing_id"] = listingID
				}
			}

			if status >= http.StatusInternalServerError {
				httpLogger.Warn("Request finished with server error", finished)
				return
			}
			httpLogger.Info("Request finished", finished)
		})
	}
}
