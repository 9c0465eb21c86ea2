package httpx

import (
	"net/http"
	"time"

	logsmodels "cost_manager/internal/logs/models"

	"github.com/go-chi/chi/v5/middleware"
)

// RequestLogger 记录每个请求并异步上报到 logs 服务
// 4xx 记为 warn，5xx 记为 error，其余为 info
func RequestLogger(service string, shipper Shipper) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			level := logsmodels.LevelInfo
			switch {
			case ww.Status() >= 500:
				level = logsmodels.LevelError
			case ww.Status() >= 400:
				level = logsmodels.LevelWarn
			}

			shipper.Ship(&logsmodels.LogEntry{
				Service:    service,
				Level:      level,
				Method:     r.Method,
				Path:       r.URL.Path,
				Status:     ww.Status(),
				DurationMS: time.Since(start).Milliseconds(),
				Message:    "request completed",
				LoggedAt:   start.UTC(),
			})
		})
	}
}
