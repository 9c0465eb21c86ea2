package httpx

import (
	"context"
	"errors"
	"net/http"
	"time"

	"cost_manager/internal/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"
)

// NewRouter 创建带通用中间件的路由
// 中间件顺序：RequestID → Recoverer → CORS → 请求日志上报
func NewRouter(service string, origins []string, shipper Shipper) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(RequestLogger(service, shipper))

	return r
}

// Serve 启动 HTTP 服务并在 ctx 取消时优雅退出
func Serve(ctx context.Context, service, addr string, handler http.Handler, timeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		IdleTimeout:  60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.S(service).Infof("listening on %s", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.S(service).Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
