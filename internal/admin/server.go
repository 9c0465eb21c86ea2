package admin

import (
	"context"
	"net/http"

	"cost_manager/internal/httpx"
	"cost_manager/internal/logger"

	"github.com/go-chi/chi/v5"
)

// Pinger 存储连通性探测
type Pinger interface {
	Ping(ctx context.Context) error
}

// aboutInfo about 接口返回的应用信息
type aboutInfo struct {
	Application string   `json:"application"`
	Version     string   `json:"version"`
	Services    []string `json:"services"`
}

// Server admin 服务的 HTTP 传输层
type Server struct {
	pinger  Pinger
	version string
}

// NewServer 创建 admin 服务
func NewServer(pinger Pinger, version string) *Server {
	if version == "" {
		version = "dev"
	}
	return &Server{pinger: pinger, version: version}
}

// Register 挂载路由
func (s *Server) Register(r chi.Router) {
	r.Get("/api/about", s.handleAbout)
	r.Get("/healthz", s.handleHealth)
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, aboutInfo{
		Application: "cost_manager",
		Version:     s.version,
		Services:    []string{"users", "costs", "logs", "admin"},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.pinger.Ping(r.Context()); err != nil {
		logger.S("admin").Errorf("health check failed: %v", err)
		httpx.WriteError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
