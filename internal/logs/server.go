package logs

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"cost_manager/internal/httpx"
	"cost_manager/internal/logger"
	"cost_manager/internal/logs/models"
	"cost_manager/internal/logs/repository"

	"github.com/go-chi/chi/v5"
)

// Server logs 服务的 HTTP 传输层
type Server struct {
	logs repository.LogRepository
}

// NewServer 创建 logs 服务
func NewServer(logs repository.LogRepository) *Server {
	return &Server{logs: logs}
}

// Register 挂载路由
func (s *Server) Register(r chi.Router) {
	r.Post("/api/logs", s.handleCreateEntry)
	r.Get("/api/logs", s.handleListEntries)
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var entry models.LogEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(entry.Service) == "" {
		httpx.WriteError(w, http.StatusBadRequest, "service must not be empty")
		return
	}
	if entry.Level != "" && !models.IsValidLevel(entry.Level) {
		httpx.WriteError(w, http.StatusBadRequest, "unknown level: "+entry.Level)
		return
	}

	if err := s.logs.Create(r.Context(), &entry); err != nil {
		logger.S("logs").Errorf("failed to create log entry: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, entry)
}

// handleListEntries 按时间范围查询日志
// from/to 为 RFC3339 时间，默认返回最近 24 小时
func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	from := now.Add(-24 * time.Hour)
	to := now

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "from must be RFC3339 formatted")
			return
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "to must be RFC3339 formatted")
			return
		}
		to = parsed
	}
	if !from.Before(to) {
		httpx.WriteError(w, http.StatusBadRequest, "from must be before to")
		return
	}

	entries, err := s.logs.FindByRange(r.Context(), from, to)
	if err != nil {
		logger.S("logs").Errorf("failed to query log entries: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}

	if entries == nil {
		entries = []*models.LogEntry{}
	}
	httpx.WriteJSON(w, http.StatusOK, entries)
}
