package costs

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cost_manager/internal/costs/models"
	"cost_manager/internal/costs/report"
	"cost_manager/internal/costs/repository"
	"cost_manager/internal/httpx"
	"cost_manager/internal/logger"

	"github.com/go-chi/chi/v5"
)

// createdAtSkew 允许的时钟偏差
// created_at 不允许早于写入时刻，但容忍客户端与服务器之间的少量偏差
const createdAtSkew = time.Minute

// Server costs 服务的 HTTP 传输层
type Server struct {
	costs   repository.CostRepository
	reports *report.Service
	nowFunc func() time.Time
}

// NewServer 创建 costs 服务
func NewServer(costs repository.CostRepository, reports *report.Service) *Server {
	return &Server{
		costs:   costs,
		reports: reports,
		nowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Register 挂载路由
func (s *Server) Register(r chi.Router) {
	r.Post("/api/costs", s.handleAddCost)
	r.Get("/api/costs/report", s.handleGetReport)
}

// addCostRequest 新增支出请求体
type addCostRequest struct {
	UserID      int64         `json:"userid"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Sum         *models.Money `json:"sum"`
	CreatedAt   *time.Time    `json:"created_at"`
}

// handleAddCost 新增一笔支出记录
func (s *Server) handleAddCost(w http.ResponseWriter, r *http.Request) {
	var req addCostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.UserID <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "userid must be a positive integer")
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		httpx.WriteError(w, http.StatusBadRequest, "description must not be empty")
		return
	}
	if !models.IsValidCategory(req.Category) {
		httpx.WriteError(w, http.StatusBadRequest, "unknown category: "+req.Category)
		return
	}
	if req.Sum == nil || !req.Sum.Decimal.IsPositive() {
		httpx.WriteError(w, http.StatusBadRequest, "sum must be a positive decimal")
		return
	}

	now := s.nowFunc()
	createdAt := now
	if req.CreatedAt != nil {
		// 支出记录不可回填到过去
		if req.CreatedAt.Before(now.Add(-createdAtSkew)) {
			httpx.WriteError(w, http.StatusBadRequest, "created_at must not be in the past")
			return
		}
		createdAt = req.CreatedAt.UTC()
	}

	record := &models.CostRecord{
		UserID:      req.UserID,
		Description: strings.TrimSpace(req.Description),
		Category:    req.Category,
		Amount:      *req.Sum,
		CreatedAt:   createdAt,
	}

	if err := s.costs.Create(r.Context(), record); err != nil {
		logger.S("costs").Errorf("failed to create cost record: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, record)
}

// handleGetReport 获取月度分组报表
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "user_id must be an integer")
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "year must be an integer")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "month must be an integer")
		return
	}

	result, err := s.reports.GetReport(r.Context(), userID, year, month)
	if err != nil {
		if errors.Is(err, report.ErrInvalidInput) {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.S("costs").Errorf("failed to build report: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, result)
}
