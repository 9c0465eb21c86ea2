package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	costsrepo "cost_manager/internal/costs/repository"
	"cost_manager/internal/httpx"
	"cost_manager/internal/logger"
	"cost_manager/internal/users/models"
	"cost_manager/internal/users/repository"

	"github.com/go-chi/chi/v5"
)

// Server users 服务的 HTTP 传输层
type Server struct {
	users repository.UserRepository
	costs costsrepo.CostRepository
}

// NewServer 创建 users 服务
// 查询用户详情时会汇总该用户的全部支出金额，因此依赖支出仓库
func NewServer(users repository.UserRepository, costs costsrepo.CostRepository) *Server {
	return &Server{users: users, costs: costs}
}

// Register 挂载路由
func (s *Server) Register(r chi.Router) {
	r.Post("/api/users", s.handleCreateUser)
	r.Get("/api/users/{id}", s.handleGetUser)
}

// createUserRequest 创建用户请求体
type createUserRequest struct {
	UserID        int64   `json:"id"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Birthday      *string `json:"birthday"`
	MaritalStatus string  `json:"marital_status"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.UserID <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "id must be a positive integer")
		return
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		httpx.WriteError(w, http.StatusBadRequest, "first_name and last_name must not be empty")
		return
	}
	if req.MaritalStatus != "" && !models.IsValidMaritalStatus(req.MaritalStatus) {
		httpx.WriteError(w, http.StatusBadRequest, "unknown marital_status: "+req.MaritalStatus)
		return
	}

	user := &models.User{
		UserID:        req.UserID,
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		MaritalStatus: req.MaritalStatus,
	}
	if req.Birthday != nil {
		birthday, err := time.Parse("2006-01-02", *req.Birthday)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "birthday must be formatted as YYYY-MM-DD")
			return
		}
		user.Birthday = birthday
	}

	if err := s.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			httpx.WriteError(w, http.StatusConflict, "user already exists")
			return
		}
		logger.S("users").Errorf("failed to create user: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, user)
}

// userDetails 用户详情响应：用户信息加其全部支出总额
type userDetails struct {
	*models.User
	Total json.RawMessage `json:"total"`
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || userID <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "id must be a positive integer")
		return
	}

	user, err := s.users.GetByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		logger.S("users").Errorf("failed to get user: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}

	total, err := s.costs.SumByUser(r.Context(), userID)
	if err != nil {
		logger.S("users").Errorf("failed to sum costs for user %d: %v", userID, err)
		httpx.WriteError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}

	totalJSON, err := total.MarshalJSON()
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userDetails{User: user, Total: totalJSON})
}
