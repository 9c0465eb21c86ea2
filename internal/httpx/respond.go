package httpx

import (
	"encoding/json"
	"net/http"

	"cost_manager/internal/logger"
)

// errorResponse 统一的错误响应体
type errorResponse struct {
	Error string `json:"error"`
}

// WriteJSON 序列化并写出 JSON 响应
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// 响应头已写出，只能记录
		logger.L().Errorf("failed to encode response: %v", err)
	}
}

// WriteError 写出统一格式的错误响应
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, errorResponse{Error: msg})
}
