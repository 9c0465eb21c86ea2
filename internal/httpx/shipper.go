package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"cost_manager/internal/logger"
	logsmodels "cost_manager/internal/logs/models"
)

// Shipper 跨服务日志上报接口
// 上报失败不影响业务请求，但必须显式记录，不允许静默丢弃
type Shipper interface {
	Ship(entry *logsmodels.LogEntry)
}

// NoopShipper 空实现
// logs 服务自身使用，避免自我上报形成回环
type NoopShipper struct{}

// Ship 丢弃条目
func (NoopShipper) Ship(entry *logsmodels.LogEntry) {}

// HTTPShipper 通过 logs 服务的 HTTP 接口异步上报日志
// 内部维护固定数量的 worker 协程与有界队列；队列满时丢弃条目并告警
type HTTPShipper struct {
	endpoint string
	client   *http.Client
	queue    chan *logsmodels.LogEntry
	wg       sync.WaitGroup
}

// NewHTTPShipper 创建日志上报器并启动 worker 协程
// workers: worker 协程数量
// queueSize: 队列大小
func NewHTTPShipper(baseURL string, workers, queueSize int) *HTTPShipper {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 64
	}

	s := &HTTPShipper{
		endpoint: baseURL + "/api/logs",
		client:   &http.Client{Timeout: 5 * time.Second},
		queue:    make(chan *logsmodels.LogEntry, queueSize),
	}

	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	logger.L().Infof("Log shipper started with %d workers, queue size %d", workers, queueSize)
	return s
}

// Ship 将条目放入队列，不阻塞请求处理
func (s *HTTPShipper) Ship(entry *logsmodels.LogEntry) {
	select {
	case s.queue <- entry:
	default:
		logger.L().Warnf("log shipper queue full, dropping entry from %s", entry.Service)
	}
}

// worker 消费队列并提交到 logs 服务
func (s *HTTPShipper) worker(id int) {
	defer s.wg.Done()

	logger.L().Debugf("Shipper worker %d started", id)

	for entry := range s.queue {
		if err := s.post(entry); err != nil {
			// 上报失败只告警，绝不影响原请求
			logger.L().Warnf("Shipper worker %d: failed to push log entry: %v", id, err)
		}
	}

	logger.L().Debugf("Shipper worker %d stopped", id)
}

func (s *HTTPShipper) post(entry *logsmodels.LogEntry) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode log entry: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build log request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach logs service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("logs service returned status %d", resp.StatusCode)
	}
	return nil
}

// Close 等待队列排空并停止所有 worker
func (s *HTTPShipper) Close() {
	close(s.queue)
	s.wg.Wait()
}
