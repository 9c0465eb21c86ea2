package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	logsmodels "cost_manager/internal/logs/models"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func TestHTTPShipperPostsEntries(t *testing.T) {
	var (
		mu       sync.Mutex
		received []logsmodels.LogEntry
	)
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/logs", r.URL.Path)

		var entry logsmodels.LogEntry
		require.NoError(t, json.NewDecoder(r.Body).Decode(&entry))
		mu.Lock()
		received = append(received, entry)
		mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	}))
	defer backend.Close()

	shipper := NewHTTPShipper(backend.URL, 2, 8)
	shipper.Ship(&logsmodels.LogEntry{Service: "costs", Message: "request completed"})
	shipper.Ship(&logsmodels.LogEntry{Service: "users", Message: "request completed"})
	// Close 会排空队列并等待 worker 退出
	shipper.Close()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 2)
}

// 上报失败不能影响业务请求，队列满时条目被丢弃
func TestHTTPShipperDropsWhenQueueFull(t *testing.T) {
	shipper := &HTTPShipper{
		endpoint: "http://localhost:0/api/logs",
		client:   http.DefaultClient,
		queue:    make(chan *logsmodels.LogEntry, 1),
	}

	shipper.Ship(&logsmodels.LogEntry{Service: "costs"})
	shipper.Ship(&logsmodels.LogEntry{Service: "costs"}) // 队列已满，直接丢弃

	require.Len(t, shipper.queue, 1)
}

type recordingShipper struct {
	entries []*logsmodels.LogEntry
}

func (r *recordingShipper) Ship(entry *logsmodels.LogEntry) {
	r.entries = append(r.entries, entry)
}

func TestRequestLoggerLevels(t *testing.T) {
	shipper := &recordingShipper{}

	r := chi.NewRouter()
	r.Use(RequestLogger("costs", shipper))
	r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/missing", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNotFound) })
	r.Get("/boom", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/missing", "/boom"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	require.Len(t, shipper.entries, 3)
	require.Equal(t, logsmodels.LevelInfo, shipper.entries[0].Level)
	require.Equal(t, logsmodels.LevelWarn, shipper.entries[1].Level)
	require.Equal(t, logsmodels.LevelError, shipper.entries[2].Level)
	require.Equal(t, "costs", shipper.entries[0].Service)
	require.Equal(t, "/ok", shipper.entries[0].Path)
	require.NotZero(t, shipper.entries[0].Status)
}
