package logs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cost_manager/internal/logs/models"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type memLogRepo struct {
	entries []*models.LogEntry
}

func (m *memLogRepo) Create(ctx context.Context, entry *models.LogEntry) error {
	if entry.LoggedAt.IsZero() {
		entry.LoggedAt = time.Now().UTC()
	}
	if entry.Level == "" {
		entry.Level = models.LevelInfo
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memLogRepo) FindByRange(ctx context.Context, from, to time.Time) ([]*models.LogEntry, error) {
	var matched []*models.LogEntry
	for _, e := range m.entries {
		if !e.LoggedAt.Before(from) && e.LoggedAt.Before(to) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func (m *memLogRepo) EnsureIndexes(ctx context.Context) error { return nil }

func newTestRouter(repo *memLogRepo) *chi.Mux {
	r := chi.NewRouter()
	NewServer(repo).Register(r)
	return r
}

func TestHandleCreateEntry(t *testing.T) {
	repo := &memLogRepo{}
	router := newTestRouter(repo)

	body := `{"service":"costs","level":"info","method":"GET","path":"/api/costs/report","status":200,"message":"request completed"}`
	req := httptest.NewRequest(http.MethodPost, "/api/logs", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, repo.entries, 1)
	require.Equal(t, "costs", repo.entries[0].Service)
}

func TestHandleCreateEntryValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty service", `{"service":"","message":"x"}`},
		{"unknown level", `{"service":"costs","level":"critical","message":"x"}`},
		{"malformed json", `{"service":`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(&memLogRepo{})
			req := httptest.NewRequest(http.MethodPost, "/api/logs", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleListEntries(t *testing.T) {
	repo := &memLogRepo{}
	now := time.Now().UTC()
	require.NoError(t, repo.Create(context.Background(), &models.LogEntry{
		Service: "users", Message: "request completed", LoggedAt: now.Add(-time.Hour),
	}))
	require.NoError(t, repo.Create(context.Background(), &models.LogEntry{
		Service: "costs", Message: "request completed", LoggedAt: now.Add(-48 * time.Hour),
	}))
	router := newTestRouter(repo)

	// 默认范围：最近 24 小时，只包含第一条
	req := httptest.NewRequest(http.MethodGet, "/api/logs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var entries []*models.LogEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	require.Equal(t, "users", entries[0].Service)
}

func TestHandleListEntriesInvalidRange(t *testing.T) {
	router := newTestRouter(&memLogRepo{})

	cases := []string{
		"/api/logs?from=notatime",
		"/api/logs?to=notatime",
		"/api/logs?from=2025-03-02T00:00:00Z&to=2025-03-01T00:00:00Z",
	}
	for _, target := range cases {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestHandleListEntriesEmptyIsArray(t *testing.T) {
	router := newTestRouter(&memLogRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/logs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}
