package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"achievement-board-api/internal/domain"
	"achievement-board-api/internal/metrics"
)

// setupTestRouter creates a test router backed by in-memory SQLite
func setupTestRouter(t *testing.T, basePath string, m *metrics.Metrics) *Config {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Board{}))

	return &Config{
		DB:       db,
		Logger:   zap.NewNop(),
		BasePath: basePath,
		Metrics:  m,
	}
}

func TestMetricsEndpoint(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(registry, zap.NewNop())

	cfg := setupTestRouter(t, "", m)
	router := Setup(*cfg)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	body := w.Body.String()
	assert.Contains(t, body, "# HELP")
	assert.Contains(t, body, "# TYPE")
	assert.Contains(t, body, "go_goroutines")
}

func TestHealthEndpoints(t *testing.T) {
	cfg := setupTestRouter(t, "", nil)
	router := Setup(*cfg)

	for _, path := range []string{"/", "/healthz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "path %s", path)
	}
}

func TestInvalidBoardIDRejected(t *testing.T) {
	cfg := setupTestRouter(t, "", nil)
	router := Setup(*cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/boards/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

// envelope is the shared response wrapper
type envelope struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data"`
}

func doJSON(t *testing.T, router http.Handler, method, path string, payload interface{}) (*httptest.ResponseRecorder, envelope) {
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func TestBoardLifecycle(t *testing.T) {
	cfg := setupTestRouter(t, "", nil)
	router := Setup(*cfg)

	// Create
	w, env := doJSON(t, router, http.MethodPost, "/api/boards", map[string]interface{}{
		"name": "Lifecycle Board",
		"nodes": []map[string]interface{}{
			{"id": "root", "data": map[string]interface{}{"label": "Root", "status": "tracking"}},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.True(t, env.Success)
	boardID := env.Data["id"].(string)

	// List
	w, _ = doJSON(t, router, http.MethodGet, "/api/boards", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Lifecycle Board")

	// Get
	w, env = doJSON(t, router, http.MethodGet, "/api/boards/"+boardID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := env.Data["stats"].(map[string]interface{})
	assert.Equal(t, 1.0, stats["total"])

	// Add an achievement under root
	w, env = doJSON(t, router, http.MethodPost, "/api/boards/"+boardID+"/achievements", map[string]interface{}{
		"id":       "quest-1",
		"parentId": "root",
		"data":     map[string]interface{}{"title": "New Quest", "xp": 250},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	node := env.Data["node"].(map[string]interface{})
	assert.Equal(t, "quest-1", node["id"])
	edge := env.Data["edge"].(map[string]interface{})
	assert.Equal(t, "root-quest-1", edge["id"])

	// Duplicate id conflicts
	w, _ = doJSON(t, router, http.MethodPost, "/api/boards/"+boardID+"/achievements", map[string]interface{}{
		"id": "quest-1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Record progress to completion
	w, env = doJSON(t, router, http.MethodPost, "/api/boards/"+boardID+"/achievements/quest-1/progress", map[string]interface{}{})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	node = env.Data["node"].(map[string]interface{})
	data := node["data"].(map[string]interface{})
	assert.Equal(t, "completed", data["status"])

	// Completing a 250 XP quest advances the board to level 2
	board := env.Data["board"].(map[string]interface{})
	progression := board["progression"].(map[string]interface{})
	assert.Equal(t, 2.0, progression["level"])

	// Patch the achievement
	w, env = doJSON(t, router, http.MethodPatch, "/api/boards/"+boardID+"/achievements/quest-1", map[string]interface{}{
		"title": "Renamed Quest",
	})
	require.Equal(t, http.StatusOK, w.Code)
	node = env.Data["node"].(map[string]interface{})
	data = node["data"].(map[string]interface{})
	assert.Equal(t, "Renamed Quest", data["label"])

	// Delete the achievement cascades its edge
	w, env = doJSON(t, router, http.MethodDelete, "/api/boards/"+boardID+"/achievements/quest-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	board = env.Data["board"].(map[string]interface{})
	assert.Empty(t, board["edges"])

	// Delete the board; a repeat delete still succeeds
	w, _ = doJSON(t, router, http.MethodDelete, "/api/boards/"+boardID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, router, http.MethodDelete, "/api/boards/"+boardID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// The board is gone
	w, _ = doJSON(t, router, http.MethodGet, "/api/boards/"+boardID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReplaceBoardUpserts(t *testing.T) {
	cfg := setupTestRouter(t, "", nil)
	router := Setup(*cfg)

	boardID := "7b0ce509-27a9-45cd-bb1c-40d4c0fcae22"
	w, env := doJSON(t, router, http.MethodPut, "/api/boards/"+boardID, map[string]interface{}{
		"name": "Upserted",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, boardID, env.Data["id"])
	assert.Equal(t, "Upserted", env.Data["name"])
}

func TestExportWithoutArchiverFails(t *testing.T) {
	cfg := setupTestRouter(t, "", nil)
	router := Setup(*cfg)

	w, env := doJSON(t, router, http.MethodPost, "/api/boards", map[string]interface{}{"name": "Export Me"})
	require.Equal(t, http.StatusCreated, w.Code)
	boardID := env.Data["id"].(string)

	w, _ = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/boards/%s/export", boardID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestDebugEndpoint(t *testing.T) {
	cfg := setupTestRouter(t, "", nil)
	router := Setup(*cfg)

	_, env := doJSON(t, router, http.MethodPost, "/api/boards", map[string]interface{}{"name": "Counted"})
	require.True(t, env.Success)

	w, env := doJSON(t, router, http.MethodGet, "/api/_debug", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, env.Data["boards"])
}
