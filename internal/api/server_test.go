package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/huangsam/maintscore/core"
	"github.com/huangsam/maintscore/internal/iostore"
	"github.com/huangsam/maintscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fixedGenerator always returns the same verdict.
type fixedGenerator struct {
	reply string
}

func (g *fixedGenerator) Generate(_ context.Context, _ string) (string, error) {
	return g.reply, nil
}

type testEnv struct {
	router *gin.Engine
	store  *iostore.MemoryStore
	apiKey string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := iostore.NewMemoryStore()
	extractor := core.NewExtractor(&fixedGenerator{reply: "Readable and cohesive. (7/10)"}, store, schema.DefaultCatalog(), 1, 1)
	server := NewServer(store, extractor, nil, schema.DefaultCatalog(), schema.DefaultKeyFileLimit)

	key := schema.APIKey{
		Key:          "test-key",
		UserEmail:    "dev@example.com",
		Name:         "test",
		CreationDate: time.Now().UTC(),
		Status:       schema.ActiveKey,
	}
	require.NoError(t, store.InsertAPIKey(context.Background(), key))

	return &testEnv{router: server.Router(), store: store, apiKey: key.Key}
}

func (e *testEnv) do(method, path string, body any, withKey bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if withKey {
		req.Header.Set(apiKeyHeader, e.apiKey)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestHealthNoAuth(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMissingKey(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/get_user_email", nil, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing API key")
}

func TestAuthUnknownKey(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/get_user_email", nil)
	req.Header.Set(apiKeyHeader, "bogus")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid API key")
}

func TestAuthStoreFailure(t *testing.T) {
	store := &iostore.MockRecordStore{}
	store.On("GetAPIKeyUser", mock.Anything, "any-key").Return("", errors.New("connection refused"))
	server := NewServer(store, nil, nil, schema.DefaultCatalog(), schema.DefaultKeyFileLimit)

	req := httptest.NewRequest(http.MethodGet, "/get_user_email", nil)
	req.Header.Set(apiKeyHeader, "any-key")
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	store.AssertExpectations(t)
}

func TestGetUserEmail(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/get_user_email", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dev@example.com")
}

func TestGenerateKey(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodPost, "/generate_key", gin.H{"user_email": "new@example.com", "name": "laptop"}, false)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["api_key"])

	// The fresh key authenticates
	userEmail, err := env.store.GetAPIKeyUser(context.Background(), resp["api_key"])
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", userEmail)
}

func TestGenerateKeyBadPayload(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodPost, "/generate_key", gin.H{"user_email": "not-an-email"}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInsertFileAndGetMetrics(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/extract_metrics", gin.H{
		"file_path":    "svc/handler.go",
		"content":      "package svc\n\nfunc Handle() {}\n",
		"project_name": "demo",
	}, true)
	require.Equal(t, http.StatusOK, w.Code)

	var extractResp struct {
		Observations []schema.MetricObservation `json:"observations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &extractResp))
	assert.Len(t, extractResp.Observations, len(schema.DefaultCatalog()))
	for _, obs := range extractResp.Observations {
		assert.Equal(t, 7, obs.Score)
	}

	w = env.do(http.MethodGet, "/get_metrics?project=demo", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	var metricsResp struct {
		Series []schema.MetricSeries `json:"series"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &metricsResp))
	assert.Len(t, metricsResp.Series, len(schema.DefaultCatalog()))

	// The project shows up in listings
	w = env.do(http.MethodGet, "/get_user_projects", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "demo")
}

func TestGetMetricsUnknownProject(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/get_metrics?project=ghost", nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodGet, "/get_metrics", nil, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInsertFileOnly(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodPost, "/insert_file", gin.H{
		"file_path":    "svc/util.go",
		"content":      "package svc\n",
		"project_name": "demo",
	}, true)
	require.Equal(t, http.StatusCreated, w.Code)

	files, err := env.store.GetFiles(context.Background(), "dev@example.com", "demo")
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestAPIKeyLifecycleEndpoints(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api_keys", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test-key")

	w = env.do(http.MethodDelete, fmt.Sprintf("/api_keys/%s", "test-key"), nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodDelete, "/api_keys/missing", nil, true)
	// Auth itself now fails since the key was soft-deleted
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFetchEndpointsWithoutHost(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/fetch_repo_structure?owner=acme&repo=widgets", nil, true)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = env.do(http.MethodGet, "/fetch_file_content?owner=acme&repo=widgets&path=main.go", nil, true)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
