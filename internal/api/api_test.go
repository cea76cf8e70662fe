package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisdamba/foodwaste/internal/models"
	"github.com/chrisdamba/foodwaste/internal/telemetry"
)

type stubAnalyzer struct {
	resp     models.AnalysisResponse
	deadline bool
}

func (s *stubAnalyzer) AnalyzeResponse(ctx context.Context) models.AnalysisResponse {
	_, s.deadline = ctx.Deadline()
	return s.resp
}

func newTestRouter(t *testing.T, analyzer Analyzer, leaderboardPath string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return NewRouter(NewAPIHandler(analyzer, leaderboardPath, time.Second), telemetry.NewMetrics())
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, &stubAnalyzer{}, "")
	w := get(router, "/api/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestIndex(t *testing.T) {
	router := newTestRouter(t, &stubAnalyzer{}, "")
	w := get(router, "/")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ServiceName, body["service"])
	assert.Contains(t, body["endpoints"], "/api/efficiency-waste-correlation")
}

func TestEfficiencyWasteCorrelationSuccess(t *testing.T) {
	analyzer := &stubAnalyzer{resp: models.AnalysisResponse{
		Status: models.StatusSuccess,
		Data: &models.AnalysisResult{
			Correlations:        map[string]models.CorrelationResult{},
			Regressions:         map[string]models.RegressionResult{},
			RestaurantsAnalyzed: 4,
		},
	}}
	router := newTestRouter(t, analyzer, "")
	w := get(router, "/api/efficiency-waste-correlation")

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, analyzer.deadline)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])
	data := body["data"].(map[string]any)
	assert.Equal(t, 4.0, data["restaurants_analyzed"])
	assert.NotContains(t, body, "message")
}

func TestEfficiencyWasteCorrelationError(t *testing.T) {
	analyzer := &stubAnalyzer{resp: models.AnalysisResponse{Status: models.StatusError, Message: "missing column"}}
	router := newTestRouter(t, analyzer, "")
	w := get(router, "/api/efficiency-waste-correlation")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"status":"error","message":"missing column"}`, w.Body.String())
}

func TestRestaurantPoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restaurant_points.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"A": 50, "B": 100, "C": 75}`), 0o644))

	router := newTestRouter(t, &stubAnalyzer{}, path)
	w := get(router, "/api/restaurant-points")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"name":"B","points":100},{"name":"C","points":75},{"name":"A","points":50}]`, w.Body.String())
}

func TestRestaurantPointsMissingFile(t *testing.T) {
	router := newTestRouter(t, &stubAnalyzer{}, filepath.Join(t.TempDir(), "absent.json"))
	w := get(router, "/api/restaurant-points")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRestaurantPointsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restaurant_points.json")
	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o644))

	router := newTestRouter(t, &stubAnalyzer{}, path)
	w := get(router, "/api/restaurant-points")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestMetricsAndNotFound(t *testing.T) {
	router := newTestRouter(t, &stubAnalyzer{}, "")

	w := get(router, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "foodwaste_restaurants_analyzed")

	w = get(router, "/api/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"API endpoint not found"}`, w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t, &stubAnalyzer{}, "")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/health", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
