package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insights/api"
	"insights/internal/app"
	"insights/internal/config"
	"insights/internal/testhelpers"
)

func setupRouter(t *testing.T) (*gin.Engine, *testhelpers.TestContext) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tc := testhelpers.SetupTestContext(t)
	cfg := &config.Config{QueryTimeout: 5 * time.Second, CacheTTL: time.Minute, SeriesWorkers: 2}
	a, err := app.New(tc.DB, cfg, tc.Log)
	require.NoError(t, err)

	handlers := api.NewHandlers(a.Reports, a.Ingestion, a.Coaching, a.Exports, a.Catalog, tc.Log)
	return api.NewRouter(handlers, tc.Log), tc
}

func do(router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type envelope[T any] struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Data      T      `json:"data"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestHealth_SetsRequestID(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(router, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(api.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(api.RequestIDHeader, "8f14e45f-ceea-467f-a0e6-0a4b3c8d2e11")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "8f14e45f-ceea-467f-a0e6-0a4b3c8d2e11", w.Header().Get(api.RequestIDHeader))
}

func TestGetReport(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(router, http.MethodGet, "/api/report?start=2024-01-01&end=2024-02-28", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := decode[api.ReportResponse](t, w)
	assert.Equal(t, "360.00", env.Data.KPI.TotalRevenue)
	assert.Equal(t, "180.00", env.Data.KPI.AverageTicket)
	assert.Equal(t, 2, env.Data.KPI.SaleCount)
	require.Len(t, env.Data.CategoryBreakdown, 1)
	assert.Len(t, env.Data.TopProducts, 4)
	assert.Len(t, env.Data.Ledger, 2)
}

func TestGetReport_InvalidRange(t *testing.T) {
	router, _ := setupRouter(t)

	for _, path := range []string{
		"/api/report?start=2024-02-28&end=2024-01-01",
		"/api/report?start=2024-13-01&end=2024-12-31",
		"/api/report?start=2024-01-01",
		"/api/report?days=-3",
	} {
		w := do(router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestGetReport_StorageUnavailable(t *testing.T) {
	router, tc := setupRouter(t)
	require.NoError(t, tc.DB.Close())

	w := do(router, http.MethodGet, "/api/report?start=2024-01-01&end=2024-02-28", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetLedger_OrphanAsNull(t *testing.T) {
	router, tc := setupRouter(t)
	tc.InsertSale(t, 999, "2024-02-20", 2)

	w := do(router, http.MethodGet, "/api/ledger?start=2024-01-01&end=2024-02-28", nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := decode[[]map[string]interface{}](t, w)
	require.Len(t, env.Data, 3)
	assert.Equal(t, "2024-02-20", env.Data[0]["date"])
	assert.Nil(t, env.Data[0]["product_name"])
	assert.Nil(t, env.Data[0]["subtotal"])
}

func TestGetSeries(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(router, http.MethodGet, "/api/series?start=2024-01-01&end=2024-03-31", nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := decode[[]api.KPIPointResponse](t, w)
	require.Len(t, env.Data, 3)
	assert.Equal(t, "225.00", env.Data[0].KPI.TotalRevenue)
}

func TestCreateSale_InvalidatesReportCache(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(router, http.MethodGet, "/api/report?start=2024-01-01&end=2024-02-28", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodPost, "/api/sales", map[string]interface{}{"product_id": 2, "date": "2024-02-15", "quantity": 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(router, http.MethodGet, "/api/report?start=2024-01-01&end=2024-02-28", nil)
	env := decode[api.ReportResponse](t, w)
	assert.Equal(t, 3, env.Data.KPI.SaleCount)
	assert.Equal(t, "420.00", env.Data.KPI.TotalRevenue)
}

func TestCreateSale_Validation(t *testing.T) {
	router, _ := setupRouter(t)

	tests := []struct {
		name string
		body map[string]interface{}
		want int
	}{
		{"negative quantity", map[string]interface{}{"product_id": 1, "date": "2024-02-15", "quantity": -1}, http.StatusBadRequest},
		{"bad date", map[string]interface{}{"product_id": 1, "date": "15/02/2024", "quantity": 1}, http.StatusBadRequest},
		{"missing quantity", map[string]interface{}{"product_id": 1, "date": "2024-02-15"}, http.StatusBadRequest},
		{"unknown product", map[string]interface{}{"product_id": 404, "date": "2024-02-15", "quantity": 1}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, http.MethodPost, "/api/sales", tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestScoutingAndSuggestion(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(router, http.MethodGet, "/api/teams/5/suggestion", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(router, http.MethodPost, "/api/scouting", map[string]interface{}{
		"team_id": 5, "team_name": "'); DROP TABLE sales; --", "goals_for": 2.4, "goals_against": 0.7,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(router, http.MethodGet, "/api/teams/5/suggestion", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decode[api.SuggestionResponse](t, w)
	assert.Equal(t, "Pressão alta e bloqueio de transições", env.Data.Suggestion)

	w = do(router, http.MethodGet, "/api/report?start=2024-01-01&end=2024-02-28", nil)
	assert.Equal(t, http.StatusOK, w.Code, "sales table must survive the payload")

	w = do(router, http.MethodGet, "/api/teams/abc/suggestion", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListProducts(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(router, http.MethodGet, "/api/catalog/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decode[[]api.ProductResponse](t, w)
	require.Len(t, env.Data, 4)
	assert.Equal(t, "199.90", env.Data[3].UnitPrice)
}

func TestExports(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(router, http.MethodGet, "/api/export/ledger.csv?start=2024-01-01&end=2024-12-31&category=Hardware", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "ledger_2024-01-01_2024-12-31.csv")
	assert.Equal(t, 4, strings.Count(w.Body.String(), "\n"), "header + 3 Hardware sales")

	w = do(router, http.MethodGet, "/api/export/ledger.parquet?start=2024-01-01&end=2024-12-31", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PAR1")))

	w = do(router, http.MethodGet, "/api/export/report.csv?start=2024-01-01&end=2024-02-28", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "total_revenue,360.00")
}
