package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funnelcast/funnelcast/internal/classify"
	"github.com/funnelcast/funnelcast/internal/engine"
	"github.com/funnelcast/funnelcast/internal/kpi"
	"github.com/funnelcast/funnelcast/internal/model"
	"github.com/funnelcast/funnelcast/internal/reconcile"
	"github.com/funnelcast/funnelcast/internal/source"
)

type goalMem struct {
	goals model.GoalConfig
}

func (m *goalMem) GetGoals(_ context.Context) (model.GoalConfig, error) { return m.goals, nil }

func (m *goalMem) SaveGoals(_ context.Context, goals model.GoalConfig) error {
	m.goals = goals
	return nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	mem := &source.MemFetcher{Tables: map[string]*source.RawTable{
		"ventas": {
			Header: []string{"Fecha", "Lead Name", "Email", "Monto ($)", "Closer", "Resultado"},
			Rows: [][]string{
				{"2024-03-01", "Ana L", "ana@test.com", "$500", "Marta", "Venta"},
				{"2024-03-02", "Luis P", "luis@test.com", "", "Leo", "No Show"},
			},
		},
		"volumen": {
			Header: []string{"Fecha Creación", "Nombre", "Email", "Campaña"},
			Rows: [][]string{
				{"2024-02-28", "Ana Lopez", "ana@test.com", "IG Reels"},
			},
		},
	}}
	rec := reconcile.New(mem, slog.Default(), classify.PolicyByCategory)
	eng := engine.New(rec,
		[]reconcile.Source{
			{ID: "ventas", URL: "u", Kind: reconcile.KindSales},
			{ID: "volumen", URL: "v", Kind: reconcile.KindLeads},
		},
		nil, nil, slog.Default(), engine.Config{})

	reg := prometheus.NewRegistry()
	return NewRouter(slog.Default(), eng, &goalMem{}, nil, NewMetrics(reg), reg)
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestKPISummary(t *testing.T) {
	router := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/kpi/summary?start=2024-03-01&end=2024-03-31", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var report model.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	assert.Equal(t, 500.0, report.Totals.Revenue)
	assert.Equal(t, 2, report.Totals.Booked)
	assert.Equal(t, 1, report.Totals.Sales)
}

func TestKPISummaryBadRange(t *testing.T) {
	router := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/kpi/summary?start=not-a-date", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/kpi/summary?start=2024-04-01&end=2024-03-01", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestKPIClosers(t *testing.T) {
	router := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/kpi/closers?start=2024-03-01&end=2024-03-31", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var closers []model.CloserStanding
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &closers))
	require.Len(t, closers, 2)
	assert.Equal(t, "Marta", closers[0].Closer)
}

func TestPlanEndpoint(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(map[string]any{
		"budget": 1000, "days": 10, "product_price": 50, "target_roas": 3,
	})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/plan", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rr.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, 3000.0, out["projected_revenue"])
}

func TestLeadEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/lead?email=ANA%40test.com", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var journey kpi.Journey
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &journey))
	assert.Equal(t, "ana@test.com", journey.Email)
	assert.Equal(t, "Ana L", journey.Name)
	require.NotNil(t, journey.Intake, "intake predates the report month but still shows")
	require.Len(t, journey.Calls, 1)
	assert.Equal(t, 500.0, journey.TotalPaid)
}

func TestLeadEndpointErrors(t *testing.T) {
	router := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/lead", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/lead?email=nadie%40test.com", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCustomersEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/customers", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var ranking []kpi.CustomerStanding
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ranking))
	require.Len(t, ranking, 1, "only closed sales rank")
	assert.Equal(t, "ana@test.com", ranking[0].Email)
	assert.Equal(t, 500.0, ranking[0].Revenue)
}

func TestGoalsRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(model.GoalConfig{RevenueTarget: 42000, AdBudgetTarget: 9000})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/goals", bytes.NewReader(body)))
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/goals", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var goals model.GoalConfig
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &goals))
	assert.Equal(t, 42000.0, goals.RevenueTarget)
}

func TestGoalsRejectNegative(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(model.GoalConfig{RevenueTarget: -5})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/goals", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRunsDisabledWithoutHistory(t *testing.T) {
	router := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/runs", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	// One successful run feeds the counters.
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/kpi/summary?start=2024-03-01&end=2024-03-31", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "funnelcast_report_runs_total 1")
}
