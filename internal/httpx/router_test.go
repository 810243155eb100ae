package httpx

import (
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/adspend/internal/analysis"
)

const sampleBody = `{
	"rawData":[{"Nom de la campagne":"C1","Montant dépensé":"1000","clics":"50","achats":"5","impressions":"2000"}],
	"businessContext":{"revenueTotal":20000,"campaignDays":10,"dailyBudget":500,"productPrice":2000}
}`

func newTestRouter(maxBody int64) http.Handler {
	log := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewRouter(log, analysis.New(analysis.WithLogger(log)), Options{MaxBodyBytes: maxBody})
}

func post(t *testing.T, h http.Handler, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec, out
}

func TestHealthProbes(t *testing.T) {
	h := newTestRouter(0)
	for path, want := range map[string]string{"/healthz": "ok", "/readyz": "ready"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, want, rec.Body.String())
	}
}

func TestAnalyzeSuccess(t *testing.T) {
	h := newTestRouter(0)
	for _, path := range []string{"/analyze", "/api/analyze"} {
		rec, out := post(t, h, path, sampleBody)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

		assert.Equal(t, true, out["success"])
		summary := out["summary"].(map[string]any)
		assert.Equal(t, "SCALE", summary["decision"])
		stats := out["stats"].(map[string]any)
		assert.Equal(t, 1000.0, stats["spendFCFA"])
		assert.Equal(t, 200.0, stats["cpaFCFA"])
		assert.Equal(t, 20.0, stats["roas"])
		assert.Contains(t, out, "aiNarrative")
		assert.Nil(t, out["aiNarrative"])
		md := out["metadata"].(map[string]any)
		assert.EqualValues(t, 1, md["rowCount"])
	}
}

func TestAnalyzeInputErrors(t *testing.T) {
	h := newTestRouter(0)
	ctx := `"businessContext":{"revenueTotal":1,"campaignDays":1,"dailyBudget":1,"productPrice":1}`
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"malformed", `{"rawData":[`, "invalid request body"},
		{"empty data", `{"rawData":[],` + ctx + `}`, "no data detected"},
		{"no context", `{"rawData":[{"Spend":1}]}`, "incomplete business context"},
		{"zero signal", `{"rawData":[{"Spend":0},{"Clicks":"abc"}],` + ctx + `}`, "no exploitable rows"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, out := post(t, h, "/analyze", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, false, out["success"])
			assert.Contains(t, out["error"], tt.msg)
		})
	}
}

func TestAnalyzeNoExploitableRowsMessage(t *testing.T) {
	h := newTestRouter(0)
	body := `{"rawData":[{"Spend":0}],"businessContext":{"revenueTotal":1,"campaignDays":1,"dailyBudget":1,"productPrice":1}}`
	rec, out := post(t, h, "/analyze", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, analysis.ErrNoExploitableRows.Error(), out["error"])
}

func TestAnalyzeHugeCells(t *testing.T) {
	h := newTestRouter(0)
	body := `{
		"rawData":[{"Campaign":"A","Clicks":1e308},{"Campaign":"B","Clicks":1e308},{"Campaign":"C","Spend":"100000000000000000"}],
		"businessContext":{"revenueTotal":20000,"campaignDays":10,"dailyBudget":500,"productPrice":2000}
	}`
	rec, out := post(t, h, "/analyze", body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["success"])

	stats := out["stats"].(map[string]any)
	assert.Equal(t, math.MaxFloat64, stats["clicks"])
	assert.Equal(t, 1e17, stats["spendFCFA"])
	summary := out["summary"].(map[string]any)
	assert.Less(t, summary["profitFCFA"].(float64), 0.0)
	assert.Equal(t, "deficit", summary["verdict"])
}

func TestWriteJSONUnencodable(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]float64{"x": math.Inf(1)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, false, out["success"])
	assert.Equal(t, internalErrorMessage, out["error"])
}

func TestAnalyzeBodyTooLarge(t *testing.T) {
	h := newTestRouter(16)
	rec, out := post(t, h, "/analyze", sampleBody)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request body", out["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(0)
	post(t, h, "/analyze", sampleBody)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "adspend_analyses_total")
	assert.Contains(t, rec.Body.String(), "adspend_http_request_duration_seconds")
}

func TestCORSPreflight(t *testing.T) {
	h := newTestRouter(0)
	req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
