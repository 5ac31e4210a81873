package server

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/cloud-ru/finplan-go/internal/config"
	"github.com/cloud-ru/finplan-go/internal/logging"
	"github.com/cloud-ru/finplan-go/internal/planner"
	"github.com/cloud-ru/finplan-go/internal/tools"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		MaxPrincipal:    1e10,
		MaxContribution: 1e8,
		MaxYears:        100,
		MaxRate:         100,
		MaxBalanceCap:   1e13,
		MaxEntries:      50,
		PlanProvider:    config.PlanProviderLocal,
	}
	registry := tools.Registry(cfg, noop.NewTracerProvider().Tracer("test"), planner.NewLocalGenerator())
	srv := New(registry, logging.NewWithOutput("error", io.Discard))

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) (*http.Response, map[string]interface{}) {
	t.Helper()

	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
}

func TestListTools(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/tools")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Tools []string `json:"tools"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Tools, 8)
	assert.Contains(t, body.Tools, tools.ToolSIP)
}

func TestCallTool(t *testing.T) {
	ts := newTestServer(t)

	resp, body := post(t, ts.URL+"/api/v1/tools/sip_calculator",
		`{"monthly_contribution": 5000, "annual_rate_percent": 12, "years": 10}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, tools.ToolSIP, body["tool"])

	result, ok := body["result"].(map[string]interface{})
	require.True(t, ok)
	assert.InDelta(t, 1161695.38, result["future_value"], 0.01)
}

func TestRequestIDIsEchoed(t *testing.T) {
	ts := newTestServer(t)
	const id = "8a6e0804-2bd0-4672-b79d-d97027f9071a"

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, id)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, id, resp.Header.Get(RequestIDHeader))
}

func TestCallToolErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"unknown tool", "/api/v1/tools/nope", `{}`, http.StatusNotFound},
		{"malformed body", "/api/v1/tools/sip_calculator", `{"years":`, http.StatusBadRequest},
		{"invalid params", "/api/v1/tools/compound_growth", `{"principal": -1, "annual_rate_percent": 10, "years": 5}`, http.StatusBadRequest},
		{"insufficient input", "/api/v1/tools/compound_growth", `{"principal": 1000, "annual_rate_percent": 0, "years": 5}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := post(t, ts.URL+tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, float64(tt.status), body["status"])
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestWrongMethod(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/tools/sip_calculator")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
