package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SergeyBogomolovv/order-orchestrator/internal/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	recorder := useSpanRecorder(t)

	testCases := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "success", status: http.StatusOK, wantLevel: "INFO"},
		{name: "client error", status: http.StatusNotFound, wantLevel: "INFO"},
		{name: "server error", status: http.StatusBadGateway, wantLevel: "ERROR"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(telemetry.NewContextHandler(slog.NewJSONHandler(&buf, nil)))

			r := chi.NewRouter()
			r.Use(Tracing)
			r.Use(Logger(logger))
			r.Get("/v1/orders/{order_id}", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			})

			req := httptest.NewRequest(http.MethodGet, "/v1/orders/5", nil)
			req.Header.Set("traceparent", incomingTraceparent)
			r.ServeHTTP(httptest.NewRecorder(), req)

			var record map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
			assert.Equal(t, "request", record["msg"])
			assert.Equal(t, tc.wantLevel, record["level"])
			assert.Equal(t, float64(tc.status), record["status"])
			assert.Equal(t, "/v1/orders/{order_id}", record["route"])
			assert.Equal(t, "/v1/orders/5", record["path"])
			assert.Equal(t, "0af7651916cd43dd8448eb211c80319c", record["trace_id"])

			spans := recorder.Ended()
			require.NotEmpty(t, spans)
			assert.Equal(t, spans[len(spans)-1].SpanContext().SpanID().String(), record["span_id"])
		})
	}
}

func TestLogger_UnmatchedRoute(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := chi.NewRouter()
	r.Use(Logger(logger))
	r.Get("/v1/orders/{order_id}", func(http.ResponseWriter, *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, float64(http.StatusNotFound), record["status"])
	assert.Equal(t, unmatchedRoute, record["route"])
}
