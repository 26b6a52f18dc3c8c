package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestHTTPMetrics_NilPassesThrough(t *testing.T) {
	t.Parallel()

	metrics, err := NewHTTPMetrics(nil)
	require.NoError(t, err)
	require.Nil(t, metrics)

	wrapped := metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	wrapped.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)
}

func TestHTTPMetrics_RecordsRoutePattern(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	metrics, err := NewHTTPMetrics(mp)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Get("/api/v1/rules/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/rules/abc", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	data := collect(t, reader, HTTPMetricsMeterName)
	requests, ok := data["metasync_http_requests_total"].(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, requests.DataPoints, 1)

	attrs := requests.DataPoints[0].Attributes
	route, _ := attrs.Value(attribute.Key("route"))
	status, _ := attrs.Value(attribute.Key("status_code"))
	resource, _ := attrs.Value(attribute.Key("resource"))
	assert.Equal(t, "/api/v1/rules/{id}", route.AsString())
	assert.Equal(t, "404", status.AsString())
	assert.Equal(t, "rules", resource.AsString())

	sizes, ok := data["metasync_http_response_size_bytes"].(metricdata.Histogram[int64])
	require.True(t, ok)
	require.Len(t, sizes.DataPoints, 1)
	assert.Equal(t, int64(len(`{"id":"abc"}`)), sizes.DataPoints[0].Sum)

	active, ok := data["metasync_http_active_requests"].(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, active.DataPoints, 1)
	assert.Equal(t, int64(0), active.DataPoints[0].Value)
}

func TestResourceOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		route string
		want  string
	}{
		{route: "/api/v1/rules", want: "rules"},
		{route: "/api/v1/instances/{id}/mapping", want: "instances"},
		{route: "/api/v1/stores/{id}/packages", want: "stores"},
		{route: "/api/v1/", want: "none"},
		{route: "/health", want: "none"},
		{route: "unknown_route", want: "none"},
	}

	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, resourceOf(tt.route))
		})
	}
}

func TestSizeBuckets(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []float64{100, 1000, 10000, 100000, 1e6, 1e7}, sizeBuckets())
}

func TestGetRoutePattern_Unrouted(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unknown_route", getRoutePattern(httptest.NewRequest(http.MethodGet, "/x", nil)))
}
