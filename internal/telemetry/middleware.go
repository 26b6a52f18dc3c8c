package telemetry

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// HTTPMetricsMeterName is the name used for the HTTP metrics meter
const HTTPMetricsMeterName = "github.com/synclab/metasync/http"

const (
	unknownRoute    = "unknown_route"
	apiPrefix       = "/api/v1/"
	resourceNonAPI  = "none"
	httpSizeBuckets = 6
)

// HTTPMetrics records the requests served by the REST API. Every data point is tagged
// with the API resource (rules, modules, instances, reports, stores) so dashboards can
// split traffic without parsing routes.
type HTTPMetrics struct {
	duration      metric.Float64Histogram
	requests      metric.Int64Counter
	inFlight      metric.Int64UpDownCounter
	responseBytes metric.Int64Histogram
}

// NewHTTPMetrics creates the HTTP instruments. A nil provider yields nil, whose
// Middleware passes requests through.
func NewHTTPMetrics(provider metric.MeterProvider) (*HTTPMetrics, error) {
	if provider == nil {
		return nil, nil
	}
	meter := provider.Meter(HTTPMetricsMeterName)

	m := &HTTPMetrics{}
	var err error
	if m.duration, err = meter.Float64Histogram(
		"metasync_http_request_duration_seconds",
		metric.WithDescription("Duration of API requests in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30),
	); err != nil {
		return nil, err
	}
	if m.requests, err = meter.Int64Counter(
		"metasync_http_requests_total",
		metric.WithDescription("API requests by resource, route and status"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, err
	}
	if m.inFlight, err = meter.Int64UpDownCounter(
		"metasync_http_active_requests",
		metric.WithDescription("API requests being served"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, err
	}
	if m.responseBytes, err = meter.Int64Histogram(
		"metasync_http_response_size_bytes",
		metric.WithDescription("Size of API response bodies"),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(sizeBuckets()...),
	); err != nil {
		return nil, err
	}
	return m, nil
}

// sizeBuckets grows by a factor of 10 from 100 bytes, report listings can be large
func sizeBuckets() []float64 {
	out := make([]float64, 0, httpSizeBuckets)
	for b := 100.0; len(out) < httpSizeBuckets; b *= 10 {
		out = append(out, b)
	}
	return out
}

// Middleware records duration, count, in-flight requests and response size of every request
func (m *HTTPMetrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		m.inFlight.Add(ctx, 1)
		defer m.inFlight.Add(ctx, -1)

		next.ServeHTTP(ww, r)

		route := getRoutePattern(r)
		opt := metric.WithAttributes(
			attribute.String("method", r.Method),
			attribute.String("route", route),
			attribute.String("resource", resourceOf(route)),
			attribute.String("status_code", strconv.Itoa(ww.Status())),
		)
		m.duration.Record(ctx, time.Since(start).Seconds(), opt)
		m.requests.Add(ctx, 1, opt)
		m.responseBytes.Record(ctx, int64(ww.BytesWritten()), opt)
	})
}

// resourceOf returns the first segment after /api/v1/ of a route pattern, "none" for
// routes outside the API such as /health
func resourceOf(route string) string {
	rest, ok := strings.CutPrefix(route, apiPrefix)
	if !ok || rest == "" {
		return resourceNonAPI
	}
	resource, _, _ := strings.Cut(rest, "/")
	return resource
}

// getRoutePattern returns the chi route pattern of the request. The pattern keeps
// ids out of the attributes.
func getRoutePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
		return rctx.RoutePattern()
	}
	return unknownRoute
}
