package telemetry

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotable-api/internal/platform/logging"
)

const (
	instrumentationName = "github.com/jsamuelsen/quotable-api/telemetry"

	// HeaderTraceID carries the active trace id on responses.
	HeaderTraceID = "X-Trace-ID"

	routeUnmatched = "unmatched"
)

// Metrics holds HTTP server metrics.
type Metrics struct {
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
	activeRequests  metric.Int64UpDownCounter
}

// NewMetrics creates HTTP server metrics.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	requestTotal, err := meter.Int64Counter(
		"http.server.request.total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	activeRequests, err := meter.Int64UpDownCounter(
		"http.server.active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		activeRequests:  activeRequests,
	}, nil
}

// promMetrics are scraped from /-/metrics. They are registered once per
// process on the default registry.
type promMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var (
	promOnce sync.Once
	prom     *promMetrics
)

func promCollectors() *promMetrics {
	promOnce.Do(func() {
		prom = &promMetrics{
			requests: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by route and status.",
			}, []string{"service", "method", "route", "status"}),
			duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds.",
				Buckets: prometheus.DefBuckets,
			}, []string{"service", "method", "route"}),
		}
	})

	return prom
}

// Middleware returns Gin middleware recording request metrics through both
// the OpenTelemetry meter and the Prometheus registry. It also echoes the
// active trace id in the X-Trace-ID header and on the request logger.
func Middleware(serviceName string) gin.HandlerFunc {
	// Create metrics - errors are reported but don't prevent the middleware from working
	metrics, err := NewMetrics()
	if err != nil {
		otel.Handle(err)
	}

	pm := promCollectors()

	return func(c *gin.Context) {
		start := time.Now()

		route := c.FullPath()
		if route == "" {
			route = routeUnmatched
		}

		method := c.Request.Method

		if metrics != nil {
			attrs := metric.WithAttributes(
				attribute.String("http.method", method),
				attribute.String("http.route", route),
			)

			metrics.activeRequests.Add(c.Request.Context(), 1, attrs)
			defer metrics.activeRequests.Add(c.Request.Context(), -1, attrs)
		}

		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().HasTraceID() {
			traceID := span.SpanContext().TraceID().String()
			c.Header(HeaderTraceID, traceID)
			c.Request = c.Request.WithContext(logging.WithTraceID(c.Request.Context(), traceID))
		}

		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		pm.requests.WithLabelValues(serviceName, method, route, strconv.Itoa(status)).Inc()
		pm.duration.WithLabelValues(serviceName, method, route).Observe(duration)

		if metrics != nil {
			attrs := metric.WithAttributes(
				attribute.String("http.method", method),
				attribute.String("http.route", route),
				attribute.Int("http.status_code", status),
			)
			metrics.requestDuration.Record(c.Request.Context(), duration, attrs)
			metrics.requestTotal.Add(c.Request.Context(), 1, attrs)
		}
	}
}

// TracingMiddleware returns the otelgin tracing middleware. Internal /-/
// routes are not traced.
func TracingMiddleware(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName,
		otelgin.WithGinFilter(func(c *gin.Context) bool {
			return !strings.HasPrefix(c.Request.URL.Path, "/-/")
		}),
	)
}
