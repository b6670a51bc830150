package middleware

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/go-chi/chi/v5"
)

// Metrics records request count and latency per route.
func Metrics(next http.Handler) http.Handler {
	meter := otel.Meter("storeroute/api")

	requestCounter, _ := meter.Int64Counter("http.server.request.count",
		metric.WithDescription("Number of HTTP requests"))
	requestDuration, _ := meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := newStatusRecorder(w)

		next.ServeHTTP(wrapped, r)

		routePattern := chi.RouteContext(r.Context()).RoutePattern()
		if routePattern == "" {
			routePattern = r.URL.Path
		}

		attrs := metric.WithAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.route", routePattern),
			attribute.Int("http.status_code", wrapped.statusCode),
		)

		requestCounter.Add(r.Context(), 1, attrs)
		requestDuration.Record(r.Context(), time.Since(start).Seconds(), attrs)
	})
}
