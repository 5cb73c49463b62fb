package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "petmap",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "petmap",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	// Map metrics
	SessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "petmap",
		Subsystem: "map",
		Name:      "sessions_created_total",
		Help:      "Total map sessions created",
	})

	MarkersGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "petmap",
		Subsystem: "map",
		Name:      "markers_generated_total",
		Help:      "Total markers placed into new sessions",
	}, []string{"source"})

	CategoryToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "petmap",
		Subsystem: "map",
		Name:      "category_toggles_total",
		Help:      "Total category filter toggles",
	}, []string{"category"})

	// Favorites metrics
	FavoritesSaved = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "petmap",
		Subsystem: "favorites",
		Name:      "saved_total",
		Help:      "Total entries saved, by list and outcome",
	}, []string{"list", "outcome"})

	// Catalog metrics
	CatalogEventsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "petmap",
		Subsystem: "catalog",
		Name:      "events_ingested_total",
		Help:      "Total catalog events upserted from feeds",
	})

	CatalogRefreshErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "petmap",
		Subsystem: "catalog",
		Name:      "refresh_errors_total",
		Help:      "Total failed catalog refreshes",
	})

	CatalogRefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "petmap",
		Subsystem: "catalog",
		Name:      "refresh_duration_seconds",
		Help:      "Duration of catalog refreshes",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	})

	// Database pool metrics
	DBPoolConnsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "petmap",
		Subsystem: "db",
		Name:      "pool_conns_open",
		Help:      "Total connections open in the database pool",
	})

	DBPoolConnsAcquired = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "petmap",
		Subsystem: "db",
		Name:      "pool_conns_acquired",
		Help:      "Connections currently acquired from the database pool",
	})

	DBPoolConnsIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "petmap",
		Subsystem: "db",
		Name:      "pool_conns_idle",
		Help:      "Idle connections in the database pool",
	})
)

// Middleware records request count and latency per chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

type poolStat interface {
	AcquiredConns() int32
	IdleConns() int32
	TotalConns() int32
}

// UpdateDBPoolMetrics copies pgxpool.Stat counters into the pool gauges.
func UpdateDBPoolMetrics(s poolStat) {
	DBPoolConnsAcquired.Set(float64(s.AcquiredConns()))
	DBPoolConnsIdle.Set(float64(s.IdleConns()))
	DBPoolConnsOpen.Set(float64(s.TotalConns()))
}
