package telemetry

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	httpDur = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	Evaluations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mixture_evaluations_total",
			Help: "Total mixture evaluations by classification",
		},
		[]string{"classification"},
	)
	InvalidInputs = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mixture_invalid_inputs_total",
		Help: "Evaluation requests rejected for invalid input",
	})
	FiO2Observed = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "mixture_fio2_percent",
		Help:    "Distribution of computed FiO2 percentages",
		Buckets: prometheus.LinearBuckets(10, 10, 10),
	})
	ThresholdUpdates = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "threshold_updates_total",
		Help: "Number of accepted threshold updates",
	})
)

func Init() {
	prometheus.MustRegister(httpReqs, httpDur, Evaluations, InvalidInputs, FiO2Observed, ThresholdUpdates)
}

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// get route pattern if available
		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}

		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(ww, r)

		httpReqs.WithLabelValues(route, r.Method, http.StatusText(ww.status)).Inc()
		httpDur.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
