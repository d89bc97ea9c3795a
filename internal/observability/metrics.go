package observability

import (
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/Roblokonha/StudyVault/internal/platform/envutil"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
)

// Metrics holds the process counters exposed in Prometheus text format.
// Every method is safe on a nil receiver so callers never branch on METRICS_ENABLED.
type Metrics struct {
	apiRequests  *CounterVec
	apiLatency   *HistogramVec
	apiInflight  *Gauge
	merges       *CounterVec
	exports      *CounterVec
	recallQuests *CounterVec
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	return envutil.Bool("METRICS_ENABLED", false)
}

// Current returns the process instance, or nil when metrics are disabled.
func Current() *Metrics {
	return instance
}

func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		return nil
	}
	initOnce.Do(func() {
		instance = NewMetrics()
		if log != nil {
			log.Info("metrics initialized")
		}
	})
	return instance
}

func NewMetrics() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("sv_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"sv_api_request_duration_seconds",
			"API request latency in seconds by method/route/status.",
			[]string{"method", "route", "status"},
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		),
		apiInflight:  NewGauge("sv_api_inflight_requests", "In-flight API requests."),
		merges:       NewCounterVec("sv_workspace_merges_total", "Node merges by outcome code.", []string{"outcome"}),
		exports:      NewCounterVec("sv_graph_exports_total", "Graph exports by format and cache result.", []string{"format", "cache"}),
		recallQuests: NewCounterVec("sv_recall_questions_total", "Fill-in-the-blank generation attempts by result.", []string{"result"}),
	}
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	writers := []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests, m.apiLatency, m.apiInflight, m.merges, m.exports, m.recallQuests,
	}
	for _, wr := range writers {
		if err := wr.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route, status)
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

// IncMerge records a merge attempt; outcome is "ok" or the error code.
func (m *Metrics) IncMerge(outcome string) {
	if m == nil {
		return
	}
	m.merges.Inc(outcome)
}

func (m *Metrics) IncExport(format string, cacheHit bool) {
	if m == nil {
		return
	}
	cache := "miss"
	if cacheHit {
		cache = "hit"
	}
	m.exports.Inc(format, cache)
}

func (m *Metrics) IncRecallQuestion(generated bool) {
	if m == nil {
		return
	}
	result := "none"
	if generated {
		result = "generated"
	}
	m.recallQuests.Inc(result)
}
