package metrics

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

var (
	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_upstream_requests_total",
			Help: "Total number of requests sent to the catalog API.",
		},
		[]string{"code", "method", "endpoint"},
	)
	upstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_upstream_request_duration_seconds",
			Help:    "Duration of catalog API requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
	upstreamRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_upstream_requests_in_flight",
			Help: "Current number of catalog API requests awaiting a response.",
		},
	)

	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_lookups_total",
			Help: "Descriptor cache lookups by result.",
		},
		[]string{"result"},
	)
	staleResponses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_stale_responses_total",
			Help: "Fetch results discarded because a newer descriptor was issued.",
		},
	)
	fetchCycles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_fetch_cycles_total",
			Help: "Settled fetch cycles by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		slog.Debug("ProcessCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}

	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		slog.Debug("GoCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}
}

// Transport counts and times every outbound request. endpoint labels the
// route ("products", "product", "auth") so ids do not explode cardinality.
type Transport struct {
	Base     http.RoundTripper
	Endpoint func(*http.Request) string
}

func (t *Transport) RoundTrip(r *http.Request) (*http.Response, error) {

	start := time.Now()
	upstreamRequestsInFlight.Inc()
	defer upstreamRequestsInFlight.Dec()

	endpoint := "other"
	if t.Endpoint != nil {
		endpoint = t.Endpoint(r)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(r)

	code := "error"
	if err == nil {
		code = strconv.Itoa(resp.StatusCode)
	}

	upstreamRequestsTotal.WithLabelValues(code, r.Method, endpoint).Inc()
	upstreamRequestDuration.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())

	return resp, err
}

func CacheHit()  { cacheLookups.WithLabelValues("hit").Inc() }
func CacheMiss() { cacheLookups.WithLabelValues("miss").Inc() }

func StaleResponse() { staleResponses.Inc() }

func FetchCycle(outcome string) { fetchCycles.WithLabelValues(outcome).Inc() }

// Dump writes every registered metric family in the Prometheus text format.
func Dump(w io.Writer, g prometheus.Gatherer) error {

	if g == nil {
		g = prometheus.DefaultGatherer
	}

	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to encode metric %s: %w", mf.GetName(), err)
		}
	}

	return nil
}
