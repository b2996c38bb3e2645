package observability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"offerwall-sdk/pkg/offerwall"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "offerwall_gateway_requests_total",
			Help: "Total gateway requests",
		}, []string{"code"},
	)
	Latency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "offerwall_gateway_request_duration_seconds",
		Help:    "Gateway request latency seconds",
		Buckets: prometheus.DefBuckets,
	})
	InFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "offerwall_gateway_in_flight",
		Help: "In-flight HTTP requests",
	})
	FeedFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "offerwall_feed_fetches_total",
			Help: "Upstream feed fetches by outcome",
		}, []string{"outcome"},
	)
	FeedLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "offerwall_feed_fetch_duration_seconds",
		Help:    "Upstream feed fetch latency seconds",
		Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	})
	FeedOffers = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "offerwall_feed_offers",
		Help:    "Offers per decoded feed",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal, Latency, InFlight, FeedFetches, FeedLatency, FeedOffers)
}

func MetricsHandler() http.Handler { return promhttp.Handler() }

// Outcome labels a FetchFeed result.
func Outcome(err error) string {
	var (
		cfgErr       *offerwall.ConfigurationError
		reqErr       *offerwall.RequestError
		signErr      *offerwall.SigningError
		transportErr *offerwall.TransportError
		decodeErr    *offerwall.DecodeError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &cfgErr):
		return "configuration"
	case errors.As(err, &reqErr):
		return "invalid_request"
	case errors.As(err, &signErr):
		return "signing"
	case errors.As(err, &transportErr):
		return "transport"
	case errors.As(err, &decodeErr):
		return "decode"
	default:
		return "unknown"
	}
}

// ObserveFeedFetch records one upstream feed call.
func ObserveFeedFetch(start time.Time, offers int, err error) {
	FeedFetches.WithLabelValues(Outcome(err)).Inc()
	FeedLatency.Observe(time.Since(start).Seconds())
	if err == nil {
		FeedOffers.Observe(float64(offers))
	}
}

type rec struct {
	http.ResponseWriter
	code int
}

func (r *rec) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func Measure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		InFlight.Inc()
		defer InFlight.Dec()

		rr := &rec{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rr, r)

		Latency.Observe(time.Since(start).Seconds())
		RequestsTotal.WithLabelValues(strconv.Itoa(rr.code)).Inc()
	})
}
