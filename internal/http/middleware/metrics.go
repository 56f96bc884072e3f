package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "studio"

// unmatchedRoute is the route label for requests no handler matched. Scanner
// traffic (/wp-login.php, /.env, ...) all lands on this one series.
const unmatchedRoute = "unmatched"

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 15},
	}, []string{"method", "route"})

	requestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "http_requests_in_flight",
		Help:      "Requests currently being served.",
	})

	responseBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "http_response_size_bytes",
		Help:      "Size of HTTP response bodies.",
		Buckets:   prometheus.ExponentialBuckets(256, 4, 8), // 256B..4MiB
	}, []string{"method", "route"})

	// uploadBytes is observed by UploadGuard for every accepted file.
	uploadBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "upload_size_bytes",
		Help:      "Size of accepted uploads by form field.",
		Buckets:   prometheus.ExponentialBuckets(16<<10, 4, 7), // 16KiB..64MiB
	}, []string{"field"})

	chatbotReplies = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "chatbot_replies_total",
		Help:      "Chatbot proxy replies by outcome.",
	}, []string{"outcome"})
)

// Chatbot reply outcomes.
const (
	OutcomeUpstream    = "upstream"
	OutcomeFallback    = "fallback"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

// ObserveChatbotReply counts one chatbot proxy reply.
func ObserveChatbotReply(outcome string) {
	chatbotReplies.WithLabelValues(outcome).Inc()
}

func routeLabel(c *gin.Context) string {
	if r := c.FullPath(); r != "" {
		return r
	}
	return unmatchedRoute
}

// Metrics records count, latency and response size per route pattern. Expose
// the default registry next to it:
//
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestsInFlight.Inc()
		start := time.Now()

		c.Next()

		requestsInFlight.Dec()
		method, route := c.Request.Method, routeLabel(c)
		requestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		if n := c.Writer.Size(); n >= 0 {
			responseBytes.WithLabelValues(method, route).Observe(float64(n))
		}
	}
}
