package router

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/ryanuber/go-glob"
)

var metrics = []prometheus.Collector{
	requestCount,
	requestDuration,
}

// registerPrometheusMetrics registers all Prometheus metrics with the
// default registry. Metrics that are already registered are kept, this
// happens when multiple router instances are configured in the same
// process.
func registerPrometheusMetrics() {
	for _, c := range metrics {
		if err := prometheus.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}

			log.Error().Err(err).Msg("could not register Prometheus collector")
		}
	}
}

var requestCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "requests_total",
		Help: "How many HTTP requests processed, partitioned by status code and HTTP method.",
	},
	[]string{"code", "method", "url"},
)

var requestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "request_duration_seconds",
		Help: "The HTTP request latencies in seconds.",
	},
	[]string{"code", "method", "url"},
)

// MetricsMiddleware updates Prometheus metrics.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		elapsed := float64(time.Since(start)) / float64(time.Second)

		// Replace all URL parameters with their name to reduce cardinality
		// https://prometheus.io/docs/practices/naming/#labels
		url := c.Request.URL.Path
		for _, p := range c.Params {
			url = strings.Replace(url, p.Value, fmt.Sprintf(":%s", p.Key), 1)
		}

		requestDuration.WithLabelValues(status, c.Request.Method, url).Observe(elapsed)
		requestCount.WithLabelValues(status, c.Request.Method, url).Inc()
	}
}

// CORSMiddleware returns the CORS middleware configured from the
// CORS_ALLOW_ORIGINS environment variable, a space separated list of
// origins. Origins can contain the * wildcard. Returns false when the
// variable is not set, CORS is disabled then.
func CORSMiddleware() (gin.HandlerFunc, bool) {
	allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if !ok {
		return nil, false
	}

	log.Debug().Str("CORS Allowed Origins", allowOrigins).Msg("Router")
	patterns := strings.Fields(allowOrigins)

	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			for _, pattern := range patterns {
				if glob.Glob(pattern, origin) {
					return true
				}
			}
			return false
		},
		AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}), true
}
