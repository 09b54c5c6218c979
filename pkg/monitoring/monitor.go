package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// 模块完成次数，按课程主题
	ModulesCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "modules_completed_total",
			Help: "Number of course modules marked complete",
		},
		[]string{"theme"},
	)

	CoursesCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courses_completed_total",
			Help: "Number of courses that reached 100% completion",
		},
		[]string{"theme"},
	)

	CoursesPromoted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "courses_promoted_total",
			Help: "Upcoming courses switched to active by the scheduler",
		},
	)
)

var initOnce sync.Once

// Init 可重复调用，只注册一次
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(ModulesCompleted)
		prometheus.MustRegister(CoursesCompleted)
		prometheus.MustRegister(CoursesPromoted)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
