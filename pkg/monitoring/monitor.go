package monitoring

import (
	"strconv"
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

	ExamGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exam_generated_total",
			Help: "Number of generated exams by grade",
		},
		[]string{"grade"},
	)

	ExamQuestionShortfall = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "exam_question_shortfall_total",
			Help: "Questions that could not be generated due to insufficient hanzi data",
		},
	)

	AIBatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ai_batch_duration_seconds",
			Help:    "Duration of batched AI generation calls",
			Buckets: []float64{1, 2, 5, 10, 30, 60},
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(ExamGenerated)
	prometheus.MustRegister(ExamQuestionShortfall)
	prometheus.MustRegister(AIBatchDuration)
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
