package monitoring

import (
	"database/sql"
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
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	QuestsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quests_created_total",
			Help: "Number of quests stored successfully",
		},
	)
)

var registerOnce sync.Once

// Init registers the collectors once; later calls are no-ops.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter, RequestDuration, QuestsCreated)
	})
}

// RegisterDBStats exposes the connection pool statistics of db.
func RegisterDBStats(db *sql.DB) error {
	return prometheus.Register(newDBStatsCollector(db))
}

type dbStatsCollector struct {
	db *sql.DB

	openConnections *prometheus.Desc
	inUse           *prometheus.Desc
	idle            *prometheus.Desc
	waitCount       *prometheus.Desc
	waitDuration    *prometheus.Desc
}

func newDBStatsCollector(db *sql.DB) *dbStatsCollector {
	return &dbStatsCollector{
		db:              db,
		openConnections: prometheus.NewDesc("db_open_connections", "Established connections, in use and idle", nil, nil),
		inUse:           prometheus.NewDesc("db_in_use_connections", "Connections currently in use", nil, nil),
		idle:            prometheus.NewDesc("db_idle_connections", "Idle connections", nil, nil),
		waitCount:       prometheus.NewDesc("db_wait_count_total", "Connections waited for", nil, nil),
		waitDuration:    prometheus.NewDesc("db_wait_duration_seconds_total", "Time blocked waiting for a connection", nil, nil),
	}
}

func (c *dbStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.openConnections
	ch <- c.inUse
	ch <- c.idle
	ch <- c.waitCount
	ch <- c.waitDuration
}

func (c *dbStatsCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.db.Stats()
	ch <- prometheus.MustNewConstMetric(c.openConnections, prometheus.GaugeValue, float64(stats.OpenConnections))
	ch <- prometheus.MustNewConstMetric(c.inUse, prometheus.GaugeValue, float64(stats.InUse))
	ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(stats.Idle))
	ch <- prometheus.MustNewConstMetric(c.waitCount, prometheus.CounterValue, float64(stats.WaitCount))
	ch <- prometheus.MustNewConstMetric(c.waitDuration, prometheus.CounterValue, stats.WaitDuration.Seconds())
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
