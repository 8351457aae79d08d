package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the payroll collectors exposed on /metrics.
type Metrics struct {
	StatementsGenerated *prometheus.CounterVec
	GenerationDuration  *prometheus.HistogramVec
	DBQueryDuration     *prometheus.HistogramVec
}

// NewMetrics registers every collector with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		StatementsGenerated: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "payroll_statements_generated_total",
			Help: "Total pay statements computed, by operation and outcome.",
		}, []string{"operation", "status"}),
		GenerationDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "payroll_generation_duration_seconds",
			Help:    "Time spent loading data and computing statements.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}), // operation: 'statement', 'roster', 'annual'
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "payroll_db_query_duration_seconds",
			Help:    "Duration of database queries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query_type"}),
	}

	for _, op := range []string{"statement", "roster", "annual"} {
		metrics.StatementsGenerated.WithLabelValues(op, "success")
		metrics.StatementsGenerated.WithLabelValues(op, "failure")
	}

	return metrics
}

// ObserveQuery records a query duration. A nil receiver is a no-op so
// repositories can run without metrics in tests.
func (m *Metrics) ObserveQuery(queryType string, seconds float64) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(queryType).Observe(seconds)
}

// ObserveGeneration records one generation outcome.
func (m *Metrics) ObserveGeneration(operation string, count int, seconds float64, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
		count = 1
	}
	m.StatementsGenerated.WithLabelValues(operation, status).Add(float64(count))
	m.GenerationDuration.WithLabelValues(operation).Observe(seconds)
}
