package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric names accepted by PrometheusMetrics
const (
	MetricLedgerMutation     = "ledger_mutation"
	MetricGoalUpsert         = "goal_upsert"
	MetricReportGenerated    = "report_generated"
	MetricReportDuration     = "report_duration"
	MetricReportTransactions = "report_transactions"
)

type PrometheusMetrics struct {
	ledgerMutations    *prometheus.CounterVec
	goalUpserts        *prometheus.CounterVec
	reportsGenerated   *prometheus.CounterVec
	reportDuration     *prometheus.HistogramVec
	reportTransactions *prometheus.HistogramVec
}

// NewPrometheusMetrics registers the service metrics on reg
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsRecorderInterface {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		ledgerMutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_mutations_total",
				Help: "Total number of ledger mutations by operation and outcome",
			},
			[]string{"operation", "status"},
		),
		goalUpserts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goal_upserts_total",
				Help: "Total number of goal upserts by outcome",
			},
			[]string{"outcome"},
		),
		reportsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reports_generated_total",
				Help: "Total number of reports assembled",
			},
			[]string{"report", "status"},
		),
		reportDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "report_duration_milliseconds",
				Help:    "Report assembly duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"report"},
		),
		reportTransactions: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "report_transactions_scanned",
				Help:    "Number of transactions reduced per report",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"report"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case MetricLedgerMutation:
		m.ledgerMutations.WithLabelValues(tags["operation"], tags["status"]).Inc()
	case MetricGoalUpsert:
		if outcome := tags["outcome"]; outcome != "" {
			m.goalUpserts.WithLabelValues(outcome).Inc()
		}
	case MetricReportGenerated:
		m.reportsGenerated.WithLabelValues(tags["report"], tags["status"]).Inc()
	}
}

// RecordProcessingTime expects names of the form report_duration.<report>
func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	if report, ok := metricSuffix(name, MetricReportDuration); ok {
		m.reportDuration.WithLabelValues(report).Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	if name == MetricReportTransactions {
		m.reportTransactions.WithLabelValues(tags["report"]).Observe(value)
	}
}

func metricSuffix(name, prefix string) (string, bool) {
	if len(name) <= len(prefix)+1 || name[:len(prefix)] != prefix || name[len(prefix)] != '.' {
		return "", false
	}
	return name[len(prefix)+1:], true
}
