package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/anstrom/scanview/internal/errors"
)

const (
	// Namespace for all scanview metrics
	namespace = "scanview"

	// Subsystems
	subsystemIngest  = "ingest"
	subsystemSession = "session"
	subsystemExport  = "export"
)

// PrometheusRecorder holds the Prometheus collectors for one process.
type PrometheusRecorder struct {
	filesParsed   *prometheus.CounterVec
	parseDuration prometheus.Histogram
	hostsSkipped  prometheus.Counter

	hostsMerged  *prometheus.CounterVec
	sessionHosts prometheus.Gauge

	exports *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewPrometheusRecorder creates a recorder on its own registry.
func NewPrometheusRecorder() *PrometheusRecorder {
	registry := prometheus.NewRegistry()

	pr := &PrometheusRecorder{registry: registry}
	pr.initIngestMetrics()
	pr.initSessionMetrics()
	pr.initExportMetrics()

	registry.MustRegister(
		pr.filesParsed,
		pr.parseDuration,
		pr.hostsSkipped,
		pr.hostsMerged,
		pr.sessionHosts,
		pr.exports,
	)
	registry.MustRegister(collectors.NewGoCollector())

	return pr
}

func (pr *PrometheusRecorder) initIngestMetrics() {
	pr.filesParsed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemIngest,
			Name:      "files_total",
			Help:      "Scan files parsed by status",
		},
		[]string{"status"},
	)

	pr.parseDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystemIngest,
			Name:      "parse_duration_seconds",
			Help:      "Time spent parsing one scan file",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	pr.hostsSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemIngest,
			Name:      "hosts_skipped_total",
			Help:      "Hosts dropped because they have no IPv4 address",
		},
	)
}

func (pr *PrometheusRecorder) initSessionMetrics() {
	pr.hostsMerged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemSession,
			Name:      "hosts_merged_total",
			Help:      "Hosts merged into the session by outcome",
		},
		[]string{"outcome"},
	)

	pr.sessionHosts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystemSession,
			Name:      "hosts",
			Help:      "Hosts currently held by the session",
		},
	)
}

func (pr *PrometheusRecorder) initExportMetrics() {
	pr.exports = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemExport,
			Name:      "total",
			Help:      "Exports by kind and status",
		},
		[]string{"kind", "status"},
	)
}

// Registry returns the registry holding this recorder's collectors.
func (pr *PrometheusRecorder) Registry() *prometheus.Registry {
	return pr.registry
}

func (pr *PrometheusRecorder) FileParsed(status string, duration time.Duration) {
	pr.filesParsed.WithLabelValues(status).Inc()
	pr.parseDuration.Observe(duration.Seconds())
}

func (pr *PrometheusRecorder) HostsSkipped(count int) {
	pr.hostsSkipped.Add(float64(count))
}

func (pr *PrometheusRecorder) HostsMerged(added, updated int) {
	pr.hostsMerged.WithLabelValues("added").Add(float64(added))
	pr.hostsMerged.WithLabelValues("updated").Add(float64(updated))
}

func (pr *PrometheusRecorder) SetSessionHosts(count int) {
	pr.sessionHosts.Set(float64(count))
}

func (pr *PrometheusRecorder) ExportCompleted(kind, status string) {
	pr.exports.WithLabelValues(kind, status).Inc()
}

// WriteTextfile writes the current metrics in text exposition format, for
// node_exporter's textfile collector.
func (pr *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, pr.registry); err != nil {
		return errors.WrapExportError("cannot write metrics textfile", path, err)
	}
	return nil
}
