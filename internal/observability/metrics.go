package observability

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"avweather/internal/metar"
)

const namespace = "avweather"

// Metrics holds the Prometheus counters for one extraction run.
type Metrics struct {
	LinesRead      prometheus.Counter
	LineErrors     prometheus.Counter
	Messages       *prometheus.CounterVec // labels: kind={envelope,flat,nested,raw}
	ReportsFound   prometheus.Counter
	ReportsParsed  prometheus.Counter
	ReportsFailed  *prometheus.CounterVec // labels: reason={not_report,nil_with_body,missing_visibility,other}
	ReportsPerMsg  prometheus.Histogram
	LastRunSuccess prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates the run metrics on a private registry, so a run can
// be written out as a node-exporter textfile without process metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		LinesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_read_total",
			Help:      "Total input lines read.",
		}),
		LineErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "line_errors_total",
			Help:      "Input lines that could not be decoded.",
		}),
		Messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "Decoded feed messages by input format.",
		}, []string{"kind"}),
		ReportsFound: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_found_total",
			Help:      "METAR and SPECI reports located in message text.",
		}),
		ReportsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_parsed_total",
			Help:      "Reports decoded without error.",
		}),
		ReportsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_failed_total",
			Help:      "Reports rejected by the decoder, by reason.",
		}, []string{"reason"}),
		ReportsPerMsg: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reports_per_message",
			Help:      "Number of reports found per message.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		}),
		LastRunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_success",
			Help:      "1 when the last run read its whole input, 0 otherwise.",
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.LinesRead,
		m.LineErrors,
		m.Messages,
		m.ReportsFound,
		m.ReportsParsed,
		m.ReportsFailed,
		m.ReportsPerMsg,
		m.LastRunSuccess,
	)

	return m
}

// ObserveReport counts one decoded or rejected report.
func (m *Metrics) ObserveReport(err error) {
	m.ReportsFound.Inc()
	if err == nil {
		m.ReportsParsed.Inc()
		return
	}
	m.ReportsFailed.WithLabelValues(Reason(err)).Inc()
}

// Reason maps a decoder error to a metric label.
func Reason(err error) string {
	switch {
	case errors.Is(err, metar.ErrNotReport):
		return "not_report"
	case errors.Is(err, metar.ErrNilWithBody):
		return "nil_with_body"
	case errors.Is(err, metar.ErrMissingVisibility):
		return "missing_visibility"
	default:
		return "other"
	}
}

// Gatherer exposes the private registry.
func (m *Metrics) Gatherer() prometheus.Gatherer { return m.registry }

// WriteTextfile writes the metrics in text exposition format for the
// node-exporter textfile collector. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
