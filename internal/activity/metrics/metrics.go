package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for activity log ingestion and queries.
type Metrics struct {
	RecordsLoaded   prometheus.Gauge
	MalformedRows   prometheus.Counter
	DuplicateIDs    prometheus.Counter
	LoadsTotal      *prometheus.CounterVec
	LoadDuration    prometheus.Histogram
	QueriesTotal    *prometheus.CounterVec
	QueryDuration   prometheus.Histogram
	FilteredRecords prometheus.Histogram
}

// New registers the activity metrics with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the activity metrics with reg. Tests pass a
// fresh prometheus.NewRegistry() to avoid duplicate registration.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RecordsLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Name: "logsviewer_activity_records_loaded",
			Help: "Number of activity records in the current record set",
		}),
		MalformedRows: factory.NewCounter(prometheus.CounterOpts{
			Name: "logsviewer_activity_malformed_rows_total",
			Help: "Total number of CSV rows dropped because they could not be mapped",
		}),
		DuplicateIDs: factory.NewCounter(prometheus.CounterOpts{
			Name: "logsviewer_activity_duplicate_ids_total",
			Help: "Total number of record ids seen more than once in a load",
		}),
		LoadsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "logsviewer_activity_loads_total",
			Help: "Total record set loads by outcome",
		}, []string{"outcome"}), // outcome: "success", "unavailable", "error"
		LoadDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "logsviewer_activity_load_duration_seconds",
			Help:    "Duration of fetch, parse and decomposition of the record set",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		QueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "logsviewer_activity_queries_total",
			Help: "Total page queries by whether a search term was given",
		}, []string{"search"}), // search: "true", "false"
		QueryDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "logsviewer_activity_query_duration_seconds",
			Help:    "Duration of filter, page and highlight for one query",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
		FilteredRecords: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "logsviewer_activity_filtered_records",
			Help:    "Number of records matching a search term",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
}

func (m *Metrics) ObserveLoad(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.LoadsTotal.WithLabelValues(outcome).Inc()
	m.LoadDuration.Observe(d.Seconds())
}

func (m *Metrics) SetRecordsLoaded(n int) {
	if m != nil {
		m.RecordsLoaded.Set(float64(n))
	}
}

func (m *Metrics) AddMalformedRows(n int) {
	if m != nil && n > 0 {
		m.MalformedRows.Add(float64(n))
	}
}

func (m *Metrics) AddDuplicateIDs(n int) {
	if m != nil && n > 0 {
		m.DuplicateIDs.Add(float64(n))
	}
}

func (m *Metrics) ObserveQuery(searched bool, filtered int, d time.Duration) {
	if m == nil {
		return
	}
	label := "false"
	if searched {
		label = "true"
		m.FilteredRecords.Observe(float64(filtered))
	}
	m.QueriesTotal.WithLabelValues(label).Inc()
	m.QueryDuration.Observe(d.Seconds())
}
