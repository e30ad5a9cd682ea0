package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const job = "tidechart"

var (
	fetchLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:      "fetch_latency",
			Subsystem: "tidechart",
			Help:      "Tide page fetch latencies in seconds.",
			Buckets:   []float64{0.01, 0.1, 0.2, 0.4, 0.8, 1.0, 2.0, 4.0, 8.0, 16.0, 32.0},
		},
		[]string{"code"},
	)

	tablesExtracted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name:      "tables_extracted_total",
			Subsystem: "tidechart",
			Help:      "HTML tables parsed into combined tables.",
		},
	)

	malformedTimestamps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "malformed_timestamps_total",
			Subsystem: "tidechart",
			Help:      "Tide records whose date and time did not parse.",
		},
		[]string{"dataset"},
	)

	datasetFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "dataset_failures_total",
			Subsystem: "tidechart",
			Help:      "Datasets that could not be built or smoothed, by stage.",
		},
		[]string{"dataset", "stage"},
	)
)

func init() {
	prometheus.MustRegister(
		fetchLatency,
		tablesExtracted,
		malformedTimestamps,
		datasetFailures,
	)
}

// ObserveFetch records how long a fetch took. A code of 0 means the request
// never got a response.
func ObserveFetch(code int, latency time.Duration) {
	fetchLatency.With(prometheus.Labels{
		"code": fmt.Sprintf("%d", code),
	}).Observe(latency.Seconds())
}

func AddTables(n int) {
	tablesExtracted.Add(float64(n))
}

func AddMalformedTimestamps(dataset string, n int) {
	malformedTimestamps.WithLabelValues(dataset).Add(float64(n))
}

func IncDatasetFailure(dataset, stage string) {
	datasetFailures.WithLabelValues(dataset, stage).Inc()
}

// Push sends everything registered with the default registry to a
// Pushgateway. An empty url is a no-op.
func Push(url string) error {
	if url == "" {
		return nil
	}
	if err := push.New(url, job).Gatherer(prometheus.DefaultGatherer).Push(); err != nil {
		return fmt.Errorf("pushing metrics to %s: %w", url, err)
	}
	return nil
}
