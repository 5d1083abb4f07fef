package collector

import "github.com/prometheus/client_golang/prometheus"

// AzureAPIMetrics hands out metric vectors keyed by namespace and name, so
// every Azure client records into the same series.
type AzureAPIMetrics interface {
	GetCounterVec(opts prometheus.Opts, labelNames []string) *prometheus.CounterVec
	GetHistogramVec(opts prometheus.Opts, labelNames []string) *prometheus.HistogramVec
}
