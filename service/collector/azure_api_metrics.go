package collector

import (
	"sync"

	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"
	"github.com/prometheus/client_golang/prometheus"
)

type Config struct {
	Logger micrologger.Logger
}

// AzureAPIMetricsCollector lazily creates the metric vectors requested by
// the Azure pipeline policies and exposes them as one prometheus.Collector.
type AzureAPIMetricsCollector struct {
	logger micrologger.Logger

	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec

	mutex sync.Mutex
}

func NewAzureAPIMetricsCollector(config Config) (*AzureAPIMetricsCollector, error) {
	if config.Logger == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}

	c := &AzureAPIMetricsCollector{
		logger: config.Logger,

		counters:   map[string]*prometheus.CounterVec{},
		histograms: map[string]*prometheus.HistogramVec{},
	}

	return c, nil
}

func (c *AzureAPIMetricsCollector) Describe(ch chan<- *prometheus.Desc) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, counter := range c.counters {
		counter.Describe(ch)
	}
	for _, histogram := range c.histograms {
		histogram.Describe(ch)
	}
}

func (c *AzureAPIMetricsCollector) Collect(ch chan<- prometheus.Metric) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, counter := range c.counters {
		counter.Collect(ch)
	}
	for _, histogram := range c.histograms {
		histogram.Collect(ch)
	}
}

func (c *AzureAPIMetricsCollector) GetCounterVec(opts prometheus.Opts, labelNames []string) *prometheus.CounterVec {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	k := key(opts)
	counter, exists := c.counters[k]
	if !exists {
		counter = prometheus.NewCounterVec(prometheus.CounterOpts(opts), labelNames)
		c.counters[k] = counter
	}

	return counter
}

func (c *AzureAPIMetricsCollector) GetHistogramVec(opts prometheus.Opts, labelNames []string) *prometheus.HistogramVec {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	k := key(opts)
	histogram, exists := c.histograms[k]
	if !exists {
		o := prometheus.HistogramOpts{
			Namespace:   opts.Namespace,
			Name:        opts.Name,
			Help:        opts.Help,
			ConstLabels: opts.ConstLabels,
		}

		histogram = prometheus.NewHistogramVec(o, labelNames)
		c.histograms[k] = histogram
	}

	return histogram
}

func key(opts prometheus.Opts) string {
	return opts.Namespace + "/" + opts.Name
}
