package senddecorator

import (
	"net/http"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/giantswarm/keyvault-lifecycle/service/collector"
)

const metricsNamespace = "keyvault_lifecycle_azure_api"

var (
	totalCallsOpts       = prometheus.Opts{Namespace: metricsNamespace, Name: "total_calls", Help: "Total number of API calls"}
	ratelimitedCallsOpts = prometheus.Opts{Namespace: metricsNamespace, Name: "ratelimited_calls", Help: "Total number of API calls ratelimited"}
	errorRespOpts        = prometheus.Opts{Namespace: metricsNamespace, Name: "error_resp", Help: "Total number of API error responses"}
	callLatencyOpts      = prometheus.Opts{Namespace: metricsNamespace, Name: "req_latency", Help: "API request latency"}

	labelNames = []string{"api_service", "subscription_id"}
)

// Metrics records every API call made through the pipeline it is added to,
// labelled with the given API service name and subscription.
func Metrics(name, subscriptionID string, metricsCollector collector.AzureAPIMetrics) policy.Policy {
	labels := prometheus.Labels{
		"api_service":     strings.ToLower(name),
		"subscription_id": subscriptionID,
	}

	return policyFunc(func(req *policy.Request) (*http.Response, error) {
		start := time.Now()

		resp, err := req.Next()

		elapsed := time.Since(start)

		metricsCollector.GetCounterVec(totalCallsOpts, labelNames).With(labels).Inc()
		metricsCollector.GetHistogramVec(callLatencyOpts, labelNames).With(labels).Observe(elapsed.Seconds())

		if resp != nil && resp.StatusCode >= 400 {
			metricsCollector.GetCounterVec(errorRespOpts, labelNames).With(labels).Inc()

			if resp.StatusCode == http.StatusTooManyRequests {
				metricsCollector.GetCounterVec(ratelimitedCallsOpts, labelNames).With(labels).Inc()
			}
		}

		return resp, err
	})
}
