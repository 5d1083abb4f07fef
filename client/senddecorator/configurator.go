package senddecorator

import (
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"

	"github.com/giantswarm/keyvault-lifecycle/pkg/backpressure"
	"github.com/giantswarm/keyvault-lifecycle/service/collector"
)

// ONE DOES NOT SIMPLY RETRY ON HTTP 429. These are the SDK's default retry
// status codes without http.StatusTooManyRequests.
var statusCodesForRetry = []int{
	http.StatusRequestTimeout,
	http.StatusInternalServerError,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
	http.StatusGatewayTimeout,
}

type Config struct {
	Backpressure *backpressure.Backpressure
	// Metrics is optional. Without it no API metrics are recorded.
	Metrics collector.AzureAPIMetrics

	Name           string
	SubscriptionID string
	// UserAgent is appended to the User-Agent header of every request when
	// set.
	UserAgent string
}

// ConfigureClientOptions adds all local policy implementations of this
// package to the given client options.
//
// Existing policies are preserved, but moved to end of slice.
func ConfigureClientOptions(config Config, o *arm.ClientOptions) {
	// NOTE: Order matters here since policies are executed in order. The
	// circuit breaker runs once per call, metrics are recorded per attempt.
	if config.Backpressure != nil {
		o.PerCallPolicies = append([]policy.Policy{
			RateLimitCircuitBreaker(config.Backpressure),
		}, o.PerCallPolicies...)
	}
	if config.UserAgent != "" {
		o.PerCallPolicies = append(o.PerCallPolicies, UserAgent(config.UserAgent))
	}
	if config.Metrics != nil {
		o.PerRetryPolicies = append([]policy.Policy{
			Metrics(config.Name, config.SubscriptionID, config.Metrics),
		}, o.PerRetryPolicies...)
	}

	o.Retry.StatusCodes = append([]int{}, statusCodesForRetry...)
}
