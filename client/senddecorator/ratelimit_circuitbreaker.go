package senddecorator

import (
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/giantswarm/microerror"

	"github.com/giantswarm/keyvault-lifecycle/pkg/backpressure"
	"github.com/giantswarm/keyvault-lifecycle/pkg/httputil"
)

const (
	// Default wait time in case server returns HTTP 429 Too Many Requests but
	// doesn't provide Retry-After header.
	defaultWaitAfterTooManyRequests = 6 * time.Minute
)

// RateLimitCircuitBreaker utilizes simple backpressure implementation to hold
// off from making any additional requests when server responds HTTP 429 Too
// Many Requests.
func RateLimitCircuitBreaker(g *backpressure.Backpressure) policy.Policy {
	return policyFunc(func(req *policy.Request) (*http.Response, error) {
		// Check if we can proceed with request. If not, short-circuit here.
		if !g.CanProceed() {
			return nil, microerror.Maskf(tooManyRequestsError, "retry after %q", g.RetryAfter())
		}

		resp, err := req.Next()

		if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
			now := time.Now().UTC()

			retryAfter, parseErr := httputil.ParseRetryAfter(resp, now)
			if parseErr != nil {
				// In case parsing fails, it's ok to fall back on default delay.
				retryAfter = now.Add(defaultWaitAfterTooManyRequests)
			}

			if resp.Body != nil {
				_ = resp.Body.Close()
			}

			g.NotBefore(retryAfter)
			return nil, microerror.Maskf(tooManyRequestsError, "retry after %q", g.RetryAfter())
		}

		return resp, err
	})
}
